package report

// resultRow is one measured parameter on a report.
type resultRow struct {
	Name      string
	Value     string
	Unit      string
	Reference string
	Flagged   bool
}

type resultTable struct {
	Headers [4]string
	Rows    []resultRow
}

var resultTables = map[Template]resultTable{
	TemplateCBC: {
		Headers: [4]string{"Test Description", "Result", "Units", "Reference Range"},
		Rows: []resultRow{
			{Name: "Hemoglobin", Value: "13.5", Unit: "g/dL", Reference: "13.0 - 17.0"},
			{Name: "Total WBC Count", Value: "7,500", Unit: "cells/cumm", Reference: "4,000 - 11,000"},
			{Name: "Platelet Count", Value: "2.5", Unit: "lakhs/cumm", Reference: "1.5 - 4.5"},
			{Name: "RBC Count", Value: "4.8", Unit: "mill/cumm", Reference: "4.5 - 5.5"},
		},
	},
	TemplateGlycemic: {
		Headers: [4]string{"Investigation", "Observed Value", "Units", "Biological Ref. Interval"},
		Rows: []resultRow{
			{Name: "HbA1c (Glycosylated Hb)", Value: "6.8", Unit: "%", Reference: "Non-Diabetic: < 5.7", Flagged: true},
			{Name: "Estimated Avg Glucose", Value: "148", Unit: "mg/dL", Reference: "-"},
		},
	},
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Report {{.Appointment.ID}} - {{.Lab.Name}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; background: #f3f4f6; margin: 0; color: #111827; }
.page { max-width: 210mm; min-height: 297mm; margin: 24px auto; background: #fff; padding: 15mm; box-sizing: border-box; display: flex; flex-direction: column; }
header { display: flex; justify-content: space-between; border-bottom: 2px solid #2563eb; padding-bottom: 16px; margin-bottom: 24px; }
h1 { margin: 0; color: #1e3a8a; font-size: 28px; }
.muted { color: #6b7280; font-size: 12px; margin: 2px 0; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 8px 32px; background: #f9fafb; border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; font-size: 14px; margin-bottom: 24px; }
.grid span.label { color: #6b7280; display: inline-block; width: 110px; }
h2 { text-align: center; text-transform: uppercase; font-size: 18px; text-decoration: underline; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th { border-bottom: 2px solid #1f2937; padding: 8px 0; }
td { border-bottom: 1px solid #e5e7eb; padding: 8px 0; }
td.value { font-weight: bold; text-align: center; }
td.flag { color: #dc2626; }
.generic { padding: 32px; text-align: center; color: #6b7280; font-style: italic; border: 1px dashed #d1d5db; border-radius: 8px; }
.signatures { margin-top: auto; display: flex; justify-content: space-between; padding-top: 48px; font-size: 14px; }
.signatures div { text-align: center; }
footer { border-top: 1px solid #e5e7eb; margin-top: 24px; padding-top: 12px; font-size: 11px; color: #9ca3af; text-align: center; }
@media print { body { background: #fff; } .page { margin: 0; } }
</style>
</head>
<body>
<div class="page">
  <header>
    <div>
      <h1>{{.Lab.Name}}</h1>
      <p class="muted">{{.Lab.Tagline}}</p>
    </div>
    <div style="text-align:right">
      {{range .Lab.Address}}<p class="muted">{{.}}</p>{{end}}
      <p class="muted">Ph: {{.Lab.Phone}} | {{.Lab.Website}}</p>
    </div>
  </header>

  <section class="grid">
    <div><span class="label">Patient Name:</span><strong>{{upper .Appointment.User.Name}}</strong></div>
    <div><span class="label">Sample ID:</span><code>{{.Appointment.ID}}</code></div>
    <div><span class="label">Age / Sex:</span>{{.Appointment.User.Age}} Y / M</div>
    <div><span class="label">Date:</span>{{.Date}}</div>
    <div><span class="label">Ref. By:</span>Self</div>
    <div><span class="label">Status:</span>Final Report</div>
  </section>

  <h2>{{.Appointment.TestName}}</h2>

  {{if .Table}}
  <table>
    <thead>
      <tr>
        <th style="text-align:left">{{index .Table.Headers 0}}</th>
        <th>{{index .Table.Headers 1}}</th>
        <th>{{index .Table.Headers 2}}</th>
        <th style="text-align:right">{{index .Table.Headers 3}}</th>
      </tr>
    </thead>
    <tbody>
      {{range .Table.Rows}}
      <tr>
        <td>{{.Name}}</td>
        <td class="value{{if .Flagged}} flag{{end}}">{{.Value}}</td>
        <td style="text-align:center">{{.Unit}}</td>
        <td style="text-align:right">{{.Reference}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  {{else}}
  <div class="generic">
    Detailed results for <strong>{{.Appointment.TestName}}</strong> are attached in the supplemental pages.
  </div>
  {{end}}

  <div class="signatures">
    <div><p>&nbsp;</p><p><strong>Lab Technician</strong></p></div>
    <div><p><strong>{{.Lab.Pathologist}}</strong></p><p class="muted">{{.Lab.PathologistTitle}}</p><p>Verified By</p></div>
  </div>

  <footer>
    This is a computer generated report and does not require a physical signature.
    Test results relate only to the items tested.
  </footer>
</div>
</body>
</html>
`
