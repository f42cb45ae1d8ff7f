package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"pathlab/models"
)

// LabInfo is the letterhead printed on every report.
type LabInfo struct {
	Name             string
	Tagline          string
	Address          []string
	Phone            string
	Website          string
	Pathologist      string
	PathologistTitle string
}

// DefaultLab is the Ravi Diagnostic Lab letterhead.
var DefaultLab = LabInfo{
	Name:    "Ravi Diagnostic Lab",
	Tagline: "Advanced Pathology & Diagnostics",
	Address: []string{
		"123 Health Avenue, Medical District",
		"Bangalore, Karnataka - 560001",
	},
	Phone:            "+91 98765 43210",
	Website:          "ravi-lab.com",
	Pathologist:      "Dr. A. Sharma",
	PathologistTitle: "MD, Pathology",
}

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"upper": strings.ToUpper,
}).Parse(reportHTML))

type pageData struct {
	Lab         LabInfo
	Appointment models.Appointment
	Date        string
	Table       *resultTable
}

// Renderer writes printable HTML reports.
type Renderer struct {
	registry *Registry
	lab      LabInfo
	loc      *time.Location
}

func NewRenderer(registry *Registry, lab LabInfo, loc *time.Location) *Renderer {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{registry: registry, lab: lab, loc: loc}
}

// Render writes the report for appt dated now (dd/mm/yyyy in the lab timezone).
func (r *Renderer) Render(w io.Writer, appt models.Appointment, now time.Time) error {
	data := pageData{
		Lab:         r.lab,
		Appointment: appt,
		Date:        now.In(r.loc).Format("02/01/2006"),
	}
	if table, ok := resultTables[r.registry.Resolve(appt.TestID)]; ok {
		data.Table = &table
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render report %s: %w", appt.ID, err)
	}
	return nil
}
