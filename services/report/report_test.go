package report

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"pathlab/models"
)

func sampleAppointment(testID, testName string) models.Appointment {
	return models.Appointment{
		ID:       "a1",
		TestID:   testID,
		TestName: testName,
		User:     models.User{Name: "Asha Rao", Age: "34"},
		Status:   models.StatusReportReady,
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry(map[string]string{"t3": "cbc", "t9": "nonsense"})
	tests := map[string]Template{
		"t1": TemplateCBC,
		"t4": TemplateGlycemic,
		"t3": TemplateCBC,
		"t7": TemplateGeneric,
		"t9": TemplateGeneric,
	}
	for id, want := range tests {
		if got := r.Resolve(id); got != want {
			t.Errorf("Resolve(%s) = %s, want %s", id, got, want)
		}
	}
}

func TestRenderResolvesByIDNotName(t *testing.T) {
	renderer := NewRenderer(NewRegistry(nil), DefaultLab, time.UTC)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	// A renamed CBC still gets the CBC table.
	if err := renderer.Render(&buf, sampleAppointment("t1", "Hemogram"), now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Ravi Diagnostic Lab", "ASHA RAO", "34 Y / M", "10/06/2025", "Hemoglobin", "Final Report", "Dr. A. Sharma"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	buf.Reset()
	// A test named like CBC but with another id gets the generic body.
	if err := renderer.Render(&buf, sampleAppointment("t7", "CBC add-on"), now); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Hemoglobin") {
		t.Fatal("generic template must not include CBC rows")
	}
	if !strings.Contains(buf.String(), "supplemental pages") {
		t.Fatal("generic body missing")
	}

	buf.Reset()
	_ = renderer.Render(&buf, sampleAppointment("t4", "HbA1c"), now)
	if !strings.Contains(buf.String(), "Non-Diabetic: &lt; 5.7") {
		t.Fatal("glycemic reference range missing or unescaped")
	}
}

type memStorage struct {
	folder, id string
	body       []byte
}

func (m *memStorage) UploadRaw(_ context.Context, r io.Reader, folder, publicID string) (string, error) {
	m.folder, m.id = folder, publicID
	m.body, _ = io.ReadAll(r)
	return "https://res.cloudinary.com/demo/raw/upload/" + folder + "/" + publicID, nil
}

func TestPublishers(t *testing.T) {
	ctx := context.Background()
	appt := sampleAppointment("t1", "CBC")
	renderer := NewRenderer(nil, DefaultLab, nil)

	link := &Service{Renderer: renderer, Publisher: LinkPublisher{BaseURL: "https://lab.example/"}}
	url, err := link.Publish(ctx, appt)
	if err != nil || url != "https://lab.example/api/appointments/a1/report" {
		t.Fatalf("link publish = %q, %v", url, err)
	}

	store := &memStorage{}
	cloud := &Service{Renderer: renderer, Publisher: CloudinaryPublisher{Storage: store}}
	url, err = cloud.Publish(ctx, appt)
	if err != nil || !strings.HasSuffix(url, "reports/a1.html") {
		t.Fatalf("cloudinary publish = %q, %v", url, err)
	}
	if !bytes.Contains(store.body, []byte("Hemoglobin")) {
		t.Fatal("uploaded body is not the rendered report")
	}
}
