package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"pathlab/models"
)

func TestCompose(t *testing.T) {
	subject, body, err := Compose(models.NotificationPayload{
		Kind:          models.NotifyReportReady,
		AppointmentID: "a1",
		PatientName:   "Asha",
		TestName:      "Lipid Profile",
		ReportURL:     "https://lab.example/api/appointments/a1/report",
	})
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Your Lipid Profile report is ready" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Dear Asha") || !strings.Contains(body, "/api/appointments/a1/report") {
		t.Fatalf("body = %q", body)
	}

	if _, _, err := Compose(models.NotificationPayload{Kind: "sms"}); err == nil {
		t.Fatal("unknown kind should fail")
	}
}

type recordingMailer struct{}

func (recordingMailer) Send(context.Context, models.NotificationPayload) error { return nil }

func TestInlineDispatcherSkipsMissingEmail(t *testing.T) {
	d := NewInlineDispatcher(recordingMailer{}, nil)
	done := make(chan models.NotificationPayload, 2)
	d.sent = func(p models.NotificationPayload, _ error) { done <- p }

	_ = d.Notify(context.Background(), models.NotificationPayload{Kind: models.NotifyBookingConfirmed, AppointmentID: "no-email"})
	_ = d.Notify(context.Background(), models.NotificationPayload{Kind: models.NotifyBookingConfirmed, AppointmentID: "a1", Email: "a@example.com"})

	select {
	case p := <-done:
		if p.AppointmentID != "a1" {
			t.Fatalf("sent %s", p.AppointmentID)
		}
	case <-time.After(time.Second):
		t.Fatal("email was not sent")
	}
	select {
	case p := <-done:
		t.Fatalf("unexpected send for %s", p.AppointmentID)
	case <-time.After(50 * time.Millisecond):
	}
}
