package booking

import (
	"errors"
	"testing"
	"time"

	"pathlab/models"
)

var (
	ist       = time.FixedZone("IST", 5*3600+1800)
	fixedNow  = time.Date(2025, 6, 10, 9, 0, 0, 0, ist)
	clockFunc = func() time.Time { return fixedNow }
)

func newTestWizard() *Wizard {
	return NewWizard(&models.BookingSession{
		SessionID: "s1",
		TestID:    "t1",
		TestName:  "Complete Blood Count (CBC)",
		Price:     499,
		Step:      models.StepScheduling,
	}, clockFunc, ist)
}

func validPatient() models.PatientDetails {
	return models.PatientDetails{Name: "Asha", Age: "34", Phone: "9876543210", Address: "12 MG Road"}
}

func TestBookableDates(t *testing.T) {
	dates := BookableDates(fixedNow, ist)
	if len(dates) != BookingWindowDays {
		t.Fatalf("got %d dates", len(dates))
	}
	if dates[0] != "2025-06-10" || dates[6] != "2025-06-16" {
		t.Fatalf("window = %s..%s", dates[0], dates[6])
	}

	// 20:00 UTC on the 9th is already the 10th in IST.
	utcEvening := time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)
	if got := BookableDates(utcEvening, ist)[0]; got != "2025-06-10" {
		t.Fatalf("first date in lab timezone = %s", got)
	}
}

func TestSchedulingGuard(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		slot    string
		wantErr error
	}{
		{"no selection", "", "", ErrDateNotBookable},
		{"date only", "2025-06-11", "", ErrSlotUnavailable},
		{"yesterday", "2025-06-09", "07:00 AM - 08:00 AM", ErrDateNotBookable},
		{"eighth day", "2025-06-17", "07:00 AM - 08:00 AM", ErrDateNotBookable},
		{"unknown slot", "2025-06-11", "01:00 AM - 02:00 AM", ErrSlotUnavailable},
		{"today", "2025-06-10", "05:00 PM - 06:00 PM", nil},
		{"last day", "2025-06-16", "07:00 AM - 08:00 AM", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard()
			// Bypass the selection checks to exercise the Next guard itself.
			w.Session().Date = tt.date
			w.Session().TimeSlot = tt.slot

			err := w.Next()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Next() = %v", err)
				}
				if w.Session().Step != models.StepPatientDetails {
					t.Fatalf("step = %s", w.Session().Step)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Next() = %v, want %v", err, tt.wantErr)
			}
			if w.Session().Step != models.StepScheduling {
				t.Fatal("step must not change on guard failure")
			}
		})
	}
}

func TestSelectRejectsOutsideCatalog(t *testing.T) {
	w := newTestWizard()
	if err := w.SelectDate("2025-07-01"); !errors.Is(err, ErrDateNotBookable) {
		t.Fatalf("SelectDate = %v", err)
	}
	if err := w.SelectSlot("nope"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("SelectSlot = %v", err)
	}
}

func TestPatientGuard(t *testing.T) {
	tests := []struct {
		name    string
		details models.PatientDetails
		ok      bool
	}{
		{"complete", validPatient(), true},
		{"no age or email", models.PatientDetails{Name: "A", Phone: "1", Address: "x"}, true},
		{"blank name", models.PatientDetails{Name: "  ", Phone: "1", Address: "x"}, false},
		{"no phone", models.PatientDetails{Name: "A", Address: "x"}, false},
		{"no address", models.PatientDetails{Name: "A", Phone: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard()
			_ = w.SelectDate("2025-06-11")
			_ = w.SelectSlot("07:00 AM - 08:00 AM")
			if err := w.Next(); err != nil {
				t.Fatal(err)
			}
			if err := w.SetPatient(tt.details); err != nil {
				t.Fatal(err)
			}
			err := w.Next()
			if tt.ok && err != nil {
				t.Fatalf("Next() = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrPatientIncomplete) {
				t.Fatalf("Next() = %v, want ErrPatientIncomplete", err)
			}
		})
	}
}

func TestBackKeepsData(t *testing.T) {
	w := newTestWizard()
	_ = w.SelectDate("2025-06-12")
	_ = w.SelectSlot("09:00 AM - 10:00 AM")
	_ = w.Next()
	_ = w.SetPatient(validPatient())
	_ = w.Next()

	if err := w.Back(); err != nil {
		t.Fatalf("Back from payment: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back from patient details: %v", err)
	}
	s := w.Session()
	if s.Step != models.StepScheduling || s.Date != "2025-06-12" || s.Patient.Name != "Asha" {
		t.Fatalf("state lost: %+v", s)
	}
	if err := w.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Back from first step = %v", err)
	}
}

func TestCommitLifecycle(t *testing.T) {
	w := newTestWizard()
	_ = w.SelectDate("2025-06-12")
	_ = w.SelectSlot("09:00 AM - 10:00 AM")
	_ = w.Next()

	if _, err := w.BeginCommit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("BeginCommit before payment = %v", err)
	}

	_ = w.SetPatient(validPatient())
	_ = w.Next()

	if _, err := w.BeginCommit(); err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	if _, err := w.BeginCommit(); !errors.Is(err, ErrCommitInProgress) {
		t.Fatalf("second BeginCommit = %v", err)
	}
	if err := w.Back(); !errors.Is(err, ErrCommitInProgress) {
		t.Fatalf("Back while committing = %v", err)
	}

	appt := w.BuildAppointment("a1")
	if appt.Status != models.StatusConfirmed || appt.User.ID != "a1" || appt.Price != 499 || !appt.CreatedAt.Equal(fixedNow) {
		t.Fatalf("appointment = %+v", appt)
	}
	w.Complete(appt, "inv1")

	got, err := w.BeginCommit()
	if err != nil || got == nil || got.ID != "a1" {
		t.Fatalf("BeginCommit after confirm = %+v, %v", got, err)
	}
	if err := w.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Back after confirm = %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"98765 43210", "+919876543210"},
		{"+91 98765 43210", "+919876543210"},
		{"  not a phone ", "not a phone"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in, "IN"); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
