package localRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"pathlab/models"
	"pathlab/utils"
)

// AppointmentArchive persists the full appointment list under a single key.
type AppointmentArchive struct {
	kv KeyValue
}

func NewAppointmentArchive(kv KeyValue) *AppointmentArchive {
	return &AppointmentArchive{kv: kv}
}

// Load returns the archived list, or nil when nothing was saved yet.
func (a *AppointmentArchive) Load(ctx context.Context) ([]models.Appointment, error) {
	raw, ok, err := a.kv.Get(ctx, utils.AppointmentsKey)
	if err != nil || !ok {
		return nil, err
	}
	var appts []models.Appointment
	if err := json.Unmarshal(raw, &appts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", utils.AppointmentsKey, err)
	}
	return appts, nil
}

// Save replaces the archived list.
func (a *AppointmentArchive) Save(ctx context.Context, appts []models.Appointment) error {
	raw, err := json.Marshal(appts)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, utils.AppointmentsKey, raw, 0)
}
