package models

// TimeSlot is static reference data for sample collection windows.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
