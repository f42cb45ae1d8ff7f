package booking

import (
	"time"

	"pathlab/models"
	"pathlab/utils"
)

// BookingWindowDays is how many calendar days, today included, can be booked.
const BookingWindowDays = 7

var timeSlots = []models.TimeSlot{
	{ID: "ts1", Time: "07:00 AM - 08:00 AM", Available: true},
	{ID: "ts2", Time: "08:00 AM - 09:00 AM", Available: true},
	{ID: "ts3", Time: "09:00 AM - 10:00 AM", Available: true},
	{ID: "ts4", Time: "10:00 AM - 11:00 AM", Available: true},
	{ID: "ts5", Time: "11:00 AM - 12:00 PM", Available: true},
	{ID: "ts6", Time: "04:00 PM - 05:00 PM", Available: true},
	{ID: "ts7", Time: "05:00 PM - 06:00 PM", Available: true},
}

// TimeSlots returns the fixed sample collection windows. Booking never
// decrements availability, so a slot can be booked more than once.
func TimeSlots() []models.TimeSlot {
	out := make([]models.TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// FindSlot matches a slot by its time label.
func FindSlot(label string) (models.TimeSlot, bool) {
	for _, s := range timeSlots {
		if s.Time == label {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

// BookableDates lists the selectable dates starting today in loc.
func BookableDates(now time.Time, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dates := make([]string, BookingWindowDays)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(utils.DateLayout)
	}
	return dates
}

func dateBookable(date string, now time.Time, loc *time.Location) bool {
	for _, d := range BookableDates(now, loc) {
		if d == date {
			return true
		}
	}
	return false
}
