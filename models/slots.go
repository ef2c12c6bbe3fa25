package models

// Slot is a discrete bookable time-of-day for one doctor on one date.
// Time is "HH:MM" in the clinic's local clock.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"is_available"`
}

// SlotKey scopes a slot list to exactly one (doctor, date) pair.
// Date is "YYYY-MM-DD". Slot-fetch responses carry the key they were
// issued for so stale responses can be discarded on arrival.
type SlotKey struct {
	DoctorID string
	Date     string
}

// AvailableSlots filters a slot list down to the selectable ones.
func AvailableSlots(slots []Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
