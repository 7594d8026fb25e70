package reservation

import (
	"fmt"

	"bookwise/config"
	"bookwise/models"
)

// Window describes the daily operating hours of the reading room and
// the slot granularity within them.
type Window struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// WindowFromConfig reads the operating window from AppConfig.
func WindowFromConfig() Window {
	return Window{
		OpenHour:    config.AppConfig.ReadingOpenHour,
		CloseHour:   config.AppConfig.ReadingCloseHour,
		SlotMinutes: config.AppConfig.ReadingSlotMinutes,
	}
}

// SlotCount returns how many slots fit in the window. A non-positive
// window yields zero.
func (w Window) SlotCount() int {
	if w.SlotMinutes <= 0 {
		return 0
	}
	total := (w.CloseHour - w.OpenHour) * 60
	if total <= 0 {
		return 0
	}
	return total / w.SlotMinutes
}

// DurationHours converts a slot count to hours at this granularity.
func (w Window) DurationHours(count int) float64 {
	return float64(count*w.SlotMinutes) / 60.0
}

// BuildSlots produces the ordered slot grid for the window, each slot
// labelled "HH:MM - HH:MM".
func BuildSlots(w Window) []models.Slot {
	n := w.SlotCount()
	slots := make([]models.Slot, 0, n)
	for i := 0; i < n; i++ {
		start := w.OpenHour*60 + i*w.SlotMinutes
		end := start + w.SlotMinutes
		slots = append(slots, models.Slot{
			Index: i,
			Label: fmt.Sprintf("%s - %s", formatClock(start), formatClock(end)),
		})
	}
	return slots
}

func formatClock(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
