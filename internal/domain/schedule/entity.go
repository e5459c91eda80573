package schedule

import "time"

// WorkSchedule holds up to seven expected (start, end) wall-clock pairs, one
// per weekday. Times are local "HH:MM" strings with no date component. A nil
// pair means the day is off.
type WorkSchedule struct {
	ID        string
	CompanyID string
	Name      string
	Days      [7]*DayWindow // indexed by time.Weekday (Sunday = 0)
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DayWindow struct {
	Start string
	End   string
}

// Window returns the expected start/end for the given weekday. ok is false on
// a day off or when either bound is missing.
func (s WorkSchedule) Window(wd time.Weekday) (DayWindow, bool) {
	w := s.Days[int(wd)]
	if w == nil || w.Start == "" || w.End == "" {
		return DayWindow{}, false
	}
	return *w, true
}
