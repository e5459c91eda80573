package attendance

import (
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
)

// FeedbackTag is the monthly-pattern classification behind the gamification
// copy. Purely advisory; attendance tracking is correct without it.
type FeedbackTag string

const (
	FeedbackNone                 FeedbackTag = ""
	FeedbackRecurringLateness    FeedbackTag = "recurring_lateness"
	FeedbackOneBadWeek           FeedbackTag = "one_bad_week"
	FeedbackExcellentConsistency FeedbackTag = "excellent_consistency"
	FeedbackGoodPattern          FeedbackTag = "good_pattern"
	FeedbackGoodWeek             FeedbackTag = "good_week"
)

// Message returns the kiosk copy for the tag.
func (t FeedbackTag) Message() string {
	switch t {
	case FeedbackRecurringLateness:
		return "📊 Hemos notado tardanzas recurrentes. Por favor mejora tu puntualidad."
	case FeedbackOneBadWeek:
		return "⚠️ Has llegado tarde varias veces. ¡Intenta mejorar!"
	case FeedbackExcellentConsistency:
		return "🏆 ¡Excelente consistencia! Mantén esa disciplina."
	case FeedbackGoodPattern:
		return "⭐ ¡Fantástica puntualidad! Sigue así."
	case FeedbackGoodWeek:
		return "👍 Buena puntualidad. ¡Mantén el ritmo!"
	default:
		return ""
	}
}

// significantDays is the per-bucket tally threshold: three or more late days
// make a bad week, three or more non-late days make a good one.
const significantDays = 3

type weekTally struct {
	late  int
	other int
}

// weekOfMonth buckets a date into month-local week groups. The first partial
// week counts as week 1: offset by the weekday of the 1st (Sunday = 0) so a
// month starting mid-week still fills its opening bucket.
func weekOfMonth(d time.Time) int {
	firstOfMonth := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	offset := int(firstOfMonth.Weekday())
	return (d.Day() + offset + 6) / 7
}

// Summarize folds the current month's records into week buckets and derives
// the feedback tag. Records must all belong to one calendar month; the caller
// queries exactly that range.
func Summarize(records []attendance.AttendanceRecord) FeedbackTag {
	if len(records) == 0 {
		return FeedbackNone
	}

	buckets := make(map[int]*weekTally)
	for _, rec := range records {
		wk := weekOfMonth(rec.Date)
		tally, ok := buckets[wk]
		if !ok {
			tally = &weekTally{}
			buckets[wk] = tally
		}
		if rec.Status == attendance.StatusLate {
			tally.late++
		} else {
			tally.other++
		}
	}

	var badWeeks, goodWeeks int
	for _, tally := range buckets {
		if tally.late >= significantDays {
			badWeeks++
		}
		if tally.other >= significantDays {
			goodWeeks++
		}
	}

	// Lateness patterns take precedence over praise.
	switch {
	case badWeeks >= 2:
		return FeedbackRecurringLateness
	case badWeeks == 1:
		return FeedbackOneBadWeek
	case goodWeeks >= 3:
		return FeedbackExcellentConsistency
	case goodWeeks == 2:
		return FeedbackGoodPattern
	case goodWeeks == 1:
		return FeedbackGoodWeek
	default:
		return FeedbackNone
	}
}
