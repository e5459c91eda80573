package attendance

import (
	"testing"
	"time"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestClassify_NoRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want attendance.Hint
	}{
		{"late night start", at(0, 0), attendance.HintAmbiguous},
		{"late night middle", at(0, 30), attendance.HintAmbiguous},
		{"morning lower bound", at(1, 0), attendance.HintCheckIn},
		{"typical morning", at(8, 0), attendance.HintCheckIn},
		{"morning upper bound inclusive", at(11, 0), attendance.HintCheckIn},
		{"first midday minute", at(11, 1), attendance.HintAmbiguous},
		{"last midday minute", at(15, 59), attendance.HintAmbiguous},
		{"afternoon lower bound", at(16, 0), attendance.HintAmbiguous},
		{"end of day", at(23, 59), attendance.HintAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(attendance.StateNoRecord, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_OpenRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want attendance.Hint
	}{
		{"late night", at(0, 45), attendance.HintAmbiguous},
		{"morning lower bound", at(1, 0), attendance.HintAmbiguous},
		{"typical morning", at(8, 30), attendance.HintAmbiguous},
		{"morning upper bound inclusive", at(11, 0), attendance.HintAmbiguous},
		{"first midday minute", at(11, 1), attendance.HintCheckOut},
		{"early departure window", at(14, 0), attendance.HintCheckOut},
		{"last midday minute", at(15, 59), attendance.HintCheckOut},
		{"afternoon lower bound", at(16, 0), attendance.HintCheckOut},
		{"typical departure", at(17, 5), attendance.HintCheckOut},
		{"end of day", at(23, 59), attendance.HintCheckOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(attendance.StateOpen, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBandOf_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bandLateNight, bandOf(at(0, 0)))
	assert.Equal(t, bandLateNight, bandOf(at(0, 59)))
	assert.Equal(t, bandMorning, bandOf(at(1, 0)))
	assert.Equal(t, bandMorning, bandOf(at(11, 0)))
	assert.Equal(t, bandMidday, bandOf(at(11, 1)))
	assert.Equal(t, bandMidday, bandOf(at(15, 59)))
	assert.Equal(t, bandAfternoon, bandOf(at(16, 0)))
	assert.Equal(t, bandAfternoon, bandOf(at(23, 59)))
}
