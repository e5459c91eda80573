package postgresql

import (
	"context"
	"fmt"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/domain/schedule"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

// GetByID implements schedule.WorkScheduleRepository. Day columns are
// selected Sunday first so the scan order lines up with time.Weekday.
func (r *workScheduleRepository) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name,
			   sunday_start, sunday_end,
			   monday_start, monday_end,
			   tuesday_start, tuesday_end,
			   wednesday_start, wednesday_end,
			   thursday_start, thursday_end,
			   friday_start, friday_end,
			   saturday_start, saturday_end,
			   created_at, updated_at
		FROM work_schedules
		WHERE id = $1
	`

	var sched schedule.WorkSchedule
	var starts, ends [7]*string
	err := q.QueryRow(ctx, query, id).Scan(
		&sched.ID, &sched.CompanyID, &sched.Name,
		&starts[0], &ends[0],
		&starts[1], &ends[1],
		&starts[2], &ends[2],
		&starts[3], &ends[3],
		&starts[4], &ends[4],
		&starts[5], &ends[5],
		&starts[6], &ends[6],
		&sched.CreatedAt, &sched.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	for i := range starts {
		if starts[i] != nil && ends[i] != nil {
			sched.Days[i] = &schedule.DayWindow{Start: *starts[i], End: *ends[i]}
		}
	}

	return sched, nil
}
