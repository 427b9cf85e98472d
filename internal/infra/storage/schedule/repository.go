package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "availability"

// Repository stores the single weekly availability row
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get returns the weekly schedule or ErrScheduleNotFound
func (r *Repository) Get(ctx context.Context) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "slot_step_mins", "days", "updated_at").
		From(table).
		Where(squirrel.Eq{"id": domain.ScheduleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s       domain.WeeklySchedule
		rawDays []byte
		updated sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.SlotStepMins, &rawDays, &updated)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	days, err := decodeDays(rawDays)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - decode days: %v", ErrScanRow, err)
	}
	s.Days = days
	s.UpdatedAt = updated.Time

	return &s, nil
}

// Upsert replaces the weekly schedule as a whole
func (r *Repository) Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rawDays, err := encodeDays(s.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeDays, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "slot_step_mins", "days").
		Values(domain.ScheduleID, s.SlotStepMins, string(rawDays)).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET slot_step_mins = EXCLUDED.slot_step_mins,
			    days = EXCLUDED.days,
			    updated_at = NOW()
			RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute: %v", ErrExecQuery, err)
	}

	return s, nil
}
