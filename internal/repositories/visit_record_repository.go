package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
)

// VisitFilter narrows ListFiltered. Zero values mean "no filter".
type VisitFilter struct {
	TerritoryID     *uuid.UUID
	StreetID        *uuid.UUID
	Outcome         models.VisitOutcomeType
	ResponsibleLike string
	From            *time.Time
	To              *time.Time
}

// DayCount is a per-calendar-day aggregation row.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int64
}

type VisitRecordRepository interface {
	Create(ctx context.Context, v *models.VisitRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VisitRecord, error)
	LatestByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.VisitRecord, error)
	ListFiltered(ctx context.Context, f VisitFilter) ([]*models.VisitRecord, error)
	ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.VisitRecord, error)
	Count(ctx context.Context) (int64, error)
	CountPerOutcome(ctx context.Context) ([]OutcomeCount, error)
	CountPerDaySince(ctx context.Context, since time.Time) ([]DayCount, error)
}

type visitRecordRepo struct {
	db DB
}

func NewVisitRecordRepository(db DB) VisitRecordRepository {
	return &visitRecordRepo{db: db}
}

func baseSelectVisit() string {
	return `
        SELECT id, property_id, street_id, territory_id,
               visit_date, outcome, notes, recorded_by, created_at
        FROM visit_records
    `
}

func scanVisit(row pgx.Row) (*models.VisitRecord, error) {
	var v models.VisitRecord
	err := row.Scan(
		&v.ID,
		&v.PropertyID,
		&v.StreetID,
		&v.TerritoryID,
		&v.VisitDate,
		&v.Outcome,
		&v.Notes,
		&v.RecordedBy,
		&v.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *visitRecordRepo) Create(ctx context.Context, v *models.VisitRecord) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO visit_records (
            id, property_id, street_id, territory_id,
            visit_date, outcome, notes, recorded_by, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `,
		v.ID, v.PropertyID, v.StreetID, v.TerritoryID,
		v.VisitDate, v.Outcome, v.Notes, v.RecordedBy,
	)
	return err
}

func (r *visitRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VisitRecord, error) {
	row := r.db.QueryRow(ctx, baseSelectVisit()+" WHERE id=$1", id)
	return scanVisit(row)
}

func (r *visitRecordRepo) LatestByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.VisitRecord, error) {
	row := r.db.QueryRow(ctx,
		baseSelectVisit()+" WHERE property_id=$1 ORDER BY visit_date DESC, created_at DESC LIMIT 1",
		propertyID,
	)
	return scanVisit(row)
}

func (r *visitRecordRepo) ListFiltered(ctx context.Context, f VisitFilter) ([]*models.VisitRecord, error) {
	sql := baseSelectVisit() + " WHERE 1=1"
	args := []any{}
	if f.TerritoryID != nil {
		args = append(args, *f.TerritoryID)
		sql += fmt.Sprintf(" AND territory_id=$%d", len(args))
	}
	if f.StreetID != nil {
		args = append(args, *f.StreetID)
		sql += fmt.Sprintf(" AND street_id=$%d", len(args))
	}
	if f.Outcome != "" {
		args = append(args, f.Outcome)
		sql += fmt.Sprintf(" AND outcome=$%d", len(args))
	}
	if f.ResponsibleLike != "" {
		args = append(args, "%"+f.ResponsibleLike+"%")
		sql += fmt.Sprintf(" AND recorded_by ILIKE $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		sql += fmt.Sprintf(" AND visit_date>=$%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		sql += fmt.Sprintf(" AND visit_date<=$%d", len(args))
	}
	sql += " ORDER BY visit_date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

func (r *visitRecordRepo) ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.VisitRecord, error) {
	rows, err := r.db.Query(ctx,
		baseSelectVisit()+" WHERE territory_id=$1 ORDER BY visit_date DESC, created_at DESC",
		territoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

func (r *visitRecordRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM visit_records`).Scan(&n)
	return n, err
}

func (r *visitRecordRepo) CountPerOutcome(ctx context.Context) ([]OutcomeCount, error) {
	rows, err := r.db.Query(ctx, `
        SELECT outcome, COUNT(*) FROM visit_records GROUP BY outcome
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeCount
	for rows.Next() {
		var c OutcomeCount
		if err := rows.Scan(&c.Outcome, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *visitRecordRepo) CountPerDaySince(ctx context.Context, since time.Time) ([]DayCount, error) {
	rows, err := r.db.Query(ctx, `
        SELECT TO_CHAR(visit_date, 'YYYY-MM-DD') AS day, COUNT(*)
        FROM visit_records
        WHERE visit_date >= $1
        GROUP BY day
        ORDER BY day
    `, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var c DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func collectVisits(rows pgx.Rows) ([]*models.VisitRecord, error) {
	var out []*models.VisitRecord
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
