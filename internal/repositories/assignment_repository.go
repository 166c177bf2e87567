package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// ActiveTerritoryConstraint is the partial unique index that serializes
// "create active assignment" across writers (one ACTIVE row per territory).
const ActiveTerritoryConstraint = "assignments_one_active_per_territory"

// AssignmentFilter narrows ListFiltered. Zero values mean "no filter".
type AssignmentFilter struct {
	Status          models.AssignmentStatusType
	OutingID        *uuid.UUID
	ResponsibleLike string
}

// OutingCount is an aggregation row for the dashboard.
type OutingCount struct {
	OutingID uuid.UUID
	Count    int64
}

// OutcomeCount is an aggregation row keyed by an outcome label.
type OutcomeCount struct {
	Outcome string
	Count   int64
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *models.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	ListFiltered(ctx context.Context, f AssignmentFilter) ([]*models.Assignment, error)
	ActiveByTerritoryID(ctx context.Context, territoryID uuid.UUID) (*models.Assignment, error)
	ActiveCoveringDate(ctx context.Context, date time.Time, outingID *uuid.UUID) (*models.Assignment, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Assignment, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Assignment, error)
	CountByOutingID(ctx context.Context, outingID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status models.AssignmentStatusType) (int64, error)
	CountActivePerOuting(ctx context.Context, limit int) ([]OutingCount, error)
	CountCompletedPerOutcome(ctx context.Context) ([]OutcomeCount, error)
	UpdateIfVersion(ctx context.Context, a *models.Assignment, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Assignment) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type assignmentRepo struct {
	*BaseVersionedRepo[*models.Assignment]
	db DB
}

func NewAssignmentRepository(db DB) AssignmentRepository {
	r := &assignmentRepo{db: db}
	selectStmt := baseSelectAssignment() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanAssignment)
	return r
}

func baseSelectAssignment() string {
	return `
        SELECT
            id, territory_id, outing_id, responsible,
            assigned_date, due_date, status,
            completed_date, outcome, notes,
            row_version, created_at, updated_at
        FROM assignments
    `
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	var completed *time.Time
	var outcome *string
	err := row.Scan(
		&a.ID,
		&a.TerritoryID,
		&a.OutingID,
		&a.Responsible,
		&a.AssignedDate,
		&a.DueDate,
		&a.Status,
		&completed,
		&outcome,
		&a.Notes,
		&a.RowVersion,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.CompletedDate = completed
	if outcome != nil {
		o := models.AssignmentOutcomeType(*outcome)
		a.Outcome = &o
	}
	return &a, nil
}

// Create inserts a new assignment. When the row would be a second ACTIVE
// assignment for the territory, the partial unique index rejects it and the
// conflict comes back as utils.ErrTerritoryAlreadyAssigned.
func (r *assignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	var outcome *string
	if a.Outcome != nil {
		s := string(*a.Outcome)
		outcome = &s
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO assignments (
            id, territory_id, outing_id, responsible,
            assigned_date, due_date, status,
            completed_date, outcome, notes,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,1,NOW(),NOW())
    `,
		a.ID,
		a.TerritoryID,
		a.OutingID,
		a.Responsible,
		a.AssignedDate,
		a.DueDate,
		a.Status,
		a.CompletedDate,
		outcome,
		a.Notes,
	)
	if err != nil && IsUniqueViolation(err, ActiveTerritoryConstraint) {
		return utils.ErrTerritoryAlreadyAssigned
	}
	return err
}

func (r *assignmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *assignmentRepo) ListFiltered(ctx context.Context, f AssignmentFilter) ([]*models.Assignment, error) {
	sql := baseSelectAssignment() + " WHERE 1=1"
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		sql += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if f.OutingID != nil {
		args = append(args, *f.OutingID)
		sql += fmt.Sprintf(" AND outing_id=$%d", len(args))
	}
	if f.ResponsibleLike != "" {
		args = append(args, "%"+f.ResponsibleLike+"%")
		sql += fmt.Sprintf(" AND responsible ILIKE $%d", len(args))
	}
	sql += " ORDER BY assigned_date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *assignmentRepo) ActiveByTerritoryID(ctx context.Context, territoryID uuid.UUID) (*models.Assignment, error) {
	row := r.db.QueryRow(ctx,
		baseSelectAssignment()+" WHERE territory_id=$1 AND status=$2",
		territoryID, models.AssignmentStatusActive,
	)
	return scanAssignment(row)
}

func (r *assignmentRepo) ActiveCoveringDate(ctx context.Context, date time.Time, outingID *uuid.UUID) (*models.Assignment, error) {
	sql := baseSelectAssignment() + " WHERE status=$1 AND assigned_date<=$2 AND due_date>=$2"
	args := []any{models.AssignmentStatusActive, date}
	if outingID != nil {
		args = append(args, *outingID)
		sql += fmt.Sprintf(" AND outing_id=$%d", len(args))
	}
	sql += " ORDER BY assigned_date DESC, created_at DESC LIMIT 1"
	row := r.db.QueryRow(ctx, sql, args...)
	return scanAssignment(row)
}

func (r *assignmentRepo) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Assignment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAssignment()+` WHERE status=$1 AND assigned_date>$2 ORDER BY assigned_date, created_at LIMIT $3`,
		models.AssignmentStatusActive, after, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *assignmentRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Assignment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAssignment()+` WHERE status=$1 AND due_date<$2 ORDER BY due_date`,
		models.AssignmentStatusActive, asOf,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *assignmentRepo) CountByOutingID(ctx context.Context, outingID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE outing_id=$1`, outingID).Scan(&n)
	return n, err
}

func (r *assignmentRepo) CountByStatus(ctx context.Context, status models.AssignmentStatusType) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE status=$1`, status).Scan(&n)
	return n, err
}

func (r *assignmentRepo) CountActivePerOuting(ctx context.Context, limit int) ([]OutingCount, error) {
	rows, err := r.db.Query(ctx, `
        SELECT outing_id, COUNT(*) AS n
        FROM assignments
        WHERE status=$1
        GROUP BY outing_id
        ORDER BY n DESC
        LIMIT $2
    `, models.AssignmentStatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutingCount
	for rows.Next() {
		var c OutingCount
		if err := rows.Scan(&c.OutingID, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *assignmentRepo) CountCompletedPerOutcome(ctx context.Context) ([]OutcomeCount, error) {
	rows, err := r.db.Query(ctx, `
        SELECT COALESCE(outcome, ''), COUNT(*)
        FROM assignments
        WHERE status=$1
        GROUP BY outcome
    `, models.AssignmentStatusCompleted)
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

func (r *assignmentRepo) UpdateIfVersion(ctx context.Context, a *models.Assignment, expected int64) (pgconn.CommandTag, error) {
	var outcome *string
	if a.Outcome != nil {
		s := string(*a.Outcome)
		outcome = &s
	}
	return r.db.Exec(ctx, `
        UPDATE assignments SET
            responsible=$1, assigned_date=$2, due_date=$3, status=$4,
            completed_date=$5, outcome=$6, notes=$7,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$8 AND row_version=$9
    `,
		a.Responsible, a.AssignedDate, a.DueDate, a.Status,
		a.CompletedDate, outcome, a.Notes,
		a.ID, expected,
	)
}

func (r *assignmentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Assignment) error) error {
	err := r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
	if err == pgx.ErrNoRows {
		return utils.ErrAssignmentNotFound
	}
	return err
}

func (r *assignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id=$1`, id)
	return err
}

func collectAssignments(rows pgx.Rows) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
