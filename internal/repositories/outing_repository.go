package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
)

type OutingRepository interface {
	Create(ctx context.Context, o *models.Outing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Outing, error)
	List(ctx context.Context) ([]*models.Outing, error)
	Update(ctx context.Context, o *models.Outing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type outingRepo struct {
	db DB
}

func NewOutingRepository(db DB) OutingRepository {
	return &outingRepo{db: db}
}

func baseSelectOuting() string {
	return `
        SELECT id, name, weekday, start_time, leader, created_at, updated_at
        FROM outings
    `
}

func scanOuting(row pgx.Row) (*models.Outing, error) {
	var o models.Outing
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Weekday,
		&o.StartTime,
		&o.Leader,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *outingRepo) Create(ctx context.Context, o *models.Outing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO outings (id, name, weekday, start_time, leader, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
    `, o.ID, o.Name, o.Weekday, o.StartTime, o.Leader)
	return err
}

func (r *outingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Outing, error) {
	row := r.db.QueryRow(ctx, baseSelectOuting()+" WHERE id=$1", id)
	return scanOuting(row)
}

func (r *outingRepo) List(ctx context.Context) ([]*models.Outing, error) {
	rows, err := r.db.Query(ctx, baseSelectOuting()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Outing
	for rows.Next() {
		o, err := scanOuting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *outingRepo) Update(ctx context.Context, o *models.Outing) error {
	_, err := r.db.Exec(ctx, `
        UPDATE outings SET name=$1, weekday=$2, start_time=$3, leader=$4, updated_at=NOW()
        WHERE id=$5
    `, o.Name, o.Weekday, o.StartTime, o.Leader, o.ID)
	return err
}

func (r *outingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM outings WHERE id=$1`, id)
	return err
}
