package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
)

type StreetRepository interface {
	Create(ctx context.Context, s *models.Street) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Street, error)
	ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.Street, error)
	NextPosition(ctx context.Context, territoryID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type streetRepo struct {
	db DB
}

func NewStreetRepository(db DB) StreetRepository {
	return &streetRepo{db: db}
}

func baseSelectStreet() string {
	return `
        SELECT id, territory_id, name, street_type, position, created_at
        FROM streets
    `
}

func scanStreet(row pgx.Row) (*models.Street, error) {
	var s models.Street
	err := row.Scan(
		&s.ID,
		&s.TerritoryID,
		&s.Name,
		&s.StreetType,
		&s.Position,
		&s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *streetRepo) Create(ctx context.Context, s *models.Street) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO streets (id, territory_id, name, street_type, position, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
    `, s.ID, s.TerritoryID, s.Name, s.StreetType, s.Position)
	return err
}

func (r *streetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Street, error) {
	row := r.db.QueryRow(ctx, baseSelectStreet()+" WHERE id=$1", id)
	return scanStreet(row)
}

func (r *streetRepo) ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.Street, error) {
	rows, err := r.db.Query(ctx, baseSelectStreet()+" WHERE territory_id=$1 ORDER BY position", territoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Street
	for rows.Next() {
		s, err := scanStreet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *streetRepo) NextPosition(ctx context.Context, territoryID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM streets WHERE territory_id=$1`,
		territoryID,
	).Scan(&n)
	return n, err
}

func (r *streetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM streets WHERE id=$1`, id)
	return err
}
