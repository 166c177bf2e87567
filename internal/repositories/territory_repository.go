package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
)

type TerritoryRepository interface {
	Create(ctx context.Context, t *models.Territory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Territory, error)
	List(ctx context.Context) ([]*models.Territory, error)
	CountByName(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, t *models.Territory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type territoryRepo struct {
	db DB
}

func NewTerritoryRepository(db DB) TerritoryRepository {
	return &territoryRepo{db: db}
}

func baseSelectTerritory() string {
	return `
        SELECT id, name, description, region, created_at, updated_at
        FROM territories
    `
}

func scanTerritory(row pgx.Row) (*models.Territory, error) {
	var t models.Territory
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Region,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *territoryRepo) Create(ctx context.Context, t *models.Territory) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO territories (id, name, description, region, created_at, updated_at)
        VALUES ($1,$2,$3,$4, NOW(), NOW())
    `, t.ID, t.Name, t.Description, t.Region)
	return err
}

func (r *territoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Territory, error) {
	row := r.db.QueryRow(ctx, baseSelectTerritory()+" WHERE id=$1", id)
	return scanTerritory(row)
}

func (r *territoryRepo) List(ctx context.Context) ([]*models.Territory, error) {
	rows, err := r.db.Query(ctx, baseSelectTerritory()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Territory
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *territoryRepo) CountByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM territories WHERE LOWER(name)=LOWER($1)`, name).Scan(&n)
	return n, err
}

func (r *territoryRepo) Update(ctx context.Context, t *models.Territory) error {
	_, err := r.db.Exec(ctx, `
        UPDATE territories SET name=$1, description=$2, region=$3, updated_at=NOW()
        WHERE id=$4
    `, t.Name, t.Description, t.Region, t.ID)
	return err
}

// Delete hard-deletes the territory; streets and properties go with it via
// ON DELETE CASCADE.
func (r *territoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM territories WHERE id=$1`, id)
	return err
}
