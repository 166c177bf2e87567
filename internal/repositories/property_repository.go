package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Rafium-MS/territorio-app/internal/models"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByStreetID(ctx context.Context, streetID uuid.UUID) ([]*models.Property, error)
	ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.Property, error)
	CountByTerritoryID(ctx context.Context, territoryID uuid.UUID) (int64, error)
	NextPosition(ctx context.Context, streetID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func baseSelectProperty() string {
	return `
        SELECT id, street_id, number, property_type, notes, position, created_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.StreetID,
		&p.Number,
		&p.PropertyType,
		&p.Notes,
		&p.Position,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (id, street_id, number, property_type, notes, position, created_at)
        VALUES ($1,$2,$3,$4,$5,$6, NOW())
    `, p.ID, p.StreetID, p.Number, p.PropertyType, p.Notes, p.Position)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListByStreetID(ctx context.Context, streetID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE street_id=$1 ORDER BY position", streetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, `
        SELECT p.id, p.street_id, p.number, p.property_type, p.notes, p.position, p.created_at
        FROM properties p
        JOIN streets s ON s.id = p.street_id
        WHERE s.territory_id=$1
        ORDER BY s.position, p.position
    `, territoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) CountByTerritoryID(ctx context.Context, territoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM properties p
        JOIN streets s ON s.id = p.street_id
        WHERE s.territory_id=$1
    `, territoryID).Scan(&n)
	return n, err
}

func (r *propertyRepo) NextPosition(ctx context.Context, streetID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM properties WHERE street_id=$1`,
		streetID,
	).Scan(&n)
	return n, err
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}
