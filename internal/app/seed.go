package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// Fixed identifiers make the seed idempotent: re-running the app with
// SEED_DEMO_DATA enabled leaves an already-seeded database untouched.
const (
	seedAdminID      = "5f0b7f51-0000-4000-8000-000000000001"
	seedUserID       = "5f0b7f51-0000-4000-8000-000000000002"
	seedTerritoryID  = "5f0b7f51-0000-4000-8000-000000000101"
	seedStreetID     = "5f0b7f51-0000-4000-8000-000000000201"
	seedOutingOneID  = "5f0b7f51-0000-4000-8000-000000000301"
	seedOutingTwoID  = "5f0b7f51-0000-4000-8000-000000000302"
	seedAssignmentID = "5f0b7f51-0000-4000-8000-000000000401"

	seedAdminEmail    = "admin@exemplo.com"
	seedUserEmail     = "usuario@exemplo.com"
	seedDemoPassword  = "senha123"
)

// SeedDemoData inserts a small demo data set: two users, two field outings,
// one territory with a street and a handful of properties, and an active
// assignment covering today. It is a no-op when the demo admin user already
// exists.
func (a *App) SeedDemoData(ctx context.Context) error {
	var exists bool
	row := a.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, seedAdminID)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		utils.Logger.Info("Demo data already present, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedDemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = a.DB.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)`,
		seedAdminID, "Administrador", seedAdminEmail, string(hash), string(models.UserRoleAdmin),
		seedUserID, "Publicador", seedUserEmail, string(hash), string(models.UserRoleUser),
	)
	if err != nil {
		return err
	}

	_, err = a.DB.Exec(ctx, `
		INSERT INTO outings (id, name, weekday, start_time, leader)
		VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)`,
		seedOutingOneID, "Saída 1", "saturday", "09:00", "João Silva",
		seedOutingTwoID, "Saída 2", "wednesday", "19:30", "Maria Souza",
	)
	if err != nil {
		return err
	}

	_, err = a.DB.Exec(ctx, `
		INSERT INTO territories (id, name, description, region)
		VALUES ($1, $2, $3, $4)`,
		seedTerritoryID, "Território 1 - Centro", "Quadras ao redor da praça central", "Centro",
	)
	if err != nil {
		return err
	}

	_, err = a.DB.Exec(ctx, `
		INSERT INTO streets (id, territory_id, name, street_type, position)
		VALUES ($1, $2, $3, $4, $5)`,
		seedStreetID, seedTerritoryID, "Rua das Flores", "rua", 1,
	)
	if err != nil {
		return err
	}

	properties := []struct {
		number string
		ptype  models.PropertyTypeName
	}{
		{"10", models.PropertyTypeResidential},
		{"12", models.PropertyTypeResidential},
		{"14", models.PropertyTypeCommercial},
		{"20", models.PropertyTypeBuilding},
	}
	for i, p := range properties {
		_, err = a.DB.Exec(ctx, `
			INSERT INTO properties (id, street_id, number, property_type, position)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), seedStreetID, p.number, string(p.ptype), i+1,
		)
		if err != nil {
			return err
		}
	}

	today := utils.DateOnly(time.Now().UTC())
	_, err = a.DB.Exec(ctx, `
		INSERT INTO assignments (id, territory_id, outing_id, responsible, assigned_date, due_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		seedAssignmentID, seedTerritoryID, seedOutingOneID, "João Silva",
		today, today.AddDate(0, 0, 14), string(models.AssignmentStatusActive), "Designação de demonstração",
	)
	if err != nil {
		return err
	}

	utils.Logger.Info("Demo data seeded")
	return nil
}
