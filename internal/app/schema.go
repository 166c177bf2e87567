package app

import (
	"context"

	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// schema is the full DDL for the service. Every statement is idempotent so
// InitSchema can run on every boot.
const schema = `
CREATE TABLE IF NOT EXISTS territories (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    region      TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS streets (
    id           UUID PRIMARY KEY,
    territory_id UUID NOT NULL REFERENCES territories(id) ON DELETE CASCADE,
    name         TEXT NOT NULL,
    street_type  TEXT NOT NULL DEFAULT '',
    position     INTEGER NOT NULL DEFAULT 1,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS streets_territory_idx ON streets (territory_id);

CREATE TABLE IF NOT EXISTS properties (
    id            UUID PRIMARY KEY,
    street_id     UUID NOT NULL REFERENCES streets(id) ON DELETE CASCADE,
    number        TEXT NOT NULL,
    property_type TEXT NOT NULL,
    notes         TEXT NOT NULL DEFAULT '',
    position      INTEGER NOT NULL DEFAULT 1,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS properties_street_idx ON properties (street_id);

CREATE TABLE IF NOT EXISTS outings (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    weekday    TEXT NOT NULL,
    start_time TEXT NOT NULL,
    leader     TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS assignments (
    id             UUID PRIMARY KEY,
    territory_id   UUID NOT NULL REFERENCES territories(id) ON DELETE CASCADE,
    outing_id      UUID NOT NULL REFERENCES outings(id),
    responsible    TEXT NOT NULL,
    assigned_date  DATE NOT NULL,
    due_date       DATE NOT NULL,
    status         TEXT NOT NULL,
    completed_date DATE,
    outcome        TEXT,
    notes          TEXT NOT NULL DEFAULT '',
    row_version    BIGINT NOT NULL DEFAULT 1,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS assignments_territory_idx ON assignments (territory_id);
CREATE INDEX IF NOT EXISTS assignments_outing_idx ON assignments (outing_id);
-- The availability invariant: one ACTIVE assignment per territory, enforced
-- at the store so the existence check and the insert cannot interleave.
CREATE UNIQUE INDEX IF NOT EXISTS assignments_one_active_per_territory
    ON assignments (territory_id) WHERE status = 'ACTIVE';

CREATE TABLE IF NOT EXISTS visit_records (
    id           UUID PRIMARY KEY,
    property_id  UUID NOT NULL,
    street_id    UUID NOT NULL,
    territory_id UUID NOT NULL REFERENCES territories(id) ON DELETE CASCADE,
    visit_date   DATE NOT NULL,
    outcome      TEXT NOT NULL,
    notes        TEXT NOT NULL DEFAULT '',
    recorded_by  TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS visit_records_property_idx ON visit_records (property_id);
CREATE INDEX IF NOT EXISTS visit_records_territory_idx ON visit_records (territory_id);

CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema creates the tables and indexes if they do not exist yet.
func (a *App) InitSchema(ctx context.Context) error {
	if _, err := a.DB.Exec(ctx, schema); err != nil {
		return err
	}
	utils.Logger.Info("Database schema ready")
	return nil
}
