package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// migrations are applied in order at startup. Each statement must be
// idempotent (IF NOT EXISTS) so restarts are safe.
//
// The events_staff -> checks FK is added after both tables exist because the
// two tables reference each other: checks rows point at the events_staff
// they concern, and events_staff keeps a back-reference to the single check
// that credentialed it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS company (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		cnpj        VARCHAR(14) NOT NULL UNIQUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		email       VARCHAR(255) NOT NULL UNIQUE,
		role        VARCHAR(20) NOT NULL DEFAULT 'company',
		company_id  BIGINT REFERENCES company(id) ON DELETE SET NULL,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,

	`DO $$ BEGIN
		ALTER TABLE company
			ADD CONSTRAINT fk_company_created_by
			FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL;
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,

	`CREATE TABLE IF NOT EXISTS user_invites (
		id          VARCHAR(36) PRIMARY KEY,
		company_id  BIGINT NOT NULL REFERENCES company(id) ON DELETE CASCADE,
		email       VARCHAR(255),
		role        VARCHAR(20) NOT NULL,
		used_by     BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at  TIMESTAMPTZ NOT NULL,
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS staffs (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		cpf         VARCHAR(11) NOT NULL,
		company_id  BIGINT NOT NULL REFERENCES company(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL,
		UNIQUE (company_id, cpf)
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date_begin  DATE,
		date_end    DATE,
		status      VARCHAR(10) NOT NULL DEFAULT 'pending',
		company_id  BIGINT NOT NULL REFERENCES company(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location    VARCHAR(255) NOT NULL DEFAULT '',
		date_begin  TIMESTAMPTZ NOT NULL,
		date_end    TIMESTAMPTZ NOT NULL,
		status      VARCHAR(10) NOT NULL DEFAULT 'pending',
		project_id  BIGINT REFERENCES projects(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events_company (
		id          BIGSERIAL PRIMARY KEY,
		event_id    BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		company_id  BIGINT NOT NULL REFERENCES company(id) ON DELETE CASCADE,
		role        VARCHAR(20) NOT NULL,
		staff_limit SMALLINT NOT NULL DEFAULT 1 CHECK (staff_limit >= 1),
		UNIQUE (event_id, company_id)
	)`,

	`CREATE TABLE IF NOT EXISTS events_staff (
		id          VARCHAR(36) PRIMARY KEY,
		event_id    BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		staff_id    BIGINT NOT NULL REFERENCES staffs(id) ON DELETE CASCADE,
		staff_cpf   VARCHAR(11) NOT NULL,
		registration_check_id BIGINT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  BIGINT REFERENCES users(id) ON DELETE SET NULL,
		UNIQUE (event_id, staff_cpf)
	)`,

	`CREATE TABLE IF NOT EXISTS checks (
		id              BIGSERIAL PRIMARY KEY,
		action          VARCHAR(20) NOT NULL,
		timestamp       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		events_staff_id VARCHAR(36) NOT NULL REFERENCES events_staff(id) ON DELETE CASCADE,
		user_control_id BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,

	`DO $$ BEGIN
		ALTER TABLE events_staff
			ADD CONSTRAINT fk_events_staff_registration_check
			FOREIGN KEY (registration_check_id) REFERENCES checks(id) ON DELETE SET NULL;
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,

	// Constraint-level guard for the "exactly one registration per binding"
	// invariant. The application check inside the submit transaction is an
	// optimization; this index is the backstop under concurrency.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_checks_registration
		ON checks (events_staff_id) WHERE action = 'registration'`,

	`CREATE INDEX IF NOT EXISTS idx_checks_events_staff_ts
		ON checks (events_staff_id, timestamp DESC, id DESC)`,

	`CREATE TABLE IF NOT EXISTS login_audits (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		email       VARCHAR(255) NOT NULL,
		ip_address  VARCHAR(45),
		browser     VARCHAR(100),
		os_name     VARCHAR(100),
		mobile      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// RunMigrations applies the schema statements in order.
func RunMigrations(db *sqlx.DB, logger *logrus.Logger) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}
	logger.WithField("count", len(migrations)).Info("Database migrations applied")
	return nil
}
