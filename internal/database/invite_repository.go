package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventops/staffing-backend/internal/models"
)

// ErrInviteConsumed is returned when an invite slot was already taken by a
// concurrent registration.
var ErrInviteConsumed = errors.New("invite already used")

// InviteRepository handles user invite database operations
type InviteRepository struct {
	db *sqlx.DB
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

const inviteColumns = `id, company_id, email, role, used_by, created_at, expires_at, created_by`

// Create issues a new invite. The generated ID doubles as the invite token.
func (r *InviteRepository) Create(companyID int64, email string, role models.Role, ttl time.Duration, createdBy int64) (*models.UserInvite, error) {
	invite := &models.UserInvite{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
		CreatedBy: models.SomeInt64(createdBy),
	}
	if email != "" {
		invite.Email = models.SomeString(email)
	}

	err := r.db.QueryRow(
		`INSERT INTO user_invites (id, company_id, email, role, expires_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		invite.ID, invite.CompanyID, invite.Email, invite.Role, invite.ExpiresAt, createdBy,
	).Scan(&invite.CreatedAt)
	if isForeignKeyViolation(err) {
		return nil, ErrInvalidReference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// GetByID retrieves an invite by its token ID
func (r *InviteRepository) GetByID(id string) (*models.UserInvite, error) {
	var invite models.UserInvite
	err := r.db.Get(&invite, `SELECT `+inviteColumns+` FROM user_invites WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}
	return &invite, nil
}

// List retrieves all invites ordered by creation time
func (r *InviteRepository) List() ([]*models.UserInvite, error) {
	var invites []*models.UserInvite
	err := r.db.Select(&invites, `SELECT `+inviteColumns+` FROM user_invites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// Delete revokes an invite
func (r *InviteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM user_invites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Consume creates the invited user and marks the invite used in a single
// transaction. The conditional UPDATE (used_by IS NULL) makes the slot
// single-use even under concurrent registrations: the loser of the race
// updates zero rows and the whole transaction rolls back.
func (r *InviteRepository) Consume(invite *models.UserInvite, name, email string) (*models.User, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := CreateUserTx(tx, name, email, invite.Role, invite.CompanyID, invite.CreatedBy)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`UPDATE user_invites SET used_by = $1 WHERE id = $2 AND used_by IS NULL`,
		user.ID, invite.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume invite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrInviteConsumed
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit invite consumption: %w", err)
	}
	return user, nil
}
