package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eventops/staffing-backend/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, role, company_id, is_active, created_at, created_by`

// Create inserts a new user provisioned by an admin.
func (r *UserRepository) Create(name, email string, role models.Role, companyID *int64, createdBy *int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		`INSERT INTO users (name, email, role, company_id, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		name, email, role, companyID, createdBy,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CompanyID,
		&user.IsActive, &user.CreatedAt, &user.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// CreateUserTx inserts a new user inside an existing transaction.
func CreateUserTx(tx *sqlx.Tx, name, email string, role models.Role, companyID int64, createdBy models.NullInt64) (*models.User, error) {
	var user models.User
	err := tx.QueryRow(
		`INSERT INTO users (name, email, role, company_id, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		name, email, role, companyID, createdBy,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CompanyID,
		&user.IsActive, &user.CreatedAt, &user.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// List retrieves all users ordered by creation time
func (r *UserRepository) List() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Select(&users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateName changes a user's display name. Email, role and company are
// immutable through the API.
func (r *UserRepository) UpdateName(id int64, name string) error {
	result, err := r.db.Exec(`UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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

// SetActive toggles a user's active flag
func (r *UserRepository) SetActive(id int64, active bool) error {
	result, err := r.db.Exec(`UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
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
