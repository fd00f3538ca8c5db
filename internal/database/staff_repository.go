package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// StaffRepository handles staff database operations
type StaffRepository struct {
	db DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

const staffColumns = `id, name, cpf, company_id, created_at, created_by`

// Create inserts a staff member. The CPF must already be sanitized; a
// duplicate CPF within the company is surfaced as ErrDuplicate.
func (r *StaffRepository) Create(name, cpf string, companyID, createdBy int64) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.QueryRow(
		`INSERT INTO staffs (name, cpf, company_id, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+staffColumns,
		name, cpf, companyID, createdBy,
	).Scan(&staff.ID, &staff.Name, &staff.CPF, &staff.CompanyID, &staff.CreatedAt, &staff.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return &staff, nil
}

// Upsert inserts a staff member or, when the (company, cpf) pair already
// exists, refreshes the name. Used by the bulk import flow.
func (r *StaffRepository) Upsert(name, cpf string, companyID, createdBy int64) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.QueryRow(
		`INSERT INTO staffs (name, cpf, company_id, created_by)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (company_id, cpf) DO UPDATE SET name = EXCLUDED.name
		 RETURNING `+staffColumns,
		name, cpf, companyID, createdBy,
	).Scan(&staff.ID, &staff.Name, &staff.CPF, &staff.CompanyID, &staff.CreatedAt, &staff.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert staff: %w", err)
	}
	return &staff, nil
}

// GetByID retrieves a staff member by ID
func (r *StaffRepository) GetByID(id int64) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.Get(&staff, `SELECT `+staffColumns+` FROM staffs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	return &staff, nil
}

// List retrieves all staff members
func (r *StaffRepository) List() ([]*models.Staff, error) {
	var staffs []*models.Staff
	err := r.db.Select(&staffs, `SELECT `+staffColumns+` FROM staffs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list staffs: %w", err)
	}
	return staffs, nil
}

// ListByCompany retrieves the staff members of one company
func (r *StaffRepository) ListByCompany(companyID int64) ([]*models.Staff, error) {
	var staffs []*models.Staff
	err := r.db.Select(&staffs,
		`SELECT `+staffColumns+` FROM staffs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staffs by company: %w", err)
	}
	return staffs, nil
}

// Update changes a staff member's name and CPF
func (r *StaffRepository) Update(id int64, name, cpf string) error {
	result, err := r.db.Exec(`UPDATE staffs SET name = $1, cpf = $2 WHERE id = $3`, name, cpf, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update staff: %w", err)
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

// Delete removes a staff member
func (r *StaffRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM staffs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
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
