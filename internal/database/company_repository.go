package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a company. The CNPJ must already be sanitized to digits.
func (r *CompanyRepository) Create(name, cnpj string, createdBy int64) (*models.Company, error) {
	var company models.Company
	err := r.db.QueryRow(
		`INSERT INTO company (name, cnpj, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		name, cnpj, createdBy,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	company.Name = name
	company.CNPJ = cnpj
	company.CreatedBy = models.SomeInt64(createdBy)
	return &company, nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(id int64) (*models.Company, error) {
	var company models.Company
	err := r.db.Get(&company,
		`SELECT id, name, cnpj, created_at, created_by FROM company WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}
	return &company, nil
}

// List retrieves all companies ordered by creation time
func (r *CompanyRepository) List() ([]*models.Company, error) {
	var companies []*models.Company
	err := r.db.Select(&companies,
		`SELECT id, name, cnpj, created_at, created_by FROM company ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Update changes a company's name and CNPJ
func (r *CompanyRepository) Update(id int64, name, cnpj string) error {
	result, err := r.db.Exec(
		`UPDATE company SET name = $1, cnpj = $2 WHERE id = $3`, name, cnpj, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update company: %w", err)
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

// Delete removes a company; dependent rows cascade per the schema.
func (r *CompanyRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM company WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
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
