package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// ProjectRepository handles project database operations
type ProjectRepository struct {
	db DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, description, date_begin, date_end, status, company_id, created_at, created_by`

// Create inserts a project
func (r *ProjectRepository) Create(input *models.ProjectInput, createdBy int64) (*models.Project, error) {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	var project models.Project
	err := r.db.QueryRow(
		`INSERT INTO projects (name, description, date_begin, date_end, status, company_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+projectColumns,
		input.Name, input.Description, input.DateBegin, input.DateEnd, status, input.CompanyID, createdBy,
	).Scan(&project.ID, &project.Name, &project.Description, &project.DateBegin, &project.DateEnd,
		&project.Status, &project.CompanyID, &project.CreatedAt, &project.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.Get(&project, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return &project, nil
}

// List retrieves all projects
func (r *ProjectRepository) List() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Select(&projects, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListByCompany retrieves the projects of one company
func (r *ProjectRepository) ListByCompany(companyID int64) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Select(&projects,
		`SELECT `+projectColumns+` FROM projects WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by company: %w", err)
	}
	return projects, nil
}

// Update changes a project's mutable fields
func (r *ProjectRepository) Update(id int64, input *models.ProjectInput) error {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	result, err := r.db.Exec(
		`UPDATE projects
		 SET name = $1, description = $2, date_begin = $3, date_end = $4, status = $5, company_id = $6
		 WHERE id = $7`,
		input.Name, input.Description, input.DateBegin, input.DateEnd, status, input.CompanyID, id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project; its events cascade per the schema.
func (r *ProjectRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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
