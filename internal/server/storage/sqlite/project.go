package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// CreateProject inserts a project and returns its id
func (s *Storage) CreateProject(ctx context.Context, project *models.Project) (int64, error) {
	query := `INSERT INTO projects (name, description, img) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		project.Name,
		nullString(project.Description),
		nullString(project.Img),
	)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

// GetProjectByName retrieves a project by its unique name
func (s *Storage) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	query := `SELECT id, name, description, img FROM projects WHERE name = ?`

	project := &models.Project{}
	var description, img sql.NullString

	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&project.ID,
		&project.Name,
		&description,
		&img,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Description = description.String
	project.Img = img.String
	return project, nil
}

// ListProjects returns all projects
func (s *Storage) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := `SELECT id, name, description, img FROM projects ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		var description, img sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &img); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Description = description.String
		p.Img = img.String
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject overwrites the mutable fields of a project by id
func (s *Storage) UpdateProject(ctx context.Context, project *models.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, img = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		project.Name,
		nullString(project.Description),
		nullString(project.Img),
		project.ID,
	)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteProject deletes a project by id. Sutras and their children go
// with it via the schema's ON DELETE CASCADE.
func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
