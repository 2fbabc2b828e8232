package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// CreateSutra inserts a sutra and returns its id
func (s *Storage) CreateSutra(ctx context.Context, sutra *models.Sutra) (int64, error) {
	query := `INSERT INTO sutras (project_id, chapter, number, text) VALUES (?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		sutra.ProjectID,
		sutra.Chapter,
		sutra.Number,
		sutra.Text,
	)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert sutra: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func scanSutra(row *sql.Row) (*models.Sutra, error) {
	sutra := &models.Sutra{}
	err := row.Scan(&sutra.ID, &sutra.ProjectID, &sutra.Chapter, &sutra.Number, &sutra.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sutra: %w", err)
	}
	return sutra, nil
}

// GetSutra retrieves a sutra by its (project, chapter, number) triple
func (s *Storage) GetSutra(ctx context.Context, projectID int64, chapter, number int) (*models.Sutra, error) {
	query := `
		SELECT id, project_id, chapter, number, text
		FROM sutras
		WHERE project_id = ? AND chapter = ? AND number = ?
	`
	return scanSutra(s.db.QueryRowContext(ctx, query, projectID, chapter, number))
}

// GetSutraByID retrieves a sutra by id
func (s *Storage) GetSutraByID(ctx context.Context, id int64) (*models.Sutra, error) {
	query := `SELECT id, project_id, chapter, number, text FROM sutras WHERE id = ?`
	return scanSutra(s.db.QueryRowContext(ctx, query, id))
}

// ListSutras returns the id/chapter/number projection for a project
func (s *Storage) ListSutras(ctx context.Context, projectID int64) ([]models.SutraRef, error) {
	query := `
		SELECT id, chapter, number
		FROM sutras
		WHERE project_id = ?
		ORDER BY chapter, number
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sutras: %w", err)
	}
	defer rows.Close()

	refs := []models.SutraRef{}
	for rows.Next() {
		var r models.SutraRef
		if err := rows.Scan(&r.ID, &r.Chapter, &r.Number); err != nil {
			return nil, fmt.Errorf("failed to scan sutra: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// CountSutras returns the number of sutras in a project
func (s *Storage) CountSutras(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sutras WHERE project_id = ?`, projectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sutras: %w", err)
	}
	return count, nil
}

// UpdateSutra overwrites the mutable fields of a sutra by id
func (s *Storage) UpdateSutra(ctx context.Context, sutra *models.Sutra) error {
	query := `UPDATE sutras SET chapter = ?, number = ?, text = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		sutra.Chapter,
		sutra.Number,
		sutra.Text,
		sutra.ID,
	)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update sutra: %w", err)
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

// DeleteSutra deletes a sutra by id, cascading to its children
func (s *Storage) DeleteSutra(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sutras WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sutra: %w", err)
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
