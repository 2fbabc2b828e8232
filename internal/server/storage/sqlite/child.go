package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// childTable maps a text-child kind to its table. The three tables have
// identical shape, so every operation below is written once.
func childTable(kind storage.TextChildKind) (string, error) {
	switch kind {
	case storage.KindMeaning:
		return "meanings", nil
	case storage.KindTransliteration:
		return "transliterations", nil
	case storage.KindBhashyam:
		return "bhashyams", nil
	default:
		return "", fmt.Errorf("unknown child kind %q", kind)
	}
}

func (s *Storage) CreateTextChild(ctx context.Context, kind storage.TextChildKind, child *models.TextChild) (int64, error) {
	table, err := childTable(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (sutra_id, language, text) VALUES (?, ?, ?)`, table)
	res, err := s.db.ExecContext(ctx, query, child.SutraID, child.Language, child.Text)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert %s: %w", kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func (s *Storage) GetTextChild(ctx context.Context, kind storage.TextChildKind, sutraID int64, lang models.Language) (*models.TextChild, error) {
	table, err := childTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, sutra_id, language, text FROM %s WHERE sutra_id = ? AND language = ?`, table)

	child := &models.TextChild{}
	err = s.db.QueryRowContext(ctx, query, sutraID, lang).Scan(
		&child.ID, &child.SutraID, &child.Language, &child.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return child, nil
}

func (s *Storage) UpdateTextChild(ctx context.Context, kind storage.TextChildKind, child *models.TextChild) error {
	table, err := childTable(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET language = ?, text = ? WHERE id = ?`, table)
	res, err := s.db.ExecContext(ctx, query, child.Language, child.Text, child.ID)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	return checkAffected(res)
}

func (s *Storage) DeleteTextChild(ctx context.Context, kind storage.TextChildKind, id int64) error {
	table, err := childTable(kind)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return checkAffected(res)
}

func (s *Storage) CreateInterpretation(ctx context.Context, interp *models.Interpretation) (int64, error) {
	query := `INSERT INTO interpretations (sutra_id, language, philosophy, text) VALUES (?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, interp.SutraID, interp.Language, interp.Philosophy, interp.Text)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert interpretation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func (s *Storage) GetInterpretation(ctx context.Context, sutraID int64, lang models.Language, phil models.Philosophy) (*models.Interpretation, error) {
	query := `
		SELECT id, sutra_id, language, philosophy, text
		FROM interpretations
		WHERE sutra_id = ? AND language = ? AND philosophy = ?
	`

	interp := &models.Interpretation{}
	err := s.db.QueryRowContext(ctx, query, sutraID, lang, phil).Scan(
		&interp.ID, &interp.SutraID, &interp.Language, &interp.Philosophy, &interp.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interpretation: %w", err)
	}
	return interp, nil
}

func (s *Storage) UpdateInterpretation(ctx context.Context, interp *models.Interpretation) error {
	query := `UPDATE interpretations SET language = ?, philosophy = ?, text = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, interp.Language, interp.Philosophy, interp.Text, interp.ID)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update interpretation: %w", err)
	}
	return checkAffected(res)
}

func (s *Storage) DeleteInterpretation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interpretations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interpretation: %w", err)
	}
	return checkAffected(res)
}

func (s *Storage) CreateAudio(ctx context.Context, audio *models.Audio) (int64, error) {
	query := `INSERT INTO audio (sutra_id, mode, file_path) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, audio.SutraID, audio.Mode, audio.FilePath)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert audio: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func (s *Storage) GetAudio(ctx context.Context, sutraID int64, mode models.Mode) (*models.Audio, error) {
	query := `SELECT id, sutra_id, mode, file_path FROM audio WHERE sutra_id = ? AND mode = ?`

	audio := &models.Audio{}
	err := s.db.QueryRowContext(ctx, query, sutraID, mode).Scan(
		&audio.ID, &audio.SutraID, &audio.Mode, &audio.FilePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get audio: %w", err)
	}
	return audio, nil
}

func (s *Storage) UpdateAudio(ctx context.Context, audio *models.Audio) error {
	query := `UPDATE audio SET mode = ?, file_path = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, audio.Mode, audio.FilePath, audio.ID)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update audio: %w", err)
	}
	return checkAffected(res)
}

func (s *Storage) DeleteAudio(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audio WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete audio: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
