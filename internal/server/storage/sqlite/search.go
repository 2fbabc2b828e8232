package sqlite

import (
	"context"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
)

// Search performs a case-insensitive substring scan over the text
// fields of sutras, meanings, transliterations and interpretations.
// Linear full scan; fine at the corpus's scale.
func (s *Storage) Search(ctx context.Context, term string) ([]models.SearchResult, error) {
	pattern := "%" + term + "%"
	results := []models.SearchResult{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, number FROM sutras WHERE text LIKE ?`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search sutras: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Text, &r.SutraNo); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		r.Mode = "chant"
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, table := range []string{"meanings", "transliterations"} {
		query := fmt.Sprintf(`
			SELECT c.text, s.number, c.language
			FROM %s c
			JOIN sutras s ON s.id = c.sutra_id
			WHERE c.text LIKE ?
		`, table)

		rows, err := s.db.QueryContext(ctx, query, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", table, err)
		}
		for rows.Next() {
			var r models.SearchResult
			var lang models.Language
			if err := rows.Scan(&r.Text, &r.SutraNo, &lang); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan search hit: %w", err)
			}
			r.Mode = "chant"
			r.Lang = &lang
			results = append(results, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	irows, err := s.db.QueryContext(ctx, `
		SELECT i.text, s.number, i.language, i.philosophy
		FROM interpretations i
		JOIN sutras s ON s.id = i.sutra_id
		WHERE i.text LIKE ?
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search interpretations: %w", err)
	}
	defer irows.Close()
	for irows.Next() {
		var r models.SearchResult
		var lang models.Language
		var phil models.Philosophy
		if err := irows.Scan(&r.Text, &r.SutraNo, &lang, &phil); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		r.Mode = fmt.Sprintf("interpretation - %s", phil)
		r.Lang = &lang
		results = append(results, r)
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
