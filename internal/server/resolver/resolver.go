// Package resolver translates human-facing path keys (project name,
// chapter, sutra number, language/philosophy/mode) into records,
// reporting the first missing link of the hierarchy.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// Resolver walks the Project → Sutra → child hierarchy. All errors wrap
// storage.ErrNotFound / storage.ErrDuplicate so handlers can map them,
// with the identifying key in the message.
type Resolver struct {
	store storage.Store
}

func New(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Project resolves a project by name.
func (r *Resolver) Project(ctx context.Context, name string) (*models.Project, error) {
	p, err := r.store.GetProjectByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("project %q %w", name, storage.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Sutra resolves a sutra by its (project, chapter, number) triple,
// failing at whichever level is missing.
func (r *Resolver) Sutra(ctx context.Context, projectName string, chapter, number int) (*models.Sutra, error) {
	p, err := r.Project(ctx, projectName)
	if err != nil {
		return nil, err
	}

	s, err := r.store.GetSutra(ctx, p.ID, chapter, number)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("sutra %s/%d/%d %w", projectName, chapter, number, storage.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// SutraByID resolves a sutra directly by id.
func (r *Resolver) SutraByID(ctx context.Context, id int64) (*models.Sutra, error) {
	s, err := r.store.GetSutraByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("sutra id %d %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// TextChild resolves a meaning, transliteration or bhashyam of a sutra
// by language.
func (r *Resolver) TextChild(ctx context.Context, kind storage.TextChildKind, sutraID int64, lang models.Language) (*models.TextChild, error) {
	c, err := r.store.GetTextChild(ctx, kind, sutraID, lang)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s for language %q %w", kind, lang, storage.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// Interpretation resolves a commentary by (language, philosophy).
func (r *Resolver) Interpretation(ctx context.Context, sutraID int64, lang models.Language, phil models.Philosophy) (*models.Interpretation, error) {
	i, err := r.store.GetInterpretation(ctx, sutraID, lang, phil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("interpretation for language %q and philosophy %q %w", lang, phil, storage.ErrNotFound)
		}
		return nil, err
	}
	return i, nil
}

// Audio resolves a recording by mode.
func (r *Resolver) Audio(ctx context.Context, sutraID int64, mode models.Mode) (*models.Audio, error) {
	a, err := r.store.GetAudio(ctx, sutraID, mode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("audio for mode %q %w", mode, storage.ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// EnsureUniqueSutra fails with ErrDuplicate if the triple is taken.
// The schema's unique index remains the authority under concurrency;
// this check only produces a friendlier error first.
func (r *Resolver) EnsureUniqueSutra(ctx context.Context, projectName string, projectID int64, chapter, number int) error {
	_, err := r.store.GetSutra(ctx, projectID, chapter, number)
	switch {
	case err == nil:
		return fmt.Errorf("sutra %s/%d/%d %w", projectName, chapter, number, storage.ErrDuplicate)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return err
	}
}

// EnsureUniqueTextChild fails with ErrDuplicate if the sutra already
// has a child of this kind in the given language.
func (r *Resolver) EnsureUniqueTextChild(ctx context.Context, kind storage.TextChildKind, sutraID int64, lang models.Language) error {
	_, err := r.store.GetTextChild(ctx, kind, sutraID, lang)
	switch {
	case err == nil:
		return fmt.Errorf("%s for language %q %w", kind, lang, storage.ErrDuplicate)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return err
	}
}

// EnsureUniqueInterpretation fails with ErrDuplicate if a commentary
// already exists for (language, philosophy).
func (r *Resolver) EnsureUniqueInterpretation(ctx context.Context, sutraID int64, lang models.Language, phil models.Philosophy) error {
	_, err := r.store.GetInterpretation(ctx, sutraID, lang, phil)
	switch {
	case err == nil:
		return fmt.Errorf("interpretation for language %q and philosophy %q %w", lang, phil, storage.ErrDuplicate)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return err
	}
}

// EnsureUniqueAudio fails with ErrDuplicate if the sutra already has a
// recording in the given mode.
func (r *Resolver) EnsureUniqueAudio(ctx context.Context, sutraID int64, mode models.Mode) error {
	_, err := r.store.GetAudio(ctx, sutraID, mode)
	switch {
	case err == nil:
		return fmt.Errorf("audio for mode %q %w", mode, storage.ErrDuplicate)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return err
	}
}
