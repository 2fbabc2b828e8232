package storage

import (
	"context"

	"github.com/upanishads/sutra-api/internal/models"
)

// TextChildKind selects which language-keyed child table an operation
// targets. Meanings, transliterations and bhashyams have the same
// shape and are served by one implementation.
type TextChildKind string

const (
	KindMeaning         TextChildKind = "meaning"
	KindTransliteration TextChildKind = "transliteration"
	KindBhashyam        TextChildKind = "bhashyam"
)

// ProjectStore defines the interface for project persistence
type ProjectStore interface {
	// CreateProject inserts a project; ErrDuplicate on name collision
	CreateProject(ctx context.Context, project *models.Project) (int64, error)

	// GetProjectByName retrieves a project by its unique name
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)

	// ListProjects returns all projects
	ListProjects(ctx context.Context) ([]models.Project, error)

	// UpdateProject overwrites the mutable fields of a project by id
	UpdateProject(ctx context.Context, project *models.Project) error

	// DeleteProject deletes a project by id, cascading to its sutras
	// and their children
	DeleteProject(ctx context.Context, id int64) error
}

// SutraStore defines the interface for sutra persistence
type SutraStore interface {
	// CreateSutra inserts a sutra; ErrDuplicate when the
	// (project, chapter, number) triple already exists
	CreateSutra(ctx context.Context, sutra *models.Sutra) (int64, error)

	// GetSutra retrieves a sutra by its (project, chapter, number) triple
	GetSutra(ctx context.Context, projectID int64, chapter, number int) (*models.Sutra, error)

	// GetSutraByID retrieves a sutra by id
	GetSutraByID(ctx context.Context, id int64) (*models.Sutra, error)

	// ListSutras returns the id/chapter/number projection for a project
	ListSutras(ctx context.Context, projectID int64) ([]models.SutraRef, error)

	// CountSutras returns the number of sutras in a project
	CountSutras(ctx context.Context, projectID int64) (int64, error)

	// UpdateSutra overwrites the mutable fields of a sutra by id
	UpdateSutra(ctx context.Context, sutra *models.Sutra) error

	// DeleteSutra deletes a sutra by id, cascading to its children
	DeleteSutra(ctx context.Context, id int64) error
}

// ChildStore defines the interface for sutra child entities.
type ChildStore interface {
	CreateTextChild(ctx context.Context, kind TextChildKind, child *models.TextChild) (int64, error)
	GetTextChild(ctx context.Context, kind TextChildKind, sutraID int64, lang models.Language) (*models.TextChild, error)
	UpdateTextChild(ctx context.Context, kind TextChildKind, child *models.TextChild) error
	DeleteTextChild(ctx context.Context, kind TextChildKind, id int64) error

	CreateInterpretation(ctx context.Context, interp *models.Interpretation) (int64, error)
	GetInterpretation(ctx context.Context, sutraID int64, lang models.Language, phil models.Philosophy) (*models.Interpretation, error)
	UpdateInterpretation(ctx context.Context, interp *models.Interpretation) error
	DeleteInterpretation(ctx context.Context, id int64) error

	CreateAudio(ctx context.Context, audio *models.Audio) (int64, error)
	GetAudio(ctx context.Context, sutraID int64, mode models.Mode) (*models.Audio, error)
	UpdateAudio(ctx context.Context, audio *models.Audio) error
	DeleteAudio(ctx context.Context, id int64) error
}

// SearchStore defines the substring search over stored text fields.
type SearchStore interface {
	// Search returns all case-insensitive substring hits across sutra,
	// meaning, transliteration and interpretation texts, in storage
	// order, without deduplication or ranking.
	Search(ctx context.Context, term string) ([]models.SearchResult, error)
}

// Store aggregates everything the handlers need.
type Store interface {
	UserStore
	ProjectStore
	SutraStore
	ChildStore
	SearchStore
}
