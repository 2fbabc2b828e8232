package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
	"github.com/upanishads/sutra-api/internal/server/storage/sqlite"
)

func newTestResolver(t *testing.T) (*Resolver, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestResolveHierarchy(t *testing.T) {
	res, store := newTestResolver(t)
	ctx := context.Background()

	projectID, err := store.CreateProject(ctx, &models.Project{Name: "kena"})
	require.NoError(t, err)
	sutraID, err := store.CreateSutra(ctx, &models.Sutra{
		ProjectID: projectID, Chapter: 1, Number: 2, Text: "text",
	})
	require.NoError(t, err)

	t.Run("project", func(t *testing.T) {
		p, err := res.Project(ctx, "kena")
		require.NoError(t, err)
		require.Equal(t, projectID, p.ID)
	})

	t.Run("missing project names the project", func(t *testing.T) {
		_, err := res.Project(ctx, "isha")
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.Contains(t, err.Error(), `project "isha"`)
	})

	t.Run("sutra", func(t *testing.T) {
		s, err := res.Sutra(ctx, "kena", 1, 2)
		require.NoError(t, err)
		require.Equal(t, sutraID, s.ID)
	})

	t.Run("missing sutra reports the triple", func(t *testing.T) {
		_, err := res.Sutra(ctx, "kena", 9, 9)
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.Contains(t, err.Error(), "sutra kena/9/9")
	})

	t.Run("missing project fails before the sutra lookup", func(t *testing.T) {
		_, err := res.Sutra(ctx, "isha", 1, 2)
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.Contains(t, err.Error(), `project "isha"`)
	})

	t.Run("missing child names kind and language", func(t *testing.T) {
		_, err := res.TextChild(ctx, storage.KindMeaning, sutraID, models.LanguageTamil)
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.Contains(t, err.Error(), `meaning for language "ta"`)
	})
}

func TestEnsureUnique(t *testing.T) {
	res, store := newTestResolver(t)
	ctx := context.Background()

	projectID, err := store.CreateProject(ctx, &models.Project{Name: "kena"})
	require.NoError(t, err)
	sutraID, err := store.CreateSutra(ctx, &models.Sutra{
		ProjectID: projectID, Chapter: 1, Number: 1, Text: "text",
	})
	require.NoError(t, err)

	t.Run("sutra triple", func(t *testing.T) {
		err := res.EnsureUniqueSutra(ctx, "kena", projectID, 1, 1)
		require.ErrorIs(t, err, storage.ErrDuplicate)
		require.Contains(t, err.Error(), "sutra kena/1/1")

		require.NoError(t, res.EnsureUniqueSutra(ctx, "kena", projectID, 1, 2))
	})

	t.Run("text child language", func(t *testing.T) {
		_, err := store.CreateTextChild(ctx, storage.KindMeaning, &models.TextChild{
			SutraID: sutraID, Language: models.LanguageEnglish, Text: "meaning",
		})
		require.NoError(t, err)

		err = res.EnsureUniqueTextChild(ctx, storage.KindMeaning, sutraID, models.LanguageEnglish)
		require.ErrorIs(t, err, storage.ErrDuplicate)

		require.NoError(t, res.EnsureUniqueTextChild(ctx, storage.KindMeaning, sutraID, models.LanguageHindi))
		require.NoError(t, res.EnsureUniqueTextChild(ctx, storage.KindBhashyam, sutraID, models.LanguageEnglish))
	})

	t.Run("interpretation key", func(t *testing.T) {
		_, err := store.CreateInterpretation(ctx, &models.Interpretation{
			SutraID: sutraID, Language: models.LanguageEnglish, Philosophy: models.PhilosophyAdvaita, Text: "c",
		})
		require.NoError(t, err)

		err = res.EnsureUniqueInterpretation(ctx, sutraID, models.LanguageEnglish, models.PhilosophyAdvaita)
		require.ErrorIs(t, err, storage.ErrDuplicate)

		require.NoError(t, res.EnsureUniqueInterpretation(ctx, sutraID, models.LanguageEnglish, models.PhilosophyDvaita))
	})

	t.Run("audio mode", func(t *testing.T) {
		_, err := store.CreateAudio(ctx, &models.Audio{
			SutraID: sutraID, Mode: models.ModeChant, FilePath: "static/kena/chant/sutra_1_1.mp3",
		})
		require.NoError(t, err)

		err = res.EnsureUniqueAudio(ctx, sutraID, models.ModeChant)
		require.ErrorIs(t, err, storage.ErrDuplicate)

		require.NoError(t, res.EnsureUniqueAudio(ctx, sutraID, models.ModeLearnMore))
	})
}
