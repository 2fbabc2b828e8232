package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

func TestSearch(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	_, sutraID := seedSutra(t, s)

	_, err := s.CreateTextChild(ctx, storage.KindMeaning, &models.TextChild{
		SutraID:  sutraID,
		Language: models.LanguageEnglish,
		Text:     "by whom impelled does the mind fall on its object",
	})
	require.NoError(t, err)

	_, err = s.CreateTextChild(ctx, storage.KindTransliteration, &models.TextChild{
		SutraID:  sutraID,
		Language: models.LanguageEnglish,
		Text:     "keneshitam patati preshitam manah",
	})
	require.NoError(t, err)

	_, err = s.CreateInterpretation(ctx, &models.Interpretation{
		SutraID:    sutraID,
		Language:   models.LanguageEnglish,
		Philosophy: models.PhilosophyAdvaita,
		Text:       "the mind cannot act of its own accord",
	})
	require.NoError(t, err)

	t.Run("hit in meaning carries language", func(t *testing.T) {
		results, err := s.Search(ctx, "impelled")
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "chant", results[0].Mode)
		require.Equal(t, 1, results[0].SutraNo)
		require.NotNil(t, results[0].Lang)
		require.Equal(t, models.LanguageEnglish, *results[0].Lang)
	})

	t.Run("hit in sutra text has no language", func(t *testing.T) {
		results, err := s.Search(ctx, "केन")
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "chant", results[0].Mode)
		require.Nil(t, results[0].Lang)
	})

	t.Run("interpretation hits carry the school in the mode", func(t *testing.T) {
		results, err := s.Search(ctx, "of its own accord")
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "interpretation - adv", results[0].Mode)
	})

	t.Run("term spanning several tables", func(t *testing.T) {
		results, err := s.Search(ctx, "mind")
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("no hits", func(t *testing.T) {
		results, err := s.Search(ctx, "nonexistent")
		require.NoError(t, err)
		require.Empty(t, results)
	})
}
