package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/domain"
)

func setupTestIndex(t *testing.T) *SetupIndex {
	t.Helper()

	index, err := NewSetupIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	docs := []*SetupDocument{
		NewSetupDocument(domain.SetupEntry{
			Path: "audi_r8_lms_evo_ii/monza/q.json", CarKey: "audi r8 lms evo ii", TrackKey: "monza",
			CarLabel: "Audi R8 Lms Evo Ii", TrackLabel: "Monza", FilenameLabel: "q",
		}, domain.CategoryGT3),
		NewSetupDocument(domain.SetupEntry{
			Path: "audi_r8_lms_evo_ii/spa/race.json", CarKey: "audi r8 lms evo ii", TrackKey: "spa",
			CarLabel: "Audi R8 Lms Evo Ii", TrackLabel: "Spa", FilenameLabel: "race",
		}, domain.CategoryGT3),
		NewSetupDocument(domain.SetupEntry{
			Path: "porsche_992_cup/monza/race.json", CarKey: "porsche 992 cup", TrackKey: "monza",
			CarLabel: "Porsche 992 Cup", TrackLabel: "Monza", FilenameLabel: "race",
		}, domain.CategoryCup),
	}
	require.NoError(t, index.Rebuild(docs))
	return index
}

func paths(r *Result) []string {
	out := make([]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		out = append(out, h.Path)
	}
	return out
}

func TestNewSetupIndex_Empty(t *testing.T) {
	index, err := NewSetupIndex(nil)
	require.NoError(t, err)
	defer index.Close()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSetupIndex_Rebuild_ReplacesDocuments(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	require.NoError(t, index.Rebuild([]*SetupDocument{{ID: "a/b/c.json", Car: "A", Track: "B", File: "c"}}))

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSetupIndex_Search(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{
			name:   "track name",
			params: Params{Query: "spa"},
			want:   []string{"audi_r8_lms_evo_ii/spa/race.json"},
		},
		{
			name:   "prefix",
			params: Params{Query: "pors"},
			want:   []string{"porsche_992_cup/monza/race.json"},
		},
		{
			name:   "category filter",
			params: Params{Query: "monza", Category: "gt3"},
			want:   []string{"audi_r8_lms_evo_ii/monza/q.json"},
		},
		{
			name:   "track key filter only",
			params: Params{TrackKey: "spa"},
			want:   []string{"audi_r8_lms_evo_ii/spa/race.json"},
		},
		{
			name:   "no match",
			params: Params{Query: "nurburgring"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := index.Search(ctx, tt.params)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, paths(res))
		})
	}
}

func TestSetupIndex_Search_StoredFields(t *testing.T) {
	index := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "cup"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)

	hit := res.Hits[0]
	assert.Equal(t, "porsche 992 cup", hit.CarKey)
	assert.Equal(t, "monza", hit.TrackKey)
	assert.Equal(t, "cup", hit.Category)
	assert.Equal(t, "Porsche 992 Cup", hit.Car)
	assert.Equal(t, "race", hit.File)
}

func TestSetupIndex_Search_Limit(t *testing.T) {
	index := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 2)
	assert.Equal(t, uint64(3), res.Total)
}
