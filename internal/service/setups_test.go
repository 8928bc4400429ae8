package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/domain"
	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/metadata"
	"github.com/accsetupsviewer/server/internal/search"
	"github.com/accsetupsviewer/server/internal/setupview"
)

type fakeSource struct {
	paths    []string
	raw      map[string]string
	listErr  error
	fetchErr error
	lists    atomic.Int32
}

func (f *fakeSource) ListSetupPaths(context.Context) ([]string, error) {
	f.lists.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.paths...), nil
}

func (f *fakeSource) FetchRaw(_ context.Context, path string) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.raw[path], nil
}

type fakeConverter struct {
	values    domain.FinalValues
	err       error
	filenames []string
	contents  []string
}

func (f *fakeConverter) Convert(_ context.Context, filename string, content []byte) (domain.FinalValues, error) {
	f.filenames = append(f.filenames, filename)
	f.contents = append(f.contents, string(content))
	return f.values, f.err
}

var testPaths = []string{
	"README.md",
	"ferrari_296_gt3/spa/race.json",
	"audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json",
	"audi_r8_lms_gt3_evo_ii/spa/race.json",
	"porsche_718_cayman_gt4/monza/safe.json",
}

func newSetupFixture(t *testing.T, source *fakeSource, converter *fakeConverter) (*CatalogService, *SetupService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	idx, err := search.NewSetupIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	cat := NewCatalogService(source, idx, time.Minute, logger)
	return cat, NewSetupService(cat, source, converter, logger)
}

func TestCatalogService_CachesListing(t *testing.T) {
	source := &fakeSource{paths: testPaths}
	cat, _ := newSetupFixture(t, source, &fakeConverter{})
	ctx := context.Background()

	resp, err := cat.FilterOptions(ctx, CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Len(t, resp.Cars, 3)
	assert.Len(t, resp.Tracks, 2)
	assert.Equal(t, domain.CategoryGT4, resp.ClassByCar["porsche 718 cayman gt4"])
	assert.Equal(t, []domain.CarCategory{domain.CategoryGT3, domain.CategoryGT4}, resp.Tabs)
	assert.Equal(t, domain.CategoryGT3, resp.CarClass)
	assert.Equal(t, []i18n.Lang{i18n.English, i18n.Italian, i18n.Spanish, i18n.German, i18n.French}, resp.Languages)
	assert.True(t, cat.Cached())

	_, err = cat.FilterOptions(ctx, CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), source.lists.Load())

	_, err = cat.Refresh(ctx, CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.lists.Load())
	assert.True(t, cat.Cached())
}

func TestCatalogService_FilterOptionsNarrowsByClassAndQuery(t *testing.T) {
	cat, _ := newSetupFixture(t, &fakeSource{paths: testPaths}, &fakeConverter{})
	ctx := context.Background()

	resp, err := cat.FilterOptions(ctx, CatalogFilter{CarClass: "GT3", Query: "  AUDI "})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryGT3, resp.CarClass)
	assert.Equal(t, "AUDI", resp.Query)
	require.Len(t, resp.VisibleCars, 1)
	assert.Equal(t, "audi r8 lms gt3 evo ii", resp.VisibleCars[0].Key)
	assert.Empty(t, resp.VisibleTracks)
	assert.Len(t, resp.Cars, 3)

	resp, err = cat.FilterOptions(ctx, CatalogFilter{CarClass: "gt4", Query: "spa"})
	require.NoError(t, err)
	assert.Empty(t, resp.VisibleCars)
	require.Len(t, resp.VisibleTracks, 1)
	assert.Equal(t, "spa", resp.VisibleTracks[0].Key)

	resp, err = cat.FilterOptions(ctx, CatalogFilter{CarClass: "lmp1"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryGT3, resp.CarClass)
	assert.Len(t, resp.VisibleCars, 2)
	assert.Len(t, resp.VisibleTracks, 2)
}

func TestCatalogService_FailedListingIsNotCached(t *testing.T) {
	source := &fakeSource{listErr: metadata.StatusError(metadata.KindDiscovery, "listTree", "", 8*time.Second, http.StatusForbidden)}
	cat, _ := newSetupFixture(t, source, &fakeConverter{})

	_, err := cat.FilterOptions(context.Background(), CatalogFilter{})
	assert.ErrorIs(t, err, metadata.ErrDiscovery)
	assert.False(t, cat.Cached())
}

func TestCatalogService_Search(t *testing.T) {
	cat, _ := newSetupFixture(t, &fakeSource{paths: testPaths}, &fakeConverter{})

	result, err := cat.Search(context.Background(), search.Params{Query: "monza", Category: string(domain.CategoryGT3)})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json", result.Hits[0].Path)
}

func TestSetupService_View(t *testing.T) {
	source := &fakeSource{
		paths: testPaths,
		raw:   map[string]string{"audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json": `{"carName":"audi"}`},
	}
	converter := &fakeConverter{values: domain.FinalValues{
		"ELECTRONICS": map[string]any{"TC": float64(3)},
	}}
	_, svc := newSetupFixture(t, source, converter)

	view, err := svc.View(context.Background(), ViewRequest{Car: "Audi_R8_LMS_GT3_Evo_II", Lang: "it-IT"})
	require.NoError(t, err)

	assert.Equal(t, "it", string(view.Lang))
	assert.Equal(t, "audi r8 lms gt3 evo ii", view.Car)
	assert.Equal(t, "Audi R8 Lms Gt3 Evo Ii", view.CarLabel)
	assert.Equal(t, "-", view.TrackLabel)
	assert.True(t, view.HasPrimary)
	assert.Len(t, view.Entries, 2)
	require.Len(t, view.Groups, 2)
	assert.True(t, view.Groups[0].HasActive)
	assert.Equal(t, "audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json", view.SelectedFile)
	assert.Empty(t, view.DataError)
	assert.Empty(t, view.ValueError)

	assert.Equal(t, []string{"Monza_Q.json"}, converter.filenames)
	assert.Equal(t, []string{`{"carName":"audi"}`}, converter.contents)

	section, ok := view.Details.Section(setupview.SectionElectronics)
	require.True(t, ok)
	assert.Equal(t, "Elettronica", section.Title)
	item, ok := section.Item("", "TC")
	require.True(t, ok)
	assert.Equal(t, "3", item.Value)
}

func TestSetupService_View_DiscoveryFailure(t *testing.T) {
	source := &fakeSource{listErr: metadata.Wrap(metadata.KindDiscovery, "listTree", "", 8*time.Second, context.DeadlineExceeded)}
	converter := &fakeConverter{}
	_, svc := newSetupFixture(t, source, converter)

	view, err := svc.View(context.Background(), ViewRequest{Car: "audi", File: "x.json"})
	require.NoError(t, err)

	assert.Equal(t, "Unable to read setups from repository: GitHub request timeout (8s)", view.DataError)
	assert.Empty(t, view.Entries)
	assert.Empty(t, view.Car)
	assert.Empty(t, view.SelectedFile)
	assert.Equal(t, domain.CategoryGT3, view.CarClass)
	assert.True(t, view.Details.Empty())
	assert.Empty(t, converter.filenames)
}

func TestSetupService_View_ConversionFailure(t *testing.T) {
	source := &fakeSource{paths: testPaths, raw: map[string]string{}}
	converter := &fakeConverter{err: metadata.StatusError(metadata.KindConversion, "upload", "race.json", 16*time.Second, http.StatusBadGateway)}
	_, svc := newSetupFixture(t, source, converter)

	view, err := svc.View(context.Background(), ViewRequest{Track: "spa"})
	require.NoError(t, err)

	assert.Equal(t, "Unable to fetch converted values from GoSetups: GoSetups upload failed: 502", view.ValueError)
	assert.Nil(t, view.FinalValues)
	assert.True(t, view.Details.Empty())
	assert.Len(t, view.Groups, 2)
}

func TestSetupService_FetchConvertedValues(t *testing.T) {
	source := &fakeSource{paths: testPaths, raw: map[string]string{"ferrari_296_gt3/spa/race.json": "{}"}}
	converter := &fakeConverter{}
	_, svc := newSetupFixture(t, source, converter)
	ctx := context.Background()

	values, err := svc.FetchConvertedValues(ctx, "ferrari_296_gt3/spa/race.json")
	require.NoError(t, err)
	assert.Nil(t, values)
	assert.Equal(t, []string{"race.json"}, converter.filenames)

	_, err = svc.FetchConvertedValues(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.FetchConvertedValues(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	source.fetchErr = metadata.StatusError(metadata.KindRawFetch, "fetchRaw", "ferrari_296_gt3/spa/race.json", 8*time.Second, http.StatusNotFound)
	_, err = svc.FetchConvertedValues(ctx, "ferrari_296_gt3/spa/race.json")
	assert.ErrorIs(t, err, metadata.ErrRawFetch)
	assert.False(t, errors.Is(err, metadata.ErrConversion))
}
