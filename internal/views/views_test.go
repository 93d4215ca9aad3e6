package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	pokeapimock "github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/gallery"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/search"
	"github.com/KirkDiggler/pokedex-web/internal/repositories/stats"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
	"github.com/KirkDiggler/pokedex-web/internal/testutils"
	"github.com/KirkDiggler/pokedex-web/internal/testutils/mocks"
	"github.com/KirkDiggler/pokedex-web/internal/views"
)

type ViewsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockClient *pokeapimock.MockClient
	entries    *entry.Orchestrator
	search     *search.Orchestrator
	gallery    *gallery.Orchestrator
	cache      statcache.Service
	ctx        context.Context
}

func TestViewsSuite(t *testing.T) {
	suite.Run(t, new(ViewsTestSuite))
}

func (s *ViewsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = pokeapimock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.entries, err = entry.New(&entry.Config{Client: s.mockClient})
	s.Require().NoError(err)
	s.search, err = search.New(&search.Config{Client: s.mockClient})
	s.Require().NoError(err)
	s.gallery, err = gallery.New(&gallery.Config{Client: s.mockClient})
	s.Require().NoError(err)
	s.cache, err = statcache.New(&statcache.Config{Client: s.mockClient, Repository: stats.NewInMemory()})
	s.Require().NoError(err)
}

func (s *ViewsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ViewsTestSuite) homeView() *views.HomeView {
	v, err := views.NewHomeView(&views.HomeConfig{Search: s.search, StatCache: s.cache})
	s.Require().NoError(err)
	return v
}

func (s *ViewsTestSuite) galleryView() *views.GalleryView {
	v, err := views.NewGalleryView(&views.GalleryConfig{Gallery: s.gallery, StatCache: s.cache})
	s.Require().NoError(err)
	return v
}

func suggestionNames(st views.HomeState) []string {
	out := make([]string, 0, len(st.Suggestions))
	for _, sg := range st.Suggestions {
		out = append(out, sg.Name)
	}
	return out
}

func entryNames(entries []pokedex.EntrySummary) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

// Card

func (s *ViewsTestSuite) TestCardLoads() {
	mocks.ExpectDetails(s.mockClient, testutils.Charmander())

	card := views.NewCard(s.entries)
	card.Attach(s.ctx, "charmander")
	defer card.Detach()

	st := card.Wait(s.ctx)
	detail, ok := st.Value()
	s.Require().True(ok)
	s.Equal("charmander", detail.Name)
	s.Equal("charmander", card.Name())
}

func (s *ViewsTestSuite) TestCardFailure() {
	mocks.ExpectDetails(s.mockClient)

	card := views.NewCard(s.entries)
	card.Attach(s.ctx, "missingno")

	st := card.Wait(s.ctx)
	s.Require().True(st.IsFailed())
	s.True(errors.IsNotFound(st.Err()))
}

func (s *ViewsTestSuite) TestCardEmptyName() {
	card := views.NewCard(s.entries)
	card.Attach(s.ctx, " ")

	st := card.Wait(s.ctx)
	s.Require().True(st.IsFailed())
	s.True(errors.IsInvalidArgument(st.Err()))
}

func (s *ViewsTestSuite) TestCardRefetchesOnlyOnNameChange() {
	s.mockClient.EXPECT().GetEntry(gomock.Any(), "bulbasaur").Return(testutils.Bulbasaur(), nil).Times(1)
	s.mockClient.EXPECT().GetEntry(gomock.Any(), "squirtle").Return(testutils.Squirtle(), nil).Times(1)

	card := views.NewCard(s.entries)
	card.Attach(s.ctx, "bulbasaur")
	card.Wait(s.ctx)
	card.Attach(s.ctx, "bulbasaur")
	card.Wait(s.ctx)

	card.Attach(s.ctx, "squirtle")
	detail, ok := card.Wait(s.ctx).Value()
	s.Require().True(ok)
	s.Equal("squirtle", detail.Name)
}

func (s *ViewsTestSuite) TestCardDetachCancelsFetch() {
	canceled := make(chan struct{})
	s.mockClient.EXPECT().
		GetEntry(gomock.Any(), "charmander").
		DoAndReturn(func(ctx context.Context, _ string) (*pokedex.EntryDetail, error) {
			<-ctx.Done()
			close(canceled)
			return nil, errors.Canceled("canceled")
		})

	card := views.NewCard(s.entries)
	card.Attach(s.ctx, "charmander")
	card.Detach()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		s.Fail("detach did not cancel the fetch")
	}
	s.True(card.State().IsLoading())
}

// Home

func (s *ViewsTestSuite) TestHomeMountsOnce() {
	s.mockClient.EXPECT().ListEntries(gomock.Any(), search.BaseListLimit).Return(testutils.StarterListing(), nil).Times(1)
	s.mockClient.EXPECT().ListCategories(gomock.Any()).Return(testutils.Categories(), nil).Times(1)

	v := s.homeView()
	v.Update(s.ctx, views.HomeParams{Query: "b"})
	v.Update(s.ctx, views.HomeParams{Query: "s"})
	st := v.Update(s.ctx, views.HomeParams{Query: "c"})

	s.Len(st.Categories, 3)
}

func (s *ViewsTestSuite) TestHomeScenario() {
	mocks.ExpectListing(s.mockClient, search.BaseListLimit, testutils.StarterListing())
	mocks.ExpectCategories(s.mockClient, testutils.Categories())

	v := s.homeView()
	st := v.Update(s.ctx, views.HomeParams{Query: "ch", SortBy: pokedex.SortByName, SortOrder: pokedex.SortAscending})

	s.Equal([]string{"charmander"}, suggestionNames(st))
	s.False(st.NoResults)
	s.False(st.Loading)
	s.Equal("ch", st.Params.Query)
}

func (s *ViewsTestSuite) TestHomeEmptyInputShowsNothing() {
	mocks.ExpectListing(s.mockClient, search.BaseListLimit, testutils.StarterListing())
	mocks.ExpectCategories(s.mockClient, testutils.Categories())

	v := s.homeView()
	v.Update(s.ctx, views.HomeParams{Query: "ch"})
	st := v.Update(s.ctx, views.HomeParams{Query: ""})

	s.Empty(st.Suggestions)
	s.False(st.NoResults)
	s.False(st.Loading)
}

func (s *ViewsTestSuite) TestHomeCategoryFailureKeepsSuggestions() {
	mocks.ExpectListing(s.mockClient, search.BaseListLimit, testutils.StarterListing())
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "fire").
		Return(nil, errors.Network("gateway returned 502"))

	v := s.homeView()
	v.Update(s.ctx, views.HomeParams{Query: "sq"})
	st := v.Update(s.ctx, views.HomeParams{Query: "sq", Category: "fire"})

	s.Equal([]string{"squirtle"}, suggestionNames(st))
	s.Equal("fire", st.Params.Category)
	s.False(st.Loading)
}

func (s *ViewsTestSuite) TestHomeDropsSupersededRecompute() {
	mocks.ExpectListing(s.mockClient, search.BaseListLimit, testutils.StarterListing())
	mocks.ExpectCategories(s.mockClient, testutils.Categories())

	blocked := make(chan struct{})
	release := make(chan struct{})
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "fire").
		DoAndReturn(func(context.Context, string) ([]pokedex.EntrySummary, error) {
			close(blocked)
			<-release
			return []pokedex.EntrySummary{testutils.Summary(4, "charmander")}, nil
		})

	v := s.homeView()
	v.Mount(s.ctx)

	stale := make(chan views.HomeState, 1)
	go func() {
		stale <- v.Update(s.ctx, views.HomeParams{Category: "fire"})
	}()
	<-blocked

	fresh := v.Update(s.ctx, views.HomeParams{Query: "sq"})
	s.Equal([]string{"squirtle"}, suggestionNames(fresh))

	close(release)
	got := <-stale
	s.Equal([]string{"charmander"}, suggestionNames(got))
	s.Equal("fire", got.Params.Category)
	s.False(got.Loading)

	s.Equal([]string{"squirtle"}, suggestionNames(v.State()))
	s.Equal("sq", v.State().Params.Query)
	s.Empty(v.State().Params.Category)
}

func (s *ViewsTestSuite) TestHomeSameParamsDoNotRecompute() {
	mocks.ExpectListing(s.mockClient, search.BaseListLimit, testutils.StarterListing())
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "water").
		Return([]pokedex.EntrySummary{testutils.Summary(7, "squirtle")}, nil).
		Times(1)

	v := s.homeView()
	p := views.HomeParams{Category: "water", SortBy: pokedex.SortByName, SortOrder: pokedex.SortAscending}
	v.Update(s.ctx, p)
	st := v.Update(s.ctx, p)

	s.Equal([]string{"squirtle"}, suggestionNames(st))
}

// Gallery

func (s *ViewsTestSuite) TestGalleryFireScenario() {
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	mocks.ExpectMembers(s.mockClient, "fire", []pokedex.EntrySummary{testutils.Summary(4, "charmander")})

	v := s.galleryView()
	st := v.Select(s.ctx, views.GalleryParams{Category: "fire"})

	s.Equal([]string{"charmander"}, entryNames(st.Entries))
	s.Equal([]string{"all", "normal", "fire", "water"}, st.Categories)
	s.Equal("fire", st.Params.Category)
}

func (s *ViewsTestSuite) TestGalleryDefaultsToAll() {
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	mocks.ExpectListing(s.mockClient, gallery.PageSize, testutils.StarterListing())

	v := s.galleryView()
	st := v.Select(s.ctx, views.GalleryParams{})

	s.Equal(pokedex.CategoryAll, st.Params.Category)
	s.Len(st.Entries, 3)
}

func (s *ViewsTestSuite) TestGalleryFailureKeepsEntries() {
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	mocks.ExpectListing(s.mockClient, gallery.PageSize, testutils.StarterListing())
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "water").
		Return(nil, errors.Network("gateway returned 500"))

	v := s.galleryView()
	v.Select(s.ctx, views.GalleryParams{Category: pokedex.CategoryAll})
	st := v.Select(s.ctx, views.GalleryParams{Category: "water"})

	s.Equal([]string{"bulbasaur", "charmander", "squirtle"}, entryNames(st.Entries))
	s.Equal(pokedex.CategoryAll, st.Params.Category)
	s.False(st.Loading)
	s.Equal(pokedex.CategoryAll, v.State().Params.Category)
}

func (s *ViewsTestSuite) TestGalleryDropsSupersededSelection() {
	mocks.ExpectCategories(s.mockClient, testutils.Categories())
	mocks.ExpectMembers(s.mockClient, "fire", []pokedex.EntrySummary{testutils.Summary(4, "charmander")})

	blocked := make(chan struct{})
	release := make(chan struct{})
	s.mockClient.EXPECT().
		ListEntries(gomock.Any(), gallery.PageSize).
		DoAndReturn(func(context.Context, int) ([]pokedex.EntrySummary, error) {
			close(blocked)
			<-release
			return testutils.StarterListing(), nil
		})

	v := s.galleryView()
	v.Mount(s.ctx)

	stale := make(chan views.GalleryState, 1)
	go func() {
		stale <- v.Select(s.ctx, views.GalleryParams{Category: pokedex.CategoryAll})
	}()
	<-blocked

	v.Select(s.ctx, views.GalleryParams{Category: "fire"})
	close(release)

	got := <-stale
	s.Equal(pokedex.CategoryAll, got.Params.Category)
	s.Len(got.Entries, 3)
	s.False(got.Loading)

	st := v.State()
	s.Equal("fire", st.Params.Category)
	s.Equal([]string{"charmander"}, entryNames(st.Entries))
}

func (s *ViewsTestSuite) TestGalleryOverlappingSelectionsKeepTheirOwnParams() {
	mocks.ExpectCategories(s.mockClient, testutils.Categories())

	fireBlocked := make(chan struct{})
	fireRelease := make(chan struct{})
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "fire").
		DoAndReturn(func(context.Context, string) ([]pokedex.EntrySummary, error) {
			close(fireBlocked)
			<-fireRelease
			return []pokedex.EntrySummary{testutils.Summary(4, "charmander")}, nil
		})
	waterBlocked := make(chan struct{})
	waterRelease := make(chan struct{})
	s.mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), "water").
		DoAndReturn(func(context.Context, string) ([]pokedex.EntrySummary, error) {
			close(waterBlocked)
			<-waterRelease
			return []pokedex.EntrySummary{testutils.Summary(7, "squirtle")}, nil
		})

	v := s.galleryView()
	v.Mount(s.ctx)

	fire := make(chan views.GalleryState, 1)
	go func() {
		fire <- v.Select(s.ctx, views.GalleryParams{Category: "fire"})
	}()
	<-fireBlocked

	water := make(chan views.GalleryState, 1)
	go func() {
		water <- v.Select(s.ctx, views.GalleryParams{Category: "water"})
	}()
	<-waterBlocked

	// the older selection answers first
	close(fireRelease)
	gotFire := <-fire
	s.Equal("fire", gotFire.Params.Category)
	s.Equal([]string{"charmander"}, entryNames(gotFire.Entries))
	s.False(gotFire.Loading)
	s.True(v.State().Loading)

	close(waterRelease)
	gotWater := <-water
	s.Equal("water", gotWater.Params.Category)
	s.Equal([]string{"squirtle"}, entryNames(gotWater.Entries))
	s.False(gotWater.Loading)

	st := v.State()
	s.Equal("water", st.Params.Category)
	s.Equal([]string{"squirtle"}, entryNames(st.Entries))
	s.False(st.Loading)
}

// Detail

func (s *ViewsTestSuite) TestDetailFirstEntry() {
	mocks.ExpectDetails(s.mockClient, testutils.Bulbasaur())

	v, err := views.NewDetailView(s.entries)
	s.Require().NoError(err)

	out, ok := v.Show(s.ctx, "1").Value()
	s.Require().True(ok)
	s.Equal("bulbasaur", out.Entry.Name)
	s.Zero(out.PrevID)
	s.Equal(2, out.NextID)
}

func (s *ViewsTestSuite) TestDetailNotFound() {
	mocks.ExpectDetails(s.mockClient, testutils.Bulbasaur())

	v, err := views.NewDetailView(s.entries)
	s.Require().NoError(err)

	st := v.Show(s.ctx, "missingno")
	s.Require().True(st.IsFailed())
	s.True(errors.IsNotFound(st.Err()))
}

func (s *ViewsTestSuite) TestDetailReusesResultForSameName() {
	s.mockClient.EXPECT().GetEntry(gomock.Any(), "squirtle").Return(testutils.Squirtle(), nil).Times(1)

	v, err := views.NewDetailView(s.entries)
	s.Require().NoError(err)

	v.Show(s.ctx, "squirtle")
	out, ok := v.Show(s.ctx, "Squirtle").Value()
	s.Require().True(ok)
	s.Equal(7, out.Entry.ID)
	s.Equal("squirtle", v.Name())
}

func (s *ViewsTestSuite) TestDetailConcurrentNamesGetTheirOwnEntry() {
	pikachu := testutils.Detail(25, "pikachu", []string{"electric"}, 35, 55, 40)

	blocked := make(chan struct{})
	release := make(chan struct{})
	s.mockClient.EXPECT().
		GetEntry(gomock.Any(), "pikachu").
		DoAndReturn(func(context.Context, string) (*pokedex.EntryDetail, error) {
			close(blocked)
			<-release
			return pikachu, nil
		})
	s.mockClient.EXPECT().GetEntry(gomock.Any(), "bulbasaur").Return(testutils.Bulbasaur(), nil)

	v, err := views.NewDetailView(s.entries)
	s.Require().NoError(err)

	slow := make(chan views.Load[*entry.GetEntryOutput], 1)
	go func() {
		slow <- v.Show(s.ctx, "pikachu")
	}()
	<-blocked

	fast, ok := v.Show(s.ctx, "bulbasaur").Value()
	s.Require().True(ok)
	s.Equal("bulbasaur", fast.Entry.Name)

	close(release)
	out, ok := (<-slow).Value()
	s.Require().True(ok)
	s.Equal("pikachu", out.Entry.Name)
	s.Equal(24, out.PrevID)
}

func (s *ViewsTestSuite) TestDetailRestartsFetchAbandonedByAnotherRequest() {
	blocked := make(chan struct{})
	first := s.mockClient.EXPECT().
		GetEntry(gomock.Any(), "squirtle").
		DoAndReturn(func(ctx context.Context, _ string) (*pokedex.EntryDetail, error) {
			close(blocked)
			<-ctx.Done()
			return nil, errors.Canceled("request went away")
		})
	s.mockClient.EXPECT().
		GetEntry(gomock.Any(), "squirtle").
		Return(testutils.Squirtle(), nil).
		After(first)

	v, err := views.NewDetailView(s.entries)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	abandoned := make(chan views.Load[*entry.GetEntryOutput], 1)
	go func() {
		abandoned <- v.Show(ctx, "squirtle")
	}()
	<-blocked

	kept := make(chan views.Load[*entry.GetEntryOutput], 1)
	go func() {
		kept <- v.Show(s.ctx, "squirtle")
	}()
	cancel()

	s.Require().False((<-abandoned).IsLoaded())

	out, ok := (<-kept).Value()
	s.Require().True(ok)
	s.Equal("squirtle", out.Entry.Name)
}
