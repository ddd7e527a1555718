package catalog_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/catalog"
	"movie-catalog-service/internal/models"
)

// fakeStore is an in-memory LocalStore.
type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

// fakeMetadata is a configurable in-memory metadata client.
type fakeMetadata struct {
	mu       sync.Mutex
	pageSize int
	calls    map[string]int
	pages    []int // listing pages requested, in order

	listingErr     error
	listingGate    chan struct{} // when set, PopularMovies blocks on it
	listingEntered chan struct{} // signalled when PopularMovies starts

	gatedDetailID int
	detailGate    chan struct{} // when set, Detail for gatedDetailID blocks on it
	detailEntered chan struct{}

	credits       models.Credits
	videos        []models.Video
	personCredits []models.PersonCredit
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		pageSize: 3,
		calls:    map[string]int{},
	}
}

func (f *fakeMetadata) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeMetadata) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeMetadata) setListingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listingErr = err
}

func (f *fakeMetadata) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

// mediaPage builds deterministic page results. Item ids never collide across
// the movie (offset 0) and TV (offset 500) halves of a page.
func mediaPage(prefix string, page, n, offset int) []models.MediaItem {
	items := make([]models.MediaItem, n)
	for i := range items {
		items[i] = models.MediaItem{
			ID:    page*1000 + offset + i,
			Title: fmt.Sprintf("%s-p%d-%d", prefix, page, i),
		}
	}
	return items
}

func (f *fakeMetadata) listResponse(prefix string, page, offset int) *models.MediaListResponse {
	return &models.MediaListResponse{
		Page:    page,
		Results: mediaPage(prefix, page, f.pageSize, offset),
	}
}

func (f *fakeMetadata) PopularMovies(page int) (*models.MediaListResponse, error) {
	f.record("PopularMovies")
	f.mu.Lock()
	f.pages = append(f.pages, page)
	gate, entered, err := f.listingGate, f.listingEntered, f.listingErr
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return f.listResponse("movie", page, 0), nil
}

func (f *fakeMetadata) PopularTV(page int) (*models.MediaListResponse, error) {
	f.record("PopularTV")
	f.mu.Lock()
	err := f.listingErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.listResponse("tv", page, 500), nil
}

func (f *fakeMetadata) SearchMovies(query string, page int) (*models.MediaListResponse, error) {
	f.record("SearchMovies")
	return &models.MediaListResponse{
		Page:    page,
		Results: []models.MediaItem{{ID: 1, Title: "movie " + query}},
	}, nil
}

func (f *fakeMetadata) SearchTV(query string, page int) (*models.MediaListResponse, error) {
	f.record("SearchTV")
	return &models.MediaListResponse{
		Page:    page,
		Results: []models.MediaItem{{ID: 2, Name: "tv " + query}},
	}, nil
}

func (f *fakeMetadata) MoviesByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	f.record("MoviesByGenre")
	f.mu.Lock()
	f.pages = append(f.pages, page)
	err := f.listingErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.listResponse("genre-movie-"+genreID, page, 0), nil
}

func (f *fakeMetadata) TVByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	f.record("TVByGenre")
	f.mu.Lock()
	err := f.listingErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.listResponse("genre-tv-"+genreID, page, 500), nil
}

func (f *fakeMetadata) Detail(mediaType string, id int) (*models.Detail, error) {
	f.record("Detail")
	f.mu.Lock()
	gate, entered, gid := f.detailGate, f.detailEntered, f.gatedDetailID
	f.mu.Unlock()
	if gate != nil && id == gid {
		if entered != nil {
			entered <- struct{}{}
		}
		<-gate
	}
	return &models.Detail{ID: id, Title: fmt.Sprintf("title-%d", id)}, nil
}

func (f *fakeMetadata) Credits(mediaType string, id int) (*models.Credits, error) {
	f.record("Credits")
	return &f.credits, nil
}

func (f *fakeMetadata) Similar(mediaType string, id int) (*models.MediaListResponse, error) {
	f.record("Similar")
	return &models.MediaListResponse{
		Page:    1,
		Results: []models.MediaItem{{ID: 9000 + id, Title: "similar"}},
	}, nil
}

func (f *fakeMetadata) Videos(mediaType string, id int) (*models.VideoListResponse, error) {
	f.record("Videos")
	return &models.VideoListResponse{Results: f.videos}, nil
}

func (f *fakeMetadata) PersonDetail(id int) (*models.Person, error) {
	f.record("PersonDetail")
	return &models.Person{ID: id, Name: fmt.Sprintf("person-%d", id)}, nil
}

func (f *fakeMetadata) PersonCombinedCredits(id int) (*models.PersonCreditsResponse, error) {
	f.record("PersonCombinedCredits")
	return &models.PersonCreditsResponse{Cast: f.personCredits}, nil
}

func newState(t *testing.T) (*catalog.State, *fakeMetadata, *fakeStore) {
	t.Helper()
	meta := newFakeMetadata()
	store := newFakeStore()
	return catalog.New(meta, store), meta, store
}

func TestPaginationAppend(t *testing.T) {
	s, meta, _ := newState(t)

	s.LoadCategory(catalog.CategoryTrending, true)
	s.LoadMore()
	s.LoadMore()

	home := s.Home()
	require.Len(t, home.Listing, 3*2*meta.pageSize)
	assert.Equal(t, 3, home.Page)
	assert.Equal(t, catalog.CategoryTrending, home.Category)
	assert.Equal(t, []int{1, 2, 3}, meta.requestedPages())

	// Within each page all movies precede all TV, pages in increasing order.
	for p := 0; p < 3; p++ {
		pageStart := p * 2 * meta.pageSize
		for i := 0; i < meta.pageSize; i++ {
			item := home.Listing[pageStart+i]
			assert.Equal(t, "movie", item.MediaType)
			assert.Equal(t, fmt.Sprintf("movie-p%d-%d", p+1, i), item.Title)
		}
		for i := 0; i < meta.pageSize; i++ {
			item := home.Listing[pageStart+meta.pageSize+i]
			assert.Equal(t, "tv", item.MediaType)
			assert.Equal(t, fmt.Sprintf("tv-p%d-%d", p+1, i), item.Title)
		}
	}
}

func TestSpotlightCapturesFirstTenMovies(t *testing.T) {
	s, meta, _ := newState(t)
	meta.pageSize = 15

	s.LoadCategory(catalog.CategoryTrending, true)

	home := s.Home()
	require.Len(t, home.Spotlight, 10)
	for i, item := range home.Spotlight {
		assert.Equal(t, fmt.Sprintf("movie-p1-%d", i), item.Title)
		assert.Equal(t, "movie", item.MediaType)
	}
}

func TestBusyFlagExcludesConcurrentResets(t *testing.T) {
	s, meta, _ := newState(t)
	meta.listingGate = make(chan struct{})
	meta.listingEntered = make(chan struct{}, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.LoadCategory(catalog.CategoryTrending, true)
	}()

	<-meta.listingEntered

	// Second reset while the first is in flight must be a no-op.
	s.LoadCategory(catalog.CategoryTrending, true)

	close(meta.listingGate)
	wg.Wait()

	assert.Equal(t, 1, meta.count("PopularMovies"))
	assert.Equal(t, 1, meta.count("PopularTV"))
	assert.Len(t, s.Home().Listing, 2*meta.pageSize)
}

func TestPageRollbackOnContinuationFailure(t *testing.T) {
	s, meta, _ := newState(t)

	s.LoadCategory(catalog.CategoryTrending, true)
	require.Equal(t, 1, s.Home().Page)

	meta.setListingErr(errors.New("boom"))
	s.LoadMore()

	home := s.Home()
	assert.Equal(t, 1, home.Page, "failed continuation must roll the page back")
	assert.Len(t, home.Listing, 2*meta.pageSize, "listing unchanged on failure")
	assert.False(t, home.Paginating, "busy flag cleared on failure")

	meta.setListingErr(nil)
	s.LoadMore()

	home = s.Home()
	assert.Equal(t, 2, home.Page)
	assert.Len(t, home.Listing, 2*2*meta.pageSize)
	assert.Equal(t, []int{1, 2, 2}, meta.requestedPages(), "retry requests the same page")
}

func TestGenreCategoryUsesDiscoverEndpoints(t *testing.T) {
	s, meta, _ := newState(t)

	s.LoadCategory("28", true)
	s.LoadMore()

	home := s.Home()
	assert.Equal(t, "28", home.Category)
	assert.Equal(t, 2, meta.count("MoviesByGenre"))
	assert.Equal(t, 2, meta.count("TVByGenre"))
	assert.Zero(t, meta.count("PopularMovies"))
	require.Len(t, home.Listing, 2*2*meta.pageSize)
	assert.Equal(t, "genre-movie-28-p1-0", home.Listing[0].Title)
}

func TestFavouritesToggleIdempotence(t *testing.T) {
	s, _, _ := newState(t)
	item := models.MediaItem{ID: 42, Title: "Blade Runner", MediaType: "movie"}

	s.ToggleFavourite(item)
	require.True(t, s.IsFavourite(42))
	require.Len(t, s.Favourites(), 1)

	s.ToggleFavourite(item)
	assert.False(t, s.IsFavourite(42))
	assert.Empty(t, s.Favourites())
}

func TestHistoryRecencyAndDedup(t *testing.T) {
	s, _, _ := newState(t)
	a := models.MediaItem{ID: 1, Title: "a"}
	b := models.MediaItem{ID: 2, Title: "b"}

	s.AddToHistory(a)
	s.AddToHistory(b)
	s.AddToHistory(a)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].ID, "re-added entry moves to the front")
	assert.Equal(t, 2, history[1].ID)

	s.RemoveFromHistory(1)
	history = s.History()
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].ID)
}

func TestPersistenceRoundTrip(t *testing.T) {
	meta := newFakeMetadata()
	store := newFakeStore()
	s := catalog.New(meta, store)

	for _, id := range []int{7, 3, 9} {
		s.ToggleFavourite(models.MediaItem{ID: id, Title: fmt.Sprintf("fav-%d", id)})
	}
	s.AddToHistory(models.MediaItem{ID: 5, Title: "seen"})

	// A fresh state over the same store reproduces the same ordered ids.
	reloaded := catalog.New(newFakeMetadata(), store)

	favs := reloaded.Favourites()
	require.Len(t, favs, 3)
	for i, id := range []int{7, 3, 9} {
		assert.Equal(t, id, favs[i].ID)
	}
	history := reloaded.History()
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].ID)
}

func TestMalformedPersistedStateResetsToEmpty(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Set("favorites_list", "{not json"))
	require.NoError(t, store.Set("search_history", "[1,2"))

	s := catalog.New(newFakeMetadata(), store)
	assert.Empty(t, s.Favourites())
	assert.Empty(t, s.History())
}

func TestTrailerFallbackToTeaser(t *testing.T) {
	s, meta, _ := newState(t)
	meta.videos = []models.Video{
		{Type: "Teaser", Site: "YouTube", Key: "T1"},
	}

	s.LoadDetail("movie", 603)
	assert.Equal(t, "T1", s.Detail().TrailerKey)
}

func TestTrailerIgnoresNonYouTubeSites(t *testing.T) {
	s, meta, _ := newState(t)
	meta.videos = []models.Video{
		{Type: "Trailer", Site: "Vimeo", Key: "V1"},
	}

	s.LoadDetail("movie", 603)
	assert.Empty(t, s.Detail().TrailerKey)
}

func TestTrailerPrefersTrailerOverTeaser(t *testing.T) {
	s, meta, _ := newState(t)
	meta.videos = []models.Video{
		{Type: "Teaser", Site: "YouTube", Key: "T1"},
		{Type: "Trailer", Site: "YouTube", Key: "R1"},
	}

	s.LoadDetail("movie", 603)
	assert.Equal(t, "R1", s.Detail().TrailerKey)
}

func TestDirectorResolution(t *testing.T) {
	s, meta, _ := newState(t)
	meta.credits = models.Credits{
		Cast: []models.Cast{{ID: 1, Name: "Lead", Character: "Hero"}},
		Crew: []models.Crew{
			{ID: 5, Name: "Writer", Job: "Writer", Department: "Writing"},
			{ID: 7, Name: "The Director", Job: "Director", Department: "Directing"},
			{ID: 8, Name: "Second Unit", Job: "Director", Department: "Directing"},
		},
	}

	s.LoadDetail("movie", 603)

	detail := s.Detail()
	require.NotNil(t, detail.Director)
	assert.Equal(t, 7, detail.Director.ID, "first crew entry with job Director wins")
	assert.Equal(t, "The Director", detail.Director.Name)
	require.Len(t, detail.Cast, 1)
}

func TestDetailWithoutDirector(t *testing.T) {
	s, meta, _ := newState(t)
	meta.credits = models.Credits{
		Crew: []models.Crew{{ID: 5, Name: "Writer", Job: "Writer", Department: "Writing"}},
	}

	s.LoadDetail("movie", 603)
	assert.Nil(t, s.Detail().Director)
}

func TestSimilarTaggedWithRequestedType(t *testing.T) {
	s, _, _ := newState(t)

	s.LoadDetail("tv", 1399)

	detail := s.Detail()
	require.NotEmpty(t, detail.Similar)
	assert.Equal(t, "tv", detail.Similar[0].MediaType)
}

func TestStaleDetailFetchDiscarded(t *testing.T) {
	s, meta, _ := newState(t)
	meta.gatedDetailID = 1
	meta.detailGate = make(chan struct{})
	meta.detailEntered = make(chan struct{}, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.LoadDetail("movie", 1)
	}()

	<-meta.detailEntered

	// A newer fetch supersedes the blocked one.
	s.LoadDetail("movie", 2)

	close(meta.detailGate)
	wg.Wait()

	detail := s.Detail()
	require.NotNil(t, detail.Detail)
	assert.Equal(t, 2, detail.Detail.ID, "latest request wins")
}

func TestPersonCreditsRevealInBatches(t *testing.T) {
	s, meta, _ := newState(t)
	meta.personCredits = make([]models.PersonCredit, 30)
	for i := range meta.personCredits {
		meta.personCredits[i] = models.PersonCredit{ID: i + 1, Title: fmt.Sprintf("credit-%d", i+1)}
	}

	s.LoadPerson(500)

	snap := s.Person()
	require.NotNil(t, snap.Person)
	assert.Len(t, snap.Credits, 12)
	assert.True(t, snap.HasMoreCredits)

	s.LoadMorePersonCredits()
	assert.Len(t, s.Person().Credits, 24)

	s.LoadMorePersonCredits()
	snap = s.Person()
	assert.Len(t, snap.Credits, 30)
	assert.False(t, snap.HasMoreCredits)

	// No-op once everything is visible.
	s.LoadMorePersonCredits()
	assert.Len(t, s.Person().Credits, 30)
}

func TestPersonCreditsDefaultMediaType(t *testing.T) {
	s, meta, _ := newState(t)
	meta.personCredits = []models.PersonCredit{
		{ID: 1, Title: "Old Film"},
		{ID: 2, Name: "Some Show", MediaType: "tv"},
	}

	s.LoadPerson(500)

	credits := s.Person().Credits
	require.Len(t, credits, 2)
	assert.Equal(t, "movie", credits[0].MediaType)
	assert.Equal(t, "tv", credits[1].MediaType)
}

func TestSearchReplacesResults(t *testing.T) {
	s, _, _ := newState(t)

	s.Search("alpha")
	results := s.SearchResults()
	require.Len(t, results, 2)
	assert.Equal(t, "movie alpha", results[0].Title)
	assert.Equal(t, "movie", results[0].MediaType)
	assert.Equal(t, "tv alpha", results[1].Name)
	assert.Equal(t, "tv", results[1].MediaType)

	s.Search("beta")
	results = s.SearchResults()
	require.Len(t, results, 2)
	assert.Equal(t, "movie beta", results[0].Title)
}

func TestGenreListingIndependentOfHomeCursor(t *testing.T) {
	s, meta, _ := newState(t)

	s.LoadCategory(catalog.CategoryTrending, true)
	s.LoadMore()
	before := s.Home()

	s.LoadGenre("35")

	after := s.Home()
	assert.Equal(t, before.Page, after.Page)
	assert.Equal(t, before.Category, after.Category)
	assert.Len(t, after.Listing, len(before.Listing))

	genre := s.GenreListing()
	require.Len(t, genre, 2*meta.pageSize)
	assert.Equal(t, "genre-movie-35-p1-0", genre[0].Title)
	assert.Equal(t, "movie", genre[0].MediaType)
	assert.Equal(t, "tv", genre[meta.pageSize].MediaType)
}
