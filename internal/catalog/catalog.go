package catalog

import (
	"encoding/json"
	"log/slog"
	"sync"

	"movie-catalog-service/internal/models"
)

// Metadata is the client contract for the upstream metadata API.
// *tmdb.Client satisfies it.
type Metadata interface {
	PopularMovies(page int) (*models.MediaListResponse, error)
	PopularTV(page int) (*models.MediaListResponse, error)
	SearchMovies(query string, page int) (*models.MediaListResponse, error)
	SearchTV(query string, page int) (*models.MediaListResponse, error)
	MoviesByGenre(genreID string, page int) (*models.MediaListResponse, error)
	TVByGenre(genreID string, page int) (*models.MediaListResponse, error)
	Detail(mediaType string, id int) (*models.Detail, error)
	Credits(mediaType string, id int) (*models.Credits, error)
	Similar(mediaType string, id int) (*models.MediaListResponse, error)
	Videos(mediaType string, id int) (*models.VideoListResponse, error)
	PersonDetail(id int) (*models.Person, error)
	PersonCombinedCredits(id int) (*models.PersonCreditsResponse, error)
}

// LocalStore is a persistent key/value mapping surviving restarts.
// Get returns an empty string and no error for a missing key.
type LocalStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// CategoryTrending is the sentinel category for the popular movies/TV feed.
// Any other category value is treated as a genre identifier.
const CategoryTrending = "trending"

const (
	favouritesKey = "favorites_list"
	historyKey    = "search_history"

	spotlightSize         = 10
	personCreditsPageSize = 12
)

// Director identifies the director resolved from a title's crew.
type Director struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// State owns all catalog view state and the operations that mutate it.
// All mutations happen under the mutex; readers get copied snapshots.
type State struct {
	meta  Metadata
	store LocalStore

	mu sync.Mutex

	// home listing
	listing         []models.MediaItem
	spotlight       []models.MediaItem
	loading         bool // reset fetch in flight
	paginating      bool // continuation fetch in flight
	currentPage     int
	currentCategory string

	// selected title
	selected   *models.Detail
	cast       []models.Cast
	director   *Director
	trailerKey string
	similar    []models.MediaItem
	detailGen  uint64

	// selected person
	person            *models.Person
	personCredits     []models.MediaItem
	fullPersonCredits []models.MediaItem
	personGen         uint64

	searchResults []models.MediaItem
	searchGen     uint64

	genreItems []models.MediaItem
	genreGen   uint64

	favourites []models.MediaItem
	history    []models.MediaItem
}

// New creates the catalog state and loads persisted favourites and search
// history from the store. Malformed persisted JSON resets the collection
// to empty.
func New(meta Metadata, store LocalStore) *State {
	s := &State{
		meta:            meta,
		store:           store,
		currentPage:     1,
		currentCategory: CategoryTrending,
	}
	s.favourites = s.loadPersisted(favouritesKey)
	s.history = s.loadPersisted(historyKey)
	return s
}

func (s *State) loadPersisted(key string) []models.MediaItem {
	raw, err := s.store.Get(key)
	if err != nil {
		slog.Error("failed to read persisted state", "key", key, "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	var items []models.MediaItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding malformed persisted state", "key", key, "error", err)
		return nil
	}
	return items
}

// persistLocked writes items under key. Callers hold the mutex, so writes
// reach the store in mutation order (last write wins).
func (s *State) persistLocked(key string, items []models.MediaItem) {
	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("failed to serialize state", "key", key, "error", err)
		return
	}
	if err := s.store.Set(key, string(data)); err != nil {
		slog.Error("failed to persist state", "key", key, "error", err)
	}
}

// HomeSnapshot is the home feed state.
type HomeSnapshot struct {
	Listing    []models.MediaItem `json:"listing"`
	Spotlight  []models.MediaItem `json:"spotlight"`
	Category   string             `json:"category"`
	Page       int                `json:"page"`
	Loading    bool               `json:"loading"`
	Paginating bool               `json:"paginating"`
}

// Home returns a copy of the home listing state.
func (s *State) Home() HomeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HomeSnapshot{
		Listing:    copyItems(s.listing),
		Spotlight:  copyItems(s.spotlight),
		Category:   s.currentCategory,
		Page:       s.currentPage,
		Loading:    s.loading,
		Paginating: s.paginating,
	}
}

// DetailSnapshot is the state for the currently selected title.
type DetailSnapshot struct {
	Detail     *models.Detail     `json:"detail"`
	Cast       []models.Cast      `json:"cast"`
	Director   *Director          `json:"director,omitempty"`
	TrailerKey string             `json:"trailer_key,omitempty"`
	Similar    []models.MediaItem `json:"similar"`
}

// Detail returns a copy of the selected title state.
func (s *State) Detail() DetailSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := DetailSnapshot{
		Cast:       append([]models.Cast(nil), s.cast...),
		TrailerKey: s.trailerKey,
		Similar:    copyItems(s.similar),
	}
	if s.selected != nil {
		d := *s.selected
		snap.Detail = &d
	}
	if s.director != nil {
		d := *s.director
		snap.Director = &d
	}
	return snap
}

// PersonSnapshot is the state for the currently selected person.
type PersonSnapshot struct {
	Person         *models.Person     `json:"person"`
	Credits        []models.MediaItem `json:"credits"`
	HasMoreCredits bool               `json:"has_more_credits"`
}

// Person returns a copy of the selected person state.
func (s *State) Person() PersonSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := PersonSnapshot{
		Credits:        copyItems(s.personCredits),
		HasMoreCredits: len(s.personCredits) < len(s.fullPersonCredits),
	}
	if s.person != nil {
		p := *s.person
		snap.Person = &p
	}
	return snap
}

// SearchResults returns a copy of the latest search results.
func (s *State) SearchResults() []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.searchResults)
}

// GenreListing returns a copy of the standalone genre listing.
func (s *State) GenreListing() []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.genreItems)
}

// Favourites returns a copy of the favourites list in insertion order.
func (s *State) Favourites() []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.favourites)
}

// History returns a copy of the search history, most recent first.
func (s *State) History() []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.history)
}

func copyItems(items []models.MediaItem) []models.MediaItem {
	if items == nil {
		return []models.MediaItem{}
	}
	return append([]models.MediaItem(nil), items...)
}

// tagged returns a copy of items with MediaType set. The upstream list
// endpoints do not reliably supply it.
func tagged(items []models.MediaItem, mediaType string) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i, it := range items {
		it.MediaType = mediaType
		out[i] = it
	}
	return out
}

func indexByID(items []models.MediaItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
