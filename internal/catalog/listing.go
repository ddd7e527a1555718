package catalog

import (
	"log/slog"

	"movie-catalog-service/internal/models"
)

// LoadCategory fetches one page of the home listing for category, which is
// either CategoryTrending or a genre identifier.
//
// A reset fetch replaces the listing with page 1 and records the category;
// a continuation fetch appends the next page. Each fetch mode is guarded by
// its own busy flag, so overlapping calls of the same mode are no-ops. On
// failure the listing is left unchanged and a continuation rolls its page
// increment back so the next call retries the same page.
func (s *State) LoadCategory(category string, reset bool) {
	s.mu.Lock()
	if reset {
		if s.loading {
			s.mu.Unlock()
			return
		}
		s.loading = true
		s.currentPage = 1
		s.currentCategory = category
	} else {
		if s.paginating {
			s.mu.Unlock()
			return
		}
		s.paginating = true
		s.currentPage++
	}
	page := s.currentPage
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if reset {
			s.loading = false
		} else {
			s.paginating = false
		}
		s.mu.Unlock()
	}()

	movies, tv, err := s.fetchListingPage(category, page)
	if err != nil {
		slog.Error("listing fetch failed", "category", category, "page", page, "error", err)
		if !reset {
			s.mu.Lock()
			s.currentPage--
			s.mu.Unlock()
		}
		return
	}

	combined := append(copyItems(movies), tv...)

	s.mu.Lock()
	if reset {
		s.listing = combined
		if len(movies) > spotlightSize {
			s.spotlight = copyItems(movies[:spotlightSize])
		} else {
			s.spotlight = copyItems(movies)
		}
	} else {
		s.listing = append(s.listing, combined...)
	}
	s.mu.Unlock()
}

// LoadMore appends the next page of the category that produced the current
// listing. Idempotent under rapid repeated calls while a page is in flight.
func (s *State) LoadMore() {
	s.mu.Lock()
	category := s.currentCategory
	s.mu.Unlock()
	s.LoadCategory(category, false)
}

// fetchListingPage fetches the movie and TV halves of one listing page,
// each tagged with its media type. Movies always precede TV.
func (s *State) fetchListingPage(category string, page int) (movies, tv []models.MediaItem, err error) {
	var movieResp, tvResp *models.MediaListResponse

	if category == CategoryTrending {
		movieResp, err = s.meta.PopularMovies(page)
		if err != nil {
			return nil, nil, err
		}
		tvResp, err = s.meta.PopularTV(page)
		if err != nil {
			return nil, nil, err
		}
	} else {
		movieResp, err = s.meta.MoviesByGenre(category, page)
		if err != nil {
			return nil, nil, err
		}
		tvResp, err = s.meta.TVByGenre(category, page)
		if err != nil {
			return nil, nil, err
		}
	}

	return tagged(movieResp.Results, "movie"), tagged(tvResp.Results, "tv"), nil
}
