package catalog

import "log/slog"

// Search replaces the search results with page-1 movie and TV matches for
// the literal query, movies first. On failure the previous results stay.
// Generation-tokened: the latest query wins. Debouncing is the caller's
// concern.
func (s *State) Search(query string) {
	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.mu.Unlock()

	movieResp, err := s.meta.SearchMovies(query, 1)
	if err != nil {
		slog.Error("movie search failed", "query", query, "error", err)
		return
	}
	tvResp, err := s.meta.SearchTV(query, 1)
	if err != nil {
		slog.Error("tv search failed", "query", query, "error", err)
		return
	}

	combined := append(tagged(movieResp.Results, "movie"), tagged(tvResp.Results, "tv")...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.searchGen {
		return
	}
	s.searchResults = combined
}

// LoadGenre fetches a single page of movies and TV for genreID into the
// standalone genre listing. Deliberately independent of the home listing so
// it never disturbs that pagination cursor. Cleared up front; latest
// request wins.
func (s *State) LoadGenre(genreID string) {
	s.mu.Lock()
	s.genreGen++
	gen := s.genreGen
	s.genreItems = nil
	s.mu.Unlock()

	movieResp, err := s.meta.MoviesByGenre(genreID, 1)
	if err != nil {
		slog.Error("genre movie fetch failed", "genre", genreID, "error", err)
		return
	}
	tvResp, err := s.meta.TVByGenre(genreID, 1)
	if err != nil {
		slog.Error("genre tv fetch failed", "genre", genreID, "error", err)
		return
	}

	combined := append(tagged(movieResp.Results, "movie"), tagged(tvResp.Results, "tv")...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.genreGen {
		return
	}
	s.genreItems = combined
}
