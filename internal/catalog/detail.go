package catalog

import (
	"log/slog"

	"movie-catalog-service/internal/models"
)

// LoadDetail replaces the selected-title state for (mediaType, id).
//
// Previous detail, cast, director and trailer state is cleared up front so
// stale data is never shown for a new id. The sub-fetches run sequentially
// (detail, credits, videos, similar); a failure aborts the remaining steps
// but keeps whatever was already applied. Each fetch carries a generation
// token: if a newer LoadDetail started meanwhile, its results win and this
// call's remaining results are discarded.
func (s *State) LoadDetail(mediaType string, id int) {
	s.mu.Lock()
	s.detailGen++
	gen := s.detailGen
	s.selected = nil
	s.cast = nil
	s.director = nil
	s.trailerKey = ""
	s.similar = nil
	s.mu.Unlock()

	detail, err := s.meta.Detail(mediaType, id)
	if err != nil {
		slog.Error("detail fetch failed", "type", mediaType, "id", id, "error", err)
		return
	}
	if !s.applyDetail(gen, func() { s.selected = detail }) {
		return
	}

	credits, err := s.meta.Credits(mediaType, id)
	if err != nil {
		slog.Error("credits fetch failed", "type", mediaType, "id", id, "error", err)
		return
	}
	director := findDirector(credits.Crew)
	if !s.applyDetail(gen, func() {
		s.cast = credits.Cast
		s.director = director
	}) {
		return
	}

	videos, err := s.meta.Videos(mediaType, id)
	if err != nil {
		slog.Error("videos fetch failed", "type", mediaType, "id", id, "error", err)
		return
	}
	key := pickTrailerKey(videos.Results)
	if !s.applyDetail(gen, func() { s.trailerKey = key }) {
		return
	}

	similar, err := s.meta.Similar(mediaType, id)
	if err != nil {
		slog.Error("similar fetch failed", "type", mediaType, "id", id, "error", err)
		return
	}
	// Similar titles are tagged with the requested media type; the endpoint
	// does not supply one.
	items := tagged(similar.Results, mediaType)
	s.applyDetail(gen, func() { s.similar = items })
}

// applyDetail runs apply under the mutex if gen is still the current detail
// generation. Returns false when a newer fetch has superseded this one.
func (s *State) applyDetail(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.detailGen {
		return false
	}
	apply()
	return true
}

// findDirector returns the first crew entry whose job is exactly "Director",
// or nil when the crew has none.
func findDirector(crew []models.Crew) *Director {
	for _, c := range crew {
		if c.Job == "Director" {
			return &Director{
				ID:          c.ID,
				Name:        c.Name,
				ProfilePath: c.ProfilePath,
			}
		}
	}
	return nil
}

// pickTrailerKey returns the key of the first YouTube trailer, falling back
// to the first YouTube teaser. Empty when neither exists.
func pickTrailerKey(videos []models.Video) string {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v.Key
		}
	}
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Teaser" {
			return v.Key
		}
	}
	return ""
}
