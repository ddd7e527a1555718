package catalog

import (
	"log/slog"

	"movie-catalog-service/internal/models"
)

// LoadPerson replaces the selected-person state for id.
//
// The biography record and the combined credits are fetched in one pass.
// The full mapped credit list is retained privately; only the first batch
// is exposed until LoadMorePersonCredits reveals more. A credits failure
// keeps the already-applied biography. Generation-tokened: the latest
// request wins.
func (s *State) LoadPerson(id int) {
	s.mu.Lock()
	s.personGen++
	gen := s.personGen
	s.person = nil
	s.personCredits = nil
	s.fullPersonCredits = nil
	s.mu.Unlock()

	person, err := s.meta.PersonDetail(id)
	if err != nil {
		slog.Error("person fetch failed", "id", id, "error", err)
		return
	}
	if !s.applyPerson(gen, func() { s.person = person }) {
		return
	}

	credits, err := s.meta.PersonCombinedCredits(id)
	if err != nil {
		slog.Error("person credits fetch failed", "id", id, "error", err)
		return
	}
	mapped := mapPersonCredits(credits.Cast)
	s.applyPerson(gen, func() {
		s.fullPersonCredits = mapped
		if len(mapped) > personCreditsPageSize {
			s.personCredits = copyItems(mapped[:personCreditsPageSize])
		} else {
			s.personCredits = copyItems(mapped)
		}
	})
}

// LoadMorePersonCredits reveals the next batch of the already-fetched credit
// list. No network call; no-op when everything is visible.
func (s *State) LoadMorePersonCredits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.personCredits) >= len(s.fullPersonCredits) {
		return
	}
	next := s.fullPersonCredits[len(s.personCredits):]
	if len(next) > personCreditsPageSize {
		next = next[:personCreditsPageSize]
	}
	s.personCredits = append(s.personCredits, next...)
}

func (s *State) applyPerson(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.personGen {
		return false
	}
	apply()
	return true
}

// mapPersonCredits converts combined-credit entries into MediaItem shape for
// the credits grid. Backdrop and overview are dropped; entries without a
// media type default to "movie".
func mapPersonCredits(credits []models.PersonCredit) []models.MediaItem {
	items := make([]models.MediaItem, len(credits))
	for i, c := range credits {
		mediaType := c.MediaType
		if mediaType == "" {
			mediaType = "movie"
		}
		items[i] = models.MediaItem{
			ID:           c.ID,
			Title:        c.Title,
			Name:         c.Name,
			PosterPath:   c.PosterPath,
			VoteAverage:  c.VoteAverage,
			ReleaseDate:  c.ReleaseDate,
			FirstAirDate: c.FirstAirDate,
			MediaType:    mediaType,
		}
	}
	return items
}
