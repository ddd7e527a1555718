package catalog

import "movie-catalog-service/internal/models"

// Favourites and search history each hold at most one entry per id.
// Both collections are deduplicated by the numeric id alone, matching the
// format of previously persisted data; movie and TV id spaces are conflated.

// ToggleFavourite removes item when an entry with the same id exists,
// otherwise appends it. The list is persisted after every toggle.
func (s *State) ToggleFavourite(item models.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := indexByID(s.favourites, item.ID); idx >= 0 {
		s.favourites = append(s.favourites[:idx], s.favourites[idx+1:]...)
	} else {
		s.favourites = append(s.favourites, item)
	}
	s.persistLocked(favouritesKey, s.favourites)
}

// IsFavourite reports whether an entry with the given id is favourited.
func (s *State) IsFavourite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexByID(s.favourites, id) >= 0
}

// AddToHistory moves item to the front of the search history, removing any
// existing entry with the same id, and persists.
func (s *State) AddToHistory(item models.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := indexByID(s.history, item.ID); idx >= 0 {
		s.history = append(s.history[:idx], s.history[idx+1:]...)
	}
	s.history = append([]models.MediaItem{item}, s.history...)
	s.persistLocked(historyKey, s.history)
}

// RemoveFromHistory removes the entry with the given id, if any, and
// persists.
func (s *State) RemoveFromHistory(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexByID(s.history, id)
	if idx < 0 {
		return
	}
	s.history = append(s.history[:idx], s.history[idx+1:]...)
	s.persistLocked(historyKey, s.history)
}
