package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-catalog-service/internal/models"
)

const (
	listingCacheTTL = 5 * time.Minute
	detailCacheTTL  = 30 * time.Minute
	personCacheTTL  = 30 * time.Minute
	searchCacheTTL  = 5 * time.Minute
)

// CachedMetadata caches metadata responses in Redis as JSON blobs under
// formatted keys. With a nil client every call passes straight through, so
// the service runs fine without Redis.
type CachedMetadata struct {
	meta  Metadata
	redis *redis.Client
}

// NewCachedMetadata wraps meta with a Redis response cache.
func NewCachedMetadata(meta Metadata, rdb *redis.Client) *CachedMetadata {
	return &CachedMetadata{meta: meta, redis: rdb}
}

func (c *CachedMetadata) PopularMovies(page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:popular:movie:%d", page)
	return cached(c, key, listingCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.PopularMovies(page)
	})
}

func (c *CachedMetadata) PopularTV(page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:popular:tv:%d", page)
	return cached(c, key, listingCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.PopularTV(page)
	})
}

func (c *CachedMetadata) SearchMovies(query string, page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:search:movie:%s:%d", query, page)
	return cached(c, key, searchCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.SearchMovies(query, page)
	})
}

func (c *CachedMetadata) SearchTV(query string, page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:search:tv:%s:%d", query, page)
	return cached(c, key, searchCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.SearchTV(query, page)
	})
}

func (c *CachedMetadata) MoviesByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:genre:movie:%s:%d", genreID, page)
	return cached(c, key, listingCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.MoviesByGenre(genreID, page)
	})
}

func (c *CachedMetadata) TVByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:genre:tv:%s:%d", genreID, page)
	return cached(c, key, listingCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.TVByGenre(genreID, page)
	})
}

func (c *CachedMetadata) Detail(mediaType string, id int) (*models.Detail, error) {
	key := fmt.Sprintf("tmdb:detail:%s:%d", mediaType, id)
	return cached(c, key, detailCacheTTL, func() (*models.Detail, error) {
		return c.meta.Detail(mediaType, id)
	})
}

func (c *CachedMetadata) Credits(mediaType string, id int) (*models.Credits, error) {
	key := fmt.Sprintf("tmdb:credits:%s:%d", mediaType, id)
	return cached(c, key, detailCacheTTL, func() (*models.Credits, error) {
		return c.meta.Credits(mediaType, id)
	})
}

func (c *CachedMetadata) Similar(mediaType string, id int) (*models.MediaListResponse, error) {
	key := fmt.Sprintf("tmdb:similar:%s:%d", mediaType, id)
	return cached(c, key, detailCacheTTL, func() (*models.MediaListResponse, error) {
		return c.meta.Similar(mediaType, id)
	})
}

func (c *CachedMetadata) Videos(mediaType string, id int) (*models.VideoListResponse, error) {
	key := fmt.Sprintf("tmdb:videos:%s:%d", mediaType, id)
	return cached(c, key, detailCacheTTL, func() (*models.VideoListResponse, error) {
		return c.meta.Videos(mediaType, id)
	})
}

func (c *CachedMetadata) PersonDetail(id int) (*models.Person, error) {
	key := fmt.Sprintf("tmdb:person:%d", id)
	return cached(c, key, personCacheTTL, func() (*models.Person, error) {
		return c.meta.PersonDetail(id)
	})
}

func (c *CachedMetadata) PersonCombinedCredits(id int) (*models.PersonCreditsResponse, error) {
	key := fmt.Sprintf("tmdb:person:credits:%d", id)
	return cached(c, key, personCacheTTL, func() (*models.PersonCreditsResponse, error) {
		return c.meta.PersonCombinedCredits(id)
	})
}

// cached serves the value from Redis when present, otherwise fetches and
// stores it. Cache failures never fail the fetch.
func cached[T any](c *CachedMetadata, key string, ttl time.Duration, fetch func() (*T, error)) (*T, error) {
	if c.redis != nil {
		if raw, err := c.redis.Get(context.Background(), key).Result(); err == nil {
			var out T
			if json.Unmarshal([]byte(raw), &out) == nil {
				slog.Debug("cache hit", "key", key)
				return &out, nil
			}
		}
	}

	out, err := fetch()
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := c.redis.Set(context.Background(), key, data, ttl).Err(); err != nil {
				slog.Error("failed to set cache", "key", key, "error", err)
			}
		}
	}
	return out, nil
}
