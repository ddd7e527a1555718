package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"movie-catalog-service/internal/models"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PopularMovies fetches a page of popular movies.
func (c *Client) PopularMovies(page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/movie/popular?api_key=%s&page=%d",
		c.baseURL, c.apiKey, page,
	)

	slog.Debug("fetching TMDB popular movies", "page", page)
	return c.getMediaList(u)
}

// PopularTV fetches a page of popular TV shows.
func (c *Client) PopularTV(page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/tv/popular?api_key=%s&page=%d",
		c.baseURL, c.apiKey, page,
	)

	slog.Debug("fetching TMDB popular tv", "page", page)
	return c.getMediaList(u)
}

// SearchMovies searches movies by title.
func (c *Client) SearchMovies(query string, page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/search/movie?api_key=%s&query=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(query), page,
	)

	slog.Debug("searching TMDB movies", "query", query, "page", page)
	return c.getMediaList(u)
}

// SearchTV searches TV shows by name.
func (c *Client) SearchTV(query string, page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/search/tv?api_key=%s&query=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(query), page,
	)

	slog.Debug("searching TMDB tv", "query", query, "page", page)
	return c.getMediaList(u)
}

// MoviesByGenre fetches a page of movies filtered by genre from the
// discover endpoint.
func (c *Client) MoviesByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/discover/movie?api_key=%s&with_genres=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(genreID), page,
	)

	slog.Debug("fetching TMDB movies by genre", "genre", genreID, "page", page)
	return c.getMediaList(u)
}

// TVByGenre fetches a page of TV shows filtered by genre from the
// discover endpoint.
func (c *Client) TVByGenre(genreID string, page int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/discover/tv?api_key=%s&with_genres=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(genreID), page,
	)

	slog.Debug("fetching TMDB tv by genre", "genre", genreID, "page", page)
	return c.getMediaList(u)
}

// Detail fetches the full record for a movie or TV show.
// mediaType is "movie" or "tv".
func (c *Client) Detail(mediaType string, id int) (*models.Detail, error) {
	u := fmt.Sprintf(
		"%s/%s/%d?api_key=%s",
		c.baseURL, mediaType, id, c.apiKey,
	)

	slog.Debug("fetching TMDB detail", "type", mediaType, "id", id)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.Detail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}
	return &result, nil
}

// Credits fetches cast and crew for a title.
func (c *Client) Credits(mediaType string, id int) (*models.Credits, error) {
	u := fmt.Sprintf(
		"%s/%s/%d/credits?api_key=%s",
		c.baseURL, mediaType, id, c.apiKey,
	)

	slog.Debug("fetching TMDB credits", "type", mediaType, "id", id)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.Credits
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode credits response: %w", err)
	}
	return &result, nil
}

// Similar fetches titles similar to the given one.
func (c *Client) Similar(mediaType string, id int) (*models.MediaListResponse, error) {
	u := fmt.Sprintf(
		"%s/%s/%d/similar?api_key=%s",
		c.baseURL, mediaType, id, c.apiKey,
	)

	slog.Debug("fetching TMDB similar", "type", mediaType, "id", id)
	return c.getMediaList(u)
}

// Videos fetches trailer/teaser candidates for a title.
func (c *Client) Videos(mediaType string, id int) (*models.VideoListResponse, error) {
	u := fmt.Sprintf(
		"%s/%s/%d/videos?api_key=%s",
		c.baseURL, mediaType, id, c.apiKey,
	)

	slog.Debug("fetching TMDB videos", "type", mediaType, "id", id)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.VideoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode videos response: %w", err)
	}
	return &result, nil
}

// PersonDetail fetches a person biography record.
func (c *Client) PersonDetail(id int) (*models.Person, error) {
	u := fmt.Sprintf(
		"%s/person/%d?api_key=%s",
		c.baseURL, id, c.apiKey,
	)

	slog.Debug("fetching TMDB person", "id", id)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.Person
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode person response: %w", err)
	}
	return &result, nil
}

// PersonCombinedCredits fetches a person's combined movie and TV credits.
func (c *Client) PersonCombinedCredits(id int) (*models.PersonCreditsResponse, error) {
	u := fmt.Sprintf(
		"%s/person/%d/combined_credits?api_key=%s",
		c.baseURL, id, c.apiKey,
	)

	slog.Debug("fetching TMDB person credits", "id", id)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.PersonCreditsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode person credits response: %w", err)
	}
	return &result, nil
}

func (c *Client) getMediaList(u string) (*models.MediaListResponse, error) {
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result models.MediaListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode media list response: %w", err)
	}
	return &result, nil
}

func (c *Client) doGet(u string) (*http.Response, error) {
	resp, err := c.http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
