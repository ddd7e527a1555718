package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/catalog"
	"movie-catalog-service/internal/models"
)

// CatalogHandler handles HTTP requests for the catalog.
type CatalogHandler struct {
	state *catalog.State
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(state *catalog.State) *CatalogHandler {
	return &CatalogHandler{state: state}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *CatalogHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-catalog-service",
	})
}

// Home loads a listing page and returns the home feed state.
// @Summary Load home listing
// @Tags home
// @Produce json
// @Param category query string false "Listing category" default(trending)
// @Param reset query bool false "Replace listing with page 1" default(true)
// @Success 200 {object} catalog.HomeSnapshot
// @Router /home [get]
func (h *CatalogHandler) Home(c fiber.Ctx) error {
	category := c.Query("category", catalog.CategoryTrending)
	reset := fiber.Query(c, "reset", true)

	h.state.LoadCategory(category, reset)
	return c.JSON(h.state.Home())
}

// HomeMore appends the next listing page and returns the home feed state.
// @Summary Load next home listing page
// @Tags home
// @Produce json
// @Success 200 {object} catalog.HomeSnapshot
// @Router /home/more [get]
func (h *CatalogHandler) HomeMore(c fiber.Ctx) error {
	h.state.LoadMore()
	return c.JSON(h.state.Home())
}

// TitleDetail loads and returns the detail state for a title.
// @Summary Get title detail
// @Tags titles
// @Produce json
// @Param type path string true "Media type" Enums(movie,tv)
// @Param id path int true "Title ID"
// @Success 200 {object} catalog.DetailSnapshot
// @Failure 400 {object} ErrorResponse
// @Router /titles/{type}/{id} [get]
func (h *CatalogHandler) TitleDetail(c fiber.Ctx) error {
	mediaType := c.Params("type")
	if mediaType != "movie" && mediaType != "tv" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "media type must be movie or tv",
		})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid title ID",
		})
	}

	h.state.LoadDetail(mediaType, id)
	return c.JSON(h.state.Detail())
}

// PersonDetail loads and returns the person state.
// @Summary Get person detail
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} catalog.PersonSnapshot
// @Failure 400 {object} ErrorResponse
// @Router /people/{id} [get]
func (h *CatalogHandler) PersonDetail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid person ID",
		})
	}

	h.state.LoadPerson(id)
	return c.JSON(h.state.Person())
}

// PersonCreditsMore reveals the next batch of person credits.
// @Summary Reveal more person credits
// @Tags people
// @Produce json
// @Success 200 {object} catalog.PersonSnapshot
// @Router /people/credits/more [post]
func (h *CatalogHandler) PersonCreditsMore(c fiber.Ctx) error {
	h.state.LoadMorePersonCredits()
	return c.JSON(h.state.Person())
}

// Search runs a search and returns the results.
// @Summary Search movies and TV
// @Tags search
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} ErrorResponse
// @Router /search [get]
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "query is required",
		})
	}

	h.state.Search(query)
	return c.JSON(h.state.SearchResults())
}

// Genre loads the standalone genre listing.
// @Summary Get genre listing
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Success 200 {array} models.MediaItem
// @Router /genres/{id} [get]
func (h *CatalogHandler) Genre(c fiber.Ctx) error {
	h.state.LoadGenre(c.Params("id"))
	return c.JSON(h.state.GenreListing())
}

// Favourites returns the favourites list.
// @Summary List favourites
// @Tags favourites
// @Produce json
// @Success 200 {array} models.MediaItem
// @Router /favourites [get]
func (h *CatalogHandler) Favourites(c fiber.Ctx) error {
	return c.JSON(h.state.Favourites())
}

// ToggleFavourite adds or removes an item from favourites.
// @Summary Toggle favourite
// @Tags favourites
// @Accept json
// @Produce json
// @Param item body models.MediaItem true "Item to toggle"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} ErrorResponse
// @Router /favourites/toggle [post]
func (h *CatalogHandler) ToggleFavourite(c fiber.Ctx) error {
	var item models.MediaItem
	if err := c.Bind().Body(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid item payload",
		})
	}
	if item.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "item id is required",
		})
	}

	h.state.ToggleFavourite(item)
	return c.JSON(h.state.Favourites())
}

// History returns the search history, most recent first.
// @Summary List search history
// @Tags history
// @Produce json
// @Success 200 {array} models.MediaItem
// @Router /history [get]
func (h *CatalogHandler) History(c fiber.Ctx) error {
	return c.JSON(h.state.History())
}

// AddToHistory records an item at the front of the search history.
// @Summary Add history entry
// @Tags history
// @Accept json
// @Produce json
// @Param item body models.MediaItem true "Item to record"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} ErrorResponse
// @Router /history [post]
func (h *CatalogHandler) AddToHistory(c fiber.Ctx) error {
	var item models.MediaItem
	if err := c.Bind().Body(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid item payload",
		})
	}
	if item.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "item id is required",
		})
	}

	h.state.AddToHistory(item)
	return c.JSON(h.state.History())
}

// RemoveFromHistory deletes a history entry by id.
// @Summary Remove history entry
// @Tags history
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} ErrorResponse
// @Router /history/{id} [delete]
func (h *CatalogHandler) RemoveFromHistory(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid item ID",
		})
	}

	h.state.RemoveFromHistory(id)
	return c.JSON(h.state.History())
}
