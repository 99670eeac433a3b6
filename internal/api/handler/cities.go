package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/api/models"
	"github.com/travelsaathi/travelsaathi/internal/api/response"
	"github.com/travelsaathi/travelsaathi/internal/cities"
)

// CitiesHandler handles city suggestion endpoints.
type CitiesHandler struct {
	source cities.Source
	log    zerolog.Logger
}

// NewCitiesHandler creates a new CitiesHandler.
func NewCitiesHandler(source cities.Source, log zerolog.Logger) *CitiesHandler {
	return &CitiesHandler{
		source: source,
		log:    log,
	}
}

// Suggest handles GET /v1/cities/suggest?q= - autocomplete suggestions.
func (h *CitiesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items, err := h.source.Suggest(r.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("city suggestion lookup failed")
		response.InternalError(w, r, "failed to load suggestions")
		return
	}
	if items == nil {
		items = []string{}
	}

	response.JSON(w, r, http.StatusOK, models.CitySuggestions{
		Query: query,
		Items: items,
	})
}
