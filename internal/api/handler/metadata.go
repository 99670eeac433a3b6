package handler

import (
	"net/http"

	"github.com/travelsaathi/travelsaathi/internal/api/models"
	"github.com/travelsaathi/travelsaathi/internal/api/response"
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/view"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// GetEnums handles GET /v1/metadata/enums - get enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	modes := planner.Modes()
	infos := make([]models.ModeInfo, 0, len(modes))
	for _, mode := range modes {
		infos = append(infos, models.ModeInfo{
			Mode:  mode,
			Icon:  view.Icon(mode),
			Style: view.Style(mode),
		})
	}
	response.JSON(w, r, http.StatusOK, models.Enums{Modes: infos})
}
