package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CyclesFetcher fetches release-cycle names from the end-of-life
// metadata API. Implementations absorb all upstream failures and return
// an empty slice instead of an error.
type CyclesFetcher interface {
	FetchCycles(ctx context.Context) []string
}

// VersionsHandler exposes Spring Boot version information proxied from
// the end-of-life metadata API.
type VersionsHandler struct {
	fetcher CyclesFetcher
	log     *zap.Logger
}

// NewVersionsHandler creates a new VersionsHandler instance
func NewVersionsHandler(fetcher CyclesFetcher, log *zap.Logger) *VersionsHandler {
	return &VersionsHandler{
		fetcher: fetcher,
		log:     log,
	}
}

// VersionsResponse represents the HTTP response for the versions listing
type VersionsResponse struct {
	Versions []string `json:"versions"`
	Count    int      `json:"count"`
}

// GetVersions handles GET /api/springboot/versions. It responds 200 even
// when the upstream fetch fails, in which case the list is empty.
func (h *VersionsHandler) GetVersions(c *gin.Context) {
	cycles := h.fetcher.FetchCycles(c.Request.Context())
	if len(cycles) == 0 {
		h.log.Warn("no release cycles returned from metadata API")
	}

	c.JSON(http.StatusOK, VersionsResponse{
		Versions: cycles,
		Count:    len(cycles),
	})
}
