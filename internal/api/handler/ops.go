// Package handler provides HTTP handlers for the TravelSaathi API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/travelsaathi/travelsaathi/internal/api/models"
	"github.com/travelsaathi/travelsaathi/internal/api/response"
	"github.com/travelsaathi/travelsaathi/internal/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	ready     func(ctx context.Context) error
	health    func() []resilience.ProviderHealth
}

// NewOpsHandler creates a new OpsHandler. The ready func is consulted by the
// readiness check; nil means always ready. The health func supplies provider
// health for the status endpoint; nil means no providers are reported.
func NewOpsHandler(version, buildTime string, ready func(ctx context.Context) error, health func() []resilience.ProviderHealth) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		ready:     ready,
		health:    health,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			response.ServiceUnavailable(w, r, err.Error())
			return
		}
	}
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// StatusCheck handles GET /v1/ops/status - subsystem and provider breakdown.
func (h *OpsHandler) StatusCheck(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{},
		Providers:  []models.ProviderStatus{},
	}

	suggestions := models.SubsystemStatus{
		Name:   "suggestions",
		Status: models.HealthStatusOK,
	}
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			detail := err.Error()
			suggestions.Status = models.HealthStatusFail
			suggestions.Detail = &detail
			status.Status = models.HealthStatusFail
		}
	}
	status.Subsystems = append(status.Subsystems, suggestions)

	if h.health != nil {
		for _, ph := range h.health() {
			status.Providers = append(status.Providers, providerStatus(ph))
		}
	}
	for _, p := range status.Providers {
		if p.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
			status.Status = models.HealthStatusDegraded
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(h resilience.ProviderHealth) models.ProviderStatus {
	out := models.ProviderStatus{
		Provider: h.Name,
		Status:   models.HealthStatusFail,
	}
	switch {
	case h.Healthy():
		out.Status = models.HealthStatusOK
	case h.Degraded():
		out.Status = models.HealthStatusDegraded
	}

	if h.LastSuccessAt != nil {
		ts := models.Timestamp(*h.LastSuccessAt)
		out.LastSuccessAt = &ts
	}
	if h.LastFailureAt != nil {
		ts := models.Timestamp(*h.LastFailureAt)
		out.LastFailureAt = &ts
	}
	if h.LastError != "" {
		msg := h.LastError
		out.Message = &msg
	}
	return out
}
