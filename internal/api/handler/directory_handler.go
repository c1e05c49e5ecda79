package handler

import (
	"context"
	"net/http"

	"attendance.service/internal/core/model"
	"github.com/rs/zerolog/log"
)

type DirectoryService interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	ListOffices(ctx context.Context) ([]model.Office, error)
}

type DirectoryHandler struct {
	Service DirectoryService
}

func (h *DirectoryHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Error in GET /employees")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch employees"})
		return
	}
	writeJSON(w, r, http.StatusOK, employees)
}

func (h *DirectoryHandler) ListOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.Service.ListOffices(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Error in GET /offices")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch offices"})
		return
	}
	writeJSON(w, r, http.StatusOK, offices)
}
