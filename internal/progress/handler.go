package progress

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AuditUser serves the admin per-user audit view.
func (h *Handler) AuditUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hospitalNumber := vars["hospitalNumber"]

	audit, err := h.service.AuditUser(hospitalNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load audit view", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(audit)
}

// CohortStats serves group completion, filterable by role and division.
func (h *Handler) CohortStats(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	division := r.URL.Query().Get("division")

	stats, err := h.service.CohortStatsFor(role, division)
	if err != nil {
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(stats)
}
