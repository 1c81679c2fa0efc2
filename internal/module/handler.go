package module

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"training-portal/internal/auth"
	"training-portal/internal/models"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// Dashboard serves the learner's visible modules with progress attached.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)
	role, _ := r.Context().Value(auth.ContextRole).(string)

	dashboard, err := h.service.DashboardFor(hospitalNumber, role)
	if err != nil {
		http.Error(w, "Failed to load modules", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(dashboard)
}

func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	moduleID := vars["moduleID"]

	m, err := h.service.GetModule(moduleID)
	if err != nil {
		http.Error(w, "Module not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(m.ToView(nil))
}

// ListCatalog serves the unfiltered catalog, correct answers included,
// for the admin content editor.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Catalog()
	if err != nil {
		http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(catalog)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.ModuleRequest, bool) {
	var req models.ModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	m, err := h.service.CreateModule(req)
	if err != nil {
		if errors.Is(err, ErrInvalidQuestion) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create module", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

func (h *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	moduleID := vars["moduleID"]

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	m, err := h.service.UpdateModule(moduleID, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Module not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidQuestion):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update module", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(m)
}

func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	moduleID := vars["moduleID"]

	if err := h.service.DeleteModule(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Module not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete module", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
