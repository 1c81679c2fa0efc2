package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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

func sessionID(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["sessionID"], 10, 32)
	return uint(id), err
}

// Overview serves the caller's categorized sessions.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)

	overview, err := h.service.OverviewFor(hospitalNumber, time.Now())
	if err != nil {
		http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(overview)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)

	view, err := h.service.GetForUser(id, hospitalNumber)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(view)
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)

	if err := h.service.Join(id, hospitalNumber, time.Now()); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrAlreadyMember):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to join session", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)
	name, _ := r.Context().Value(auth.ContextName).(string)

	var req models.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.SubmitEvaluation(id, hospitalNumber, name, &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, ErrNotMember):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Failed to submit evaluation", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(summary)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.SessionRequest, bool) {
	var req models.SessionRequest
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

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	session, err := h.service.CreateSession(req)
	if err != nil {
		if errors.Is(err, ErrInvalidWindow) || errors.Is(err, ErrBadTimestamp) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	session, err := h.service.UpdateSession(id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidWindow), errors.Is(err, ErrBadTimestamp):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update session", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(session)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSession(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary serves the admin session detail with cohort completion and
// evaluation averages.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	summary, err := h.service.Summary(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load session summary", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summary)
}
