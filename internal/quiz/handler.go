package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"training-portal/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func callerAndModule(r *http.Request) (string, string) {
	hospitalNumber := r.Context().Value(auth.ContextHospitalNumber).(string)
	return hospitalNumber, mux.Vars(r)["moduleID"]
}

func writeAttempt(w http.ResponseWriter, attempt *Attempt) {
	json.NewEncoder(w).Encode(attempt.View())
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Module not found", http.StatusNotFound)
	case errors.Is(err, ErrNoAttempt):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoQuestions),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrBadOption),
		errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrAlreadyPassed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Quiz operation failed", http.StatusInternalServerError)
	}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	attempt, err := h.service.StartAttempt(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	attempt, err := h.service.GetAttempt(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	var req struct {
		Option int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	attempt, err := h.service.Select(hospitalNumber, moduleID, req.Option)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	attempt, err := h.service.Submit(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	attempt, err := h.service.Next(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) Retake(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	attempt, err := h.service.Retake(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeAttempt(w, attempt)
}

func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	hospitalNumber, moduleID := callerAndModule(r)

	result, err := h.service.Finish(hospitalNumber, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(result)
}
