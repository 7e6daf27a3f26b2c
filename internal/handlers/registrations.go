package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/bitesys/registrar/internal/app"
	"github.com/bitesys/registrar/internal/events"
	"github.com/bitesys/registrar/internal/metrics"
	"github.com/bitesys/registrar/internal/models"
	"github.com/bitesys/registrar/internal/registration"
)

type RegistrationHandler struct {
	service  *app.Service
	validate *validator.Validate
}

func NewRegistrationHandler(service *app.Service) *RegistrationHandler {
	return &RegistrationHandler{
		service:  service,
		validate: validator.New(),
	}
}

type memberPayload struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"max=255"`
	Phone string `json:"phone" validate:"max=10"`
}

// registrationRequest embeds the registrant model so its validate tags gate
// the wire payload directly.
type registrationRequest struct {
	models.Registrant
	EventType string          `json:"eventType" validate:"required"`
	TeamName  string          `json:"teamName" validate:"max=100"`
	Members   []memberPayload `json:"members" validate:"max=2,dive"`
}

// observeRequest feeds the request duration histogram. Deferred at handler
// entry so the status label reflects whatever the handler settled on.
func observeRequest(r *http.Request, start time.Time, status *int) {
	metrics.APIRequestDuration.WithLabelValues(
		r.URL.Path,
		r.Method,
		fmt.Sprintf("%d", *status),
	).Observe(time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// HandleSubmit runs one registration through the submission flow and maps the
// outcome onto the wire: 200 with the confirmation payload, 400 for anything
// the user can correct, 503 when the challenge provider or the store are the
// problem.
func (h *RegistrationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	defer observeRequest(r, time.Now(), &status)

	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status = http.StatusBadRequest
		writeError(w, status, "BAD_REQUEST", "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		status = http.StatusBadRequest
		writeError(w, status, "BAD_REQUEST", "Invalid request body")
		return
	}

	form := h.buildForm(&req)

	outcome, err := h.service.Controller.Submit(r.Context(), form)
	if err != nil {
		var subErr *registration.SubmissionError
		if errors.As(err, &subErr) {
			metrics.SubmissionFailuresTotal.WithLabelValues(string(subErr.Kind), subErr.Code).Inc()
			status = http.StatusBadRequest
			if subErr.Kind != registration.KindValidation {
				status = http.StatusServiceUnavailable
				logger.Error.Printf("Submission failed (%s/%s): %v", subErr.Kind, subErr.Code, subErr.Unwrap())
			}
			writeError(w, status, subErr.Code, subErr.Message)
			return
		}

		logger.Error.Printf("Submission failed: %v", err)
		status = http.StatusInternalServerError
		writeError(w, status, "INTERNAL", "Registration failed. Please try again later.")
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(outcome.Event).Inc()
	writeJSON(w, status, map[string]interface{}{
		"status": "ok",
		"name":   outcome.Name,
		"event":  outcome.Event,
	})
}

// buildForm maps the wire payload onto a fresh form. Member slots only exist
// for team events, matching the conditional fields of the registration modal.
func (h *RegistrationHandler) buildForm(req *registrationRequest) *registration.Form {
	form := registration.NewForm()
	form.Registrant = req.Registrant
	form.SelectEvent(req.EventType)
	form.TeamName = req.TeamName

	if def, ok := events.Find(req.EventType); ok && def.IsTeamEvent() {
		roster := form.Roster()
		for i, m := range req.Members {
			if !roster.Add() {
				break
			}
			roster.Set(i, registration.FieldName, m.Name)
			roster.Set(i, registration.FieldEmail, m.Email)
			roster.Set(i, registration.FieldPhone, m.Phone)
		}
	}

	return form
}

// HandleEvents serves the catalog the registration form is built from.
func (h *RegistrationHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	defer observeRequest(r, time.Now(), &status)

	writeJSON(w, status, map[string]interface{}{
		"events": events.All(),
	})
}

// HandleList is the organizer view of registrations for one event, gated
// behind the configured header set.
func (h *RegistrationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	defer observeRequest(r, time.Now(), &status)

	if !h.service.ValidateHeaders(r.Header) {
		status = http.StatusNotFound
		http.Error(w, "these are not the droids you are looking for", status)
		return
	}

	event := r.URL.Query().Get("event")
	if event == "" {
		status = http.StatusBadRequest
		writeError(w, status, "BAD_REQUEST", "event query parameter is required")
		return
	}

	recs, err := h.service.Store.ListRegistrations(event)
	if err != nil {
		logger.Error.Printf("Failed to fetch registrations: %v", err)
		status = http.StatusInternalServerError
		writeError(w, status, "INTERNAL", "Failed to fetch registrations")
		return
	}

	writeJSON(w, status, map[string]interface{}{
		"rows": recs,
	})
}
