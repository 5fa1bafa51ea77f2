package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carelink/care-coordination/internal/coordination"
)

func createSessionHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.CreateSession(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, SessionResponse{SessionID: id})
	}
}

func deleteSessionHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// rolesHandler is the landing surface: the four addressable views.
func rolesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RolesResponse{Roles: []RoleInfo{
		{Role: "landing", Path: "/"},
		{Role: "coordinator", Path: "/sessions/{sessionID}/coordinator"},
		{Role: "provider", Path: "/sessions/{sessionID}/provider"},
		{Role: "patient", Path: "/sessions/{sessionID}/patient"},
	}})
}

// fallbackHandler sends unknown addresses back to the landing surface.
func fallbackHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Coordinator surface

func listOpenCasesHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cases, err := svc.OpenCases(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cases)
	}
}

func listPatientsHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.Patients(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, patients)
	}
}

func listProvidersHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers, err := svc.Providers(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, providers)
	}
}

func listNotificationsHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notifications, err := svc.Notifications(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, notifications)
	}
}

func logCallAttemptHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CallAttemptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Disposition == "" {
			writeError(w, http.StatusUnprocessableEntity, "disposition_required", "a call disposition must be selected")
			return
		}

		patient, created, err := svc.LogCallAttempt(
			r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "patientID"),
			coordination.Disposition(req.Disposition),
			req.Slots,
		)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, CallAttemptResponse{Patient: patient, Request: created})
	}
}

// Provider surface

func listRequestsHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := coordination.RequestStatus(r.URL.Query().Get("status"))
		requests, err := svc.Requests(r.Context(), chi.URLParam(r, "sessionID"), status)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, requests)
	}
}

func scheduleHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		switch view := r.URL.Query().Get("view"); view {
		case "", "daily":
			day, err := svc.DailySchedule(r.Context(), sessionID, date)
			if err != nil {
				handleError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, day)
		case "weekly":
			week, err := svc.WeeklySchedule(r.Context(), sessionID, date)
			if err != nil {
				handleError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, week)
		default:
			writeError(w, http.StatusUnprocessableEntity, "invalid_view", "view must be daily or weekly")
		}
	}
}

func acceptRequestHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AcceptRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if body.SlotIndex == nil {
			writeError(w, http.StatusUnprocessableEntity, "no_slot_selected", "one of the proposed slots must be selected")
			return
		}

		req, appt, err := svc.AcceptRequest(
			r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "requestID"),
			*body.SlotIndex,
		)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AcceptResponse{Request: req, Appointment: appt})
	}
}

func declineRequestHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body DeclineRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if body.Reason == "" {
			writeError(w, http.StatusUnprocessableEntity, "reason_required", "a decline reason must be selected")
			return
		}

		req, err := svc.DeclineRequest(
			r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "requestID"),
			coordination.DeclineReason(body.Reason),
			body.Details,
		)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func proposeRescheduleHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RescheduleRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		req, err := svc.ProposeReschedule(
			r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "requestID"),
			body.Slots,
		)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func resolveAppointmentHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, req, err := svc.ResolveAppointment(
			r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "appointmentID"),
		)
		if err != nil {
			// A booked appointment without a request back-reference degrades
			// to a response with no linked request.
			if errors.Is(err, coordination.ErrMissingRequestRef) {
				writeJSON(w, http.StatusOK, ResolveResponse{Appointment: appt, Request: nil})
				return
			}
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResolveResponse{Appointment: appt, Request: req})
	}
}

// Patient surface

func patientAppointmentHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.PatientAppointment(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, appt)
	}
}

func patientConfirmHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.ConfirmPatientAppointment(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, appt)
	}
}

func patientRescheduleHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.RequestPatientReschedule(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, appt)
	}
}

func eventLogHandler(svc *coordination.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.EventLog(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coordination.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, coordination.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "request_not_found", err.Error())
	case errors.Is(err, coordination.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, coordination.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, coordination.ErrNoPatientAppointment):
		writeError(w, http.StatusNotFound, "no_patient_appointment", err.Error())
	case errors.Is(err, coordination.ErrRequestNotPending):
		writeError(w, http.StatusConflict, "request_not_pending", err.Error())
	case errors.Is(err, coordination.ErrRescheduleNotAllowed):
		writeError(w, http.StatusConflict, "reschedule_not_allowed", err.Error())
	case errors.Is(err, coordination.ErrSlotIndexOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "slot_index_out_of_range", err.Error())
	case errors.Is(err, coordination.ErrInvalidDeclineReason):
		writeError(w, http.StatusUnprocessableEntity, "invalid_decline_reason", err.Error())
	case errors.Is(err, coordination.ErrDeclineDetailsRequired):
		writeError(w, http.StatusUnprocessableEntity, "decline_details_required", err.Error())
	case errors.Is(err, coordination.ErrRescheduleSlotCount):
		writeError(w, http.StatusUnprocessableEntity, "reschedule_slot_count", err.Error())
	case errors.Is(err, coordination.ErrIncompleteSlot):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_slot", err.Error())
	case errors.Is(err, coordination.ErrTooManySlots):
		writeError(w, http.StatusUnprocessableEntity, "too_many_slots", err.Error())
	case errors.Is(err, coordination.ErrFirstSlotRequired):
		writeError(w, http.StatusUnprocessableEntity, "first_slot_required", err.Error())
	case errors.Is(err, coordination.ErrUnknownDisposition):
		writeError(w, http.StatusUnprocessableEntity, "unknown_disposition", err.Error())
	case errors.Is(err, coordination.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, "invalid_date", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
