package coordination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carelink/care-coordination/internal/metrics"
)

var (
	ErrRequestNotFound        = errors.New("appointment request not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrRequestNotPending      = errors.New("request is not pending")
	ErrSlotIndexOutOfRange    = errors.New("selected slot index is out of range")
	ErrInvalidDeclineReason   = errors.New("decline reason is not in the enumerated set")
	ErrDeclineDetailsRequired = errors.New("decline reason 'other' requires free-text details")
	ErrRescheduleSlotCount    = errors.New("a reschedule proposal needs exactly two slots")
	ErrRescheduleNotAllowed   = errors.New("request cannot take a reschedule proposal in its current state")
	ErrIncompleteSlot         = errors.New("slot is missing a date or time")
	ErrTooManySlots           = errors.New("at most three slots may be proposed")
	ErrFirstSlotRequired      = errors.New("a scheduled disposition requires a complete first slot")
	ErrNoPatientAppointment   = errors.New("no upcoming patient appointment")
	ErrMissingRequestRef      = errors.New("appointment has no request back-reference")
)

// Service exposes the lifecycle transitions as the only mutators of session
// state. Every failure is a precondition refusal: the transition is rejected
// with a typed error and prior state is left untouched.
type Service struct {
	store       *Store
	log         zerolog.Logger
	transitions *metrics.Transitions
}

func NewService(store *Store, log zerolog.Logger, transitions *metrics.Transitions) *Service {
	return &Service{
		store:       store,
		log:         log,
		transitions: transitions,
	}
}

func (s *Service) Store() *Store { return s.store }

// CreateSession seeds a fresh session.
func (s *Service) CreateSession(ctx context.Context) (string, error) {
	st, err := s.store.CreateSession()
	if err != nil {
		return "", fmt.Errorf("seed session: %w", err)
	}
	s.log.Info().Str("session_id", st.ID).Msg("session created")
	return st.ID, nil
}

// EndSession discards a session and all of its state.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// AcceptRequest moves a pending request to accepted by the positional index
// of the chosen proposed slot. The schedule grid ends up with exactly one
// confirmed appointment for the request: a held pending entry is confirmed
// in place or released, and a fresh entry is inserted when none was held.
func (s *Service) AcceptRequest(ctx context.Context, sessionID, requestID string, slotIndex int) (AppointmentRequest, Appointment, error) {
	var (
		req  AppointmentRequest
		appt Appointment
	)
	err := s.store.With(sessionID, func(st *SessionState) error {
		apptID := uuid.NewString()
		r, a, err := st.applyAccept(requestID, slotIndex, apptID)
		if err != nil {
			return err
		}
		st.recordEvent(EventRequestAccepted, requestID, acceptPayload{
			RequestID:     requestID,
			SlotIndex:     slotIndex,
			AppointmentID: apptID,
		})
		req, appt = *r, *a
		return nil
	})
	s.transitions.Observe("accept", err)
	if err != nil {
		return AppointmentRequest{}, Appointment{}, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("request_id", requestID).
		Str("selected_slot_id", req.SelectedSlotID).
		Msg("appointment request accepted")
	return req, appt, nil
}

// DeclineRequest moves a pending request to declined. The reason must be one
// of the enumerated set; "other" additionally requires free-text details,
// which become the recorded reason. Any grid entry held for the request is
// freed.
func (s *Service) DeclineRequest(ctx context.Context, sessionID, requestID string, reason DeclineReason, details string) (AppointmentRequest, error) {
	var req AppointmentRequest
	err := s.store.With(sessionID, func(st *SessionState) error {
		r, err := st.applyDecline(requestID, reason, details)
		if err != nil {
			return err
		}
		st.recordEvent(EventRequestDeclined, requestID, declinePayload{
			RequestID: requestID,
			Reason:    string(reason),
			Details:   details,
		})
		req = *r
		return nil
	})
	s.transitions.Observe("decline", err)
	if err != nil {
		return AppointmentRequest{}, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("request_id", requestID).
		Str("reason", req.DeclineReason).
		Msg("appointment request declined")
	return req, nil
}

// ProposeReschedule records exactly two provider-proposed slots on a pending
// request (or overwrites a previous proposal). It informs the coordinator
// and patient sides but never touches the schedule grid.
func (s *Service) ProposeReschedule(ctx context.Context, sessionID, requestID string, slots []Slot) (AppointmentRequest, error) {
	var req AppointmentRequest
	err := s.store.With(sessionID, func(st *SessionState) error {
		r, err := st.applyProposeReschedule(requestID, slots)
		if err != nil {
			return err
		}
		st.recordEvent(EventRescheduleProposed, requestID, reschedulePayload{
			RequestID: requestID,
			Slots:     slots,
		})
		req = *r
		return nil
	})
	s.transitions.Observe("propose_reschedule", err)
	if err != nil {
		return AppointmentRequest{}, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("request_id", requestID).
		Msg("reschedule proposed")
	return req, nil
}

// LogCallAttempt records a coordinator call disposition against a patient.
// A "scheduled" disposition with proposed slots also creates a pending
// appointment request for the provider.
func (s *Service) LogCallAttempt(ctx context.Context, sessionID, patientID string, disposition Disposition, slots []Slot) (Patient, *AppointmentRequest, error) {
	var (
		patient Patient
		created *AppointmentRequest
	)
	err := s.store.With(sessionID, func(st *SessionState) error {
		requestID := ""
		if disposition == DispositionScheduled {
			requestID = uuid.NewString()
		}
		p, r, err := st.applyCallDisposition(patientID, disposition, slots, requestID)
		if err != nil {
			return err
		}
		st.recordEvent(EventCallLogged, patientID, callPayload{
			PatientID:   patientID,
			Disposition: disposition,
			Slots:       slots,
			RequestID:   requestID,
		})
		patient = *p
		if r != nil {
			c := *r
			created = &c
		}
		return nil
	})
	s.transitions.Observe("log_call", err)
	if err != nil {
		return Patient{}, nil, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("patient_id", patientID).
		Str("disposition", string(disposition)).
		Msg("call attempt logged")
	return patient, created, nil
}

// ConfirmPatientAppointment is the patient confirming their upcoming visit.
func (s *Service) ConfirmPatientAppointment(ctx context.Context, sessionID string) (PatientAppointment, error) {
	var appt PatientAppointment
	err := s.store.With(sessionID, func(st *SessionState) error {
		a, err := st.applyPatientConfirm()
		if err != nil {
			return err
		}
		st.recordEvent(EventPatientConfirmed, a.ID, nil)
		appt = *a
		return nil
	})
	s.transitions.Observe("patient_confirm", err)
	if err != nil {
		return PatientAppointment{}, err
	}

	s.log.Info().Str("session_id", sessionID).Msg("patient confirmed appointment")
	return appt, nil
}

// RequestPatientReschedule is the patient asking their coordinator for a new
// time.
func (s *Service) RequestPatientReschedule(ctx context.Context, sessionID string) (PatientAppointment, error) {
	var appt PatientAppointment
	err := s.store.With(sessionID, func(st *SessionState) error {
		a, err := st.applyPatientReschedule()
		if err != nil {
			return err
		}
		st.recordEvent(EventPatientRescheduleRequested, a.ID, nil)
		appt = *a
		return nil
	})
	s.transitions.Observe("patient_reschedule", err)
	if err != nil {
		return PatientAppointment{}, err
	}

	s.log.Info().Str("session_id", sessionID).Msg("patient requested reschedule")
	return appt, nil
}

// ResolveAppointment looks up an appointment and its originating request via
// the explicit back-reference. A booked appointment without one is a data
// integrity defect surfaced as ErrMissingRequestRef; the caller decides how
// to degrade.
func (s *Service) ResolveAppointment(ctx context.Context, sessionID, appointmentID string) (Appointment, *AppointmentRequest, error) {
	var (
		appt Appointment
		req  *AppointmentRequest
	)
	err := s.store.With(sessionID, func(st *SessionState) error {
		a := st.findAppointment(appointmentID)
		if a == nil {
			return ErrAppointmentNotFound
		}
		appt = *a
		if a.RequestID == "" {
			return ErrMissingRequestRef
		}
		r := st.findRequest(a.RequestID)
		if r == nil {
			return ErrMissingRequestRef
		}
		c := *r
		req = &c
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMissingRequestRef) {
			return appt, nil, err
		}
		return Appointment{}, nil, err
	}
	return appt, req, nil
}

// Reconciler: the transitions themselves, applied directly to session state.
// These are also the replay targets for the event log, so any ID generated
// during a transition is passed in rather than generated here.

func (st *SessionState) applyAccept(requestID string, slotIndex int, apptID string) (*AppointmentRequest, *Appointment, error) {
	req := st.findRequest(requestID)
	if req == nil {
		return nil, nil, ErrRequestNotFound
	}
	if req.Status != RequestPending {
		return nil, nil, ErrRequestNotPending
	}
	if slotIndex < 0 || slotIndex >= len(req.ProposedSlots) {
		return nil, nil, ErrSlotIndexOutOfRange
	}

	slot := req.ProposedSlots[slotIndex]

	req.Status = RequestAccepted
	// Selection is positional, not by value: identical slots stay
	// independently selectable.
	req.SelectedSlotID = fmt.Sprintf("slot-%d", slotIndex)
	req.DeclineReason = ""
	req.PCPProposedSlots = nil
	req.UpdatedAt = time.Now()

	// A pending grid entry may already hold one of the proposed slots for
	// this request. Confirm it in place when the provider chose that slot,
	// release it when a different slot won; either way each (date, time)
	// keeps at most one appointment.
	var appt *Appointment
	if held := st.findAppointmentByRequest(req.ID); held != nil {
		if held.Date == slot.Date && held.Time == slot.Time {
			held.Status = AppointmentConfirmed
			appt = held
		} else {
			st.removeAppointment(held.ID)
		}
	}
	if appt == nil {
		st.Appointments = append(st.Appointments, Appointment{
			ID:          apptID,
			Date:        slot.Date,
			Time:        slot.Time,
			PatientName: req.PatientName,
			CareGap:     req.CareGap,
			Status:      AppointmentConfirmed,
			RequestID:   req.ID,
		})
		appt = &st.Appointments[len(st.Appointments)-1]
	}

	if p := st.findPatient(req.PatientID); p != nil {
		p.Status = PatientConfirmed
		p.ConfirmationStatus = ConfirmationConfirmed
		p.AppointmentDate = slot.Date
	}
	st.notify("confirmation", "Provider accepted appointment", req.PatientID, req.PatientName)

	return req, appt, nil
}

func (st *SessionState) applyDecline(requestID string, reason DeclineReason, details string) (*AppointmentRequest, error) {
	req := st.findRequest(requestID)
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != RequestPending {
		return nil, ErrRequestNotPending
	}
	if !ValidDeclineReason(reason) {
		return nil, ErrInvalidDeclineReason
	}

	recorded := string(reason)
	if reason == DeclineOther {
		if details == "" {
			return nil, ErrDeclineDetailsRequired
		}
		recorded = details
	}

	req.Status = RequestDeclined
	req.DeclineReason = recorded
	req.SelectedSlotID = ""
	req.PCPProposedSlots = nil
	req.UpdatedAt = time.Now()

	// Declining frees any grid entry held for the request. Open cells are
	// synthesized at read time, so freeing means removal.
	if held := st.findAppointmentByRequest(req.ID); held != nil {
		st.removeAppointment(held.ID)
	}

	if p := st.findPatient(req.PatientID); p != nil {
		p.Status = PatientPending
		p.ConfirmationStatus = ConfirmationPending
	}

	return req, nil
}

func (st *SessionState) applyProposeReschedule(requestID string, slots []Slot) (*AppointmentRequest, error) {
	req := st.findRequest(requestID)
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != RequestPending && req.Status != RequestRescheduleProposed {
		return nil, ErrRescheduleNotAllowed
	}
	if len(slots) != 2 {
		return nil, ErrRescheduleSlotCount
	}
	for _, sl := range slots {
		if !sl.Complete() {
			return nil, ErrIncompleteSlot
		}
	}

	req.Status = RequestRescheduleProposed
	req.PCPProposedSlots = append([]Slot(nil), slots...)
	req.SelectedSlotID = ""
	req.DeclineReason = ""
	req.UpdatedAt = time.Now()

	if p := st.findPatient(req.PatientID); p != nil {
		p.Status = PatientRescheduled
		p.ConfirmationStatus = ConfirmationRescheduleRequested
	}
	st.notify("reschedule", "PCP requested reschedule", req.PatientID, req.PatientName)

	return req, nil
}

func (st *SessionState) applyCallDisposition(patientID string, disposition Disposition, slots []Slot, requestID string) (*Patient, *AppointmentRequest, error) {
	p := st.findPatient(patientID)
	if p == nil {
		return nil, nil, ErrPatientNotFound
	}

	outcome, err := MapDisposition(disposition)
	if err != nil {
		return nil, nil, err
	}

	proposed, err := normalizeSlots(slots)
	if err != nil {
		return nil, nil, err
	}

	if disposition == DispositionScheduled && len(proposed) == 0 {
		return nil, nil, ErrFirstSlotRequired
	}

	p.Status = outcome.Status
	p.ConfirmationStatus = outcome.Confirmation
	if outcome.OverwriteDate && len(proposed) > 0 {
		p.AppointmentDate = proposed[0].Date
	}

	var created *AppointmentRequest
	if disposition == DispositionScheduled {
		now := time.Now()
		st.Requests = append(st.Requests, AppointmentRequest{
			ID:            requestID,
			PatientID:     p.ID,
			PatientName:   p.Name,
			CareGap:       p.CareGap,
			ProposedSlots: proposed,
			Status:        RequestPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		created = &st.Requests[len(st.Requests)-1]
	}

	return p, created, nil
}

func (st *SessionState) applyPatientConfirm() (*PatientAppointment, error) {
	if st.PatientAppt == nil {
		return nil, ErrNoPatientAppointment
	}
	st.PatientAppt.Status = "Confirmed"

	if p := st.findPatient(st.PatientAppt.PatientID); p != nil {
		p.Status = PatientConfirmed
		p.ConfirmationStatus = ConfirmationConfirmed
		st.notify("confirmation", "Patient confirmed appointment", p.ID, p.Name)
	}

	return st.PatientAppt, nil
}

func (st *SessionState) applyPatientReschedule() (*PatientAppointment, error) {
	if st.PatientAppt == nil {
		return nil, ErrNoPatientAppointment
	}
	st.PatientAppt.Status = "Reschedule Requested"

	if p := st.findPatient(st.PatientAppt.PatientID); p != nil {
		p.Status = PatientRescheduled
		p.ConfirmationStatus = ConfirmationRescheduleRequested
		st.notify("reschedule", "Patient requested reschedule", p.ID, p.Name)
	}

	return st.PatientAppt, nil
}

func (st *SessionState) notify(kind, message, patientID, patientName string) {
	st.Notifications = append(st.Notifications, Notification{
		ID:          fmt.Sprintf("ntf-%d", len(st.Notifications)+1),
		Type:        kind,
		Message:     message,
		PatientID:   patientID,
		PatientName: patientName,
		CreatedAt:   time.Now(),
	})
}

// normalizeSlots drops untouched slot inputs, rejects half-filled ones, and
// caps the proposal at three slots.
func normalizeSlots(slots []Slot) ([]Slot, error) {
	var out []Slot
	for _, sl := range slots {
		if sl.Date == "" && sl.Time == "" {
			continue
		}
		if !sl.Complete() {
			return nil, ErrIncompleteSlot
		}
		out = append(out, sl)
	}
	if len(out) > 3 {
		return nil, ErrTooManySlots
	}
	return out, nil
}
