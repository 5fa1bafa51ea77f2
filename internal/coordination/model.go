package coordination

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending            RequestStatus = "pending"
	RequestAccepted           RequestStatus = "accepted"
	RequestDeclined           RequestStatus = "declined"
	RequestRescheduleProposed RequestStatus = "reschedule_proposed_by_pcp"
)

type AppointmentStatus string

const (
	AppointmentOpen      AppointmentStatus = "open"
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
)

type DeclineReason string

const (
	DeclineNotAvailable     DeclineReason = "not-available"
	DeclineNotMyPatient     DeclineReason = "not-my-patient"
	DeclineClinicalReason   DeclineReason = "clinical-reason"
	DeclineScheduleConflict DeclineReason = "schedule-conflict"
	DeclineOther            DeclineReason = "other"
)

type PatientStatus string

const (
	PatientPending     PatientStatus = "Pending"
	PatientScheduled   PatientStatus = "Scheduled"
	PatientConfirmed   PatientStatus = "Confirmed"
	PatientRescheduled PatientStatus = "Rescheduled"
	PatientCompleted   PatientStatus = "Completed"
)

type ConfirmationStatus string

const (
	ConfirmationPending             ConfirmationStatus = "Pending"
	ConfirmationPendingProvider     ConfirmationStatus = "Pending Provider Confirmation"
	ConfirmationConfirmed           ConfirmationStatus = "Confirmed"
	ConfirmationRescheduleRequested ConfirmationStatus = "Reschedule Requested"
	ConfirmationCompleted           ConfirmationStatus = "Completed"
)

// Slot is a (date, time) pair, the atomic unit of scheduling.
// Date is "2006-01-02", Time is "15:04" local clock time.
// Equality is structural.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Complete reports whether both halves of the slot are present.
func (s Slot) Complete() bool {
	return s.Date != "" && s.Time != ""
}

// AppointmentRequest is a patient's care gap plus the slots a coordinator
// proposed for it, carrying its lifecycle status. Exactly one of
// SelectedSlotID, DeclineReason and PCPProposedSlots is populated at a time,
// matching the current status.
type AppointmentRequest struct {
	ID               string        `json:"id"`
	PatientID        string        `json:"patient_id"`
	PatientName      string        `json:"patient_name"`
	CareGap          string        `json:"care_gap"`
	ProposedSlots    []Slot        `json:"proposed_slots"`
	PCPProposedSlots []Slot        `json:"pcp_proposed_slots,omitempty"`
	Status           RequestStatus `json:"status"`
	SelectedSlotID   string        `json:"selected_slot_id,omitempty"`
	DeclineReason    string        `json:"decline_reason,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Appointment is a booked schedule grid entry. Open cells are synthesized at
// read time by the schedule views and never stored.
type Appointment struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	PatientName string            `json:"patient_name"`
	CareGap     string            `json:"care_gap,omitempty"`
	Status      AppointmentStatus `json:"status"`
	RequestID   string            `json:"request_id,omitempty"`
}

// Patient is the coordinator-side view of an assigned patient.
type Patient struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	CareGap            string             `json:"care_gap"`
	Status             PatientStatus      `json:"status"`
	AssignedPCP        string             `json:"assigned_pcp"`
	AppointmentDate    string             `json:"appointment_date"`
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status"`
}

type ProviderSchedule struct {
	Days  []string `json:"days"`
	Hours string   `json:"hours"`
}

type Provider struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Specialty    string            `json:"specialty"`
	Location     string            `json:"location"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	PatientCount int               `json:"patient_count"`
	Status       string            `json:"status"`
	Schedule     *ProviderSchedule `json:"schedule,omitempty"`
}

type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	PatientID   string    `json:"patient_id,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientAppointment is the patient-facing view of their upcoming visit.
type PatientAppointment struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Doctor    string `json:"doctor"`
	Office    string `json:"office"`
	Address   string `json:"address"`
	CareGap   string `json:"care_gap"`
	Status    string `json:"status"`
}

// SessionState is the full state of one demo session: independently owned
// request and appointment collections plus the seeded coordinator and
// patient surfaces. A request never owns a schedule entry; it only produces
// one on acceptance.
type SessionState struct {
	ID            string
	Patients      []Patient
	Providers     []Provider
	Notifications []Notification
	Requests      []AppointmentRequest
	Appointments  []Appointment
	PatientAppt   *PatientAppointment
	Events        []Event
	nextEventID   int64
	CreatedAt     time.Time
	LastSeen      time.Time
}

// NewSessionState wraps seeded collections into a session with a fresh ID.
func NewSessionState(patients []Patient, providers []Provider, notifications []Notification,
	requests []AppointmentRequest, appointments []Appointment, patientAppt *PatientAppointment) *SessionState {

	now := time.Now()
	return &SessionState{
		ID:            uuid.NewString(),
		Patients:      patients,
		Providers:     providers,
		Notifications: notifications,
		Requests:      requests,
		Appointments:  appointments,
		PatientAppt:   patientAppt,
		CreatedAt:     now,
		LastSeen:      now,
	}
}

func (st *SessionState) findRequest(id string) *AppointmentRequest {
	for i := range st.Requests {
		if st.Requests[i].ID == id {
			return &st.Requests[i]
		}
	}
	return nil
}

func (st *SessionState) findPatient(id string) *Patient {
	for i := range st.Patients {
		if st.Patients[i].ID == id {
			return &st.Patients[i]
		}
	}
	return nil
}

func (st *SessionState) findAppointment(id string) *Appointment {
	for i := range st.Appointments {
		if st.Appointments[i].ID == id {
			return &st.Appointments[i]
		}
	}
	return nil
}

func (st *SessionState) findAppointmentByRequest(requestID string) *Appointment {
	if requestID == "" {
		return nil
	}
	for i := range st.Appointments {
		if st.Appointments[i].RequestID == requestID {
			return &st.Appointments[i]
		}
	}
	return nil
}

func (st *SessionState) removeAppointment(id string) {
	for i := range st.Appointments {
		if st.Appointments[i].ID == id {
			st.Appointments = append(st.Appointments[:i], st.Appointments[i+1:]...)
			return
		}
	}
}

// AppointmentAt looks up the booked appointment occupying (date, tick).
// At most one appointment exists per (date, time).
func (st *SessionState) AppointmentAt(date, tick string) *Appointment {
	for i := range st.Appointments {
		if st.Appointments[i].Date == date && st.Appointments[i].Time == tick {
			return &st.Appointments[i]
		}
	}
	return nil
}

// ValidDeclineReason reports whether r is one of the enumerated reasons.
func ValidDeclineReason(r DeclineReason) bool {
	switch r {
	case DeclineNotAvailable, DeclineNotMyPatient, DeclineClinicalReason,
		DeclineScheduleConflict, DeclineOther:
		return true
	}
	return false
}
