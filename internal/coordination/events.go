package coordination

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventSessionCreated             EventType = "SESSION_CREATED"
	EventCallLogged                 EventType = "CALL_LOGGED"
	EventRequestAccepted            EventType = "REQUEST_ACCEPTED"
	EventRequestDeclined            EventType = "REQUEST_DECLINED"
	EventRescheduleProposed         EventType = "RESCHEDULE_PROPOSED"
	EventPatientConfirmed           EventType = "PATIENT_CONFIRMED"
	EventPatientRescheduleRequested EventType = "PATIENT_RESCHEDULE_REQUESTED"
)

// Event records one lifecycle transition. The payload carries everything a
// replay needs to re-apply the transition deterministically, including any
// IDs that were generated when it first ran.
type Event struct {
	ID        int64           `json:"id"`
	Type      EventType       `json:"type"`
	SubjectID string          `json:"subject_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type acceptPayload struct {
	RequestID     string `json:"request_id"`
	SlotIndex     int    `json:"slot_index"`
	AppointmentID string `json:"appointment_id"`
}

type declinePayload struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
	Details   string `json:"details,omitempty"`
}

type reschedulePayload struct {
	RequestID string `json:"request_id"`
	Slots     []Slot `json:"slots"`
}

type callPayload struct {
	PatientID   string      `json:"patient_id"`
	Disposition Disposition `json:"disposition"`
	Slots       []Slot      `json:"slots,omitempty"`
	RequestID   string      `json:"request_id,omitempty"`
}

func (st *SessionState) recordEvent(t EventType, subjectID string, payload any) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err == nil {
			data = b
		}
	}

	st.nextEventID++
	st.Events = append(st.Events, Event{
		ID:        st.nextEventID,
		Type:      t,
		SubjectID: subjectID,
		Payload:   data,
		CreatedAt: time.Now(),
	})
}

// Replay re-applies a recorded event log onto a freshly seeded session.
// After a successful replay the request set, schedule grid and patient
// statuses match the session the log was taken from, and the applied events
// are carried into the session's own log so the result can be replayed
// again.
func Replay(st *SessionState, events []Event) error {
	for _, ev := range events {
		if err := replayOne(st, ev); err != nil {
			return fmt.Errorf("replay event %d (%s): %w", ev.ID, ev.Type, err)
		}
		st.Events = append(st.Events, ev)
		if ev.ID > st.nextEventID {
			st.nextEventID = ev.ID
		}
	}
	return nil
}

func replayOne(st *SessionState, ev Event) error {
	switch ev.Type {
	case EventSessionCreated:
		return nil

	case EventCallLogged:
		var p callPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return err
		}
		_, _, err := st.applyCallDisposition(p.PatientID, p.Disposition, p.Slots, p.RequestID)
		return err

	case EventRequestAccepted:
		var p acceptPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return err
		}
		_, _, err := st.applyAccept(p.RequestID, p.SlotIndex, p.AppointmentID)
		return err

	case EventRequestDeclined:
		var p declinePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return err
		}
		_, err := st.applyDecline(p.RequestID, DeclineReason(p.Reason), p.Details)
		return err

	case EventRescheduleProposed:
		var p reschedulePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return err
		}
		_, err := st.applyProposeReschedule(p.RequestID, p.Slots)
		return err

	case EventPatientConfirmed:
		_, err := st.applyPatientConfirm()
		return err

	case EventPatientRescheduleRequested:
		_, err := st.applyPatientReschedule()
		return err

	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}
