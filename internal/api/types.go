package api

import (
	"github.com/carelink/care-coordination/internal/coordination"
)

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type RoleInfo struct {
	Role string `json:"role"`
	Path string `json:"path"`
}

type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

type CallAttemptRequest struct {
	Disposition string              `json:"disposition"`
	Slots       []coordination.Slot `json:"slots,omitempty"`
}

type CallAttemptResponse struct {
	Patient coordination.Patient             `json:"patient"`
	Request *coordination.AppointmentRequest `json:"request,omitempty"`
}

type AcceptRequestBody struct {
	// Pointer so a missing selection is distinguishable from slot-0.
	SlotIndex *int `json:"slot_index"`
}

type AcceptResponse struct {
	Request     coordination.AppointmentRequest `json:"request"`
	Appointment coordination.Appointment        `json:"appointment"`
}

type DeclineRequestBody struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type RescheduleRequestBody struct {
	Slots []coordination.Slot `json:"slots"`
}

type ResolveResponse struct {
	Appointment coordination.Appointment         `json:"appointment"`
	Request     *coordination.AppointmentRequest `json:"request"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
