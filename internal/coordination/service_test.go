package coordination

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSeeder struct {
	build func() *SessionState
}

func (s staticSeeder) Seed() (*SessionState, error) {
	return s.build(), nil
}

func sarahState() *SessionState {
	patients := []Patient{
		{ID: "1", Name: "Sarah Johnson", CareGap: "Annual Physical", Status: PatientScheduled, AssignedPCP: "Dr. Michael Chen", AppointmentDate: "2024-02-15", ConfirmationStatus: ConfirmationPendingProvider},
	}
	requests := []AppointmentRequest{
		{
			ID:          "req1",
			PatientID:   "1",
			PatientName: "Sarah Johnson",
			CareGap:     "Annual Physical",
			ProposedSlots: []Slot{
				{Date: "2024-02-20", Time: "09:00"},
				{Date: "2024-02-21", Time: "10:30"},
				{Date: "2024-02-22", Time: "14:00"},
			},
			Status: RequestPending,
		},
	}
	appointments := []Appointment{
		{ID: "apt-existing", Date: "2024-02-19", Time: "09:30", PatientName: "Robert Martinez", CareGap: "Diabetes Check", Status: AppointmentConfirmed},
	}
	patientAppt := &PatientAppointment{
		ID: "appt-sarah", PatientID: "1", Date: "2024-02-20", Time: "09:00",
		Doctor: "Dr. Michael Chen", Office: "Main Street Medical Center",
		CareGap: "Annual Physical", Status: "Pending Confirmation",
	}
	return NewSessionState(patients, nil, nil, requests, appointments, patientAppt)
}

// pairedState adds the grid entry a coordinator books alongside a request:
// a pending appointment holding req1's first proposed slot.
func pairedState() *SessionState {
	st := sarahState()
	st.Appointments = append(st.Appointments, Appointment{
		ID:          "apt-hold",
		Date:        "2024-02-20",
		Time:        "09:00",
		PatientName: "Sarah Johnson",
		CareGap:     "Annual Physical",
		Status:      AppointmentPending,
		RequestID:   "req1",
	})
	return st
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	store := NewStore(staticSeeder{build: sarahState})
	svc := NewService(store, zerolog.Nop(), nil)
	id, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return svc, id
}

func TestAcceptRequest(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	req, appt, err := svc.AcceptRequest(ctx, sid, "req1", 1)
	require.NoError(t, err)

	assert.Equal(t, RequestAccepted, req.Status)
	assert.Equal(t, "slot-1", req.SelectedSlotID)
	assert.Empty(t, req.DeclineReason)
	assert.Empty(t, req.PCPProposedSlots)

	assert.Equal(t, AppointmentConfirmed, appt.Status)
	assert.Equal(t, "2024-02-21", appt.Date)
	assert.Equal(t, "10:30", appt.Time)
	assert.Equal(t, "Sarah Johnson", appt.PatientName)
	assert.Equal(t, "req1", appt.RequestID)

	// Exactly one appointment was inserted; the existing one is untouched.
	day, err := svc.DailySchedule(ctx, sid, "2024-02-19")
	require.NoError(t, err)
	var robert *Appointment
	for i := range day.Cells {
		if day.Cells[i].PatientName == "Robert Martinez" {
			robert = &day.Cells[i]
		}
	}
	require.NotNil(t, robert)
	assert.Equal(t, AppointmentConfirmed, robert.Status)

	// The patient side follows.
	patients, err := svc.Patients(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, PatientConfirmed, patients[0].Status)
	assert.Equal(t, ConfirmationConfirmed, patients[0].ConfirmationStatus)
	assert.Equal(t, "2024-02-21", patients[0].AppointmentDate)
}

func TestAcceptRequestRejections(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.AcceptRequest(ctx, sid, "nope", 0)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, _, err = svc.AcceptRequest(ctx, sid, "req1", 3)
	assert.ErrorIs(t, err, ErrSlotIndexOutOfRange)

	_, _, err = svc.AcceptRequest(ctx, sid, "req1", -1)
	assert.ErrorIs(t, err, ErrSlotIndexOutOfRange)

	// A rejected accept leaves the request pending and the grid unchanged.
	reqs, err := svc.Requests(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, RequestPending, reqs[0].Status)

	_, _, err = svc.AcceptRequest(ctx, sid, "req1", 0)
	require.NoError(t, err)

	_, _, err = svc.AcceptRequest(ctx, sid, "req1", 0)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestAcceptConfirmsHeldSlotInPlace(t *testing.T) {
	store := NewStore(staticSeeder{build: pairedState})
	svc := NewService(store, zerolog.Nop(), nil)
	ctx := context.Background()
	sid, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, appt, err := svc.AcceptRequest(ctx, sid, "req1", 0)
	require.NoError(t, err)

	// The held entry is confirmed in place, not duplicated.
	assert.Equal(t, "apt-hold", appt.ID)
	assert.Equal(t, AppointmentConfirmed, appt.Status)

	require.NoError(t, store.With(sid, func(st *SessionState) error {
		count := 0
		for _, a := range st.Appointments {
			if a.Date == "2024-02-20" && a.Time == "09:00" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		cell := st.AppointmentAt("2024-02-20", "09:00")
		require.NotNil(t, cell)
		assert.Equal(t, AppointmentConfirmed, cell.Status)
		return nil
	}))

	day, err := svc.DailySchedule(ctx, sid, "2024-02-20")
	require.NoError(t, err)
	for _, cell := range day.Cells {
		if cell.Time == "09:00" {
			assert.Equal(t, AppointmentConfirmed, cell.Status)
		}
	}
}

func TestAcceptReleasesHeldSlotWhenAnotherChosen(t *testing.T) {
	store := NewStore(staticSeeder{build: pairedState})
	svc := NewService(store, zerolog.Nop(), nil)
	ctx := context.Background()
	sid, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, appt, err := svc.AcceptRequest(ctx, sid, "req1", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-21", appt.Date)
	assert.Equal(t, "10:30", appt.Time)
	assert.Equal(t, AppointmentConfirmed, appt.Status)

	require.NoError(t, store.With(sid, func(st *SessionState) error {
		assert.Nil(t, st.AppointmentAt("2024-02-20", "09:00"))
		chosen := st.AppointmentAt("2024-02-21", "10:30")
		require.NotNil(t, chosen)
		assert.Equal(t, "req1", chosen.RequestID)
		return nil
	}))
}

func TestDeclineReleasesHeldSlot(t *testing.T) {
	store := NewStore(staticSeeder{build: pairedState})
	svc := NewService(store, zerolog.Nop(), nil)
	ctx := context.Background()
	sid, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.DeclineRequest(ctx, sid, "req1", DeclineNotAvailable, "")
	require.NoError(t, err)

	require.NoError(t, store.With(sid, func(st *SessionState) error {
		assert.Nil(t, st.AppointmentAt("2024-02-20", "09:00"))
		return nil
	}))

	day, err := svc.DailySchedule(ctx, sid, "2024-02-20")
	require.NoError(t, err)
	for _, cell := range day.Cells {
		assert.Equal(t, AppointmentOpen, cell.Status)
	}
}

func TestDeclineRequest(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	req, err := svc.DeclineRequest(ctx, sid, "req1", DeclineScheduleConflict, "")
	require.NoError(t, err)
	assert.Equal(t, RequestDeclined, req.Status)
	assert.Equal(t, "schedule-conflict", req.DeclineReason)
	assert.Empty(t, req.SelectedSlotID)

	// Schedule grid unchanged: only the seeded appointment exists.
	day, err := svc.DailySchedule(ctx, sid, "2024-02-20")
	require.NoError(t, err)
	for _, cell := range day.Cells {
		assert.Equal(t, AppointmentOpen, cell.Status)
	}
}

func TestDeclineRequestRejections(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	_, err := svc.DeclineRequest(ctx, sid, "req1", "bogus-reason", "")
	assert.ErrorIs(t, err, ErrInvalidDeclineReason)

	_, err = svc.DeclineRequest(ctx, sid, "req1", DeclineOther, "")
	assert.ErrorIs(t, err, ErrDeclineDetailsRequired)

	reqs, err := svc.Requests(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, RequestPending, reqs[0].Status)
	assert.Empty(t, reqs[0].DeclineReason)

	req, err := svc.DeclineRequest(ctx, sid, "req1", DeclineOther, "patient moved out of state")
	require.NoError(t, err)
	assert.Equal(t, "patient moved out of state", req.DeclineReason)
}

func TestProposeReschedule(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	slots := []Slot{
		{Date: "2024-03-01", Time: "09:00"},
		{Date: "2024-03-02", Time: "11:00"},
	}
	req, err := svc.ProposeReschedule(ctx, sid, "req1", slots)
	require.NoError(t, err)
	assert.Equal(t, RequestRescheduleProposed, req.Status)
	assert.Equal(t, slots, req.PCPProposedSlots)
	assert.Empty(t, req.SelectedSlotID)
	assert.Empty(t, req.DeclineReason)

	// Repeatable: a second proposal overwrites the first.
	slots2 := []Slot{
		{Date: "2024-03-05", Time: "10:00"},
		{Date: "2024-03-06", Time: "15:30"},
	}
	req, err = svc.ProposeReschedule(ctx, sid, "req1", slots2)
	require.NoError(t, err)
	assert.Equal(t, RequestRescheduleProposed, req.Status)
	assert.Equal(t, slots2, req.PCPProposedSlots)

	// Schedule grid untouched.
	day, err := svc.DailySchedule(ctx, sid, "2024-03-01")
	require.NoError(t, err)
	for _, cell := range day.Cells {
		assert.Equal(t, AppointmentOpen, cell.Status)
	}
}

func TestProposeRescheduleRejections(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	_, err := svc.ProposeReschedule(ctx, sid, "req1", []Slot{{Date: "2024-03-01", Time: "09:00"}})
	assert.ErrorIs(t, err, ErrRescheduleSlotCount)

	_, err = svc.ProposeReschedule(ctx, sid, "req1", []Slot{
		{Date: "2024-03-01", Time: "09:00"},
		{Date: "2024-03-02"},
	})
	assert.ErrorIs(t, err, ErrIncompleteSlot)

	_, err = svc.ProposeReschedule(ctx, sid, "req1", []Slot{
		{Date: "2024-03-01", Time: "09:00"},
		{Time: "11:00"},
	})
	assert.ErrorIs(t, err, ErrIncompleteSlot)

	reqs, err := svc.Requests(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, RequestPending, reqs[0].Status)
	assert.Empty(t, reqs[0].PCPProposedSlots)

	// Terminal states take no further proposals.
	_, err = svc.DeclineRequest(ctx, sid, "req1", DeclineNotAvailable, "")
	require.NoError(t, err)
	_, err = svc.ProposeReschedule(ctx, sid, "req1", []Slot{
		{Date: "2024-03-01", Time: "09:00"},
		{Date: "2024-03-02", Time: "11:00"},
	})
	assert.ErrorIs(t, err, ErrRescheduleNotAllowed)
}

func TestLogCallAttemptScheduled(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	patient, created, err := svc.LogCallAttempt(ctx, sid, "1", DispositionScheduled, []Slot{
		{Date: "2024-03-04", Time: "10:00"},
		{Date: "2024-03-05", Time: "11:30"},
	})
	require.NoError(t, err)

	assert.Equal(t, PatientScheduled, patient.Status)
	assert.Equal(t, ConfirmationPendingProvider, patient.ConfirmationStatus)
	assert.Equal(t, "2024-03-04", patient.AppointmentDate)

	require.NotNil(t, created)
	assert.Equal(t, RequestPending, created.Status)
	assert.Equal(t, "Sarah Johnson", created.PatientName)
	assert.Len(t, created.ProposedSlots, 2)
}

func TestLogCallAttemptNonScheduled(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	for _, d := range []Disposition{
		DispositionVoicemail,
		DispositionHangUp,
		DispositionInsuranceExpired,
		DispositionPatientDeceased,
		DispositionChangedPCP,
	} {
		patient, created, err := svc.LogCallAttempt(ctx, sid, "1", d, nil)
		require.NoError(t, err, "disposition %s", d)
		assert.Equal(t, PatientPending, patient.Status)
		assert.Equal(t, ConfirmationPending, patient.ConfirmationStatus)
		assert.Nil(t, created)
		// The appointment date is never overwritten outside "scheduled".
		assert.Equal(t, "2024-02-15", patient.AppointmentDate)
	}
}

func TestLogCallAttemptRejections(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.LogCallAttempt(ctx, sid, "1", "carrier pigeon", nil)
	assert.ErrorIs(t, err, ErrUnknownDisposition)

	_, _, err = svc.LogCallAttempt(ctx, sid, "missing", DispositionVoicemail, nil)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, _, err = svc.LogCallAttempt(ctx, sid, "1", DispositionScheduled, nil)
	assert.ErrorIs(t, err, ErrFirstSlotRequired)

	_, _, err = svc.LogCallAttempt(ctx, sid, "1", DispositionScheduled, []Slot{{Date: "2024-03-04"}})
	assert.ErrorIs(t, err, ErrIncompleteSlot)

	// Nothing changed.
	patients, err := svc.Patients(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, PatientScheduled, patients[0].Status)
}

func TestPatientConfirmAndReschedule(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	appt, err := svc.ConfirmPatientAppointment(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", appt.Status)

	patients, err := svc.Patients(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, PatientConfirmed, patients[0].Status)

	appt, err = svc.RequestPatientReschedule(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Reschedule Requested", appt.Status)

	patients, err = svc.Patients(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, PatientRescheduled, patients[0].Status)
	assert.Equal(t, ConfirmationRescheduleRequested, patients[0].ConfirmationStatus)
}

func TestResolveAppointment(t *testing.T) {
	svc, sid := newTestService(t)
	ctx := context.Background()

	_, appt, err := svc.AcceptRequest(ctx, sid, "req1", 0)
	require.NoError(t, err)

	got, req, err := svc.ResolveAppointment(ctx, sid, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, got.ID)
	require.NotNil(t, req)
	assert.Equal(t, "req1", req.ID)

	// The seeded appointment has no back-reference: a data-integrity
	// defect, surfaced as a typed error with the appointment attached.
	got, req, err = svc.ResolveAppointment(ctx, sid, "apt-existing")
	assert.ErrorIs(t, err, ErrMissingRequestRef)
	assert.Equal(t, "apt-existing", got.ID)
	assert.Nil(t, req)

	_, _, err = svc.ResolveAppointment(ctx, sid, "ghost")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestSessionNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.AcceptRequest(ctx, "no-such-session", "req1", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Patients(ctx, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
