package coordination

import "context"

// Read projections. All of these copy out of the session under the store
// lock; none of them mutate anything.

// OpenCases lists the coordinator's active caseload: every patient whose
// care gap is not yet completed.
func (s *Service) OpenCases(ctx context.Context, sessionID string) ([]Patient, error) {
	var out []Patient
	err := s.store.With(sessionID, func(st *SessionState) error {
		for _, p := range st.Patients {
			if p.Status != PatientCompleted {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (s *Service) Patients(ctx context.Context, sessionID string) ([]Patient, error) {
	var out []Patient
	err := s.store.With(sessionID, func(st *SessionState) error {
		out = append(out, st.Patients...)
		return nil
	})
	return out, err
}

func (s *Service) Providers(ctx context.Context, sessionID string) ([]Provider, error) {
	var out []Provider
	err := s.store.With(sessionID, func(st *SessionState) error {
		out = append(out, st.Providers...)
		return nil
	})
	return out, err
}

func (s *Service) Notifications(ctx context.Context, sessionID string) ([]Notification, error) {
	var out []Notification
	err := s.store.With(sessionID, func(st *SessionState) error {
		out = append(out, st.Notifications...)
		return nil
	})
	return out, err
}

// Requests lists appointment requests, optionally filtered by status.
func (s *Service) Requests(ctx context.Context, sessionID string, status RequestStatus) ([]AppointmentRequest, error) {
	var out []AppointmentRequest
	err := s.store.With(sessionID, func(st *SessionState) error {
		for _, r := range st.Requests {
			if status != "" && r.Status != status {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

func (s *Service) PatientAppointment(ctx context.Context, sessionID string) (PatientAppointment, error) {
	var out PatientAppointment
	err := s.store.With(sessionID, func(st *SessionState) error {
		if st.PatientAppt == nil {
			return ErrNoPatientAppointment
		}
		out = *st.PatientAppt
		return nil
	})
	return out, err
}

// DailySchedule derives the single-date view: every standard tick, with
// open placeholders synthesized for unbooked ticks.
func (s *Service) DailySchedule(ctx context.Context, sessionID, date string) (DayView, error) {
	var out DayView
	err := s.store.With(sessionID, func(st *SessionState) error {
		v, err := dailySchedule(st, date)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// WeeklySchedule derives the Monday-start week view containing ref.
func (s *Service) WeeklySchedule(ctx context.Context, sessionID, ref string) (WeekView, error) {
	var out WeekView
	err := s.store.With(sessionID, func(st *SessionState) error {
		v, err := weeklySchedule(st, ref)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// EventLog returns the session's recorded transition log.
func (s *Service) EventLog(ctx context.Context, sessionID string) ([]Event, error) {
	var out []Event
	err := s.store.With(sessionID, func(st *SessionState) error {
		out = append(out, st.Events...)
		return nil
	})
	return out, err
}
