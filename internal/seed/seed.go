// Package seed supplies the synthetic datasets sessions start from. A
// dataset pins appointments and proposed slots to weekday offsets; they are
// resolved against the current Monday-start week when a session is seeded,
// so the demo schedule always lands in the visible week.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/carelink/care-coordination/internal/coordination"
)

const dateLayout = "2006-01-02"

// SlotSeed is a slot pinned to a weekday offset (0 = Monday).
type SlotSeed struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type AppointmentSeed struct {
	ID          string `json:"id"`
	Day         int    `json:"day"`
	Time        string `json:"time"`
	PatientName string `json:"patient_name"`
	CareGap     string `json:"care_gap,omitempty"`
	Status      string `json:"status"`
	RequestID   string `json:"request_id,omitempty"`
}

type RequestSeed struct {
	ID               string     `json:"id"`
	PatientID        string     `json:"patient_id"`
	PatientName      string     `json:"patient_name"`
	CareGap          string     `json:"care_gap"`
	ProposedSlots    []SlotSeed `json:"proposed_slots"`
	PCPProposedSlots []SlotSeed `json:"pcp_proposed_slots,omitempty"`
	Status           string     `json:"status"`
}

type NotificationSeed struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	PatientID   string `json:"patient_id,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	AgeHours    int    `json:"age_hours"`
}

type PatientAppointmentSeed struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Day       int    `json:"day"`
	Time      string `json:"time"`
	Doctor    string `json:"doctor"`
	Office    string `json:"office"`
	Address   string `json:"address"`
	CareGap   string `json:"care_gap"`
	Status    string `json:"status"`
}

// Dataset is everything a fresh session is populated with.
type Dataset struct {
	Patients           []coordination.Patient  `json:"patients"`
	Providers          []coordination.Provider `json:"providers"`
	Notifications      []NotificationSeed      `json:"notifications"`
	Appointments       []AppointmentSeed       `json:"appointments"`
	Requests           []RequestSeed           `json:"requests"`
	PatientAppointment *PatientAppointmentSeed `json:"patient_appointment,omitempty"`
}

// Validate checks the dataset against the data model: request slot counts,
// booked appointments carrying patient names, one appointment per (day,
// time).
func Validate(ds Dataset) error {
	occupied := make(map[string]bool)
	for _, a := range ds.Appointments {
		if a.Status == string(coordination.AppointmentOpen) {
			return fmt.Errorf("appointment %s: open cells are synthesized, not seeded", a.ID)
		}
		if a.PatientName == "" {
			return fmt.Errorf("appointment %s: booked appointment needs a patient name", a.ID)
		}
		key := fmt.Sprintf("%d/%s", a.Day, a.Time)
		if occupied[key] {
			return fmt.Errorf("appointment %s: duplicate slot %s", a.ID, key)
		}
		occupied[key] = true
	}

	for _, r := range ds.Requests {
		if n := len(r.ProposedSlots); n < 1 || n > 3 {
			return fmt.Errorf("request %s: needs 1-3 proposed slots, has %d", r.ID, n)
		}
		if n := len(r.PCPProposedSlots); n != 0 && n != 2 {
			return fmt.Errorf("request %s: pcp proposal needs exactly 2 slots, has %d", r.ID, n)
		}
	}
	return nil
}

// Seeder resolves a dataset into fresh session state. It implements
// coordination.Seeder.
type Seeder struct {
	ds  Dataset
	now func() time.Time
}

func NewSeeder(ds Dataset) *Seeder {
	return &Seeder{ds: ds, now: time.Now}
}

// NewSeederAt pins the reference clock; tests use it to get stable weeks.
func NewSeederAt(ds Dataset, now func() time.Time) *Seeder {
	return &Seeder{ds: ds, now: now}
}

func (s *Seeder) Seed() (*coordination.SessionState, error) {
	if err := Validate(s.ds); err != nil {
		return nil, fmt.Errorf("invalid seed dataset: %w", err)
	}

	now := s.now()
	monday := coordination.WeekStart(now)
	dateFor := func(day int) string {
		return monday.AddDate(0, 0, day).Format(dateLayout)
	}
	resolveSlots := func(seeds []SlotSeed) []coordination.Slot {
		if len(seeds) == 0 {
			return nil
		}
		slots := make([]coordination.Slot, 0, len(seeds))
		for _, sl := range seeds {
			slots = append(slots, coordination.Slot{Date: dateFor(sl.Day), Time: sl.Time})
		}
		return slots
	}

	patients := append([]coordination.Patient(nil), s.ds.Patients...)
	providers := append([]coordination.Provider(nil), s.ds.Providers...)

	notifications := make([]coordination.Notification, 0, len(s.ds.Notifications))
	for _, n := range s.ds.Notifications {
		notifications = append(notifications, coordination.Notification{
			ID:          n.ID,
			Type:        n.Type,
			Message:     n.Message,
			PatientID:   n.PatientID,
			PatientName: n.PatientName,
			CreatedAt:   now.Add(-time.Duration(n.AgeHours) * time.Hour),
		})
	}

	appointments := make([]coordination.Appointment, 0, len(s.ds.Appointments))
	for _, a := range s.ds.Appointments {
		appointments = append(appointments, coordination.Appointment{
			ID:          a.ID,
			Date:        dateFor(a.Day),
			Time:        a.Time,
			PatientName: a.PatientName,
			CareGap:     a.CareGap,
			Status:      coordination.AppointmentStatus(a.Status),
			RequestID:   a.RequestID,
		})
	}

	requests := make([]coordination.AppointmentRequest, 0, len(s.ds.Requests))
	for _, r := range s.ds.Requests {
		status := coordination.RequestStatus(r.Status)
		if status == "" {
			status = coordination.RequestPending
		}
		requests = append(requests, coordination.AppointmentRequest{
			ID:               r.ID,
			PatientID:        r.PatientID,
			PatientName:      r.PatientName,
			CareGap:          r.CareGap,
			ProposedSlots:    resolveSlots(r.ProposedSlots),
			PCPProposedSlots: resolveSlots(r.PCPProposedSlots),
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	var patientAppt *coordination.PatientAppointment
	if pa := s.ds.PatientAppointment; pa != nil {
		patientAppt = &coordination.PatientAppointment{
			ID:        pa.ID,
			PatientID: pa.PatientID,
			Date:      dateFor(pa.Day),
			Time:      pa.Time,
			Doctor:    pa.Doctor,
			Office:    pa.Office,
			Address:   pa.Address,
			CareGap:   pa.CareGap,
			Status:    pa.Status,
		}
	}

	return coordination.NewSessionState(patients, providers, notifications, requests, appointments, patientAppt), nil
}

// LoadFile reads a dataset generated by cmd/seed.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse seed file: %w", err)
	}
	if err := Validate(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// WriteFile stores a dataset where the server can pick it up via SEED_FILE.
func WriteFile(path string, ds Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}
