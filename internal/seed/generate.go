package seed

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/carelink/care-coordination/internal/coordination"
)

var careGaps = []string{
	"Annual Physical",
	"Diabetes Check",
	"Mammogram",
	"Cardiac Screening",
	"Colonoscopy",
	"Follow-up",
	"Consultation",
	"Check-up",
}

var specialties = []string{
	"Internal Medicine",
	"Family Medicine",
	"Cardiology",
	"Endocrinology",
	"Oncology",
	"Pediatrics",
}

// GenerateOptions sizes a synthetic dataset.
type GenerateOptions struct {
	Patients  int
	Providers int
	Requests  int
}

// Generate builds a randomized dataset. It keeps the same shape as Demo():
// each generated request gets a matching pending appointment in the week,
// spread across weekday/tick combinations so the schedule stays collision
// free.
func Generate(opts GenerateOptions) Dataset {
	if opts.Patients <= 0 {
		opts.Patients = 10
	}
	if opts.Providers <= 0 {
		opts.Providers = 6
	}
	if opts.Requests <= 0 || opts.Requests > opts.Patients {
		opts.Requests = opts.Patients / 2
	}
	// The weekday/tick grid has 80 cells; three slots per request tops out
	// around 25 requests before seeds would collide.
	if opts.Requests > 25 {
		opts.Requests = 25
	}

	providers := make([]coordination.Provider, 0, opts.Providers)
	for i := 0; i < opts.Providers; i++ {
		name := "Dr. " + gofakeit.Name()
		providers = append(providers, coordination.Provider{
			ID:           fmt.Sprintf("%d", i+1),
			Name:         name,
			Specialty:    specialties[gofakeit.Number(0, len(specialties)-1)],
			Location:     gofakeit.Company() + " Medical Center",
			Phone:        gofakeit.Phone(),
			Email:        gofakeit.Email(),
			PatientCount: gofakeit.Number(5, 30),
			Status:       "Active",
		})
	}

	patients := make([]coordination.Patient, 0, opts.Patients)
	for i := 0; i < opts.Patients; i++ {
		patients = append(patients, coordination.Patient{
			ID:                 fmt.Sprintf("%d", i+1),
			Name:               gofakeit.Name(),
			CareGap:            careGaps[gofakeit.Number(0, len(careGaps)-1)],
			Status:             coordination.PatientPending,
			AssignedPCP:        providers[gofakeit.Number(0, len(providers)-1)].Name,
			AppointmentDate:    gofakeit.Date().Format(dateLayout),
			ConfirmationStatus: coordination.ConfirmationPending,
		})
	}

	// Walk the weekday/tick grid in order so no two seeds collide.
	day, tick := 0, 0
	nextSlot := func() SlotSeed {
		sl := SlotSeed{Day: day, Time: coordination.StandardTicks[tick]}
		tick++
		if tick >= len(coordination.StandardTicks) {
			tick = 0
			day = (day + 1) % 5
		}
		return sl
	}

	var (
		appointments []AppointmentSeed
		requests     []RequestSeed
	)
	for i := 0; i < opts.Requests; i++ {
		p := patients[i]
		first := nextSlot()

		slots := []SlotSeed{first}
		for extra := gofakeit.Number(0, 2); extra > 0; extra-- {
			slots = append(slots, nextSlot())
		}

		reqID := fmt.Sprintf("req-%d", i+1)
		requests = append(requests, RequestSeed{
			ID:            reqID,
			PatientID:     p.ID,
			PatientName:   p.Name,
			CareGap:       p.CareGap,
			ProposedSlots: slots,
			Status:        "pending",
		})
		appointments = append(appointments, AppointmentSeed{
			ID:          fmt.Sprintf("apt-%d", i+1),
			Day:         first.Day,
			Time:        first.Time,
			PatientName: p.Name,
			CareGap:     p.CareGap,
			Status:      "pending",
			RequestID:   reqID,
		})
		patients[i].Status = coordination.PatientScheduled
		patients[i].ConfirmationStatus = coordination.ConfirmationPendingProvider
	}

	ds := Dataset{
		Patients:     patients,
		Providers:    providers,
		Appointments: appointments,
		Requests:     requests,
	}

	if len(patients) > 0 && len(providers) > 0 {
		first := nextSlot()
		ds.PatientAppointment = &PatientAppointmentSeed{
			ID:        "appt-patient",
			PatientID: patients[0].ID,
			Day:       first.Day,
			Time:      first.Time,
			Doctor:    providers[0].Name,
			Office:    providers[0].Location,
			Address:   gofakeit.Street(),
			CareGap:   patients[0].CareGap,
			Status:    "Pending Confirmation",
		}
	}

	return ds
}
