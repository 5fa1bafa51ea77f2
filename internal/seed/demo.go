package seed

import "github.com/carelink/care-coordination/internal/coordination"

// Demo is the fixed dataset every session starts from: one coordinator
// caseload, the provider roster, a week of booked appointments for
// Dr. Chen, the pending appointment requests behind them, and Sarah
// Johnson's patient-facing appointment.
func Demo() Dataset {
	return Dataset{
		Patients: []coordination.Patient{
			{ID: "1", Name: "Sarah Johnson", CareGap: "Annual Physical", Status: coordination.PatientPending, AssignedPCP: "Dr. Michael Chen", AppointmentDate: "2024-02-15", ConfirmationStatus: coordination.ConfirmationPending},
			{ID: "2", Name: "Robert Martinez", CareGap: "Diabetes Check", Status: coordination.PatientConfirmed, AssignedPCP: "Dr. Emily Rodriguez", AppointmentDate: "2024-02-10", ConfirmationStatus: coordination.ConfirmationConfirmed},
			{ID: "3", Name: "Jennifer Lee", CareGap: "Mammogram", Status: coordination.PatientRescheduled, AssignedPCP: "Dr. Michael Chen", AppointmentDate: "2024-02-20", ConfirmationStatus: coordination.ConfirmationRescheduleRequested},
			{ID: "4", Name: "David Thompson", CareGap: "Cardiac Screening", Status: coordination.PatientPending, AssignedPCP: "Dr. Emily Rodriguez", AppointmentDate: "2024-02-12", ConfirmationStatus: coordination.ConfirmationPending},
			{ID: "5", Name: "Maria Garcia", CareGap: "Annual Physical", Status: coordination.PatientCompleted, AssignedPCP: "Dr. Michael Chen", AppointmentDate: "2024-01-20", ConfirmationStatus: coordination.ConfirmationCompleted},
			{ID: "6", Name: "John Smith", CareGap: "Colonoscopy", Status: coordination.PatientCompleted, AssignedPCP: "Dr. James Wilson", AppointmentDate: "2024-01-15", ConfirmationStatus: coordination.ConfirmationCompleted},
			{ID: "7", Name: "Patricia Brown", CareGap: "Diabetes Check", Status: coordination.PatientCompleted, AssignedPCP: "Dr. Emily Rodriguez", AppointmentDate: "2024-01-10", ConfirmationStatus: coordination.ConfirmationCompleted},
			{ID: "8", Name: "Thomas Wilson", CareGap: "Cardiac Screening", Status: coordination.PatientCompleted, AssignedPCP: "Dr. James Wilson", AppointmentDate: "2024-01-05", ConfirmationStatus: coordination.ConfirmationCompleted},
			{ID: "9", Name: "Linda Davis", CareGap: "Mammogram", Status: coordination.PatientCompleted, AssignedPCP: "Dr. Sarah Patel", AppointmentDate: "2023-12-28", ConfirmationStatus: coordination.ConfirmationCompleted},
			{ID: "10", Name: "Christopher Moore", CareGap: "Annual Physical", Status: coordination.PatientCompleted, AssignedPCP: "Dr. Michael Chen", AppointmentDate: "2023-12-20", ConfirmationStatus: coordination.ConfirmationCompleted},
		},
		Providers: []coordination.Provider{
			{ID: "1", Name: "Dr. Michael Chen", Specialty: "Internal Medicine", Location: "Main Street Medical Center", Phone: "(555) 123-4567", Email: "mchen@mainstreetmed.com", PatientCount: 24, Status: "Active", Schedule: &coordination.ProviderSchedule{Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, Hours: "9:00 AM - 5:00 PM"}},
			{ID: "2", Name: "Dr. Emily Rodriguez", Specialty: "Family Medicine", Location: "Community Health Clinic", Phone: "(555) 234-5678", Email: "erodriguez@communityhealth.com", PatientCount: 18, Status: "Active", Schedule: &coordination.ProviderSchedule{Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday"}, Hours: "8:00 AM - 4:00 PM"}},
			{ID: "3", Name: "Dr. James Wilson", Specialty: "Cardiology", Location: "Heart & Vascular Institute", Phone: "(555) 345-6789", Email: "jwilson@heartinstitute.com", PatientCount: 12, Status: "Active"},
			{ID: "4", Name: "Dr. Sarah Patel", Specialty: "Endocrinology", Location: "Diabetes Care Center", Phone: "(555) 456-7890", Email: "spatel@diabetescare.com", PatientCount: 15, Status: "Active"},
			{ID: "5", Name: "Dr. Robert Kim", Specialty: "Oncology", Location: "Cancer Treatment Center", Phone: "(555) 567-8901", Email: "rkim@cancertreatment.com", PatientCount: 8, Status: "On Leave"},
			{ID: "6", Name: "Dr. Lisa Anderson", Specialty: "Pediatrics", Location: "Children's Medical Group", Phone: "(555) 678-9012", Email: "landerson@childrensmed.com", PatientCount: 22, Status: "Active"},
		},
		Notifications: []NotificationSeed{
			{ID: "1", Type: "confirmation", Message: "Patient confirmed appointment", PatientID: "2", PatientName: "Robert Martinez", AgeHours: 2},
			{ID: "2", Type: "reschedule", Message: "PCP requested reschedule", PatientID: "3", PatientName: "Jennifer Lee", AgeHours: 5},
			{ID: "3", Type: "new", Message: "New patient assigned", PatientID: "4", PatientName: "David Thompson", AgeHours: 24},
		},
		Appointments: []AppointmentSeed{
			{ID: "apt-1", Day: 0, Time: "09:30", PatientName: "Robert Martinez", CareGap: "Diabetes Check", Status: "confirmed"},
			{ID: "apt-2", Day: 0, Time: "11:00", PatientName: "Sarah Johnson", CareGap: "Annual Physical", Status: "pending", RequestID: "req-sarah"},
			{ID: "apt-3", Day: 0, Time: "14:00", PatientName: "David Thompson", CareGap: "Cardiac Screening", Status: "pending", RequestID: "req-david"},
			{ID: "apt-4", Day: 1, Time: "09:00", PatientName: "Maria Garcia", CareGap: "Follow-up", Status: "confirmed"},
			{ID: "apt-5", Day: 1, Time: "11:30", PatientName: "John Smith", CareGap: "Consultation", Status: "pending", RequestID: "req-john"},
			{ID: "apt-6", Day: 2, Time: "10:00", PatientName: "Patricia Brown", CareGap: "Check-up", Status: "confirmed"},
			{ID: "apt-7", Day: 2, Time: "15:00", PatientName: "Thomas Wilson", CareGap: "Review", Status: "pending", RequestID: "req-thomas"},
			{ID: "apt-8", Day: 3, Time: "10:00", PatientName: "Linda Davis", CareGap: "Screening", Status: "confirmed"},
			{ID: "apt-9", Day: 3, Time: "14:00", PatientName: "Christopher Moore", CareGap: "Follow-up", Status: "pending", RequestID: "req-chris"},
			{ID: "apt-10", Day: 4, Time: "11:00", PatientName: "Jennifer Lee", CareGap: "Mammogram", Status: "pending", RequestID: "req-jennifer"},
		},
		Requests: []RequestSeed{
			{ID: "req-sarah", PatientID: "1", PatientName: "Sarah Johnson", CareGap: "Annual Physical", Status: "pending",
				ProposedSlots: []SlotSeed{{Day: 0, Time: "11:00"}, {Day: 1, Time: "10:30"}, {Day: 2, Time: "14:00"}}},
			{ID: "req-david", PatientID: "4", PatientName: "David Thompson", CareGap: "Cardiac Screening", Status: "pending",
				ProposedSlots: []SlotSeed{{Day: 0, Time: "14:00"}, {Day: 3, Time: "09:00"}}},
			{ID: "req-john", PatientID: "6", PatientName: "John Smith", CareGap: "Consultation", Status: "pending",
				ProposedSlots: []SlotSeed{{Day: 1, Time: "11:30"}}},
			{ID: "req-thomas", PatientID: "8", PatientName: "Thomas Wilson", CareGap: "Review", Status: "pending",
				ProposedSlots: []SlotSeed{{Day: 2, Time: "15:00"}, {Day: 4, Time: "09:30"}}},
			{ID: "req-chris", PatientID: "10", PatientName: "Christopher Moore", CareGap: "Follow-up", Status: "pending",
				ProposedSlots: []SlotSeed{{Day: 3, Time: "14:00"}}},
			{ID: "req-jennifer", PatientID: "3", PatientName: "Jennifer Lee", CareGap: "Mammogram", Status: "reschedule_proposed_by_pcp",
				ProposedSlots:    []SlotSeed{{Day: 4, Time: "11:00"}, {Day: 4, Time: "14:30"}},
				PCPProposedSlots: []SlotSeed{{Day: 5, Time: "10:00"}, {Day: 5, Time: "11:30"}}},
		},
		PatientAppointment: &PatientAppointmentSeed{
			ID:        "appt-sarah",
			PatientID: "1",
			Day:       0,
			Time:      "11:00",
			Doctor:    "Dr. Michael Chen",
			Office:    "Main Street Medical Center",
			Address:   "123 Main Street, Suite 200",
			CareGap:   "Annual Physical",
			Status:    "Pending Confirmation",
		},
	}
}
