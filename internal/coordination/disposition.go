package coordination

import "errors"

// Disposition is the outcome a coordinator records after a phone contact
// attempt with a patient.
type Disposition string

const (
	DispositionVoicemail        Disposition = "voicemail"
	DispositionHangUp           Disposition = "hang up"
	DispositionInsuranceExpired Disposition = "insurance expired"
	DispositionPatientDeceased  Disposition = "patient deceased"
	DispositionChangedPCP       Disposition = "changed pcp"
	DispositionScheduled        Disposition = "scheduled"
)

var ErrUnknownDisposition = errors.New("unknown call disposition")

// DispositionOutcome is the patient-status update a disposition maps to.
type DispositionOutcome struct {
	Status       PatientStatus
	Confirmation ConfirmationStatus
	// OverwriteDate is set for "scheduled": the patient's appointment date is
	// replaced with the first proposed slot's date.
	OverwriteDate bool
}

// MapDisposition is the fixed disposition table. "scheduled" moves the
// patient into the provider-confirmation flow; every other disposition
// parks the case back at Pending.
func MapDisposition(d Disposition) (DispositionOutcome, error) {
	switch d {
	case DispositionScheduled:
		return DispositionOutcome{
			Status:        PatientScheduled,
			Confirmation:  ConfirmationPendingProvider,
			OverwriteDate: true,
		}, nil
	case DispositionVoicemail, DispositionHangUp, DispositionInsuranceExpired,
		DispositionPatientDeceased, DispositionChangedPCP:
		return DispositionOutcome{
			Status:       PatientPending,
			Confirmation: ConfirmationPending,
		}, nil
	default:
		return DispositionOutcome{}, ErrUnknownDisposition
	}
}
