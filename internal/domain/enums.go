package domain

import "strings"

// Patient identifies one of the two fixed case tracks. Each track has its
// own independent chapter progression.
type Patient string

const (
	PatientFemale Patient = "female"
	PatientMale   Patient = "male"
)

// Patients lists every patient track in display order.
var Patients = []Patient{PatientFemale, PatientMale}

// ParsePatient maps a user-supplied string onto a patient track. Blank or
// unrecognised values fall back to the primary (female) track so callers
// that predate multi-patient support keep working.
func ParsePatient(s string) Patient {
	switch Patient(strings.ToLower(strings.TrimSpace(s))) {
	case PatientMale:
		return PatientMale
	default:
		return PatientFemale
	}
}

// OrDefault returns p, or PatientFemale when p is not a known track.
func (p Patient) OrDefault() Patient {
	if p == PatientMale {
		return PatientMale
	}
	return PatientFemale
}

func (p Patient) String() string {
	return string(p.OrDefault())
}
