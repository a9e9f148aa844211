package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/casewalk/internal/domain"
	"github.com/spf13/pflag"
)

// patientValue is a pflag.Value that only accepts known patient tracks.
type patientValue struct {
	p *domain.Patient
}

var _ pflag.Value = patientValue{}

func (v patientValue) String() string {
	if v.p == nil {
		return domain.PatientFemale.String()
	}
	return v.p.String()
}

func (v patientValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		*v.p = domain.PatientFemale
	case "male", "m":
		*v.p = domain.PatientMale
	default:
		return fmt.Errorf("invalid patient %q (use female or male)", s)
	}
	return nil
}

func (v patientValue) Type() string { return "patient" }

// addPatientFlag registers --patient/-p on fs, defaulting to the female track.
func addPatientFlag(fs *pflag.FlagSet, p *domain.Patient) {
	*p = domain.PatientFemale
	fs.VarP(patientValue{p: p}, "patient", "p", "Patient track (female|male)")
}
