package postgres

import (
	"fmt"

	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// scopeClause renders a RecordScope as a WHERE fragment over the given
// doctor/patient reference columns, appending bound args. Every listing
// query goes through this so the role policy is applied uniformly.
func scopeClause(scope repository.RecordScope, doctorCol, patientCol string, args *[]any) string {
	switch {
	case scope.Empty:
		return "FALSE"
	case scope.DoctorID != "":
		*args = append(*args, scope.DoctorID)
		return fmt.Sprintf("%s = $%d", doctorCol, len(*args))
	case scope.PatientID != "":
		*args = append(*args, scope.PatientID)
		return fmt.Sprintf("%s = $%d", patientCol, len(*args))
	default:
		return "TRUE"
	}
}
