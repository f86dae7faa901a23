package application

import (
	"context"
	"errors"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// ScopeForAccount derives the record scope every domain listing applies
// before touching the store:
//   - Admin and FrontDesk read everything.
//   - Doctor reads records assigned to them.
//   - Patient reads records of their own patient profile, resolved by
//     account link first, then contact/name equality; no match is an
//     empty scope, never an error and never another patient's data.
func ScopeForAccount(ctx context.Context, patients repository.PatientRepository, a *entity.Account) (repository.RecordScope, error) {
	switch a.Role {
	case entity.RoleAdmin, entity.RoleFrontDesk:
		return repository.ScopeAll(), nil
	case entity.RoleDoctor:
		return repository.ScopeDoctor(a.ID), nil
	case entity.RolePatient:
		p, err := ResolvePatient(ctx, patients, a)
		if err != nil {
			return repository.RecordScope{}, err
		}
		if p == nil {
			return repository.ScopeNone(), nil
		}
		return repository.ScopePatient(p.ID), nil
	default:
		return repository.ScopeNone(), nil
	}
}

// ResolvePatient maps a Patient-role account to its patient record via
// the best-effort chain: account link, then contact == email, then
// name equality. Returns nil (no error) when nothing matches.
func ResolvePatient(ctx context.Context, patients repository.PatientRepository, a *entity.Account) (*entity.Patient, error) {
	p, err := patients.FindByAccountID(ctx, a.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p, err = patients.FindByContactOrName(ctx, a.Email, a.Name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return nil, nil
}
