package repository

import (
	"context"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// AccountFilter narrows admin account listings. Zero values mean "all".
type AccountFilter struct {
	Role   entity.Role
	Status entity.Status
	Search string // case-insensitive substring over name and email
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
	List(ctx context.Context, f AccountFilter) ([]entity.Account, error)
	ListDoctors(ctx context.Context) ([]entity.Account, error)
	CountActive(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}
