package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// ErrNotFound aliases the repository sentinel so callers can match it
// without importing this package.
var ErrNotFound = repository.ErrNotFound

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, email, password_hash, role, status,
	status_changed_at, COALESCE(status_changed_by::text, ''), created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.Role, &a.Status,
		&a.StatusChangedAt, &a.StatusChangedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.Password, a.Role, a.Status)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE lower(email) = lower($1)
	`, email))
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	a.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, email = $2, password_hash = $3, role = $4, status = $5,
		    status_changed_at = $6, status_changed_by = nullif($7, '')::uuid, updated_at = $8
		WHERE id = $9
	`, a.Name, a.Email, a.Password, a.Role, a.Status,
		a.StatusChangedAt, a.StatusChangedBy, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, f repository.AccountFilter) ([]entity.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE TRUE`
	args := []any{}
	if f.Role != "" {
		args = append(args, f.Role)
		q += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		q += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) ListDoctors(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE role = $1 AND status <> $2
		ORDER BY created_at DESC
	`, entity.RoleDoctor, entity.StatusDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]entity.Account, error) {
	out := []entity.Account{}
	for rows.Next() {
		a := entity.Account{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.Role, &a.Status,
			&a.StatusChangedAt, &a.StatusChangedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM accounts WHERE status <> $1
	`, entity.StatusDeleted).Scan(&n)
	return n, err
}

func (r *AccountRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT role, count(*) FROM accounts WHERE status <> $1 GROUP BY role
	`, entity.StatusDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[entity.Role]int64{}
	for rows.Next() {
		var role entity.Role
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[role] = n
	}
	return out, rows.Err()
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
