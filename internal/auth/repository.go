package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/alesweet/order-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	GetUserByID(ctx context.Context, userID int) (*user.User, error)
	GetUserByLogin(ctx context.Context, login string) (*user.User, error)
	CreateUser(ctx context.Context, name, login, password string, role user.Role) (*user.User, error)
	SetBiometrics(ctx context.Context, userID int, enabled bool) error
}

type Repo struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*Repo, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &Repo{db: db, getter: getter, logger: logger}, nil
}

var _ Repository = (*Repo)(nil)

const userColumns = "id, name, login, password, role, biometrics_enabled, created_at, updated_at"

func (r *Repo) GetUserByID(ctx context.Context, userID int) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	u := new(user.User)

	err := r.db.QueryRowContext(ctx, query, userID).Scan(userFields(u)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *Repo) GetUserByLogin(ctx context.Context, login string) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE login = $1", userColumns)

	u := new(user.User)

	err := r.db.QueryRowContext(ctx, query, login).Scan(userFields(u)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *Repo) CreateUser(ctx context.Context, name, login, password string, role user.Role) (*user.User, error) {
	const query = `
		INSERT INTO users (name, login, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	u := &user.User{
		Name:     name,
		Login:    login,
		Password: password,
		Role:     role,
	}

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		name, login, password, role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, &errs.AlreadyExistsError{FieldName: "login"}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (r *Repo) SetBiometrics(ctx context.Context, userID int, enabled bool) error {
	const query = "UPDATE users SET biometrics_enabled = $2, updated_at = now() WHERE id = $1"

	result, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, userID, enabled)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// userFields lists scan destinations in userColumns order.
func userFields(u *user.User) []any {
	return []any{
		&u.ID,
		&u.Name,
		&u.Login,
		&u.Password,
		&u.Role,
		&u.BiometricsEnabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
