package user

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, created_at, reset_token, reset_token_expiry`

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	return u, err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	return u, err
}

func (r *PgxUserRepository) GetByResetToken(ctx context.Context, token user.ResetToken) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE reset_token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	return u, err
}

func (r *PgxUserRepository) SetResetToken(
	ctx context.Context,
	id user.ID,
	token user.ResetToken,
	expiry time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		int64(id),
		string(token),
		expiry,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// ResetPassword consumes the token and sets the password hash in one
// conditional statement, so concurrent calls with the same token can not
// both match the row.
func (r *PgxUserRepository) ResetPassword(
	ctx context.Context,
	input user.ResetPasswordInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		 SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL
		 WHERE reset_token = $2 AND reset_token_expiry >= $3
		 RETURNING `+userColumns,
		string(input.PasswordHash),
		string(input.Token),
		input.Now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidResetToken
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		name         string
		email        string
		passwordHash string
		createdAt    time.Time
		resetToken   sql.NullString
		resetExpiry  sql.NullTime
	)
	err = row.Scan(&id, &name, &email, &passwordHash, &createdAt, &resetToken, &resetExpiry)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:               user.ID(id),
		Name:             name,
		Email:            c.Email(email),
		PasswordHash:     user.PasswordHash(passwordHash),
		CreatedAt:        createdAt,
		ResetToken:       c.NewOptional(user.ResetToken(resetToken.String), resetToken.Valid),
		ResetTokenExpiry: c.NewOptional(resetExpiry.Time, resetExpiry.Valid),
	}, nil
}
