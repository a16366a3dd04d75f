package file

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// record is the on-disk layout: a JSON array of these, one per user.
type record struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	CreatedAt        time.Time  `json:"createdAt"`
	ResetToken       *string    `json:"resetToken"`
	ResetTokenExpiry *time.Time `json:"resetTokenExpiry"`
}

// FileUserRepository keeps user records in a single JSON file. All
// mutations run under one lock and are written to a temporary file that
// replaces the original, so a failed write never reports success and
// never leaves a half-written store behind.
type FileUserRepository struct {
	path string
	lock sync.Mutex
}

func NewFileRepository(path string) *FileUserRepository {
	if path == "" {
		panic(e.NewNilArgumentError("path"))
	}
	return &FileUserRepository{path: path}
}

func (r *FileUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	records, err := r.read()
	if err != nil {
		return u, err
	}
	maxID := int64(0)
	for _, rec := range records {
		if rec.Email == string(input.Email) {
			return u, user.ErrEmailAlreadyExists
		}
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	rec := record{
		ID:        maxID + 1,
		Name:      input.Name,
		Email:     string(input.Email),
		Password:  string(input.PasswordHash),
		CreatedAt: input.CreatedAt,
	}
	records = append(records, rec)
	if err = r.write(records); err != nil {
		return u, err
	}
	return decodeRecord(rec), nil
}

func (r *FileUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	records, err := r.read()
	if err != nil {
		return u, err
	}
	for _, rec := range records {
		if rec.Email == string(email) {
			return decodeRecord(rec), nil
		}
	}
	return u, user.ErrUserDoesNotExist
}

func (r *FileUserRepository) GetByResetToken(ctx context.Context, token user.ResetToken) (u user.User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	records, err := r.read()
	if err != nil {
		return u, err
	}
	for _, rec := range records {
		if rec.ResetToken != nil && *rec.ResetToken == string(token) {
			return decodeRecord(rec), nil
		}
	}
	return u, user.ErrUserDoesNotExist
}

func (r *FileUserRepository) SetResetToken(
	ctx context.Context,
	id user.ID,
	token user.ResetToken,
	expiry time.Time,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	records, err := r.read()
	if err != nil {
		return err
	}
	for ix, rec := range records {
		if rec.ID == int64(id) {
			t := string(token)
			records[ix].ResetToken = &t
			records[ix].ResetTokenExpiry = &expiry
			return r.write(records)
		}
	}
	return user.ErrUserDoesNotExist
}

func (r *FileUserRepository) ResetPassword(
	ctx context.Context,
	input user.ResetPasswordInput,
) (u user.User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	records, err := r.read()
	if err != nil {
		return u, err
	}
	for ix, rec := range records {
		if rec.ResetToken == nil || *rec.ResetToken != string(input.Token) {
			continue
		}
		if rec.ResetTokenExpiry == nil || input.Now.After(*rec.ResetTokenExpiry) {
			break
		}
		records[ix].Password = string(input.PasswordHash)
		records[ix].ResetToken = nil
		records[ix].ResetTokenExpiry = nil
		if err = r.write(records); err != nil {
			return u, err
		}
		return decodeRecord(records[ix]), nil
	}
	return u, user.ErrInvalidResetToken
}

func (r *FileUserRepository) read() ([]record, error) {
	content, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, nil
	}
	var records []record
	if err = json.Unmarshal(content, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *FileUserRepository) write(records []record) error {
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func decodeRecord(rec record) user.User {
	u := user.User{
		ID:           user.ID(rec.ID),
		Name:         rec.Name,
		Email:        c.Email(rec.Email),
		PasswordHash: user.PasswordHash(rec.Password),
		CreatedAt:    rec.CreatedAt,
	}
	if rec.ResetToken != nil {
		u.ResetToken = c.NewOptional(user.ResetToken(*rec.ResetToken), true)
	}
	if rec.ResetTokenExpiry != nil {
		u.ResetTokenExpiry = c.NewOptional(*rec.ResetTokenExpiry, true)
	}
	return u
}
