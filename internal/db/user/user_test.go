package user

import (
	"authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/db"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = common.Email("test@test.test")
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
	RESET_TOKEN   = user.ResetToken("test-reset-token")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(email common.Email) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Name:         "test",
		Email:        email,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u := suite.createUser(EMAIL)

	assert := suite.Require()
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal("test", u.Name)
	assert.Equal(EMAIL, u.Email)
	assert.Equal(PASSWORD_HASH, u.PasswordHash)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.False(u.ResetToken.IsPresent)
	assert.False(u.ResetTokenExpiry.IsPresent)
}

func (suite *testSuite) TestCreateDuplicateEmail() {
	suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Name:         "another",
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	got, err := suite.repo.GetByEmail(context.Background(), EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, got.ID)

	_, err = suite.repo.GetByEmail(context.Background(), "unknown@test.test")
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetAndGetByResetToken() {
	created := suite.createUser(EMAIL)
	expiry := NOW.Add(time.Hour)

	err := suite.repo.SetResetToken(context.Background(), created.ID, RESET_TOKEN, expiry)
	suite.Require().Nil(err)

	got, err := suite.repo.GetByResetToken(context.Background(), RESET_TOKEN)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, got.ID)
	assert.True(got.ResetToken.IsPresent)
	assert.Equal(RESET_TOKEN, got.ResetToken.Value)
	assert.True(got.ResetTokenExpiry.IsPresent)
	assert.True(expiry.Equal(got.ResetTokenExpiry.Value))
}

func (suite *testSuite) TestSetResetTokenUnknownUser() {
	err := suite.repo.SetResetToken(context.Background(), user.ID(12345), RESET_TOKEN, NOW)

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestResetPasswordConsumesToken() {
	created := suite.createUser(EMAIL)
	suite.repo.SetResetToken(context.Background(), created.ID, RESET_TOKEN, NOW.Add(time.Hour))

	updated, err := suite.repo.ResetPassword(context.Background(), user.ResetPasswordInput{
		Token:        RESET_TOKEN,
		PasswordHash: user.PasswordHash("new-hash"),
		Now:          NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), updated.PasswordHash)
	assert.False(updated.ResetToken.IsPresent)
	assert.False(updated.ResetTokenExpiry.IsPresent)

	_, err = suite.repo.ResetPassword(context.Background(), user.ResetPasswordInput{
		Token:        RESET_TOKEN,
		PasswordHash: user.PasswordHash("evil-hash"),
		Now:          NOW,
	})
	assert.ErrorIs(err, user.ErrInvalidResetToken)
}

func (suite *testSuite) TestResetPasswordExpiredToken() {
	created := suite.createUser(EMAIL)
	suite.repo.SetResetToken(context.Background(), created.ID, RESET_TOKEN, NOW.Add(-time.Second))

	_, err := suite.repo.ResetPassword(context.Background(), user.ResetPasswordInput{
		Token:        RESET_TOKEN,
		PasswordHash: user.PasswordHash("new-hash"),
		Now:          NOW,
	})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidResetToken)
	got, getErr := suite.repo.GetByEmail(context.Background(), EMAIL)
	assert.Nil(getErr)
	assert.Equal(PASSWORD_HASH, got.PasswordHash)
}
