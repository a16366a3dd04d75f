package app

import (
	"authsvc/internal/app/deps"
	"authsvc/internal/app/services"
	"authsvc/internal/config"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	dbfile "authsvc/internal/db/file"
	passwordhasher "authsvc/internal/implementations/password_hasher"
	resettoken "authsvc/internal/implementations/reset_token"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	handler http.Handler
}

func (suite *testSuite) SetupTest() {
	cfg := &config.Config{
		IsTestMode:                 true,
		Secret:                     "test-secret",
		BcryptHasherCost:           4,
		PasswordResetValidDuration: time.Hour,
		AllowedOrigins:             []string{"*"},
	}
	d := &deps.Deps{
		Config:              cfg,
		Logger:              logging.NewFakeLogger(),
		Now:                 func() time.Time { return time.Now().UTC() },
		UserRepository:      dbfile.NewFileRepository(filepath.Join(suite.T().TempDir(), "users.json")),
		PasswordHasher:      passwordhasher.NewBcrypt(cfg.Secret, cfg.BcryptHasherCost),
		ResetTokenGenerator: resettoken.NewUUID(),
		ResetTokenSender:    user.NewFakeResetTokenSender(),
	}
	suite.handler = InitHttpServer(d, services.InitServices(d)).Handler
}

func TestAuthFlows(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) doRequest(path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	suite.handler.ServeHTTP(recorder, req)
	return recorder
}

func (suite *testSuite) TestSignUpLogInForgotAndResetScenario() {
	assert := suite.Require()

	recorder := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, recorder.Code)
	var signupResult struct {
		User struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	assert.Nil(json.Unmarshal(recorder.Body.Bytes(), &signupResult))
	assert.Equal("A", signupResult.User.Name)
	assert.Equal("a@x.com", signupResult.User.Email)
	assert.NotContains(recorder.Body.String(), "password")

	recorder = suite.doRequest("/api/login", `{"email": "a@x.com", "password": "wrong-password"}`)
	assert.Equal(http.StatusUnauthorized, recorder.Code)

	recorder = suite.doRequest("/api/forgot-password", `{"email": "a@x.com"}`)
	assert.Equal(http.StatusOK, recorder.Code)
	token := recorder.Header().Get("x-test-password-reset-token")
	assert.NotEqual("", token)

	recorder = suite.doRequest(
		"/api/reset-password",
		`{"token": "`+token+`", "newPassword": "secret-2"}`,
	)
	assert.Equal(http.StatusOK, recorder.Code)

	recorder = suite.doRequest("/api/login", `{"email": "a@x.com", "password": "secret-1"}`)
	assert.Equal(http.StatusUnauthorized, recorder.Code)

	recorder = suite.doRequest("/api/login", `{"email": "a@x.com", "password": "secret-2"}`)
	assert.Equal(http.StatusOK, recorder.Code)
}

func (suite *testSuite) TestDuplicateSignUp() {
	assert := suite.Require()

	first := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, first.Code)

	second := suite.doRequest(
		"/api/signup",
		`{"name": "B", "email": "a@x.com", "password": "secret-2"}`,
	)
	assert.Equal(http.StatusConflict, second.Code)
	assert.Contains(second.Body.String(), "User with this email already exists.")
}

func (suite *testSuite) TestLogInResponseDoesNotRevealWhetherEmailExists() {
	assert := suite.Require()

	recorder := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, recorder.Code)

	wrongPassword := suite.doRequest("/api/login", `{"email": "a@x.com", "password": "wrong"}`)
	unknownEmail := suite.doRequest("/api/login", `{"email": "b@x.com", "password": "wrong"}`)

	assert.Equal(http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(wrongPassword.Body.String(), unknownEmail.Body.String())
}

func (suite *testSuite) TestForgotPasswordResponseDoesNotRevealWhetherEmailExists() {
	assert := suite.Require()

	recorder := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, recorder.Code)

	known := suite.doRequest("/api/forgot-password", `{"email": "a@x.com"}`)
	unknown := suite.doRequest("/api/forgot-password", `{"email": "b@x.com"}`)

	assert.Equal(http.StatusOK, known.Code)
	assert.Equal(http.StatusOK, unknown.Code)
	assert.Equal(known.Body.String(), unknown.Body.String())
}

func (suite *testSuite) TestResetTokenIsSingleUse() {
	assert := suite.Require()

	recorder := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, recorder.Code)

	recorder = suite.doRequest("/api/forgot-password", `{"email": "a@x.com"}`)
	token := recorder.Header().Get("x-test-password-reset-token")
	assert.NotEqual("", token)

	first := suite.doRequest(
		"/api/reset-password",
		`{"token": "`+token+`", "newPassword": "secret-2"}`,
	)
	assert.Equal(http.StatusOK, first.Code)

	second := suite.doRequest(
		"/api/reset-password",
		`{"token": "`+token+`", "newPassword": "secret-3"}`,
	)
	assert.Equal(http.StatusBadRequest, second.Code)
	assert.Contains(second.Body.String(), "Invalid or expired token")

	recorder = suite.doRequest("/api/login", `{"email": "a@x.com", "password": "secret-2"}`)
	assert.Equal(http.StatusOK, recorder.Code)
}

func (suite *testSuite) TestOnlyLatestIssuedTokenIsValid() {
	assert := suite.Require()

	recorder := suite.doRequest(
		"/api/signup",
		`{"name": "A", "email": "a@x.com", "password": "secret-1"}`,
	)
	assert.Equal(http.StatusCreated, recorder.Code)

	first := suite.doRequest("/api/forgot-password", `{"email": "a@x.com"}`)
	firstToken := first.Header().Get("x-test-password-reset-token")
	second := suite.doRequest("/api/forgot-password", `{"email": "a@x.com"}`)
	secondToken := second.Header().Get("x-test-password-reset-token")
	assert.NotEqual(firstToken, secondToken)

	recorder = suite.doRequest(
		"/api/reset-password",
		`{"token": "`+firstToken+`", "newPassword": "secret-2"}`,
	)
	assert.Equal(http.StatusBadRequest, recorder.Code)

	recorder = suite.doRequest(
		"/api/reset-password",
		`{"token": "`+secondToken+`", "newPassword": "secret-2"}`,
	)
	assert.Equal(http.StatusOK, recorder.Code)
}
