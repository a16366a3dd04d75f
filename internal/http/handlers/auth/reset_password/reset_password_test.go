package resetpassword

import (
	"authsvc/internal/core/domain/user"
	service "authsvc/internal/core/services/reset_password"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	return result, s.err
}

func doRequest(handler *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/reset-password", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestSuccess(t *testing.T) {
	handler := New(&stubService{})

	recorder := doRequest(handler, `{"token": "some-token", "newPassword": "new-password"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Password has been reset successfully!")
}

func TestInvalidToken(t *testing.T) {
	handler := New(&stubService{err: user.ErrInvalidResetToken})

	recorder := doRequest(handler, `{"token": "some-token", "newPassword": "new-password"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid or expired token")
}

func TestMissingFields(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "empty", body: `{}`},
		{id: "no token", body: `{"newPassword": "new-password"}`},
		{id: "no password", body: `{"token": "some-token"}`},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			handler := New(&stubService{})
			recorder := doRequest(handler, c.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestInternalErrorDoesNotExposeDetails(t *testing.T) {
	handler := New(&stubService{err: context.DeadlineExceeded})

	recorder := doRequest(handler, `{"token": "some-token", "newPassword": "new-password"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "deadline")
}
