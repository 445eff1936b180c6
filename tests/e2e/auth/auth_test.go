//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"tripdesk/internal/handler/dto/request"
	"tripdesk/internal/handler/dto/response"
	"tripdesk/internal/usecase"
	"tripdesk/tests/common/authtest"
	"tripdesk/tests/common/dbtest"
	"tripdesk/tests/common/httptest"
	"tripdesk/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestLogin() {
	s.Run("Normal case: Login returns a token and sets the cookie", func() {
		t := s.T()

		dbtest.CreateTestAccount(t, s.DB, "traveler@example.com", "traveler")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "traveler@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.LoginResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.NotEmpty(t, res.AccessToken)
		require.NotNil(t, res.Account)
		require.Equal(t, "traveler@example.com", res.Account.Email)
		require.Equal(t, "traveler", res.Account.Role)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, accessCookie)
		require.Equal(t, res.AccessToken, accessCookie.Value)
		require.True(t, accessCookie.HttpOnly)
	})

	s.Run("Error case: Wrong password is unauthorized", func() {
		t := s.T()

		dbtest.CreateTestAccount(t, s.DB, "traveler@example.com", "traveler")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "traveler@example.com", Password: "wrongpassword"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("Error case: Unknown email is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *AuthSuite) TestMe() {
	s.Run("Normal case: Returns the authenticated account", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view usecase.AccountView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
		require.Equal(t, "admin@example.com", view.Email)
		require.Equal(t, "admin", view.Role)
		require.True(t, view.IsActive)
	})

	s.Run("Auth test - Unauthorized without a token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Normal case: Logout clears the cookie", func() {
		t := s.T()

		dbtest.CreateTestAccount(t, s.DB, "traveler@example.com", "traveler")
		lw := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "traveler@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, lw.Code)

		authtest.LogoutAccount(t, s.Router, httptest.ExtractCookies(lw))
	})
}
