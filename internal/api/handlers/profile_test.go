package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/testutil"
)

func putJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestProfileHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkUser      func(t *testing.T, before *domain.User, updated domain.PublicUser)
	}{
		{
			name:           "update name and phone",
			request:        map[string]string{"name": "Yeni Ad", "phone": "+994709998877"},
			expectedStatus: http.StatusOK,
			checkUser: func(t *testing.T, before *domain.User, updated domain.PublicUser) {
				assert.Equal(t, "Yeni Ad", updated.Name)
				assert.Equal(t, "+994709998877", updated.Phone)
			},
		},
		{
			name:           "empty fields keep current values",
			request:        map[string]string{},
			expectedStatus: http.StatusOK,
			checkUser: func(t *testing.T, before *domain.User, updated domain.PublicUser) {
				assert.Equal(t, before.Name, updated.Name)
				assert.Equal(t, before.Phone, updated.Phone)
			},
		},
		{
			name:           "phone without country prefix",
			request:        map[string]string{"phone": "0501234567"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "phone with too few digits",
			request:        map[string]string{"phone": "+99450123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "phone with letters",
			request:        map[string]string{"phone": "+994abcdefghi"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, client := testutil.NewUserBuilder().BuildAndLogin(t, ts)

			resp := putJSON(t, client, ts.APIURL("/user/profile"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkUser != nil {
				var result struct {
					Message string            `json:"message"`
					User    domain.PublicUser `json:"user"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				tt.checkUser(t, user, result.User)
			}
		})
	}

	t.Run("without session", func(t *testing.T) {
		resp := putJSON(t, http.DefaultClient, ts.APIURL("/user/profile"), map[string]string{"name": "X"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("successful change", func(t *testing.T) {
		user, client := testutil.NewUserBuilder().WithPassword("oldpassword").BuildAndLogin(t, ts)

		resp := postJSON(t, client, ts.APIURL("/user/change-password"), map[string]string{
			"currentPassword": "oldpassword",
			"newPassword":     "newpassword",
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// Old password no longer works, new one does.
		oldLogin := postJSON(t, http.DefaultClient, ts.APIURL("/auth/login"), map[string]string{
			"email": user.Email, "password": "oldpassword",
		})
		oldLogin.Body.Close()
		testutil.AssertStatusCode(t, oldLogin, http.StatusUnauthorized)

		newLogin := postJSON(t, http.DefaultClient, ts.APIURL("/auth/login"), map[string]string{
			"email": user.Email, "password": "newpassword",
		})
		newLogin.Body.Close()
		testutil.AssertStatusCode(t, newLogin, http.StatusOK)
	})

	t.Run("wrong current password", func(t *testing.T) {
		_, client := testutil.NewUserBuilder().WithPassword("oldpassword").BuildAndLogin(t, ts)

		resp := postJSON(t, client, ts.APIURL("/user/change-password"), map[string]string{
			"currentPassword": "not-the-password",
			"newPassword":     "newpassword",
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Current password is incorrect")
	})

	t.Run("new password too short", func(t *testing.T) {
		_, client := testutil.NewUserBuilder().WithPassword("oldpassword").BuildAndLogin(t, ts)

		resp := postJSON(t, client, ts.APIURL("/user/change-password"), map[string]string{
			"currentPassword": "oldpassword",
			"newPassword":     "short",
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "at least 6 characters")
	})

	t.Run("without session", func(t *testing.T) {
		resp := postJSON(t, http.DefaultClient, ts.APIURL("/user/change-password"), map[string]string{
			"currentPassword": "a", "newPassword": "bbbbbb",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}
