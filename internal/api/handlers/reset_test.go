package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/testutil"
)

func TestResetHandler_ForgotPassword(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithEmail("reset@example.com").Build(t, ts.DB)

	t.Run("known email issues a token", func(t *testing.T) {
		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": user.Email,
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		token, err := ts.Repos.ResetToken.GetByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		require.Len(t, token.Token, 8)
		require.True(t, token.ExpiresAt.After(time.Now()))
	})

	t.Run("unknown email still succeeds", func(t *testing.T) {
		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": "ghost@example.com",
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("second request overwrites the first token", func(t *testing.T) {
		first, err := ts.Repos.ResetToken.GetByEmail(context.Background(), user.Email)
		require.NoError(t, err)

		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": user.Email,
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		second, err := ts.Repos.ResetToken.GetByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)

		// The overwritten token no longer redeems.
		stale := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       user.Email,
			"token":       first.Token,
			"newPassword": "whatever123",
		})
		defer stale.Body.Close()
		testutil.AssertErrorResponse(t, stale, http.StatusBadRequest, "invalid or has expired")
	})
}

func TestResetHandler_ResetPassword(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithEmail("redeem@example.com").Build(t, ts.DB)

	issueToken := func(t *testing.T) string {
		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": user.Email,
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		record, err := ts.Repos.ResetToken.GetByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		return record.Token
	}

	t.Run("redeem succeeds exactly once", func(t *testing.T) {
		token := issueToken(t)

		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       user.Email,
			"token":       token,
			"newPassword": "resetpass",
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// The new password is live.
		login := postJSON(t, http.DefaultClient, ts.APIURL("/auth/login"), map[string]string{
			"email": user.Email, "password": "resetpass",
		})
		login.Body.Close()
		testutil.AssertStatusCode(t, login, http.StatusOK)

		// The token was consumed: a replay fails.
		replay := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       user.Email,
			"token":       token,
			"newPassword": "otherpass",
		})
		defer replay.Body.Close()
		testutil.AssertErrorResponse(t, replay, http.StatusBadRequest, "invalid or has expired")
	})

	t.Run("redeem destroys the account's live sessions", func(t *testing.T) {
		holder, client := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		me, err := client.Get(ts.APIURL("/user/me"))
		require.NoError(t, err)
		me.Body.Close()
		testutil.AssertStatusCode(t, me, http.StatusOK)

		forgot := postJSON(t, http.DefaultClient, ts.APIURL("/auth/forgot-password"), map[string]string{
			"email": holder.Email,
		})
		forgot.Body.Close()
		record, err := ts.Repos.ResetToken.GetByEmail(context.Background(), holder.Email)
		require.NoError(t, err)

		reset := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       holder.Email,
			"token":       record.Token,
			"newPassword": "freshstart",
		})
		reset.Body.Close()
		testutil.AssertStatusCode(t, reset, http.StatusOK)

		// The session opened with the old password is gone.
		after, err := client.Get(ts.APIURL("/user/me"))
		require.NoError(t, err)
		defer after.Body.Close()
		testutil.AssertStatusCode(t, after, http.StatusUnauthorized)
	})

	t.Run("wrong token", func(t *testing.T) {
		issueToken(t)

		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       user.Email,
			"token":       "WRONGTOK",
			"newPassword": "resetpass",
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid or has expired")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &domain.PasswordResetToken{
			Email:     user.Email,
			Token:     "DEADBEEF",
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, ts.Repos.ResetToken.Upsert(context.Background(), expired))

		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       user.Email,
			"token":       "DEADBEEF",
			"newPassword": "resetpass",
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid or has expired")
	})

	t.Run("no token on record", func(t *testing.T) {
		other, _ := testutil.NewUserBuilder().WithEmail("notoken@example.com").Build(t, ts.DB)

		resp := postJSON(t, http.DefaultClient, ts.APIURL("/auth/reset-password"), map[string]string{
			"email":       other.Email,
			"token":       "ANYTHING",
			"newPassword": "resetpass",
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid or has expired")
	})
}
