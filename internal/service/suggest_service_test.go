package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/service"
	"github.com/yervar/yervar-backend/internal/testutil"
)

func TestSuggestDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the upstream suggestion", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Origin string `json:"origin"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Bakı", req.Origin)

			json.NewEncoder(w).Encode(map[string]string{"destination": "Qəbələ"})
		}))
		defer upstream.Close()

		cfg := testutil.TestConfig()
		cfg.SuggestAPIURL = upstream.URL
		svc := service.NewSuggestService(cfg)

		got, err := svc.SuggestDestination(ctx, "Bakı")
		require.NoError(t, err)
		assert.Equal(t, "Qəbələ", got)
	})

	t.Run("unconfigured upstream", func(t *testing.T) {
		svc := service.NewSuggestService(testutil.TestConfig())

		_, err := svc.SuggestDestination(ctx, "Bakı")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("upstream server error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		cfg := testutil.TestConfig()
		cfg.SuggestAPIURL = upstream.URL
		svc := service.NewSuggestService(cfg)

		_, err := svc.SuggestDestination(ctx, "Bakı")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("upstream exceeds the deadline", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			json.NewEncoder(w).Encode(map[string]string{"destination": "too late"})
		}))
		defer upstream.Close()

		cfg := testutil.TestConfig()
		cfg.SuggestAPIURL = upstream.URL
		cfg.SuggestTimeout = 50 * time.Millisecond
		svc := service.NewSuggestService(cfg)

		_, err := svc.SuggestDestination(ctx, "Bakı")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("malformed upstream payload", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer upstream.Close()

		cfg := testutil.TestConfig()
		cfg.SuggestAPIURL = upstream.URL
		svc := service.NewSuggestService(cfg)

		_, err := svc.SuggestDestination(ctx, "Bakı")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}
