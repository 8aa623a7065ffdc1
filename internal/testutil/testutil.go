package testutil

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yervar/yervar-backend/internal/api"
	apiMiddleware "github.com/yervar/yervar-backend/internal/api/middleware"
	"github.com/yervar/yervar-backend/internal/config"
	"github.com/yervar/yervar-backend/internal/notify"
	"github.com/yervar/yervar-backend/internal/repository"
	repoPostgres "github.com/yervar/yervar-backend/internal/repository/postgres"
	"github.com/yervar/yervar-backend/internal/service"

	"net/http/httptest"
)

// NewTestDB opens an isolated in-memory SQLite database with the schema
// migrated. The repositories are plain gorm code, so they run unchanged
// against the test dialector.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_pragma=busy_timeout(10000)",
		uuid.New().String()[:8])

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Environment:    "test",
		SessionTTL:     time.Hour,
		ResetTokenTTL:  15 * time.Minute,
		SuggestAPIURL:  "",
		SuggestTimeout: 500 * time.Millisecond,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *notify.Hub
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(db)
	hub := notify.NewHub()
	go hub.Run()

	services := service.NewServices(repos, cfg, hub)
	router := api.NewRouter(services, hub)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}

// WebSocketURL returns the websocket endpoint URL
func (ts *TestServer) WebSocketURL() string {
	return "ws" + ts.Server.URL[4:] + "/api/ws"
}

// NewClient returns an HTTP client with a cookie jar, so the session cookie
// set at login is carried on subsequent requests.
func (ts *TestServer) NewClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

// SessionToken digs the session cookie out of a logged-in client's jar.
func (ts *TestServer) SessionToken(t *testing.T, client *http.Client) string {
	t.Helper()

	u, err := url.Parse(ts.Server.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	for _, cookie := range client.Jar.Cookies(u) {
		if cookie.Name == apiMiddleware.SessionCookie {
			return cookie.Value
		}
	}
	t.Fatal("no session cookie in client jar")
	return ""
}
