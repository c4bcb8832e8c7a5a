// Package apitest runs the contract server in-process so client packages can
// be tested against real HTTP.
package apitest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lifeos/internal/config"
	"lifeos/internal/logger"
	"lifeos/internal/server"
	"lifeos/internal/testutil"
)

// Server is a running contract server over a fresh in-memory database.
type Server struct {
	*httptest.Server
	DB *gorm.DB
}

// APIURL returns the API base URL, prefix included.
func (s *Server) APIURL() string {
	return s.Server.URL + server.APIPrefix
}

// NewServer starts a server for the duration of the test.
func NewServer(t *testing.T) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Init("test")
	config.Set(&config.Config{
		Port:             "0",
		Env:              "test",
		JWTSecret:        "apitest-secret",
		JWTExpirationDur: time.Hour,
	})

	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(server.NewRouter(db))
	t.Cleanup(srv.Close)

	return &Server{Server: srv, DB: db}
}
