package http

import (
	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/services"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	// Core services shared by the HTML and JSON adapters
	Books      *services.BookService
	Members    *services.MemberService
	Borrowings *services.BorrowingService

	Database *database.Database

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// Authentication collaborator (optional)
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// CORS origins allowed to call the JSON API
	CORSAllowedOrigins []string
}
