package auth

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/entities"
)

// setupMutex serializes setup requests to prevent two first-run admins.
var setupMutex sync.Mutex

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController handles the login, logout and first-run setup pages.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	config         config.Auth
}

// NewAuthController creates a new authentication controller. Templates come
// from the router's shared HTML renderer.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		config:         cfg,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/setup", ac.SetupPage)
	router.POST("/setup", ac.Setup)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager != nil && ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	hasUsers, _ := ac.service.HasUsers()
	if !hasUsers {
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": c.GetString("csrf_token"),
	})
}

// Login authenticates the submitted credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error":     "Invalid username or password",
			"Next":      next,
			"CSRFToken": c.GetString("csrf_token"),
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error":     "Could not start a session. Please try again.",
			"Next":      next,
			"CSRFToken": c.GetString("csrf_token"),
		})
		return
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		_ = ac.sessionManager.DestroySession(c.Request)
	}
	c.Redirect(http.StatusFound, "/login")
}

// SetupPage renders the first-run administrator form. Only reachable while
// no accounts exist.
func (ac *AuthController) SetupPage(c *gin.Context) {
	hasUsers, _ := ac.service.HasUsers()
	if hasUsers {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "setup.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
	})
}

// Setup creates the first administrator account.
func (ac *AuthController) Setup(c *gin.Context) {
	setupMutex.Lock()
	defer setupMutex.Unlock()

	hasUsers, _ := ac.service.HasUsers()
	if hasUsers {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := ac.service.CreateUser(username, email, password, entities.UserRoleAdmin)
	if err != nil {
		c.HTML(http.StatusBadRequest, "setup.html", gin.H{
			"Error":     err.Error(),
			"Username":  username,
			"Email":     email,
			"CSRFToken": c.GetString("csrf_token"),
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
