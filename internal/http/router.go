package http

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/auth"
)

// NewRouter creates and configures the HTTP router with both surfaces: the
// server-rendered HTML UI and the JSON API under /api.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Security headers on every response
	router.Use(auth.SecurityHeadersMiddleware())

	// Anti-forgery protection for the HTML forms. Must reject before any
	// persistence access, so it runs ahead of everything that touches the
	// services. The JSON API is exempt.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session middleware after CSRF so session context is not overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{"Location", RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	// Auth routes when the local identity store is enabled
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	booksAPI := NewBooksAPIController(cfg.Books)
	membersAPI := NewMembersAPIController(cfg.Members, cfg.Borrowings)
	borrowingsAPI := NewBorrowingsAPIController(cfg.Borrowings)

	api := router.Group("/api")
	{
		api.GET("/Books", booksAPI.List)
		api.GET("/Books/:id", booksAPI.Get)
		api.GET("/Books/genre/:genre", booksAPI.ByGenre)
		api.POST("/Books", booksAPI.Create)
		api.PUT("/Books/:id", booksAPI.Update)
		api.DELETE("/Books/:id", booksAPI.Delete)

		api.GET("/Members", membersAPI.List)
		api.GET("/Members/:id", membersAPI.Get)
		api.GET("/Members/:id/borrowings", membersAPI.Borrowings)
		api.POST("/Members", membersAPI.Create)
		api.PUT("/Members/:id", membersAPI.Update)
		api.DELETE("/Members/:id", membersAPI.Delete)

		api.GET("/BorrowingRecords", borrowingsAPI.List)
		api.GET("/BorrowingRecords/:id", borrowingsAPI.Get)
		api.GET("/BorrowingRecords/overdue", borrowingsAPI.Overdue)
		api.POST("/BorrowingRecords", borrowingsAPI.Create)
		api.PUT("/BorrowingRecords/:id/return", borrowingsAPI.Return)
		api.DELETE("/BorrowingRecords/:id", borrowingsAPI.Delete)
	}

	booksUI := NewBooksUIController(cfg.Books)
	membersUI := NewMembersUIController(cfg.Members)
	borrowingsUI := NewBorrowingsUIController(cfg.Borrowings, cfg.Books, cfg.Members)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/Book")
	})

	registerEntityRoutes(router, "/Book", entityUIRoutes{
		list:       booksUI.ListPage,
		details:    booksUI.DetailsPage,
		createPage: booksUI.CreatePage,
		create:     booksUI.Create,
		editPage:   booksUI.EditPage,
		edit:       booksUI.Edit,
		deletePage: booksUI.DeletePage,
		delete:     booksUI.Delete,
	})
	registerEntityRoutes(router, "/Member", entityUIRoutes{
		list:       membersUI.ListPage,
		details:    membersUI.DetailsPage,
		createPage: membersUI.CreatePage,
		create:     membersUI.Create,
		editPage:   membersUI.EditPage,
		edit:       membersUI.Edit,
		deletePage: membersUI.DeletePage,
		delete:     membersUI.Delete,
	})
	registerEntityRoutes(router, "/BorrowingRecord", entityUIRoutes{
		list:       borrowingsUI.ListPage,
		details:    borrowingsUI.DetailsPage,
		createPage: borrowingsUI.CreatePage,
		create:     borrowingsUI.Create,
		editPage:   borrowingsUI.EditPage,
		edit:       borrowingsUI.Edit,
		deletePage: borrowingsUI.DeletePage,
		delete:     borrowingsUI.Delete,
	})

	return router
}

// entityUIRoutes groups the handlers behind the shared
// /{Entity}/{Action}/{id} layout every entity page follows.
type entityUIRoutes struct {
	list       gin.HandlerFunc
	details    gin.HandlerFunc
	createPage gin.HandlerFunc
	create     gin.HandlerFunc
	editPage   gin.HandlerFunc
	edit       gin.HandlerFunc
	deletePage gin.HandlerFunc
	delete     gin.HandlerFunc
}

func registerEntityRoutes(router *gin.Engine, prefix string, routes entityUIRoutes) {
	router.GET(prefix, routes.list)
	router.GET(prefix+"/Details/:id", routes.details)
	router.GET(prefix+"/Create", routes.createPage)
	router.POST(prefix+"/Create", routes.create)
	router.GET(prefix+"/Edit/:id", routes.editPage)
	router.POST(prefix+"/Edit/:id", routes.edit)
	router.GET(prefix+"/Delete/:id", routes.deletePage)
	router.POST(prefix+"/Delete/:id", routes.delete)
}
