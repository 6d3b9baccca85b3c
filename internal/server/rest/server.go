// Package rest exposes the Recetario services over HTTP with gin.
package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/dmitrijs2005/recetario/internal/server/config"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	maxBodySize     = 10 << 20
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

type UserService interface {
	Register(ctx context.Context, in models.UserCreate) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.Token, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	Profile(ctx context.Context, user *models.User) (*models.Profile, error)
}

type RecipeService interface {
	List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, id int64) (*models.Recipe, error)
	Create(ctx context.Context, user *models.User, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, user *models.User, id int64, in models.RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, user *models.User, id int64) error
}

type CookbookService interface {
	List(ctx context.Context, filter models.CookbookFilter) ([]models.Cookbook, error)
	Get(ctx context.Context, id int64) (*models.Cookbook, error)
	Create(ctx context.Context, user *models.User, in models.CookbookInput) (*models.Cookbook, error)
	Update(ctx context.Context, user *models.User, id int64, in models.CookbookInput) (*models.Cookbook, error)
	Delete(ctx context.Context, user *models.User, id int64) error
}

type ImageService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

type ExportService interface {
	RecipePDF(ctx context.Context, id int64) (filename string, data []byte, err error)
	CookbookPDF(ctx context.Context, id int64) (url string, err error)
}

// Services bundles the business layer the handlers call into.
type Services struct {
	Users     UserService
	Recipes   RecipeService
	Cookbooks CookbookService
	Images    ImageService
	Exports   ExportService
}

type Server struct {
	address string
	engine  *gin.Engine
	logger  logging.Logger
	svc     Services
}

func NewServer(cfg *config.Config, l logging.Logger, svc Services) *Server {
	if cfg.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = false
	engine.MaxMultipartMemory = maxBodySize

	s := &Server{
		address: cfg.ListenAddr,
		engine:  engine,
		logger:  l.With("module", "rest_server"),
		svc:     svc,
	}

	engine.Use(s.recoveryMiddleware())
	engine.Use(s.loggerMiddleware())
	engine.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
	})

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.root)
	s.engine.POST("/token", s.login)
	s.engine.POST("/register", s.register)

	authed := s.authMiddleware()

	s.engine.GET("/users/me", authed, s.me)
	s.engine.POST("/upload", authed, s.uploadImage)

	recipes := s.engine.Group("/recipes")
	{
		recipes.GET("", s.listRecipes)
		recipes.POST("", authed, s.createRecipe)
		recipes.GET("/:id", s.getRecipe)
		recipes.GET("/:id/pdf", s.recipePDF)
		recipes.PUT("/:id", authed, s.updateRecipe)
		recipes.DELETE("/:id", authed, s.deleteRecipe)
	}

	cookbooks := s.engine.Group("/cookbooks")
	{
		cookbooks.GET("", s.listCookbooks)
		cookbooks.POST("", authed, s.createCookbook)
		cookbooks.GET("/:id", s.getCookbook)
		cookbooks.GET("/:id/pdf", s.cookbookPDF)
		cookbooks.PUT("/:id", authed, s.updateCookbook)
		cookbooks.DELETE("/:id", authed, s.deleteCookbook)
	}
}

// Handler returns the root HTTP handler. "/recipes/" and "/recipes" reach
// the same route.
func (s *Server) Handler() http.Handler {
	return stripTrailingSlash(s.engine)
}

func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = strings.TrimRight(p, "/")
			if r2.URL.Path == "" {
				r2.URL.Path = "/"
			}
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.address,
		Handler:        s.Handler(),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
