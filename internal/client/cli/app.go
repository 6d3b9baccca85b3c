package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/recetario/internal/client/api"
	"github.com/dmitrijs2005/recetario/internal/client/config"
	"github.com/dmitrijs2005/recetario/internal/client/models"
	"github.com/dmitrijs2005/recetario/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/recetario/internal/client/router"
	"github.com/dmitrijs2005/recetario/internal/client/session"
	"github.com/dmitrijs2005/recetario/internal/client/storage"
	"github.com/dmitrijs2005/recetario/internal/filex"
	"github.com/dmitrijs2005/recetario/internal/logging"
)

const (
	// LogFile is written inside the data directory.
	LogFile = "recetario.log"
	// ExportDir holds downloaded recipe PDFs, inside the data directory.
	ExportDir = "exports"
)

// Backend is the recipe and cookbook surface of the API client.
type Backend interface {
	ListRecipes(ctx context.Context, f models.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	ListCookbooks(ctx context.Context, f models.CookbookFilter) ([]models.Cookbook, error)
	GetCookbook(ctx context.Context, id int64) (*models.Cookbook, error)
	CreateCookbook(ctx context.Context, in models.CookbookCreateInput) (*models.Cookbook, error)
	UpdateCookbook(ctx context.Context, id int64, in models.CookbookUpdateInput) (*models.Cookbook, error)
	DeleteCookbook(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	RecipePDF(ctx context.Context, id int64) ([]byte, error)
	CookbookPDF(ctx context.Context, id int64) (string, error)
}

// Session is implemented by *session.Manager.
type Session interface {
	Login(ctx context.Context, username, password string) session.Result
	Register(ctx context.Context, username, email, password string) session.Result
	Logout(ctx context.Context)
	LoadUser(ctx context.Context)
	IsAuthenticated() bool
	User() *models.User
	ExpiresAt() (time.Time, bool)
}

type App struct {
	backend Backend
	session Session
	router  *router.Router
	log     logging.Logger

	in  *bufio.Reader
	out io.Writer

	exportDir string

	recipeFilter   models.RecipeFilter
	cookbookSearch string
	renderedSeq    uint64

	closeOnce sync.Once
	closers   []io.Closer
}

func newApp(backend Backend, sess Session, rt *router.Router, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		backend: backend,
		session: sess,
		router:  rt,
		log:     log,
		in:      bufio.NewReader(in),
		out:     out,
		// Render the starting screen on the first pass.
		renderedSeq: rt.Seq() - 1,
	}
}

// NewApp wires the client: data directory, log file, local database,
// credential store, router, API client and session.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log := logging.New(logFile, logging.FormatText, cfg.LogLevel)

	db, err := storage.InitDatabase(ctx, dir)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	store, err := storage.NewCredentialStore(ctx, metadata.NewSQLiteRepository(db), log)
	if err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, err
	}

	rt := router.New(store, log, router.Routes())

	client, err := api.New(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
		api.WithLocation(rt),
	)
	if err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, err
	}

	sess := session.NewManager(client, store, rt, log)

	a := newApp(client, sess, rt, log, os.Stdin, os.Stdout)
	a.exportDir = filepath.Join(dir, ExportDir)
	a.closers = append(a.closers, db, logFile)
	log.Info(ctx, "client started", "api", client.BaseURL(), "data_dir", dir)
	return a, nil
}

// Run restores a previous session if a token was kept, then blocks in the
// REPL until the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, titleStyle.Render("Recetario")+" "+mutedStyle.Render("type 'help' for commands"))

	if a.session.IsAuthenticated() {
		a.session.LoadUser(ctx)
	}

	a.refresh(ctx)
	runREPL(ctx, a, a.prompt, a.in)
	return nil
}

// Close releases the database and the log file. It may be called more than
// once and from another goroutine than Run.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for _, c := range a.closers {
			_ = c.Close()
		}
	})
}

// maxRenders bounds how many screens one command may chain through, e.g. a
// form that submits and navigates to the detail screen.
const maxRenders = 8

// refresh renders the current screen while the location keeps changing.
func (a *App) refresh(ctx context.Context) {
	for i := 0; i < maxRenders && a.router.Seq() != a.renderedSeq; i++ {
		a.renderedSeq = a.router.Seq()
		a.render(ctx)
	}
}

func (a *App) prompt() string {
	status := a.router.CurrentPath()
	if u := a.session.User(); u != nil {
		status += " (" + u.Username + ")"
	} else if a.session.IsAuthenticated() {
		status += " (signed in)"
	}
	return fmt.Sprintf("recetario %s> ", status)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printError(err error) {
	a.println(errorStyle.Render("Error: " + describeError(err)))
}

// describeError prefers the backend's own message over the wrapped error text.
func describeError(err error) string {
	if d := api.Detail(err); d != "" {
		return d
	}
	return err.Error()
}

// navigate pushes path and reports routing errors to the user.
func (a *App) navigate(ctx context.Context, path string) error {
	if err := a.router.Push(ctx, path); err != nil {
		if errors.Is(err, router.ErrRouteNotFound) {
			return fmt.Errorf("no such page: %s", path)
		}
		return err
	}
	return nil
}

// navigateRoute pushes a named route, e.g. navigateRoute(ctx, router.RouteRecipeDetail, "id", "3").
func (a *App) navigateRoute(ctx context.Context, name string, pairs ...string) error {
	path, err := a.router.URL(name, pairs...)
	if err != nil {
		return err
	}
	return a.navigate(ctx, path)
}
