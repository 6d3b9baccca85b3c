package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/client/router"
	"github.com/dmitrijs2005/recetario/internal/filex"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) Help(ctx context.Context) error {
	a.println(labelStyle.Render("Navigation: ") + "go <path>, home, cookbooks, back, reload")
	a.println(labelStyle.Render("Browse:     ") + "filter [country=X] [type=Y], search [text], pdf")
	if a.session.IsAuthenticated() {
		a.println(labelStyle.Render("Account:    ") + "profile, whoami, logout")
		a.println(labelStyle.Render("Create:     ") + "new-recipe, new-cookbook")
		a.println(labelStyle.Render("On a page:  ") + "edit, delete")
	} else {
		a.println(labelStyle.Render("Account:    ") + "login, register")
	}
	a.println(labelStyle.Render("Other:      ") + "help, exit")
	return nil
}

// Navigate goes to path. Asking for the current location renders it again.
func (a *App) Navigate(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	seq := a.router.Seq()
	if err := a.navigate(ctx, path); err != nil {
		return err
	}
	if a.router.Seq() == seq {
		return a.Reload(ctx)
	}
	return nil
}

func (a *App) Back(ctx context.Context) error {
	if err := a.router.Back(ctx); err != nil {
		if errors.Is(err, router.ErrNoHistory) {
			return errors.New("nothing to go back to")
		}
		return err
	}
	return nil
}

// Reload renders the current screen again, fetching fresh data.
func (a *App) Reload(ctx context.Context) error {
	a.renderedSeq = a.router.Seq()
	a.render(ctx)
	return nil
}

// Login shows the login form, in place when already on the login screen.
func (a *App) Login(ctx context.Context) error {
	if a.router.Current().Route.Screen == router.ScreenLogin {
		return a.Reload(ctx)
	}
	return a.navigate(ctx, "/login")
}

func (a *App) Register(ctx context.Context) error {
	if a.router.Current().Route.Screen == router.ScreenRegister {
		return a.Reload(ctx)
	}
	return a.navigate(ctx, "/register")
}

func (a *App) Logout(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	a.session.Logout(ctx)
	a.println(successStyle.Render("Logged out."))
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	a.session.LoadUser(ctx)
	u := a.session.User()
	if u == nil {
		if !a.session.IsAuthenticated() {
			return errNotLoggedIn
		}
		return errors.New("profile is not available right now")
	}

	line := fmt.Sprintf("%s <%s>", u.Username, u.Email)
	if exp, ok := a.session.ExpiresAt(); ok {
		line += mutedStyle.Render(" · session expires " + exp.Local().Format("2006-01-02 15:04"))
	}
	a.println(line)
	return nil
}

// Filter sets the recipe filters of the home screen from key=value pairs.
// Without arguments the filters are cleared.
func (a *App) Filter(ctx context.Context, args []string) error {
	f := a.recipeFilter
	if len(args) == 0 {
		f.Country, f.Type = "", ""
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "country":
			f.Country = value
		case "type":
			f.Type = value
		default:
			return fmt.Errorf("unknown filter %q (use country or type)", key)
		}
	}
	a.recipeFilter = f

	if a.router.Current().Route.Screen == router.ScreenHome {
		return a.Reload(ctx)
	}
	return a.navigate(ctx, "/")
}

// Search filters the cookbook list by title. An empty query clears it.
func (a *App) Search(ctx context.Context, query string) error {
	a.cookbookSearch = strings.TrimSpace(query)

	if a.router.Current().Route.Screen == router.ScreenCookbooks {
		return a.Reload(ctx)
	}
	return a.navigate(ctx, "/cookbooks")
}

func (a *App) Edit(ctx context.Context) error {
	loc := a.router.Current()
	id, ok := loc.Params["id"]

	switch {
	case ok && loc.Route.Name == router.RouteRecipeDetail:
		return a.navigateRoute(ctx, router.RouteEditRecipe, "id", id)
	case ok && loc.Route.Name == router.RouteCookbookDetail:
		return a.navigateRoute(ctx, router.RouteEditCookbook, "id", id)
	}
	return errors.New("open a recipe or cookbook first")
}

func (a *App) Delete(ctx context.Context) error {
	loc := a.router.Current()

	var (
		what  string
		del   func(context.Context, int64) error
		after string
	)
	switch loc.Route.Name {
	case router.RouteRecipeDetail:
		what, del, after = "recipe", a.backend.DeleteRecipe, "/"
	case router.RouteCookbookDetail:
		what, del, after = "cookbook", a.backend.DeleteCookbook, "/cookbooks"
	default:
		return errors.New("open a recipe or cookbook first")
	}

	id, err := loc.ID()
	if err != nil {
		return err
	}

	ok, err := confirm(a.in, fmt.Sprintf("Delete this %s?", what), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println(mutedStyle.Render("Kept."))
		return nil
	}

	if err := del(ctx, id); err != nil {
		return err
	}
	a.println(successStyle.Render(strings.ToUpper(what[:1]) + what[1:] + " deleted."))
	return a.navigate(ctx, after)
}

// PDF saves the open recipe as a PDF in the export directory, or prints the
// download link of the open cookbook's PDF.
func (a *App) PDF(ctx context.Context) error {
	loc := a.router.Current()
	if loc.Route.Name != router.RouteRecipeDetail && loc.Route.Name != router.RouteCookbookDetail {
		return errors.New("open a recipe or cookbook first")
	}

	id, err := loc.ID()
	if err != nil {
		return err
	}

	if loc.Route.Name == router.RouteCookbookDetail {
		url, err := a.backend.CookbookPDF(ctx, id)
		if err != nil {
			return err
		}
		a.println(successStyle.Render("Cookbook PDF ready: ") + url)
		return nil
	}

	data, err := a.backend.RecipePDF(ctx, id)
	if err != nil {
		return err
	}
	dir, err := filex.EnsureDir(a.exportDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "recipe_"+strconv.FormatInt(id, 10)+".pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	a.log.Info(ctx, "recipe pdf saved", "recipe_id", id, "path", path)
	a.println(successStyle.Render("Saved ") + path)
	return nil
}
