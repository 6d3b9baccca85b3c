package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/client/models"
	"github.com/dmitrijs2005/recetario/internal/client/router"
)

// render shows the screen of the current location.
func (a *App) render(ctx context.Context) {
	loc := a.router.Current()

	var err error
	switch loc.Route.Screen {
	case router.ScreenHome:
		err = a.showHome(ctx)
	case router.ScreenLogin:
		err = a.loginForm(ctx)
	case router.ScreenRegister:
		err = a.registerForm(ctx)
	case router.ScreenCookbooks:
		err = a.showCookbooks(ctx)
	case router.ScreenCookbookDetail:
		err = a.showCookbook(ctx, loc)
	case router.ScreenCookbookForm:
		err = a.cookbookForm(ctx, loc)
	case router.ScreenRecipeDetail:
		err = a.showRecipe(ctx, loc)
	case router.ScreenRecipeForm:
		err = a.recipeForm(ctx, loc)
	case router.ScreenProfile:
		err = a.showProfile(ctx)
	default:
		err = fmt.Errorf("nothing to show for %s", loc.Path)
	}

	if err != nil {
		a.log.Warn(ctx, "screen failed", "path", loc.Path, "error", err)
		a.printError(err)
	}
}

func (a *App) showHome(ctx context.Context) error {
	recipes, err := a.backend.ListRecipes(ctx, a.recipeFilter)
	if err != nil {
		return err
	}
	a.println(renderHome(recipes, a.recipeFilter, a.session.IsAuthenticated()))
	return nil
}

func (a *App) showCookbooks(ctx context.Context) error {
	cookbooks, err := a.backend.ListCookbooks(ctx, models.CookbookFilter{Search: a.cookbookSearch})
	if err != nil {
		return err
	}
	a.println(renderCookbookList(cookbooks, a.cookbookSearch))
	return nil
}

func (a *App) showCookbook(ctx context.Context, loc router.Location) error {
	id, err := loc.ID()
	if err != nil {
		return err
	}
	cb, err := a.backend.GetCookbook(ctx, id)
	if err != nil {
		return err
	}
	a.println(renderCookbook(*cb, a.owns(cb.OwnerID)))
	return nil
}

func (a *App) showRecipe(ctx context.Context, loc router.Location) error {
	id, err := loc.ID()
	if err != nil {
		return err
	}
	r, err := a.backend.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	a.println(renderRecipe(*r, a.owns(r.OwnerID)))
	return nil
}

func (a *App) showProfile(ctx context.Context) error {
	a.session.LoadUser(ctx)
	u := a.session.User()
	if u == nil {
		// LoadUser logged out on 401; the router already moved on.
		if !a.session.IsAuthenticated() {
			return nil
		}
		return fmt.Errorf("profile is not available right now")
	}
	exp, ok := a.session.ExpiresAt()
	a.println(renderProfile(*u, exp, ok))
	return nil
}

// owns reports whether the signed-in user is ownerID.
func (a *App) owns(ownerID int64) bool {
	u := a.session.User()
	return u != nil && u.ID == ownerID
}

func renderHome(recipes []models.Recipe, f models.RecipeFilter, authenticated bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipes"))
	b.WriteString("\n")
	if f.Country != "" || f.Type != "" {
		var parts []string
		if f.Country != "" {
			parts = append(parts, "country="+f.Country)
		}
		if f.Type != "" {
			parts = append(parts, "type="+f.Type)
		}
		b.WriteString(mutedStyle.Render("filter: " + strings.Join(parts, " ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(recipes) == 0 {
		b.WriteString(mutedStyle.Render("No recipes yet."))
		b.WriteString("\n")
	}
	for _, r := range recipes {
		b.WriteString(recipeLine(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if authenticated {
		b.WriteString(mutedStyle.Render("open /recipes/<id> · new-recipe · cookbooks · profile · filter country=<c> type=<t>"))
	} else {
		b.WriteString(mutedStyle.Render("open /recipes/<id> · cookbooks · login · register"))
	}
	return b.String()
}

func recipeLine(r models.Recipe) string {
	meta := []string{r.Difficulty}
	if r.PreparationTimeMinutes > 0 {
		meta = append(meta, fmt.Sprintf("%d min", r.PreparationTimeMinutes))
	}
	if r.Country != nil && *r.Country != "" {
		meta = append(meta, *r.Country)
	}
	if r.Type != nil && *r.Type != "" {
		meta = append(meta, *r.Type)
	}
	line := fmt.Sprintf("  #%-4d %s  %s", r.ID, r.Title, mutedStyle.Render(strings.Join(meta, " · ")))
	if r.Owner != nil {
		line += mutedStyle.Render(" by " + r.Owner.Username)
	}
	return line
}

func renderRecipe(r models.Recipe, owned bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	if r.Owner != nil {
		b.WriteString(mutedStyle.Render("by " + r.Owner.Username + " · " + r.CreatedAt.Format("2006-01-02")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label+": ") + subtitleStyle.Render(value))
		b.WriteString("\n")
	}
	field("Difficulty", r.Difficulty)
	if r.PreparationTimeMinutes > 0 {
		field("Preparation", fmt.Sprintf("%d min", r.PreparationTimeMinutes))
	}
	field("Country", deref(r.Country))
	field("Type", deref(r.Type))
	field("Image", deref(r.ImageURL))
	if r.CookbookID != nil {
		field("Cookbook", fmt.Sprintf("/cookbooks/%d", *r.CookbookID))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • " + formatIngredient(ing))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Instructions"))
	b.WriteString("\n")
	b.WriteString(formatInstructions(r.Instructions, r.InstructionsFormat))
	b.WriteString("\n")

	if notes := deref(r.Notes); notes != "" {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(labelStyle.Render("Notes") + "\n" + notes))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(detailActions(owned)))
	return b.String()
}

func detailActions(owned bool) string {
	if owned {
		return "pdf · edit · delete · back"
	}
	return "pdf · back"
}

func formatIngredient(ing models.Ingredient) string {
	parts := make([]string, 0, 3)
	if a := deref(ing.Amount); a != "" {
		parts = append(parts, a)
	}
	if u := deref(ing.Unit); u != "" {
		parts = append(parts, u)
	}
	parts = append(parts, ing.Name)
	return strings.Join(parts, " ")
}

// formatInstructions numbers the non-empty lines for the "numbered" format
// and returns the text unchanged for "plain".
func formatInstructions(text, format string) string {
	if format == models.InstructionsPlain {
		return text
	}

	var b strings.Builder
	n := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n++
		if n > 1 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%2d. %s", n, line))
	}
	return b.String()
}

func renderCookbookList(cookbooks []models.Cookbook, search string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cookbooks"))
	b.WriteString("\n")
	if search != "" {
		b.WriteString(mutedStyle.Render("search: " + search))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(cookbooks) == 0 {
		b.WriteString(mutedStyle.Render("No cookbooks found."))
		b.WriteString("\n")
	}
	for _, c := range cookbooks {
		line := fmt.Sprintf("  #%-4d %s  %s", c.ID, c.Title, mutedStyle.Render(pluralize(len(c.Recipes), "recipe")))
		if c.Owner != nil {
			line += mutedStyle.Render(" by " + c.Owner.Username)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("open /cookbooks/<id> · search <text> · new-cookbook"))
	return b.String()
}

func renderCookbook(c models.Cookbook, owned bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	if c.Owner != nil {
		b.WriteString(mutedStyle.Render("by " + c.Owner.Username + " · " + c.CreatedAt.Format("2006-01-02")))
		b.WriteString("\n")
	}
	if d := deref(c.Description); d != "" {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(d))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(pluralize(len(c.Recipes), "recipe")))
	b.WriteString("\n")
	for _, r := range c.Recipes {
		b.WriteString(recipeLine(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(detailActions(owned)))
	return b.String()
}

func renderProfile(u models.User, expires time.Time, hasExpiry bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(u.Username))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(u.Email))
	b.WriteString("\n")
	if hasExpiry {
		b.WriteString(mutedStyle.Render("session expires " + expires.Local().Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("My recipes"))
	b.WriteString("\n")
	if len(u.Recipes) == 0 {
		b.WriteString(mutedStyle.Render("  none yet · new-recipe"))
		b.WriteString("\n")
	}
	for _, r := range u.Recipes {
		b.WriteString(recipeLine(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("My cookbooks"))
	b.WriteString("\n")
	if len(u.Cookbooks) == 0 {
		b.WriteString(mutedStyle.Render("  none yet · new-cookbook"))
		b.WriteString("\n")
	}
	for _, c := range u.Cookbooks {
		b.WriteString(fmt.Sprintf("  #%-4d %s  %s", c.ID, c.Title, mutedStyle.Render(pluralize(len(c.Recipes), "recipe"))))
		b.WriteString("\n")
	}
	return b.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
