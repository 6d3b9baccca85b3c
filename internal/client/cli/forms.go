package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/client/models"
	"github.com/dmitrijs2005/recetario/internal/client/router"
	"github.com/dmitrijs2005/recetario/internal/common"
)

// Input seams, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
	openFile      = func(name string) (io.ReadCloser, error) { return os.Open(name) }
)

// clearValue typed into an optional field empties it.
const clearValue = "-"

func (a *App) loginForm(ctx context.Context) error {
	a.println(titleStyle.Render("Log in"))
	a.println(mutedStyle.Render("leave the username empty to skip · 'register' to create an account"))

	username, err := getSimpleText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return nil
	}

	password, err := getPassword(a.in, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, username, string(password))
	if !res.Success {
		a.println(errorStyle.Render(res.Error))
		return nil
	}

	a.println(successStyle.Render("Welcome, " + username + "!"))
	return a.navigate(ctx, "/")
}

func (a *App) registerForm(ctx context.Context) error {
	a.println(titleStyle.Render("Create an account"))
	a.println(mutedStyle.Render("leave the username empty to skip"))

	username, err := getSimpleText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return nil
	}
	email, err := getSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.in, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Register(ctx, username, email, string(password))
	if !res.Success {
		a.println(errorStyle.Render(res.Error))
		return nil
	}

	a.println(successStyle.Render("Account created. Welcome, " + username + "!"))
	return a.navigate(ctx, "/")
}

// ask prompts for a value showing the current one in brackets. Empty input
// keeps current; "-" clears it.
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt += " [" + current + "]"
	}
	v, err := getSimpleText(a.in, prompt, a.out)
	if err != nil {
		return "", err
	}
	switch v {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	return v, nil
}

// formHint explains the prompts. When editing, an empty title keeps the
// current one, so only "-" leaves the form.
func formHint(editing bool) string {
	if editing {
		return "empty keeps the value in brackets · '-' clears an optional field · '-' as title cancels"
	}
	return "empty keeps the value in brackets · '-' clears an optional field · empty title cancels"
}

func (a *App) askOptional(label string, current *string) (*string, error) {
	v, err := a.ask(label, deref(current))
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

// cancelForm leaves a form screen without saving.
func (a *App) cancelForm(ctx context.Context) error {
	a.println(mutedStyle.Render("Cancelled."))
	if err := a.router.Back(ctx); err != nil {
		return a.navigate(ctx, "/")
	}
	return nil
}

func (a *App) recipeForm(ctx context.Context, loc router.Location) error {
	var (
		in      models.RecipeInput
		editing = loc.Route.Name == router.RouteEditRecipe
		id      int64
	)

	if editing {
		var err error
		if id, err = loc.ID(); err != nil {
			return err
		}
		existing, err := a.backend.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		in = existing.Input()
		a.println(titleStyle.Render("Edit recipe"))
	} else {
		in = models.RecipeInput{InstructionsFormat: models.InstructionsNumbered, Difficulty: models.DefaultDifficulty}
		a.println(titleStyle.Render("New recipe"))
	}
	a.println(mutedStyle.Render(formHint(editing)))

	title, err := a.ask("Title", in.Title)
	if err != nil {
		return err
	}
	if title == "" {
		return a.cancelForm(ctx)
	}
	in.Title = title

	if editing {
		a.println(mutedStyle.Render("Current ingredients:"))
		for _, ing := range in.Ingredients {
			a.println("  " + formatIngredientInput(ing))
		}
	}
	rawIngredients, err := getMultiline(a.in, "Ingredients, one per line as 'name; amount; unit'", a.out)
	if err != nil {
		return err
	}
	if rawIngredients != "" {
		in.Ingredients = parseIngredients(rawIngredients)
	}
	if in.Ingredients == nil {
		in.Ingredients = []models.Ingredient{}
	}

	instructions, err := getMultiline(a.in, "Instructions", a.out)
	if err != nil {
		return err
	}
	if instructions != "" {
		in.Instructions = instructions
	}

	format, err := a.ask("Instructions format (numbered/plain)", in.InstructionsFormat)
	if err != nil {
		return err
	}
	if format != models.InstructionsPlain {
		format = models.InstructionsNumbered
	}
	in.InstructionsFormat = format

	if in.Country, err = a.askOptional("Country", in.Country); err != nil {
		return err
	}
	if in.Type, err = a.askOptional("Type", in.Type); err != nil {
		return err
	}

	prep, err := a.ask("Preparation time (minutes)", strconv.Itoa(in.PreparationTimeMinutes))
	if err != nil {
		return err
	}
	if in.PreparationTimeMinutes, err = parseNonNegative(prep); err != nil {
		return fmt.Errorf("preparation time: %w", err)
	}

	difficulty, err := a.ask("Difficulty (easy/medium/hard)", in.Difficulty)
	if err != nil {
		return err
	}
	if difficulty == "" {
		difficulty = models.DefaultDifficulty
	}
	in.Difficulty = difficulty

	if in.Notes, err = a.askOptional("Notes", in.Notes); err != nil {
		return err
	}

	cookbook := ""
	if in.CookbookID != nil {
		cookbook = strconv.FormatInt(*in.CookbookID, 10)
	}
	cookbook, err = a.ask("Cookbook id", cookbook)
	if err != nil {
		return err
	}
	if in.CookbookID, err = parseOptionalID(cookbook); err != nil {
		return fmt.Errorf("cookbook id: %w", err)
	}

	imagePath, err := getSimpleText(a.in, "Image file to upload (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if imagePath != "" {
		url, err := a.uploadImage(ctx, imagePath)
		if err != nil {
			return err
		}
		in.ImageURL = &url
	}

	var saved *models.Recipe
	if editing {
		saved, err = a.backend.UpdateRecipe(ctx, id, in)
	} else {
		saved, err = a.backend.CreateRecipe(ctx, in)
	}
	if err != nil {
		return err
	}

	a.println(successStyle.Render("Recipe saved."))
	return a.navigateRoute(ctx, router.RouteRecipeDetail, "id", strconv.FormatInt(saved.ID, 10))
}

func (a *App) uploadImage(ctx context.Context, path string) (string, error) {
	f, err := openFile(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	url, err := a.backend.UploadImage(ctx, filepath.Base(path), f)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	a.println(mutedStyle.Render("Uploaded " + url))
	return url, nil
}

func (a *App) cookbookForm(ctx context.Context, loc router.Location) error {
	var (
		editing     = loc.Route.Name == router.RouteEditCookbook
		id          int64
		title       string
		description *string
		current     []int64
	)

	if editing {
		var err error
		if id, err = loc.ID(); err != nil {
			return err
		}
		existing, err := a.backend.GetCookbook(ctx, id)
		if err != nil {
			return err
		}
		title, description, current = existing.Title, existing.Description, existing.RecipeIDs()
		a.println(titleStyle.Render("Edit cookbook"))
	} else {
		a.println(titleStyle.Render("New cookbook"))
	}
	a.println(mutedStyle.Render(formHint(editing)))

	title, err := a.ask("Title", title)
	if err != nil {
		return err
	}
	if title == "" {
		return a.cancelForm(ctx)
	}
	if description, err = a.askOptional("Description", description); err != nil {
		return err
	}

	a.listOwnRecipes(ctx)
	rawIDs, err := getSimpleText(a.in, "Recipe ids, comma separated "+idsHint(current), a.out)
	if err != nil {
		return err
	}

	var saved *models.Cookbook
	if editing {
		upd := models.CookbookUpdateInput{Title: title, Description: description}
		switch rawIDs {
		case "":
		case clearValue:
			upd.RecipeIDs = &[]int64{}
		default:
			ids, err := parseIDList(rawIDs)
			if err != nil {
				return err
			}
			upd.RecipeIDs = &ids
		}
		saved, err = a.backend.UpdateCookbook(ctx, id, upd)
	} else {
		create := models.CookbookCreateInput{Title: title, Description: description, RecipeIDs: []int64{}}
		if rawIDs != "" && rawIDs != clearValue {
			if create.RecipeIDs, err = parseIDList(rawIDs); err != nil {
				return err
			}
		}
		saved, err = a.backend.CreateCookbook(ctx, create)
	}
	if err != nil {
		return err
	}

	a.println(successStyle.Render("Cookbook saved."))
	return a.navigateRoute(ctx, router.RouteCookbookDetail, "id", strconv.FormatInt(saved.ID, 10))
}

// listOwnRecipes shows the recipes that can be put in a cookbook; only the
// owner's recipes are attached by the backend.
func (a *App) listOwnRecipes(ctx context.Context) {
	if a.session.User() == nil {
		a.session.LoadUser(ctx)
	}
	u := a.session.User()
	if u == nil || len(u.Recipes) == 0 {
		a.println(mutedStyle.Render("You have no recipes to add yet."))
		return
	}
	a.println(labelStyle.Render("Your recipes"))
	for _, r := range u.Recipes {
		a.println(recipeLine(r))
	}
}

func idsHint(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// parseIngredients reads lines of "name; amount; unit"; amount and unit are
// optional.
func parseIngredients(raw string) []models.Ingredient {
	var out []models.Ingredient
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Split(line, ";")
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		ing := models.Ingredient{Name: name}
		if len(fields) > 1 {
			if v := strings.TrimSpace(fields[1]); v != "" {
				ing.Amount = &v
			}
		}
		if len(fields) > 2 {
			if v := strings.TrimSpace(fields[2]); v != "" {
				ing.Unit = &v
			}
		}
		out = append(out, ing)
	}
	return out
}

func formatIngredientInput(ing models.Ingredient) string {
	return strings.TrimRight(ing.Name+"; "+deref(ing.Amount)+"; "+deref(ing.Unit), "; ")
}

func parseNonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func parseOptionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid id %q", s)
	}
	return &id, nil
}

func parseIDList(s string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseOptionalID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, *id)
	}
	return ids, nil
}
