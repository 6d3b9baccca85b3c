package router

// Screen identifies what the terminal renders for a route. Several routes
// may share a screen (create and edit use the same form).
type Screen string

const (
	ScreenHome           Screen = "home"
	ScreenLogin          Screen = "login"
	ScreenRegister       Screen = "register"
	ScreenCookbooks      Screen = "cookbooks"
	ScreenCookbookDetail Screen = "cookbook-detail"
	ScreenCookbookForm   Screen = "cookbook-form"
	ScreenRecipeDetail   Screen = "recipe-detail"
	ScreenRecipeForm     Screen = "recipe-form"
	ScreenProfile        Screen = "profile"
)

// Route names, usable with (*Router).URL.
const (
	RouteHome           = "Home"
	RouteLogin          = "Login"
	RouteRegister       = "Register"
	RouteCookbooks      = "Cookbooks"
	RouteCookbookDetail = "CookbookDetail"
	RouteEditCookbook   = "EditCookbook"
	RouteRecipeDetail   = "RecipeDetail"
	RouteEditRecipe     = "EditRecipe"
	RouteCreateRecipe   = "CreateRecipe"
	RouteUserProfile    = "UserProfile"
	RouteCreateCookbook = "CreateCookbook"
)

// Route describes one navigable location. Path uses gorilla/mux templates.
type Route struct {
	Name         string
	Path         string
	Screen       Screen
	RequiresAuth bool
}

// Routes returns the application's route table.
func Routes() []Route {
	return []Route{
		{Name: RouteHome, Path: "/", Screen: ScreenHome},
		{Name: RouteLogin, Path: "/login", Screen: ScreenLogin},
		{Name: RouteRegister, Path: "/register", Screen: ScreenRegister},
		{Name: RouteCookbooks, Path: "/cookbooks", Screen: ScreenCookbooks},
		{Name: RouteCookbookDetail, Path: "/cookbooks/{id:[0-9]+}", Screen: ScreenCookbookDetail},
		{Name: RouteEditCookbook, Path: "/cookbooks/{id:[0-9]+}/edit", Screen: ScreenCookbookForm, RequiresAuth: true},
		{Name: RouteRecipeDetail, Path: "/recipes/{id:[0-9]+}", Screen: ScreenRecipeDetail},
		{Name: RouteEditRecipe, Path: "/recipes/{id:[0-9]+}/edit", Screen: ScreenRecipeForm, RequiresAuth: true},
		{Name: RouteCreateRecipe, Path: "/create-recipe", Screen: ScreenRecipeForm, RequiresAuth: true},
		{Name: RouteUserProfile, Path: "/profile", Screen: ScreenProfile, RequiresAuth: true},
		{Name: RouteCreateCookbook, Path: "/create-cookbook", Screen: ScreenCookbookForm, RequiresAuth: true},
	}
}
