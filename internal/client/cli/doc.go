// Package cli is the interactive terminal frontend of recetario.
//
// It wires configuration, the local credential store, the API client, the
// session manager and the router, then runs a REPL. After every command the
// screen for the current route is rendered again if the location changed.
// Form screens (login, register, recipe and cookbook forms) prompt for their
// fields as soon as they are shown.
//
// Commands
//
//	help                  show commands
//	go <path>             navigate, e.g. "go /recipes/3" ("open" is an alias)
//	home, cookbooks, profile, new-recipe, new-cookbook
//	back                  previous screen
//	reload                render the current screen again
//	login, register, logout, whoami
//	filter [country=X] [type=Y]   filter the recipe list on the home screen
//	search [text]         filter cookbooks by title
//	edit, delete          act on the recipe or cookbook being shown
//	pdf                   save the recipe as PDF, or link the cookbook PDF
//	exit | quit
package cli
