package services

import (
	"fmt"

	"github.com/dmitrijs2005/recetario/internal/common"
)

// Error is a service failure carrying the message shown to API clients.
// Kind is one of the common sentinel errors and selects the HTTP status.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrBadCredentials     = &Error{Kind: common.ErrorUnauthorized, Detail: "Incorrect username or password"}
	ErrInvalidCredentials = &Error{Kind: common.ErrorUnauthorized, Detail: "Could not validate credentials"}

	ErrUsernameTaken = &Error{Kind: common.ErrorAlreadyExists, Detail: "Username already registered"}
	ErrEmailTaken    = &Error{Kind: common.ErrorAlreadyExists, Detail: "Email already registered"}

	ErrRecipeNotFound   = &Error{Kind: common.ErrorNotFound, Detail: "Recipe not found"}
	ErrCookbookNotFound = &Error{Kind: common.ErrorNotFound, Detail: "Cookbook not found"}

	ErrRecipeEditForbidden     = &Error{Kind: common.ErrorForbidden, Detail: "Not authorized to edit this recipe"}
	ErrRecipeDeleteForbidden   = &Error{Kind: common.ErrorForbidden, Detail: "Not authorized to delete this recipe"}
	ErrCookbookEditForbidden   = &Error{Kind: common.ErrorForbidden, Detail: "Not authorized to edit this cookbook"}
	ErrCookbookDeleteForbidden = &Error{Kind: common.ErrorForbidden, Detail: "Not authorized to delete this cookbook"}
	ErrForeignCookbook         = &Error{Kind: common.ErrorForbidden, Detail: "You can only add recipes to your own cookbooks"}

	ErrNotAnImage = &Error{Kind: common.ErrorValidation, Detail: "File must be an image"}
)

func invalidField(field string) error {
	return &Error{Kind: common.ErrorValidation, Detail: fmt.Sprintf("Invalid value for %s", field)}
}
