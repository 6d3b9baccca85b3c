// Package api is the HTTP client for the recetario backend.
//
// A single Client is shared by the whole program. Its transport attaches the
// stored access token to every request and reacts to 401 responses by
// clearing the token and sending the user to the login screen, unless the
// current screen already is login or register. Every other failure reaches
// the caller unchanged, non-2xx statuses as *Error.
package api
