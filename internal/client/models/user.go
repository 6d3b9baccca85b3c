// Package models holds the JSON shapes exchanged with the recetario API.
package models

// UserBasic is the author summary embedded in recipes and cookbooks.
type UserBasic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User is the profile returned by GET /users/me.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Recipes   []Recipe   `json:"recipes"`
	Cookbooks []Cookbook `json:"cookbooks"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the body of a successful POST /token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
