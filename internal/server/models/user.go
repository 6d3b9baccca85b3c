// Package models holds the server-side entities and the JSON shapes of the
// REST API.
package models

import "time"

type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

// Basic returns the author summary embedded in recipes and cookbooks.
func (u *User) Basic() *UserBasic {
	return &UserBasic{ID: u.ID, Username: u.Username, Email: u.Email}
}

type UserBasic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserCreate struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Profile is the body of GET /users/me and POST /register.
type Profile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Recipes   []Recipe   `json:"recipes"`
	Cookbooks []Cookbook `json:"cookbooks"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile returns the user with empty recipe and cookbook lists.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Recipes:   []Recipe{},
		Cookbooks: []Cookbook{},
	}
}
