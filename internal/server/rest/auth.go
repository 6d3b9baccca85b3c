package rest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Recetario API"})
}

// login implements the OAuth2 password flow: form fields username and
// password in, bearer token out.
func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if strings.TrimSpace(username) == "" {
		writeInvalid(c, "field required", "body", "username")
		return
	}
	if password == "" {
		writeInvalid(c, "field required", "body", "password")
		return
	}

	token, err := s.svc.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

func (s *Server) register(c *gin.Context) {
	var req models.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalid(c, err.Error(), "body")
		return
	}

	user, err := s.svc.Users.Register(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

func (s *Server) me(c *gin.Context) {
	profile, err := s.svc.Users.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
