package rest

import (
	"net/http"

	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) listRecipes(c *gin.Context) {
	skip, limit, ok := page(c)
	if !ok {
		return
	}

	recipes, err := s.svc.Recipes.List(c.Request.Context(), models.RecipeFilter{
		Skip:    skip,
		Limit:   limit,
		Country: c.Query("country"),
		Type:    c.Query("type"),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (s *Server) getRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := s.svc.Recipes.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (s *Server) createRecipe(c *gin.Context) {
	var req models.RecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalid(c, err.Error(), "body")
		return
	}

	recipe, err := s.svc.Recipes.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (s *Server) updateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalid(c, err.Error(), "body")
		return
	}

	recipe, err := s.svc.Recipes.Update(c.Request.Context(), currentUser(c), id, req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.svc.Recipes.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
