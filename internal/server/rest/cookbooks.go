package rest

import (
	"net/http"

	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) listCookbooks(c *gin.Context) {
	skip, limit, ok := page(c)
	if !ok {
		return
	}

	cookbooks, err := s.svc.Cookbooks.List(c.Request.Context(), models.CookbookFilter{
		Skip:   skip,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cookbooks)
}

func (s *Server) getCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cookbook, err := s.svc.Cookbooks.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cookbook)
}

func (s *Server) createCookbook(c *gin.Context) {
	var req models.CookbookInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalid(c, err.Error(), "body")
		return
	}
	if req.RecipeIDs == nil {
		req.RecipeIDs = &[]int64{}
	}

	cookbook, err := s.svc.Cookbooks.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cookbook)
}

func (s *Server) updateCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.CookbookInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalid(c, err.Error(), "body")
		return
	}

	cookbook, err := s.svc.Cookbooks.Update(c.Request.Context(), currentUser(c), id, req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cookbook)
}

func (s *Server) deleteCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.svc.Cookbooks.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
