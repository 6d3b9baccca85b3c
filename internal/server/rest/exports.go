package rest

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) recipePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	filename, data, err := s.svc.Exports.RecipePDF(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) cookbookPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	url, err := s.svc.Exports.CookbookPDF(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
