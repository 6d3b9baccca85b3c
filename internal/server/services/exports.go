package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/server/models"
)

// DocumentRenderer is implemented by *pdf.Renderer.
type DocumentRenderer interface {
	Recipe(ctx context.Context, w io.Writer, recipe *models.Recipe, author string) error
	Cookbook(ctx context.Context, w io.Writer, cookbook *models.Cookbook, author string) error
}

// DocumentUploader is implemented by *ImageService.
type DocumentUploader interface {
	UploadPDF(ctx context.Context, name string, data []byte) (string, error)
}

// ExportService produces printable documents of recipes and cookbooks.
type ExportService struct {
	recipes   *RecipeService
	cookbooks *CookbookService
	renderer  DocumentRenderer
	uploader  DocumentUploader
}

func NewExportService(r *RecipeService, c *CookbookService, renderer DocumentRenderer, uploader DocumentUploader) *ExportService {
	return &ExportService{recipes: r, cookbooks: c, renderer: renderer, uploader: uploader}
}

// RecipePDF renders a recipe and returns the document with a suggested
// file name.
func (s *ExportService) RecipePDF(ctx context.Context, id int64) (string, []byte, error) {
	recipe, err := s.recipes.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Recipe(ctx, &buf, recipe, ownerName(recipe.Owner)); err != nil {
		return "", nil, fmt.Errorf("render recipe %d: %w", id, err)
	}
	return recipe.Title + ".pdf", buf.Bytes(), nil
}

// CookbookPDF renders a cookbook, stores the document and returns its
// public URL.
func (s *ExportService) CookbookPDF(ctx context.Context, id int64) (string, error) {
	cookbook, err := s.cookbooks.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.renderer.Cookbook(ctx, &buf, cookbook, ownerName(cookbook.Owner)); err != nil {
		return "", fmt.Errorf("render cookbook %d: %w", id, err)
	}

	url, err := s.uploader.UploadPDF(ctx, CookbookPDFName(cookbook), buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("upload cookbook %d: %w", id, err)
	}
	return url, nil
}

// CookbookPDFName is the object name of a cookbook export, e.g.
// cookbook_3_Sunny_dishes.pdf.
func CookbookPDFName(c *models.Cookbook) string {
	return "cookbook_" + strconv.FormatInt(c.ID, 10) + "_" + strings.ReplaceAll(c.Title, " ", "_") + ".pdf"
}

func ownerName(u *models.UserBasic) string {
	if u == nil {
		return ""
	}
	return u.Username
}
