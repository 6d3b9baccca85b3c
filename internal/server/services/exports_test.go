package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/dmitrijs2005/recetario/internal/server/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T, putter *fakePutter) (*ExportService, *memStore) {
	t.Helper()
	store := newMemStore()
	store.addUser(1, "alice")
	store.addCookbook(3, 1, "Sunny dishes")
	store.addRecipe(5, 1, "Paella", ptr(int64(3)))
	store.addRecipe(6, 1, "Gazpacho", ptr(int64(3)))

	db, _ := newTxDB(t)
	m := &fakeRepoManager{store}
	cfg := testConfig()
	cfg.S3PublicURL = "https://cdn.example/files"
	return NewExportService(
		NewRecipeService(db, m),
		NewCookbookService(db, m),
		pdf.NewRenderer(nil, logging.Discard()),
		NewImageService(putter, cfg),
	), store
}

func TestExportRecipePDF(t *testing.T) {
	s, _ := newExportService(t, &fakePutter{})

	name, data, err := s.RecipePDF(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Paella.pdf", name)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportRecipePDF_NotFound(t *testing.T) {
	s, _ := newExportService(t, &fakePutter{})

	_, _, err := s.RecipePDF(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExportCookbookPDF(t *testing.T) {
	putter := &fakePutter{}
	s, _ := newExportService(t, putter)

	url, err := s.CookbookPDF(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/files/pdf/cookbook_3_Sunny_dishes.pdf", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "pdf/cookbook_3_Sunny_dishes.pdf", *putter.input.Key)
	assert.Equal(t, "application/pdf", *putter.input.ContentType)
	assert.Equal(t, int64(len(putter.body)), *putter.input.ContentLength)
	assert.Contains(t, putter.body, "%PDF-")
}

func TestExportCookbookPDF_Errors(t *testing.T) {
	t.Run("unknown cookbook", func(t *testing.T) {
		putter := &fakePutter{}
		s, _ := newExportService(t, putter)

		_, err := s.CookbookPDF(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCookbookNotFound)
		assert.Nil(t, putter.input)
	})

	t.Run("storage failure", func(t *testing.T) {
		s, _ := newExportService(t, &fakePutter{err: errBoom})

		_, err := s.CookbookPDF(context.Background(), 3)
		assert.ErrorIs(t, err, errBoom)
	})
}
