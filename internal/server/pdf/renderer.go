// Package pdf renders recipes and cookbooks as printable A4 documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/go-pdf/fpdf"
)

const (
	margin = 72.0

	sizeTitle      = 24.0
	sizeCoverTitle = 36.0
	sizeHeading    = 16.0
	sizeBody       = 11.0
	sizeMeta       = 10.0
	sizeCoverDesc  = 14.0

	imageMaxWidth  = 324.0
	imageMaxHeight = 360.0
)

type rgb struct{ r, g, b int }

var (
	colorTitle    = rgb{41, 37, 36}
	colorSubtitle = rgb{87, 83, 78}
	colorMeta     = rgb{120, 113, 108}
	colorText     = rgb{0, 0, 0}
)

// ImageFetcher downloads the picture referenced by a recipe's image_url.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

type Renderer struct {
	images   ImageFetcher
	log      logging.Logger
	now      func() time.Time
	compress bool
}

func NewRenderer(images ImageFetcher, l logging.Logger) *Renderer {
	return &Renderer{
		images:   images,
		log:      l.With("module", "pdf"),
		now:      time.Now,
		compress: true,
	}
}

// Recipe writes a one-recipe document to w.
func (r *Renderer) Recipe(ctx context.Context, w io.Writer, recipe *models.Recipe, author string) error {
	d := r.newDocument(recipe.Title)
	d.pdf.AddPage()
	d.recipe(ctx, recipe, author)
	return d.output(w)
}

// Cookbook writes a cover page, a table of contents and one section per
// recipe to w.
func (r *Renderer) Cookbook(ctx context.Context, w io.Writer, cookbook *models.Cookbook, author string) error {
	d := r.newDocument(cookbook.Title)

	d.pdf.AddPage()
	d.pdf.Ln(2 * margin)
	d.text("B", sizeCoverTitle, colorTitle, 44, cookbook.Title, "C")
	d.pdf.Ln(8)
	d.text("", sizeMeta, colorMeta, 14, "A cookbook by "+author, "C")
	d.pdf.Ln(36)
	if cookbook.Description != nil && *cookbook.Description != "" {
		d.text("", sizeCoverDesc, colorText, 20, *cookbook.Description, "C")
	}

	d.pdf.AddPage()
	d.text("B", sizeTitle, colorTitle, 30, "Contents", "C")
	d.pdf.Ln(20)
	if len(cookbook.Recipes) == 0 {
		d.text("", sizeBody, colorText, 16, "No recipes yet.", "L")
	}
	for i, rec := range cookbook.Recipes {
		d.text("", sizeBody, colorText, 16, strconv.Itoa(i+1)+". "+rec.Title, "L")
		d.pdf.Ln(6)
	}

	for i := range cookbook.Recipes {
		d.pdf.AddPage()
		d.recipe(ctx, &cookbook.Recipes[i], "")
	}

	return d.output(w)
}

type document struct {
	r      *Renderer
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images int
}

func (r *Renderer) newDocument(title string) *document {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(true, margin)
	p.SetCompression(r.compress)
	p.SetTitle(title, true)
	p.SetCreator("Recetario", false)
	p.SetCreationDate(r.now())
	return &document{r: r, pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// text writes a wrapped paragraph across the full line width.
func (d *document) text(style string, size float64, c rgb, lineHeight float64, s, align string) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.MultiCell(0, lineHeight, d.tr(s), "", align, false)
}

func (d *document) heading(s string) {
	d.pdf.Ln(20)
	d.text("B", sizeHeading, colorSubtitle, 20, s, "L")
	d.pdf.Ln(10)
}

func (d *document) recipe(ctx context.Context, recipe *models.Recipe, author string) {
	d.text("B", sizeTitle, colorTitle, 30, recipe.Title, "C")
	d.pdf.Ln(12)
	d.text("", sizeMeta, colorMeta, 14, strings.ToUpper(recipeMeta(recipe, author)), "C")
	d.pdf.Ln(20)

	if recipe.ImageURL != nil && *recipe.ImageURL != "" {
		d.image(ctx, *recipe.ImageURL)
	}

	if recipe.Notes != nil && *recipe.Notes != "" {
		d.heading("Notes")
		d.text("", sizeBody, colorText, 16, *recipe.Notes, "L")
	}

	d.heading("Ingredients")
	for _, ing := range recipe.Ingredients {
		d.text("", sizeBody, colorText, 16, ingredientLine(ing), "L")
		d.pdf.Ln(6)
	}

	d.heading("Preparation")
	for _, step := range InstructionLines(recipe.Instructions, recipe.InstructionsFormat) {
		d.text("", sizeBody, colorText, 16, step, "L")
		d.pdf.Ln(8)
	}
}

// image places the recipe picture centred below the title. Images that
// cannot be fetched or decoded are logged and left out.
func (d *document) image(ctx context.Context, url string) {
	log := d.r.log
	if d.r.images == nil {
		return
	}

	data, contentType, err := d.r.images.Fetch(ctx, url)
	if err != nil {
		log.Warn(ctx, "failed to download recipe image", "url", url, "error", err)
		return
	}
	kind := imageType(contentType, url)
	if kind == "" {
		log.Warn(ctx, "unsupported recipe image type", "url", url, "content_type", contentType)
		return
	}

	d.images++
	name := "image" + strconv.Itoa(d.images)
	opts := fpdf.ImageOptions{ImageType: kind}
	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if d.pdf.Err() || info == nil || info.Width() <= 0 || info.Height() <= 0 {
		log.Warn(ctx, "failed to decode recipe image", "url", url, "error", d.pdf.Error())
		d.pdf.ClearError()
		return
	}

	w, h := fitImage(info.Width(), info.Height())
	pageW, _ := d.pdf.GetPageSize()
	d.pdf.ImageOptions(name, (pageW-w)/2, 0, w, h, true, opts, 0, "")
	d.pdf.Ln(20)
}

// fitImage scales an image to imageMaxWidth, shrinking further when it
// would be taller than imageMaxHeight.
func fitImage(w, h float64) (float64, float64) {
	aspect := h / w
	tw, th := imageMaxWidth, imageMaxWidth*aspect
	if th > imageMaxHeight {
		th = imageMaxHeight
		tw = th / aspect
	}
	return tw, th
}

// imageType maps a content type, or failing that the URL's extension, onto
// the image kinds fpdf can embed.
func imageType(contentType, url string) string {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch ct {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}

	u := strings.ToLower(strings.Split(url, "?")[0])
	switch path.Ext(u) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	}
	return ""
}

func recipeMeta(recipe *models.Recipe, author string) string {
	country := "International"
	if recipe.Country != nil && *recipe.Country != "" {
		country = *recipe.Country
	}
	parts := []string{
		country,
		recipe.Difficulty,
		strconv.Itoa(recipe.PreparationTimeMinutes) + " min",
	}
	if author != "" {
		parts = append(parts, "by "+author)
	}
	return strings.Join(parts, " | ")
}

func ingredientLine(ing models.Ingredient) string {
	line := "• " + ing.Name
	var qty []string
	if ing.Amount != nil && *ing.Amount != "" {
		qty = append(qty, *ing.Amount)
	}
	if ing.Unit != nil && *ing.Unit != "" {
		qty = append(qty, *ing.Unit)
	}
	if len(qty) > 0 {
		line += " (" + strings.Join(qty, " ") + ")"
	}
	return line
}

// InstructionLines splits instructions into non-empty steps, numbering them
// for the "numbered" format.
func InstructionLines(instructions, format string) []string {
	var steps []string
	for _, line := range strings.Split(instructions, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if format == models.InstructionsNumbered {
			line = strconv.Itoa(len(steps)+1) + ". " + line
		}
		steps = append(steps, line)
	}
	return steps
}
