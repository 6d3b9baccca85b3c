package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/recetario/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	token    string
	clears   int
	clearErr error
}

func (s *fakeStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeStore) ClearToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clears++
	return s.clearErr
}

type fakeLocation struct {
	path      string
	redirects []string
}

func (l *fakeLocation) CurrentPath() string { return l.path }
func (l *fakeLocation) Redirect(p string) {
	l.redirects = append(l.redirects, p)
	l.path = p
}

func newTestClient(t *testing.T, h http.HandlerFunc, store *fakeStore, loc *fakeLocation) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts := []Option{}
	if loc != nil {
		opts = append(opts, WithLocation(loc))
	}
	c, err := New(srv.URL, store, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("localhost:8000", &fakeStore{})
	require.Error(t, err)

	c, err := New("", &fakeStore{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New("http://api.local/v1/", &fakeStore{})
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/v1", c.BaseURL())
}

func TestTransport_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"with token", "abc", "Bearer abc"},
		{"without token", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotReqID string
			var hasAuth bool
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_, hasAuth = r.Header["Authorization"]
				gotReqID = r.Header.Get("X-Request-ID")
				writeJSON(w, http.StatusOK, []models.Recipe{})
			}, &fakeStore{token: tt.token}, nil)

			_, err := c.ListRecipes(context.Background(), models.RecipeFilter{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, gotAuth)
			assert.Equal(t, tt.token != "", hasAuth)
			assert.NotEmpty(t, gotReqID)
		})
	}
}

func TestTransport_TokenReadPerRequest(t *testing.T) {
	store := &fakeStore{}
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Cookbook{})
	}, store, nil)
	ctx := context.Background()

	_, err := c.ListCookbooks(ctx, models.CookbookFilter{})
	require.NoError(t, err)
	store.mu.Lock()
	store.token = "late"
	store.mu.Unlock()
	_, err = c.ListCookbooks(ctx, models.CookbookFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer late"}, seen)
}

func TestTransport_Unauthorized(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		wantRedirects []string
	}{
		{"protected screen redirects", "/profile", []string{"/login"}},
		{"home redirects", "/", []string{"/login"}},
		{"on login stays", "/login", nil},
		{"on register stays", "/register", nil},
		{"substring match", "/login/extra", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{token: "expired"}
			loc := &fakeLocation{path: tt.current}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			}, store, loc)

			_, err := c.CurrentUser(context.Background())

			require.ErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, "Could not validate credentials", Detail(err))
			assert.Empty(t, store.Token())
			assert.Equal(t, 1, store.clears)
			assert.Equal(t, tt.wantRedirects, loc.redirects)
		})
	}
}

func TestTransport_UnauthorizedClearErrorStillRedirects(t *testing.T) {
	store := &fakeStore{token: "x", clearErr: errors.New("disk")}
	loc := &fakeLocation{path: "/profile"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, store, loc)

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{"/login"}, loc.redirects)
}

func TestTransport_OtherErrorsPassThrough(t *testing.T) {
	tests := []struct {
		status int
		body   string
		is     error
		detail string
	}{
		{http.StatusForbidden, `{"detail":"Not authorized to update this recipe"}`, ErrForbidden, "Not authorized to update this recipe"},
		{http.StatusNotFound, `{"detail":"Recipe not found"}`, ErrNotFound, "Recipe not found"},
		{http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad email"}]}`, nil, "field required; bad email"},
		{http.StatusInternalServerError, `oops`, nil, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			store := &fakeStore{token: "keep"}
			loc := &fakeLocation{path: "/recipes/1"}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, store, loc)

			_, err := c.GetRecipe(context.Background(), 1)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.detail, apiErr.Detail)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.NotErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, "keep", store.Token())
			assert.Empty(t, loc.redirects)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, &fakeStore{})
	require.NoError(t, err)

	_, err = c.CurrentUser(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_Login_FormEncoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "p&w=1", r.PostForm.Get("password"))
		writeJSON(w, http.StatusOK, models.Token{AccessToken: "tok", TokenType: "bearer"})
	}, &fakeStore{}, nil)

	tok, err := c.Login(context.Background(), "alice", "p&w=1")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
}

func TestClient_Register_JSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in models.RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.RegisterInput{Username: "bob", Email: "b@x.io", Password: "pw"}, in)
		writeJSON(w, http.StatusOK, models.User{ID: 2, Username: "bob", Email: "b@x.io"})
	}, &fakeStore{}, nil)

	u, err := c.Register(context.Background(), models.RegisterInput{Username: "bob", Email: "b@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestClient_ListRecipes_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("skip"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "Peru", q.Get("country"))
		assert.Equal(t, "", q.Get("type"))
		_, hasType := q["type"]
		assert.False(t, hasType)
		writeJSON(w, http.StatusOK, []models.Recipe{{ID: 1, Title: "Ceviche"}})
	}, &fakeStore{}, nil)

	out, err := c.ListRecipes(context.Background(), models.RecipeFilter{Skip: 10, Limit: 5, Country: "Peru"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ceviche", out[0].Title)
}

func TestClient_RecipeCRUD(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusOK, models.Recipe{ID: 7, Title: "Arepa"})
		}
	}, &fakeStore{token: "t"}, nil)
	ctx := context.Background()
	in := models.RecipeInput{Title: "Arepa", InstructionsFormat: models.InstructionsPlain, Difficulty: "easy"}

	r, err := c.CreateRecipe(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.ID)
	_, err = c.GetRecipe(ctx, 7)
	require.NoError(t, err)
	_, err = c.UpdateRecipe(ctx, 7, in)
	require.NoError(t, err)
	require.NoError(t, c.DeleteRecipe(ctx, 7))

	assert.Equal(t, []string{"POST /recipes", "GET /recipes/7", "PUT /recipes/7", "DELETE /recipes/7"}, calls)
}

func TestClient_CookbookInputs(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		bodies = append(bodies, m)
		writeJSON(w, http.StatusOK, models.Cookbook{ID: 3})
	}, &fakeStore{token: "t"}, nil)
	ctx := context.Background()

	_, err := c.CreateCookbook(ctx, models.CookbookCreateInput{Title: "Andes"})
	require.NoError(t, err)
	_, err = c.UpdateCookbook(ctx, 3, models.CookbookUpdateInput{Title: "Andes"})
	require.NoError(t, err)
	empty := []int64{}
	_, err = c.UpdateCookbook(ctx, 3, models.CookbookUpdateInput{Title: "Andes", RecipeIDs: &empty})
	require.NoError(t, err)

	require.Len(t, bodies, 3)
	assert.Equal(t, []any{}, bodies[0]["recipe_ids"], "create always sends a list")
	_, present := bodies[1]["recipe_ids"]
	assert.False(t, present, "nil ids keep the current recipes")
	assert.Equal(t, []any{}, bodies[2]["recipe_ids"], "empty ids detach all recipes")
}

func TestClient_ListCookbooks_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sopa", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, []models.Cookbook{{ID: 1, Title: "Sopas"}})
	}, &fakeStore{}, nil)

	out, err := c.ListCookbooks(context.Background(), models.CookbookFilter{Search: "sopa"})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestClient_UploadImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "pixels", string(data))
		assert.Equal(t, "dish.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, models.UploadedImage{URL: "https://cdn/x.png"})
	}, &fakeStore{token: "t"}, nil)

	url, err := c.UploadImage(context.Background(), "/home/u/dish.png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", url)
}

func TestClient_UploadImage_NonASCIIName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cd := r.Header.Get("Content-Type")
		require.True(t, strings.HasPrefix(cd, "multipart/form-data"))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "ñandú asado.jpg", hdr.Filename)
		assert.NotContains(t, hdr.Header.Get("Content-Disposition"), `\u00f1`)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, models.UploadedImage{URL: "https://cdn/n.jpg"})
	}, &fakeStore{token: "t"}, nil)

	url, err := c.UploadImage(context.Background(), "/fotos/ñandú asado.jpg", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/n.jpg", url)
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{})
	}, &fakeStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CurrentUser(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_RecipePDF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/5/pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.3 body"))
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Recipe not found"})
		}
	}, &fakeStore{}, nil)

	data, err := c.RecipePDF(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 body", string(data))

	_, err = c.RecipePDF(context.Background(), 6)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Recipe not found", Detail(err))
}

func TestClient_CookbookPDF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cookbooks/3/pdf", r.URL.Path)
		writeJSON(w, http.StatusOK, models.UploadedImage{URL: "https://cdn/pdf/cookbook_3_Sunny.pdf"})
	}, &fakeStore{}, nil)

	url, err := c.CookbookPDF(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/pdf/cookbook_3_Sunny.pdf", url)
}
