package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/recetario/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

type failingRepo struct {
	getErr, setErr, delErr error
	value                  string
}

func (f *failingRepo) Get(context.Context, string) (string, bool, error) {
	return f.value, f.value != "", f.getErr
}
func (f *failingRepo) Set(context.Context, string, string) error { return f.setErr }
func (f *failingRepo) Delete(context.Context, string) error      { return f.delErr }

func TestCredentialStore_LoadsPersistedToken(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Set(ctx, TokenKey, "persisted"))

	s, err := NewCredentialStore(ctx, repo, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "persisted", s.Token())
}

func TestCredentialStore_EmptyWhenNothingPersisted(t *testing.T) {
	s, err := NewCredentialStore(context.Background(), newRepo(t), logging.Discard())
	require.NoError(t, err)
	assert.Empty(t, s.Token())
}

func TestCredentialStore_SetAndClearWriteThrough(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s, err := NewCredentialStore(ctx, repo, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, s.SetToken(ctx, "abc"))
	assert.Equal(t, "abc", s.Token())
	v, ok, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.ClearToken(ctx))
	assert.Empty(t, s.Token())
	_, ok, err = repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_SetEmptyClears(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s, err := NewCredentialStore(ctx, repo, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "abc"))

	require.NoError(t, s.SetToken(ctx, ""))
	assert.Empty(t, s.Token())
	_, ok, _ := repo.Get(ctx, TokenKey)
	assert.False(t, ok)
}

func TestCredentialStore_SetFailureKeepsPreviousToken(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{value: "old", setErr: errors.New("disk full")}
	s, err := NewCredentialStore(ctx, repo, logging.Discard())
	require.NoError(t, err)

	err = s.SetToken(ctx, "new")
	require.ErrorIs(t, err, repo.setErr)
	assert.Equal(t, "old", s.Token())
}

func TestCredentialStore_ClearFailureStillForgetsToken(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{value: "old", delErr: errors.New("locked")}
	s, err := NewCredentialStore(ctx, repo, logging.Discard())
	require.NoError(t, err)

	err = s.ClearToken(ctx)
	require.ErrorIs(t, err, repo.delErr)
	assert.Empty(t, s.Token())
}

func TestNewCredentialStore_LoadError(t *testing.T) {
	repo := &failingRepo{getErr: errors.New("corrupt")}
	_, err := NewCredentialStore(context.Background(), repo, logging.Discard())
	require.ErrorIs(t, err, repo.getErr)
}

func TestCredentialStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s, err := NewCredentialStore(ctx, newRepo(t), logging.Discard())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetToken(ctx, "t")
		}()
		go func() {
			defer wg.Done()
			_ = s.Token()
		}()
	}
	wg.Wait()
	assert.Equal(t, "t", s.Token())
}
