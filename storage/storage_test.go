package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

func newStores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state", "session.json"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(KeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(KeyAccessToken, "a1"))
			require.NoError(t, store.Set(KeyRefreshToken, "r1"))

			v, ok, err := store.Get(KeyAccessToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "a1", v)

			require.NoError(t, store.Delete(KeyAccessToken, "missing"))
			_, ok, err = store.Get(KeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)

			v, _, err = store.Get(KeyRefreshToken)
			require.NoError(t, err)
			assert.Equal(t, "r1", v)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(KeyLanguage, "ru"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(KeyLanguage)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ru", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = store.Get(KeyUser)
	assert.Error(t, err)
}

func TestFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Set(KeyLanguage, "en"))
		}(i)
	}
	wg.Wait()

	v, _, err := store.Get(KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "en", v)
}

func TestTokenStore_SetTokens(t *testing.T) {
	tokens := NewTokenStore(NewMemoryStore(), zap.NewNop())

	require.NoError(t, tokens.SetTokens(models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	assert.Equal(t, "a1", tokens.AccessToken())
	assert.Equal(t, "r1", tokens.RefreshToken())

	t.Run("missing refresh token keeps the stored one", func(t *testing.T) {
		require.NoError(t, tokens.SetTokens(models.TokenPair{AccessToken: "a2"}))
		assert.Equal(t, "a2", tokens.AccessToken())
		assert.Equal(t, "r1", tokens.RefreshToken())
	})

	t.Run("empty access token removes it", func(t *testing.T) {
		require.NoError(t, tokens.SetTokens(models.TokenPair{}))
		assert.Equal(t, "", tokens.AccessToken())
		assert.Equal(t, "r1", tokens.RefreshToken())
	})

	t.Run("clear tokens", func(t *testing.T) {
		require.NoError(t, tokens.ClearTokens())
		assert.Equal(t, "", tokens.RefreshToken())
	})
}

func TestTokenStore_User(t *testing.T) {
	store := NewMemoryStore()
	tokens := NewTokenStore(store, nil)

	user, err := tokens.User()
	require.NoError(t, err)
	assert.Nil(t, user)

	saved := &models.User{ID: "9", Email: "m@s.kz", Name: "Marat S", Role: models.RoleSupplierManager, Avatar: "MS"}
	require.NoError(t, tokens.SaveUser(saved))

	loaded, err := tokens.User()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	require.NoError(t, store.Set(KeyUser, "{broken"))
	_, err = tokens.User()
	assert.Error(t, err)
}

func TestTokenStore_ClearSession(t *testing.T) {
	store := NewMemoryStore()
	tokens := NewTokenStore(store, nil)

	require.NoError(t, tokens.SetTokens(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, tokens.SaveUser(&models.User{ID: "1"}))
	require.NoError(t, tokens.SetLanguage("ru"))

	require.NoError(t, tokens.ClearSession())

	assert.Equal(t, "", tokens.AccessToken())
	assert.Equal(t, "", tokens.RefreshToken())
	user, err := tokens.User()
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, "ru", tokens.Language("en"), "language survives logout")
}

func TestTokenStore_LanguageFallback(t *testing.T) {
	tokens := NewTokenStore(NewMemoryStore(), nil)
	assert.Equal(t, "en", tokens.Language("en"))
}
