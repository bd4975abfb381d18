package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/blogfront/pkg/config"
	"github.com/zfogg/blogfront/pkg/storage"
	"github.com/zfogg/blogfront/pkg/store/favorites"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

func settingsFor(t *testing.T, baseURL, backend string) config.Settings {
	t.Helper()
	name := "state.json"
	if backend == "sqlite" {
		name = "state.db"
	}
	return config.Settings{
		BaseURL:        baseURL,
		Timeout:        5 * time.Second,
		PageSize:       12,
		CourseGroup:    18,
		Ordering:       "-date",
		StorageBackend: backend,
		StoragePath:    filepath.Join(t.TempDir(), name),
	}
}

func TestNew_PersistsAcrossRuns(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			s := settingsFor(t, "http://127.0.0.1:0", backend)

			a, err := New(s)
			require.NoError(t, err)
			a.Store.Dispatch(favorites.Add{ID: 4}, favorites.Add{ID: 9})
			require.NoError(t, a.Close())

			b, err := New(s)
			require.NoError(t, err)
			defer b.Close()
			assert.Equal(t, []int{4, 9}, b.Store.State().Favorites.IDs)
		})
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	_, err := OpenStorage("redis", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestNewWithStorage_WiresMetricsAndTokens(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":0,"next":null,"previous":null,"results":[]}`))
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	require.NoError(t, kv.Set(storage.KeyAccessToken, "persisted"))

	a := NewWithStorage(settingsFor(t, srv.URL, "file"), kv)
	defer a.Close()
	assert.Equal(t, "persisted", a.Store.State().Auth.AccessToken)

	_, err := a.Posts.FetchPage(context.Background(), 1, 0).Wait()
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted", gotAuth.Load())

	var buf bytes.Buffer
	require.NoError(t, a.Metrics.WriteText(&buf))
	assert.Contains(t, buf.String(), `blogfront_actions_total{action="posts/fetchPage/fulfilled"} 1`)
	assert.Contains(t, buf.String(), `blogfront_thunks_total{op="posts/fetchPage",outcome="fulfilled"} 1`)
	assert.Contains(t, buf.String(), "blogfront_http_request_duration_seconds")
}

func TestTakeNotifications(t *testing.T) {
	a := NewWithStorage(settingsFor(t, "http://127.0.0.1:0", "file"), storage.NewMemory())
	defer a.Close()

	assert.Empty(t, a.TakeNotifications())

	a.Store.Dispatch(notify.Success("a", ""), notify.Failure("b", ""))
	got := a.TakeNotifications()
	assert.Len(t, got, 2)
	assert.Empty(t, a.Store.State().Notify.Notifications)
	assert.Equal(t, 0, a.Watcher.Pending())
}
