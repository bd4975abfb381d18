package service

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/client"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/seed"
	"github.com/zfogg/blogfront/pkg/storage"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

type thunkRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]bool
}

func (r *thunkRecorder) ObserveThunk(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[string][]bool{}
	}
	r.outcomes[op] = append(r.outcomes[op], err == nil)
}

func (r *thunkRecorder) get(op string) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.outcomes[op]...)
}

type harness struct {
	store   *store.Store
	kv      *storage.Memory
	opts    Options
	metrics *thunkRecorder
}

// newHarness wires the services against mux the way the application does:
// persisted tokens feed the HTTP client's bearer header.
func newHarness(t *testing.T, mux *http.ServeMux) *harness {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	kv := storage.NewMemory()
	st := store.New(store.Initial(), store.PersistTo(kv))
	c := client.New(client.Options{BaseURL: srv.URL, Tokens: storage.Tokens{KV: kv}})
	rec := &thunkRecorder{}

	return &harness{
		store:   st,
		kv:      kv,
		metrics: rec,
		opts: Options{
			Store:       st,
			API:         api.New(c),
			Mapper:      model.NewMapper(seed.Zero{}),
			Metrics:     rec,
			PageSize:    12,
			CourseGroup: 18,
			Ordering:    "-date",
		},
	}
}

func (h *harness) notifications() []notify.Notification {
	return h.store.State().Notify.Notifications
}

func (h *harness) lastNotification(t *testing.T) notify.Notification {
	t.Helper()
	list := h.notifications()
	require.NotEmpty(t, list)
	return list[len(list)-1]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
