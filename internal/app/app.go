// Package app assembles the application: storage, HTTP client, store,
// services and their teardown.
package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/client"
	"github.com/zfogg/blogfront/pkg/config"
	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/metrics"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/seed"
	"github.com/zfogg/blogfront/pkg/service"
	"github.com/zfogg/blogfront/pkg/storage"
	"github.com/zfogg/blogfront/pkg/storage/sqlite"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

// App owns every long-lived collaborator. Subsystems receive what they need
// from it; nothing is global.
type App struct {
	Settings config.Settings
	KV       storage.KV
	Store    *store.Store
	API      *api.Client
	Metrics  *metrics.Metrics

	Auth    *service.AuthService
	Posts   *service.PostService
	Search  *service.SearchService
	Watcher *service.NotificationWatcher

	cleanup []func() error
}

// New opens the configured storage backend and builds the application.
func New(settings config.Settings) (*App, error) {
	kv, err := OpenStorage(settings.StorageBackend, settings.StoragePath)
	if err != nil {
		return nil, err
	}
	return build(settings, kv, kv.Close), nil
}

// OpenStorage opens the durable key-value store for backend ("file" or
// "sqlite") at path.
func OpenStorage(backend, path string) (storage.KV, error) {
	logger.Debug("Opening storage", "backend", backend, "path", path)
	switch backend {
	case "sqlite":
		kv, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage at %s: %w", filepath.Clean(path), err)
		}
		return kv, nil
	case "file", "":
		kv, err := storage.NewFileStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage at %s: %w", filepath.Clean(path), err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// NewWithStorage builds the application over an already open kv. The caller
// keeps ownership of kv.
func NewWithStorage(settings config.Settings, kv storage.KV) *App {
	return build(settings, kv)
}

func build(settings config.Settings, kv storage.KV, closers ...func() error) *App {
	m := metrics.New()

	c := client.New(client.Options{
		BaseURL:    settings.BaseURL,
		Timeout:    settings.Timeout,
		Tokens:     storage.Tokens{KV: kv},
		OnResponse: m.ObserveHTTP,
	})

	st := store.New(store.Load(kv), store.PersistTo(kv), observeActions(m))
	apiClient := api.New(c)

	opts := service.Options{
		Store:       st,
		API:         apiClient,
		Mapper:      model.NewMapper(seed.For(settings.DemoCounts, settings.DemoSeed)),
		Metrics:     m,
		PageSize:    settings.PageSize,
		CourseGroup: settings.CourseGroup,
		Ordering:    settings.Ordering,
	}

	a := &App{
		Settings: settings,
		KV:       kv,
		Store:    st,
		API:      apiClient,
		Metrics:  m,
		Auth:     service.NewAuthService(opts),
		Posts:    service.NewPostService(opts),
		Search:   service.NewSearchService(opts),
		Watcher:  service.NewNotificationWatcher(st),
		cleanup:  closers,
	}
	a.onClose(func() error {
		a.Watcher.Stop()
		return nil
	})
	return a
}

func observeActions(m *metrics.Metrics) store.Hook {
	return func(_, _ store.State, a store.Action) {
		m.ObserveAction(a.Type())
	}
}

func (a *App) onClose(fn func() error) {
	a.cleanup = append(a.cleanup, fn)
}

// TakeNotifications returns the queued notifications and empties the queue.
func (a *App) TakeNotifications() []notify.Notification {
	list := a.Store.State().Notify.Notifications
	if len(list) > 0 {
		a.Store.Dispatch(notify.ClearAll{})
	}
	return list
}

// Close releases everything New acquired, last acquired first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.cleanup = nil
	return errors.Join(errs...)
}
