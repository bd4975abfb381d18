package store

import (
	"slices"

	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/storage"
	"github.com/zfogg/blogfront/pkg/store/auth"
	"github.com/zfogg/blogfront/pkg/store/favorites"
	"github.com/zfogg/blogfront/pkg/store/search"
	"github.com/zfogg/blogfront/pkg/store/ui"
)

// Load builds the startup state from persisted keys. Missing or malformed
// values leave the corresponding slice at its initial state.
func Load(kv storage.KV) State {
	s := Initial()
	for _, a := range HydrateActions(kv) {
		s = Reduce(s, a)
	}
	return s
}

// HydrateActions reads the persisted keys as the actions that restore them.
func HydrateActions(kv storage.KV) []Action {
	actions := []Action{
		auth.Hydrate{
			AccessToken:  storage.GetString(kv, storage.KeyAccessToken),
			RefreshToken: storage.GetString(kv, storage.KeyRefreshToken),
		},
		favorites.Load{IDs: storage.LoadIDs(kv, storage.KeyFavorites)},
		search.LoadHistory{Queries: storage.LoadStrings(kv, storage.KeySearchHistory)},
	}
	if theme, ok := ui.ParseTheme(storage.GetString(kv, storage.KeyTheme)); ok {
		actions = append(actions, ui.SetTheme{Theme: theme})
	}
	return actions
}

// PersistTo returns a hook that writes every persisted key whose value
// changed in the reduction. Write failures are logged; the in-memory state
// stays authoritative.
func PersistTo(kv storage.KV) Hook {
	return func(prev, next State, a Action) {
		write := func(key string, err error) {
			if err != nil {
				logger.Warn("Failed to persist state", "key", key, "action", a.Type(), "error", err)
			}
		}

		if prev.Auth.AccessToken != next.Auth.AccessToken {
			write(storage.KeyAccessToken, storage.SetOrDelete(kv, storage.KeyAccessToken, next.Auth.AccessToken))
		}
		if prev.Auth.RefreshToken != next.Auth.RefreshToken {
			write(storage.KeyRefreshToken, storage.SetOrDelete(kv, storage.KeyRefreshToken, next.Auth.RefreshToken))
		}
		if !slices.Equal(prev.Favorites.IDs, next.Favorites.IDs) {
			write(storage.KeyFavorites, storage.SaveIDs(kv, storage.KeyFavorites, next.Favorites.IDs))
		}
		if !slices.Equal(prev.Search.History, next.Search.History) {
			write(storage.KeySearchHistory, storage.SaveStrings(kv, storage.KeySearchHistory, next.Search.History))
		}
		if prev.UI.Theme != next.UI.Theme {
			write(storage.KeyTheme, kv.Set(storage.KeyTheme, string(next.UI.Theme)))
		}
	}
}
