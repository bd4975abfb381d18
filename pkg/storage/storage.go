// Package storage provides the durable key-value capability that holds
// session tokens, favorites and a few user preferences between runs.
package storage

import (
	"errors"
	"math"
	"sync"

	json "github.com/json-iterator/go"
)

// Keys shared by the persistence hook and hydration.
const (
	KeyAccessToken   = "accessToken"
	KeyRefreshToken  = "refreshToken"
	KeyFavorites     = "favorites"
	KeySearchHistory = "searchHistory"
	KeyTheme         = "theme"
)

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("storage is closed")

// KV is a string key-value store. Writers complete before returning.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Memory is an in-process KV, used in tests and as a fallback.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// GetString returns the value for key or "" when absent or unreadable.
func GetString(kv KV, key string) string {
	v, ok, err := kv.Get(key)
	if err != nil || !ok {
		return ""
	}
	return v
}

// SetOrDelete writes value, or removes the key when value is empty.
func SetOrDelete(kv KV, key, value string) error {
	if value == "" {
		return kv.Delete(key)
	}
	return kv.Set(key, value)
}

// LoadIDs reads a JSON array of ids. Malformed data, non-array values and
// non-finite or fractional entries are discarded rather than reported.
func LoadIDs(kv KV, key string) []int {
	raw := GetString(kv, key)
	if raw == "" {
		return []int{}
	}

	var values []interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []int{}
	}

	ids := make([]int, 0, len(values))
	for _, v := range values {
		f, ok := v.(float64)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			continue
		}
		// float64(math.MaxInt) rounds up past the int range.
		if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
			continue
		}
		ids = append(ids, int(f))
	}
	return ids
}

// SaveIDs writes ids as a JSON array.
func SaveIDs(kv KV, key string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return kv.Set(key, string(data))
}

// LoadStrings reads a JSON array of strings, skipping anything else.
func LoadStrings(kv KV, key string) []string {
	raw := GetString(kv, key)
	if raw == "" {
		return []string{}
	}

	var values []interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SaveStrings writes values as a JSON array.
func SaveStrings(kv KV, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return kv.Set(key, string(data))
}

// Tokens reads the persisted access token on every call, so the HTTP
// client always sends whatever the store last wrote.
type Tokens struct {
	KV KV
}

// AccessToken returns the persisted access token or "".
func (t Tokens) AccessToken() string {
	return GetString(t.KV, KeyAccessToken)
}
