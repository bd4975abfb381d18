package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/store/posts"
)

// cli runs the command tree against a fake API with its own config dir.
type cli struct {
	t      *testing.T
	config string
}

func newCLI(t *testing.T, mux *http.ServeMux) *cli {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[api]\nbase_url = %q\n\n[log]\nfile = %q\n", srv.URL, filepath.Join(dir, "blogfront.log"))
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0600))

	color.NoColor = true
	t.Cleanup(func() {
		output.SetWriter(color.Output)
		output.SetFormat("")
	})
	return &cli{t: t, config: cfg}
}

func resetFlags() {
	verbose, outputFmt, demoCounts, dumpMetrics = false, "", false, false
	postPage, postGroup = 1, 0
	postTitle, postDescription, postText, postLesson, postImage, postDate = "", "", "", "", "", ""
	postAuthor, postYes = 0, false
	authEmail, authUsername, authPassword = "", "", ""
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags()

	var buf bytes.Buffer
	output.SetWriter(&buf)
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append([]string{"--config", c.config}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	if ferr := finish(); err == nil {
		err = ferr
	}
	return buf.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func postDTO(id int) api.PostDTO {
	return api.PostDTO{ID: id, Title: fmt.Sprintf("Post number %d", id), Date: "2024-03-05", LessonNum: id, Text: "body text"}
}

func TestVersion(t *testing.T) {
	c := newCLI(t, http.NewServeMux())

	out, err := c.run("version")
	require.NoError(t, err)
	assert.Equal(t, "blogfront v0.1.0\n", out)
}

func TestPostList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "12", q.Get("limit"))
		assert.Equal(t, "12", q.Get("offset"))
		assert.Equal(t, "18", q.Get("author__course_group"))
		writeJSON(w, http.StatusOK, api.PostPage{Count: 30, Results: []api.PostDTO{postDTO(1), postDTO(2)}})
	})
	c := newCLI(t, mux)

	out, err := c.run("post", "list", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Post number 1")
	assert.Contains(t, out, "Post number 2")
	assert.Contains(t, out, "Page 2 of 3 (30 posts)  1 [2] 3")
}

func TestPostList_PageBeyondLast(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.PostPage{Count: 5, Results: []api.PostDTO{}})
	})
	c := newCLI(t, mux)

	out, err := c.run("post", "list", "--page", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 99 does not exist; the last page is 1")
	assert.NotContains(t, out, "(none)")
}

func TestPostList_JSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.PostPage{Count: 1, Results: []api.PostDTO{postDTO(7)}})
	})
	c := newCLI(t, mux)

	out, err := c.run("--output", "json", "post", "list")
	require.NoError(t, err)

	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Post number 7", views[0]["title"])
	assert.Equal(t, false, views[0]["favorite"])
}

func TestPostList_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})
	c := newCLI(t, mux)

	_, err := c.run("post", "list")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeServer, errors.Categorize(err).Type)
}

func TestUnknownStorageBackend(t *testing.T) {
	c := newCLI(t, http.NewServeMux())
	f, err := os.OpenFile(c.config, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString("\n[storage]\nbackend = \"sqlit\"\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = c.run("post", "list")
	assert.ErrorContains(t, err, `unknown storage backend "sqlit"`)
}

func TestInvalidOutputFormat(t *testing.T) {
	c := newCLI(t, http.NewServeMux())

	_, err := c.run("--output", "xml", "post", "list")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestFavoritesPersistAcrossRuns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "5" {
			writeJSON(w, http.StatusOK, postDTO(5))
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})
	c := newCLI(t, mux)

	out, err := c.run("favorites", "add", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Added post 5 to favorites")
	_, err = c.run("favorites", "add", "6")
	require.NoError(t, err)

	out, err = c.run("favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Post number 5")
	assert.Contains(t, out, "Post 6 no longer exists")

	out, err = c.run("favorites", "toggle", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed post 5 from favorites")

	_, err = c.run("favorites", "add", "nope")
	assert.Equal(t, errors.ErrorTypeValidation, errors.Categorize(err).Type)
}

func TestSearchHistory(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/posts/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("search"))
		mu.Unlock()
		writeJSON(w, http.StatusOK, api.PostPage{Count: 1, Results: []api.PostDTO{postDTO(3)}})
	})
	c := newCLI(t, mux)

	out, err := c.run("search", "red", "planet")
	require.NoError(t, err)
	assert.Contains(t, out, `Results for "red planet"`)
	assert.Contains(t, out, "Post number 3")
	mu.Lock()
	assert.Equal(t, []string{"red planet"}, queries)
	mu.Unlock()

	out, err = c.run("search", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "red planet")

	_, err = c.run("search", "forget", "red", "planet")
	require.NoError(t, err)
	out, err = c.run("search", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}

func TestAuthFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/jwt/create/", func(w http.ResponseWriter, r *http.Request) {
		var creds api.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		writeJSON(w, http.StatusOK, api.TokenPair{Access: "access", Refresh: "refresh"})
	})
	mux.HandleFunc("GET /auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.UserDTO{ID: 1, Email: "ann@example.com", Username: "ann", FirstName: "Ann"})
	})
	c := newCLI(t, mux)

	out, err := c.run("auth", "login", "--email", "ann@example.com", "--password", "wrong")
	require.Error(t, err)
	var s shownError
	assert.ErrorAs(t, err, &s)
	assert.Contains(t, out, "Sign In Failed: No active account found with the given credentials")

	out, err = c.run("auth", "login", "--email", "ann@example.com", "--password", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, "ann@example.com")
	assert.Contains(t, out, "Welcome back!")

	out, err = c.run("auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = c.run("auth", "me")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.Categorize(err).Type)
}

func TestVerify_RejectedToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/jwt/create/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.TokenPair{Access: "access", Refresh: "refresh"})
	})
	mux.HandleFunc("GET /auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.UserDTO{ID: 1, Email: "ann@example.com", Username: "ann"})
	})
	mux.HandleFunc("POST /auth/jwt/verify/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
	})
	c := newCLI(t, mux)

	_, err := c.run("auth", "login", "--email", "ann@example.com", "--password", "hunter22")
	require.NoError(t, err)

	_, err = c.run("auth", "verify")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.Categorize(err).Type)
	assert.ErrorContains(t, err, "Your session has expired")
}

func TestLogin_InvalidForm(t *testing.T) {
	c := newCLI(t, http.NewServeMux())

	_, err := c.run("auth", "login", "--email", "not-an-email", "--password", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestSettingsTheme(t *testing.T) {
	c := newCLI(t, http.NewServeMux())

	out, err := c.run("settings", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")

	_, err = c.run("settings", "theme", "dark")
	require.NoError(t, err)

	out, err = c.run("settings", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: dark")

	_, err = c.run("settings", "theme", "sepia")
	assert.Error(t, err)
}

func TestSettingsShow(t *testing.T) {
	c := newCLI(t, http.NewServeMux())

	out, err := c.run("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "posts.page_size: 12")
	assert.Contains(t, out, "storage.backend: file")
}

func TestPager(t *testing.T) {
	assert.Equal(t, "", pager(posts.State{CurrentPage: 1, TotalPages: 1}))
	assert.Equal(t, "  3 4 [5] 6 7", pager(posts.State{CurrentPage: 5, TotalPages: 9}))
	assert.Equal(t, "  [1] 2", pager(posts.State{CurrentPage: 1, TotalPages: 2}))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
