package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/cache"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/router"
	"github.com/ndemidov/inkwell/pkg/config"
	"github.com/ndemidov/inkwell/validators"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "correct-horse9"

// newTestApp wires the full application against an in-memory database and
// returns it behind a real HTTP listener so the session cookie flow is the
// same one a browser would see.
func newTestApp(t *testing.T) (*httptest.Server, *gorm.DB, *cache.PageCache) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	e.Validator = validators.NewValidator()
	sessions := scs.New()
	pageCache := cache.NewPageCache(20 * time.Second)
	cfg := &config.Config{MediaDir: t.TempDir()}
	router.SetupRoutes(e, db, sessions, pageCache, cfg)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts, db, pageCache
}

// newClient returns a cookie-carrying client that does not follow redirects,
// so tests can assert on Location headers.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func login(t *testing.T, ts *httptest.Server, client *http.Client, username string) {
	t.Helper()
	resp, err := client.PostForm(ts.URL+"/auth/login/", url.Values{
		"username": {username},
		"password": {testPassword},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, text string, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID, GroupID: groupID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: title + " description"}
	require.NoError(t, db.Create(group).Error)
	return group
}

// getBody fetches a URL and returns the status plus the raw body.
func getBody(t *testing.T, client *http.Client, url string) (int, []byte) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// getJSON fetches a URL and decodes the JSON envelope.
func getJSON(t *testing.T, client *http.Client, url string) (int, map[string]interface{}) {
	t.Helper()
	status, body := getBody(t, client, url)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return status, out
}

// listedPostIDs extracts the post IDs from a listing envelope.
func listedPostIDs(t *testing.T, envelope map[string]interface{}) []uint {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data block")
	posts, ok := data["posts"].([]interface{})
	require.True(t, ok, "envelope has no posts list")
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, uint(p.(map[string]interface{})["id"].(float64)))
	}
	return ids
}

func meta(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	m, ok := envelope["meta"].(map[string]interface{})
	require.True(t, ok, "envelope has no meta block")
	return m
}
