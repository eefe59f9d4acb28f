package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/ndemidov/inkwell/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreatePostStoresSubmittedFields(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "sasha")
	group := createGroup(t, db, "Travel", "travel")
	client := newClient(t)
	login(t, ts, client, "sasha")

	resp, err := client.PostForm(ts.URL+"/create/", url.Values{
		"text":  {"first entry"},
		"group": {fmt.Sprint(group.ID)},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/profile/sasha/", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	require.Equal(t, "first entry", post.Text)
	require.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.GroupID)
	require.Equal(t, group.ID, *post.GroupID)
	require.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostEmptyTextIsValidationError(t *testing.T) {
	ts, db, _ := newTestApp(t)
	createUser(t, db, "sasha")
	client := newClient(t)
	login(t, ts, client, "sasha")

	resp, err := client.PostForm(ts.URL+"/create/", url.Values{"text": {""}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "re-rendered form, not a hard failure")

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreatePostUnknownGroupIsFieldError(t *testing.T) {
	ts, db, _ := newTestApp(t)
	createUser(t, db, "sasha")
	client := newClient(t)
	login(t, ts, client, "sasha")

	resp, err := client.PostForm(ts.URL+"/create/", url.Values{
		"text":  {"orphan"},
		"group": {"999"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEditPostByNonAuthorChangesNothing(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "author")
	createUser(t, db, "mallory")
	post := createPost(t, db, author.ID, "original text", nil)

	client := newClient(t)
	login(t, ts, client, "mallory")

	resp, err := client.PostForm(fmt.Sprintf("%s/posts/%d/edit/", ts.URL, post.ID), url.Values{
		"text": {"rewritten"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), resp.Header.Get("Location"))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	require.Equal(t, "original text", stored.Text)
}

func TestEditPostByAuthorUpdatesTextButNotCreatedAt(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "author")
	createdAt := time.Now().Add(-time.Hour)
	post := &models.Post{Text: "original text", AuthorID: author.ID, CreatedAt: createdAt}
	require.NoError(t, db.Create(post).Error)

	client := newClient(t)
	login(t, ts, client, "author")

	resp, err := client.PostForm(fmt.Sprintf("%s/posts/%d/edit/", ts.URL, post.ID), url.Values{
		"text": {"rewritten"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	require.Equal(t, "rewritten", stored.Text)
	require.WithinDuration(t, createdAt, stored.CreatedAt, time.Second, "creation timestamp is immutable")
}

func TestGroupListingIsScopedToTheGroup(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "sasha")
	groupA := createGroup(t, db, "Group A", "group-a")
	createGroup(t, db, "Group B", "group-b")
	post := createPost(t, db, author.ID, "filed under A", &groupA.ID)

	client := newClient(t)
	status, envelope := getJSON(t, client, ts.URL+"/group/group-a/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, listedPostIDs(t, envelope), post.ID)

	status, envelope = getJSON(t, client, ts.URL+"/group/group-b/")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, listedPostIDs(t, envelope))

	resp, err := client.Get(ts.URL + "/group/no-such-group/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListingPaginatesAtFixedSize(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "prolific")
	for i := 0; i < 13; i++ {
		createPost(t, db, author.ID, fmt.Sprintf("post %d", i), nil)
	}

	client := newClient(t)
	status, envelope := getJSON(t, client, ts.URL+"/profile/prolific/")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listedPostIDs(t, envelope), 10)

	m := meta(t, envelope)
	require.EqualValues(t, 13, m["totalItems"])
	require.EqualValues(t, 2, m["totalPages"])
	require.Equal(t, true, m["hasNextPage"])
	require.Equal(t, false, m["hasPreviousPage"])

	status, envelope = getJSON(t, client, ts.URL+"/profile/prolific/?page=2")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listedPostIDs(t, envelope), 3)
	require.Equal(t, false, meta(t, envelope)["hasNextPage"])

	// past the end: empty set, not an error
	status, envelope = getJSON(t, client, ts.URL+"/profile/prolific/?page=9")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, listedPostIDs(t, envelope))
}

func TestListingOrdersNewestFirst(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "sasha")
	older := &models.Post{Text: "older", AuthorID: author.ID, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(older).Error)
	newer := &models.Post{Text: "newer", AuthorID: author.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(newer).Error)

	client := newClient(t)
	status, envelope := getJSON(t, client, ts.URL+"/profile/sasha/")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []uint{newer.ID, older.ID}, listedPostIDs(t, envelope))
}

func TestPostDetailShowsComments(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "sasha")
	post := createPost(t, db, author.ID, "discussed", nil)
	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "self reply"}
	require.NoError(t, db.Create(comment).Error)

	client := newClient(t)
	status, envelope := getJSON(t, client, fmt.Sprintf("%s/posts/%d/", ts.URL, post.ID))
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]interface{})
	require.EqualValues(t, 1, data["author_post_count"])
	require.Len(t, data["comments"].([]interface{}), 1)

	resp, err := client.Get(ts.URL + "/posts/424242/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndexCacheServesStaleUntilCleared(t *testing.T) {
	ts, db, pageCache := newTestApp(t)
	author := createUser(t, db, "sasha")
	post := createPost(t, db, author.ID, "soon to vanish", nil)

	client := newClient(t)
	status, first := getBody(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(first), "soon to vanish")

	require.NoError(t, db.Delete(&models.Post{}, post.ID).Error)

	// inside the window the cached body comes back verbatim
	status, second := getBody(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, first, second)

	pageCache.Clear()

	status, third := getBody(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.NotEqual(t, first, third)
	require.NotContains(t, string(third), "soon to vanish")
}

func TestIndexCacheKeyIncludesPageNumber(t *testing.T) {
	ts, db, _ := newTestApp(t)
	author := createUser(t, db, "prolific")
	for i := 0; i < 13; i++ {
		createPost(t, db, author.ID, fmt.Sprintf("post %d", i), nil)
	}

	client := newClient(t)
	_, page1 := getBody(t, client, ts.URL+"/?page=1")
	_, page2 := getBody(t, client, ts.URL+"/?page=2")
	require.NotEqual(t, page1, page2, "pages must be cached per query string")
}
