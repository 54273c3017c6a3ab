package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supasocial/controller"
	common "supasocial/controller/Common"
	"supasocial/dao/inmemory"
	"supasocial/dao/localcache"
	"supasocial/internal/utils"
	"supasocial/logic"
	"supasocial/models"
	"supasocial/query"
)

const cookieName = "sb-session"

var ann = &models.User{ID: "u1", FullName: "Ann Lee"}

func TestMain(m *testing.M) {
	if err := utils.InitSnowflake("2025-03-01", 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testApp struct {
	engine *gin.Engine
	p      *inmemory.Platform
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppStale(t, time.Minute)
}

// newTestAppStale builds the app with the given query stale time; zero sends
// every read to the platform.
func newTestAppStale(t *testing.T, stale time.Duration) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	viper.Set("session.cookie_name", cookieName)
	viper.Set("session.ttl", 3600)

	p := inmemory.New("http://localhost/objects")
	svc := logic.New(p.Client(), query.NewClient(localcache.New(128), stale))
	engine := New(controller.New(svc), Options{Auth: p, Objects: p, ObjectsPath: "/objects"})
	return &testApp{engine: engine, p: p}
}

// signIn returns the cookie of a browser session that ann is signed in to.
func (a *testApp) signIn() *http.Cookie {
	sid := uuid.NewString()
	a.p.SignIn(sid, ann)
	return &http.Cookie{Name: cookieName, Value: sid}
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func createForm(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func (a *testApp) postCreate(t *testing.T, cookie *http.Cookie, fields map[string]string, filename string) *httptest.ResponseRecorder {
	body, contentType := createForm(t, fields, filename)
	req := httptest.NewRequest(http.MethodPost, "/create", body)
	req.Header.Set("Content-Type", contentType)
	return a.do(req, cookie)
}

func TestCreatePostRedirectsHome(t *testing.T) {
	app := newTestApp(t)

	w := app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	keys := app.p.ObjectKeys()
	require.Len(t, keys, 1)
	assert.Regexp(t, regexp.MustCompile(`^Hello-\d+-cat\.png$`), keys[0])

	posts := app.p.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "u1", posts[0].AuthorUID)
	assert.Nil(t, posts[0].CommunityID)
	assert.Equal(t, app.p.PublicURL(keys[0]), posts[0].ImageURL)

	home := app.do(httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Hello")
}

func TestCreatePostWithCommunity(t *testing.T) {
	app := newTestApp(t)
	cid := app.p.SeedCommunity("Pets", "")

	w := app.postCreate(t, app.signIn(),
		map[string]string{"title": "Hi", "content": "there", "community_id": "1"}, "dog.jpg")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	posts := app.p.Posts()
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].CommunityID)
	assert.Equal(t, cid, *posts[0].CommunityID)
}

func TestCreatePostUnauthenticated(t *testing.T) {
	app := newTestApp(t)

	w := app.postCreate(t, nil, map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/create", w.Header().Get("Location"))
	assert.Zero(t, app.p.UploadCalls)
	assert.Zero(t, app.p.InsertCalls)
}

func TestCreatePostUploadFails(t *testing.T) {
	app := newTestApp(t)
	app.p.SetFailures(errors.New("bucket not found"), nil, nil)

	w := app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error creating post.")

	objects, posts := app.p.Counts()
	assert.Zero(t, objects)
	assert.Zero(t, posts)
	assert.Zero(t, app.p.InsertCalls)
}

func TestCreatePostInsertFails(t *testing.T) {
	app := newTestApp(t)
	app.p.SetFailures(nil, errors.New("new row violates row-level security policy"), nil)

	w := app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	assert.Contains(t, w.Body.String(), "Error creating post.")

	objects, posts := app.p.Counts()
	assert.Equal(t, 1, objects)
	assert.Zero(t, posts)
}

func TestCreatePostInvalidForm(t *testing.T) {
	app := newTestApp(t)

	w := app.postCreate(t, app.signIn(), map[string]string{"content": "World"}, "cat.png")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, app.p.UploadCalls)

	w = app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please select an image.")
	assert.Zero(t, app.p.UploadCalls)
}

func TestCreatePage(t *testing.T) {
	app := newTestApp(t)
	app.p.SeedCommunity("Pets", "")

	w := app.do(httptest.NewRequest(http.MethodGet, "/create", nil), app.signIn())
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "-- Chose a Community --")
	assert.Contains(t, body, "Pets")
	assert.Contains(t, body, "Create Post")
}

func TestPostDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/post/999", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error: Post not found")
	assert.Equal(t, 1, app.p.RPCCalls)
}

func TestPostDetailBackendError(t *testing.T) {
	app := newTestApp(t)
	app.p.SetFailures(nil, nil, errors.New("permission denied for function get_post_details"))

	w := app.do(httptest.NewRequest(http.MethodGet, "/post/1", nil), nil)
	body := w.Body.String()
	assert.Contains(t, body, "Error: permission denied for function get_post_details")
	assert.NotContains(t, body, "Post not found")
}

func TestPostDetail(t *testing.T) {
	app := newTestApp(t)
	cid := app.p.SeedCommunity("Pets", "")
	cookie := app.signIn()
	app.postCreate(t, cookie, map[string]string{"title": "Hello", "content": "World", "community_id": "1"}, "cat.png")
	posts := app.p.Posts()
	require.Len(t, posts, 1)

	w := app.do(httptest.NewRequest(http.MethodGet, "/post/"+strconv.FormatInt(posts[0].ID, 10), nil), cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "World")
	assert.Contains(t, body, "Posted on:")
	assert.Contains(t, body, "/community/"+strconv.FormatInt(cid, 10))
	assert.Contains(t, body, "Pets")
	assert.Contains(t, body, "Write a comment...")
}

func TestVoteAndComment(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn()
	app.postCreate(t, cookie, map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	id := strconv.FormatInt(app.p.Posts()[0].ID, 10)

	form := url.Values{"vote": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/post/"+id+"/vote", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := app.do(req, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post/"+id, w.Header().Get("Location"))

	form = url.Values{"content": {"nice cat"}}
	req = httptest.NewRequest(http.MethodPost, "/post/"+id+"/comments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = app.do(req, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/post/"+id, nil), cookie)
	var resp struct {
		Code common.Code               `json:"code"`
		Data common.ResponsePostDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.CodeSuccess, resp.Code)
	require.NotNil(t, resp.Data.Votes)
	assert.Equal(t, 1, resp.Data.Votes.Likes)
	assert.EqualValues(t, 1, resp.Data.Votes.Mine)
	require.Len(t, resp.Data.Comments, 1)
	assert.Equal(t, "nice cat", resp.Data.Comments[0].Content)
}

func TestAPINeedLogin(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/post/1/vote", strings.NewReader(`{"vote":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := app.do(req, nil)

	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.CodeNeedLogin, resp.Code)
}

func TestAPIPostNotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/post/999", nil), nil)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.CodeNoSuchPost, resp.Code)
}

func TestSignInFlow(t *testing.T) {
	app := newTestApp(t)
	cookie := &http.Cookie{Name: cookieName, Value: uuid.NewString()}

	w := app.do(httptest.NewRequest(http.MethodPost, "/auth/signin", nil), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	callback := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(callback, "/auth/callback?"))

	w = app.do(httptest.NewRequest(http.MethodGet, callback, nil), cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), cookie)
	var resp struct {
		Data common.ResponseSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.User)
	assert.Equal(t, inmemory.DevUser.ID, resp.Data.User.ID)

	w = app.do(httptest.NewRequest(http.MethodPost, "/auth/signout", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), cookie)
	resp.Data.User = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data.User)
}

func TestSessionCookieIssued(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/", nil), nil)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.NoError(t, uuid.Validate(cookies[0].Value))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServeObject(t *testing.T) {
	app := newTestApp(t)
	app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "cat.png")
	key := app.p.ObjectKeys()[0]

	w := app.do(httptest.NewRequest(http.MethodGet, "/objects/"+key, nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", w.Body.String())

	w = app.do(httptest.NewRequest(http.MethodGet, "/objects/missing.png", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionEvents(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.engine)
	defer srv.Close()

	sid := uuid.NewString()
	header := http.Header{}
	header.Set("Cookie", (&http.Cookie{Name: cookieName, Value: sid}).String())
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/session/events", header)
	require.NoError(t, err)
	defer conn.Close()

	var ev controller.SessionEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.False(t, ev.SignedIn)

	app.p.SignIn(sid, ann)
	require.NoError(t, conn.ReadJSON(&ev))
	assert.True(t, ev.SignedIn)
	require.NotNil(t, ev.User)
	assert.Equal(t, "u1", ev.User.ID)
}

func TestHomeHotListing(t *testing.T) {
	app := newTestApp(t)
	app.postCreate(t, app.signIn(), map[string]string{"title": "Hello", "content": "World"}, "cat.png")

	w := app.do(httptest.NewRequest(http.MethodGet, "/?sort=hot", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hot Posts")
	assert.Contains(t, body, "Hello")
}

func TestHomeListsPostsOnce(t *testing.T) {
	for _, path := range []string{"/", "/?sort=hot", "/api/v1/post/list", "/api/v1/post/list?sort=hot"} {
		t.Run(path, func(t *testing.T) {
			app := newTestAppStale(t, 0)

			w := app.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 1, app.p.ListCalls)
		})
	}
}

func TestSwaggerDoc(t *testing.T) {
	viper.Set("service.swagger.enable", true)
	t.Cleanup(func() { viper.Set("service.swagger.enable", nil) })
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, path := range []string{"/session", "/session/signin", "/community/list", "/community/{id}",
		"/post/list", "/post/{post_id}", "/post/{post_id}/comments", "/post/{post_id}/vote"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Paths["/post/{post_id}/comments"], "post")
}

func TestSwaggerDisabled(t *testing.T) {
	viper.Set("service.swagger.enable", false)
	t.Cleanup(func() { viper.Set("service.swagger.enable", nil) })
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
