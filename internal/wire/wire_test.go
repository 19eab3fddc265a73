package wire

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"yatube/internal/api/config"
	"yatube/internal/model"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/security"
	"yatube/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const postCardMarker = `<article class="post">`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testApp struct {
	app       *ApplicationContainer
	db        *gorm.DB
	images    *testutils.MemoryObjectStore
	publisher *testutils.RecordingPublisher
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutils.NewTestDB(t)
	_, rdb := testutils.NewTestRedis(t)
	images := testutils.NewMemoryObjectStore()
	publisher := &testutils.RecordingPublisher{}

	app, err := BuildApplication(Infra{
		DB:        db,
		Redis:     rdb,
		Images:    images,
		Publisher: publisher,
	}, config.Default())
	require.NoError(t, err)

	return &testApp{app: app, db: db, images: images, publisher: publisher}
}

func sessionFor(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	var roles []string
	if user.IsStaff {
		roles = []string{security.RoleAdmin}
	}
	token, err := security.GenerateSessionToken(user.ID, user.Username, roles, 0)
	require.NoError(t, err)
	return &http.Cookie{Name: consts.SessionCookie, Value: token}
}

func (a *testApp) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.app.Router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, target, nil, cookie)
}

func (a *testApp) post(target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, form, cookie)
}

func postURL(post *model.Post) string {
	return "/posts/" + strconv.FormatUint(post.ID, 10) + "/"
}

func TestPublicPages(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	group := testutils.CreateGroup(t, a.db, "cats")
	post := testutils.CreatePost(t, a.db, author, group, "Hello from the group")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "index", path: "/", wantStatus: http.StatusOK, wantBody: "Hello from the group"},
		{name: "group", path: "/group/cats/", wantStatus: http.StatusOK, wantBody: "Group cats"},
		{name: "profile", path: "/profile/leo/", wantStatus: http.StatusOK, wantBody: "Posts: 1"},
		{name: "detail", path: postURL(post), wantStatus: http.StatusOK, wantBody: "Posts by this author: 1"},
		{name: "unknown group", path: "/group/dogs/", wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "unknown profile", path: "/profile/ghost/", wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "unknown post", path: "/posts/999/", wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "non numeric post", path: "/posts/abc/", wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "unknown path", path: "/unexisting_page/", wantStatus: http.StatusNotFound, wantBody: "Page not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.get(tt.path, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthRequiredRedirectsToLogin(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	post := testutils.CreatePost(t, a.db, author, nil, "text")

	paths := []string{
		"/create/",
		"/follow/",
		postURL(post) + "edit/",
		"/profile/leo/follow/",
		"/profile/leo/unfollow/",
		"/auth/password_change/",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := a.get(path, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/auth/login/?next="+path, w.Header().Get("Location"))
		})
	}

	w := a.post(postURL(post)+"comment/", url.Values{"text": {"hi"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next="+postURL(post)+"comment/", w.Header().Get("Location"))
}

func TestIndexPagination(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	group := testutils.CreateGroup(t, a.db, "cats")
	for i := 0; i < 13; i++ {
		testutils.CreatePost(t, a.db, author, group, fmt.Sprintf("post number %d", i))
	}

	for _, path := range []string{"/", "/group/cats/", "/profile/leo/"} {
		t.Run(path, func(t *testing.T) {
			first := a.get(path, nil)
			require.Equal(t, http.StatusOK, first.Code)
			assert.Equal(t, 10, strings.Count(first.Body.String(), postCardMarker))

			second := a.get(path+"?page=2", nil)
			require.Equal(t, http.StatusOK, second.Code)
			assert.Equal(t, 3, strings.Count(second.Body.String(), postCardMarker))
		})
	}
}

func TestIndexPageCache(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	staff := testutils.CreateStaff(t, a.db, "admin")
	testutils.CreatePost(t, a.db, author, nil, "soon deleted")

	before := a.get("/", nil)
	require.Equal(t, http.StatusOK, before.Code)
	require.Contains(t, before.Body.String(), "soon deleted")

	require.NoError(t, a.db.Where("1 = 1").Delete(&model.Post{}).Error)

	cached := a.get("/", nil)
	require.Equal(t, http.StatusOK, cached.Code)
	assert.Equal(t, before.Body.Bytes(), cached.Body.Bytes())

	w := a.post("/admin/cache/clear/", url.Values{}, sessionFor(t, staff))
	require.Equal(t, http.StatusFound, w.Code)

	fresh := a.get("/", nil)
	require.Equal(t, http.StatusOK, fresh.Code)
	assert.NotContains(t, fresh.Body.String(), "soon deleted")
	assert.Contains(t, fresh.Body.String(), "No posts yet.")
}

func TestCreatePost(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	group := testutils.CreateGroup(t, a.db, "cats")
	session := sessionFor(t, author)

	w := a.get("/create/", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New post")
	assert.Contains(t, w.Body.String(), "Group cats")

	t.Run("valid form redirects to profile", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("text", "Post with a picture"))
		require.NoError(t, mw.WriteField("group", strconv.FormatUint(group.ID, 10)))
		part, err := mw.CreateFormFile("image", "small.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 2, 2))))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/create/", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.AddCookie(session)
		rec := httptest.NewRecorder()
		a.app.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/profile/leo/", rec.Header().Get("Location"))

		var post model.Post
		require.NoError(t, a.db.Where("text = ?", "Post with a picture").First(&post).Error)
		assert.Equal(t, author.ID, post.AuthorID)
		assert.Equal(t, group.ID, *post.GroupID)
		assert.True(t, a.images.Has(post.Image))
	})

	t.Run("single space is rejected inline", func(t *testing.T) {
		w := a.post("/create/", url.Values{"text": {" "}}, session)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Write something")
	})

	var count int64
	require.NoError(t, a.db.Model(&model.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEditPost(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	other := testutils.CreateUser(t, a.db, "other")
	post := testutils.CreatePost(t, a.db, author, nil, "original")
	editURL := postURL(post) + "edit/"

	t.Run("non author is sent back to detail", func(t *testing.T) {
		w := a.get(editURL, sessionFor(t, other))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, postURL(post), w.Header().Get("Location"))

		w = a.post(editURL, url.Values{"text": {"hijacked"}}, sessionFor(t, other))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, postURL(post), w.Header().Get("Location"))

		var stored model.Post
		require.NoError(t, a.db.First(&stored, post.ID).Error)
		assert.Equal(t, "original", stored.Text)
	})

	t.Run("author sees prefilled form", func(t *testing.T) {
		w := a.get(editURL, sessionFor(t, author))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Edit post")
		assert.Contains(t, w.Body.String(), "original")
	})

	t.Run("author saves in place", func(t *testing.T) {
		w := a.post(editURL, url.Values{"text": {"edited"}}, sessionFor(t, author))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, postURL(post), w.Header().Get("Location"))

		var stored model.Post
		require.NoError(t, a.db.First(&stored, post.ID).Error)
		assert.Equal(t, "edited", stored.Text)
	})
}

func TestAddComment(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	post := testutils.CreatePost(t, a.db, author, nil, "text")
	session := sessionFor(t, author)

	for _, text := range []string{" ", "", "Great post"} {
		w := a.post(postURL(post)+"comment/", url.Values{"text": {text}}, session)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, postURL(post), w.Header().Get("Location"))
	}

	var comments []model.Comment
	require.NoError(t, a.db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "Great post", comments[0].Text)

	w := a.get(postURL(post), nil)
	assert.Contains(t, w.Body.String(), "Great post")
	assert.Contains(t, w.Body.String(), "Comments (1)")

	w = a.get(postURL(post)+"comment/", session)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestFollowFlow(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "author")
	reader := testutils.CreateUser(t, a.db, "reader")
	testutils.CreatePost(t, a.db, author, nil, "for my followers")
	session := sessionFor(t, reader)

	w := a.get("/follow/", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "for my followers")

	w = a.get("/profile/author/follow/", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))

	w = a.get("/follow/", session)
	assert.Contains(t, w.Body.String(), "for my followers")
	w = a.get("/profile/author/", session)
	assert.Contains(t, w.Body.String(), "Unfollow")

	w = a.get("/profile/author/unfollow/", session)
	assert.Equal(t, http.StatusFound, w.Code)
	w = a.get("/follow/", session)
	assert.NotContains(t, w.Body.String(), "for my followers")

	w = a.get("/profile/ghost/follow/", session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginLogout(t *testing.T) {
	a := newTestApp(t)
	testutils.CreateUser(t, a.db, "leo")

	w := a.post("/auth/login/", url.Values{"username": {"leo"}, "password": {"wrong-password"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a correct username and password.")

	w = a.post("/auth/login/", url.Values{
		"username": {"leo"},
		"password": {testutils.TestPassword},
		"next":     {"/follow/"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == consts.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	w = a.get("/follow/", session)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.get("/auth/logout/", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have logged out")

	w = a.get("/follow/", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/follow/", w.Header().Get("Location"))
}

func TestSignup(t *testing.T) {
	a := newTestApp(t)

	w := a.post("/auth/signup/", url.Values{
		"username":  {"newbie"},
		"email":     {"newbie@example.com"},
		"password1": {"very-secret-1"},
		"password2": {"very-secret-1"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = a.post("/auth/signup/", url.Values{
		"username":  {"newbie"},
		"password1": {"very-secret-1"},
		"password2": {"very-secret-1"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A user with that username already exists.")
}

func TestAdminRequiresStaff(t *testing.T) {
	a := newTestApp(t)
	user := testutils.CreateUser(t, a.db, "leo")
	staff := testutils.CreateStaff(t, a.db, "admin")

	w := a.get("/admin/", sessionFor(t, user))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")

	w = a.post("/admin/groups/", url.Values{"title": {"Cats"}, "slug": {"cats"}, "description": {"meow"}}, sessionFor(t, staff))
	require.Equal(t, http.StatusFound, w.Code)

	w = a.get("/admin/?done=group_created", sessionFor(t, staff))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Group created.")
	assert.Contains(t, w.Body.String(), "/group/cats/")

	w = a.post("/admin/users/leo/delete/", url.Values{}, sessionFor(t, staff))
	assert.Equal(t, http.StatusFound, w.Code)
	w = a.get("/profile/leo/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletedUserSessionIsDropped(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	ghost := testutils.CreateUser(t, a.db, "ghost")
	staff := testutils.CreateStaff(t, a.db, "admin")
	session := sessionFor(t, ghost)

	require.Equal(t, http.StatusOK, a.get("/follow/", session).Code)

	w := a.post("/admin/users/ghost/delete/", url.Values{}, sessionFor(t, staff))
	require.Equal(t, http.StatusFound, w.Code)

	tests := []struct {
		name         string
		method       string
		path         string
		form         url.Values
		wantLocation string
	}{
		{name: "create post", method: http.MethodPost, path: "/create/", form: url.Values{"text": {"from beyond"}}, wantLocation: "/auth/login/?next=/create/"},
		{name: "follow", method: http.MethodGet, path: "/profile/leo/follow/", wantLocation: "/auth/login/?next=/profile/leo/follow/"},
		{name: "follow feed", method: http.MethodGet, path: "/follow/", wantLocation: "/auth/login/?next=/follow/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.method, tt.path, tt.form, session)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}

	// 公开页面按匿名访问
	w = a.get("/profile/leo/", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log in")

	var posts, follows int64
	require.NoError(t, a.db.Model(&model.Post{}).Count(&posts).Error)
	require.NoError(t, a.db.Model(&model.Follow{}).Where("author_id = ?", author.ID).Count(&follows).Error)
	assert.Zero(t, posts)
	assert.Zero(t, follows)
}

func TestPasswordChangeEndsOtherSessions(t *testing.T) {
	a := newTestApp(t)
	testutils.CreateUser(t, a.db, "leo")

	login := func() *http.Cookie {
		w := a.post("/auth/login/", url.Values{"username": {"leo"}, "password": {testutils.TestPassword}}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		for _, c := range w.Result().Cookies() {
			if c.Name == consts.SessionCookie {
				return c
			}
		}
		t.Fatal("login did not set a session cookie")
		return nil
	}
	laptop := login()
	phone := login()

	w := a.post("/auth/password_change/", url.Values{
		"old_password":  {testutils.TestPassword},
		"new_password1": {"brand-new-pass"},
		"new_password2": {"brand-new-pass"},
	}, laptop)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/password_change/done/", w.Header().Get("Location"))

	var renewed *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == consts.SessionCookie {
			renewed = c
		}
	}
	require.NotNil(t, renewed)

	assert.Equal(t, http.StatusOK, a.get("/follow/", renewed).Code)
	for _, stale := range []*http.Cookie{laptop, phone} {
		w = a.get("/follow/", stale)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login/?next=/follow/", w.Header().Get("Location"))
	}
}

func TestOverflowingPageClipsToLast(t *testing.T) {
	a := newTestApp(t)
	author := testutils.CreateUser(t, a.db, "leo")
	for i := 0; i < 13; i++ {
		testutils.CreatePost(t, a.db, author, nil, fmt.Sprintf("post number %d", i))
	}

	w := a.get("/?page=99999999999999999999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), postCardMarker))
}
