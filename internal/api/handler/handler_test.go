package handler_test

import (
	"bytes"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/api/router"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/internal/testdb"
)

func newServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	db := testdb.Open(t)
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "test-secret"
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.BaseURL = "/media"
	cfg.Cache.IndexTTLSeconds = 1
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	h := handler.New(cfg,
		service.NewPostService(postRepo, groupRepo, commentRepo, followRepo),
		service.NewProfileService(userRepo, postRepo, followRepo),
		service.NewCommentService(postRepo, commentRepo),
		service.NewRelationshipService(userRepo, followRepo),
	)
	return router.New(cfg, h, nil), db, cfg
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPost(t *testing.T, db *gorm.DB, author *model.User, text string) *model.Post {
	t.Helper()
	p := &model.Post{ID: uuid.New().String(), Text: text, AuthorID: author.ID}
	require.NoError(t, db.Create(p).Error)
	return p
}

func bearer(t *testing.T, cfg *config.Config, userID string) string {
	t.Helper()
	token, err := middleware.SignToken(cfg.JWT.Secret, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doGet(engine *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doForm(engine *gin.Engine, path string, form url.Values, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, engine *gin.Engine, path string, fields url.Values, image string, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	if image != "" {
		fw, err := mw.CreateFormFile("image", image)
		require.NoError(t, err)
		_, err = fw.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func countUploads(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	require.NoError(t, filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	}))
	return n
}

func TestIndexOpenToAnonymous(t *testing.T) {
	engine, db, _ := newServer(t)
	author := createUser(t, db, "tester")
	createPost(t, db, author, "hello")

	w := doGet(engine, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hello")
}

func TestNewPostRequiresAuth(t *testing.T) {
	engine, _, _ := newServer(t)

	w := doGet(engine, "/new", "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

func TestCreatePostRedirectsToIndex(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "tester")

	w := doForm(engine, "/new", url.Values{"text": {"brand new"}}, bearer(t, cfg, author.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestCreatePostValidationKeepsInput(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "tester")

	w := doForm(engine, "/new", url.Values{"group": {"nope"}}, bearer(t, cfg, author.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"text"`)
	// 提交值回传给客户端重渲染
	require.Contains(t, w.Body.String(), `"nope"`)

	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestEditByNonAuthorSilentlyRedirects(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, author, "original")

	w := doForm(engine, "/author/"+post.ID+"/edit",
		url.Values{"text": {"hacked"}}, bearer(t, cfg, intruder.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/author/"+post.ID, w.Header().Get("Location"))

	var got model.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	require.Equal(t, "original", got.Text)
}

func TestEditInvalidFormByNonAuthorStillRedirects(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, author, "original")

	// 空 text 本会触发校验错误，但归属检查在前，非作者只看到 302
	w := doForm(engine, "/author/"+post.ID+"/edit",
		url.Values{"text": {""}}, bearer(t, cfg, intruder.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/author/"+post.ID, w.Header().Get("Location"))

	var got model.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	require.Equal(t, "original", got.Text)
}

func TestEditByNonAuthorStoresNoImage(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, author, "original")

	w := doMultipart(t, engine, "/author/"+post.ID+"/edit",
		url.Values{"text": {"hacked"}}, "sneaky.png", bearer(t, cfg, intruder.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Zero(t, countUploads(t, cfg.Upload.Dir))
}

func TestCreatePostUnknownGroupLeavesNoImage(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")

	w := doMultipart(t, engine, "/new",
		url.Values{"text": {"hello"}, "group": {"ghost"}}, "pic.png", bearer(t, cfg, author.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, countUploads(t, cfg.Upload.Dir))

	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestUploadedImageServedUnderMediaURL(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")

	w := doMultipart(t, engine, "/new",
		url.Values{"text": {"with picture"}}, "pic.png", bearer(t, cfg, author.ID))
	require.Equal(t, http.StatusFound, w.Code)

	var got model.Post
	require.NoError(t, db.First(&got, "author_id = ?", author.ID).Error)
	require.NotEmpty(t, got.Image)

	img := doGet(engine, cfg.Upload.BaseURL+"/"+got.Image, "")
	require.Equal(t, http.StatusOK, img.Code)
	require.Equal(t, "not-really-a-png", img.Body.String())
}

func TestEditByAuthor(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")
	post := createPost(t, db, author, "original")

	w := doForm(engine, "/author/"+post.ID+"/edit",
		url.Values{"text": {"updated"}}, bearer(t, cfg, author.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/author/"+post.ID, w.Header().Get("Location"))

	var got model.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	require.Equal(t, "updated", got.Text)
}

func TestGroupUnknownSlugIs404(t *testing.T) {
	engine, _, _ := newServer(t)

	w := doGet(engine, "/group/ghost", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "/group/ghost")
}

func TestPostDetailUnknownIs404(t *testing.T) {
	engine, db, _ := newServer(t)
	createUser(t, db, "author")

	w := doGet(engine, "/author/missing-id", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowFlow(t *testing.T) {
	engine, db, cfg := newServer(t)
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	auth := bearer(t, cfg, alice.ID)

	for i := 0; i < 2; i++ {
		w := doGet(engine, "/bob/follow", auth)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/bob", w.Header().Get("Location"))
	}
	var n int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&n).Error)
	require.EqualValues(t, 1, n)

	w := doGet(engine, "/bob/unfollow", auth)
	require.Equal(t, http.StatusFound, w.Code)
	require.NoError(t, db.Model(&model.Follow{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestFollowFeedRequiresAuth(t *testing.T) {
	engine, _, _ := newServer(t)

	w := doGet(engine, "/follow", "")
	require.Equal(t, http.StatusFound, w.Code)
}

func TestCommentFlow(t *testing.T) {
	engine, db, cfg := newServer(t)
	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	post := createPost(t, db, author, "text")

	w := doForm(engine, "/author/"+post.ID+"/comment",
		url.Values{"text": {"well said"}}, bearer(t, cfg, commenter.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/author/"+post.ID, w.Header().Get("Location"))

	var n int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestProfileShowsFollowingForViewer(t *testing.T) {
	engine, db, cfg := newServer(t)
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	auth := bearer(t, cfg, alice.ID)
	doGet(engine, "/bob/follow", auth)

	w := doGet(engine, "/bob", auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"following":true`)

	anon := doGet(engine, "/bob", "")
	require.Equal(t, http.StatusOK, anon.Code)
	require.Contains(t, anon.Body.String(), `"following":false`)
}
