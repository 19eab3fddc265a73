package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"yatube/internal/repository"
	"yatube/internal/testutils"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPageSize = 10

type testEnv struct {
	db        *gorm.DB
	redis     *miniredis.Miniredis
	images    *testutils.MemoryObjectStore
	publisher *testutils.RecordingPublisher

	posts   PostService
	actions PostActionService
	follows FollowService
	users   UserService
	groups  GroupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutils.NewTestDB(t)
	mr, _ := testutils.NewTestRedis(t)
	images := testutils.NewMemoryObjectStore()
	publisher := &testutils.RecordingPublisher{}

	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	followRepo := repository.NewFollowRepo(db)

	return &testEnv{
		db:        db,
		redis:     mr,
		images:    images,
		publisher: publisher,
		posts:     NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo, images, publisher, testPageSize),
		actions:   NewPostActionService(postRepo, commentRepo, publisher),
		follows:   NewFollowService(followRepo, userRepo, publisher),
		users:     NewUserService(userRepo),
		groups:    NewGroupService(groupRepo),
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func requireFormError(t *testing.T, err error) *FormError {
	t.Helper()
	require.Error(t, err)
	formErr, ok := err.(*FormError)
	require.Truef(t, ok, "expected *FormError, got %T: %v", err, err)
	return formErr
}
