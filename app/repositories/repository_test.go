package repositories

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"blogposts/app/config"
	"blogposts/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBadgerInMemory(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverBadger})
	require.NoError(t, err)
	assert.Equal(t, config.DriverBadger, store.Driver())

	ctx := context.Background()
	require.NoError(t, store.Posts.Create(ctx, newPost("memory")))
	count, err := store.Posts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestOpenBadgerOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "blog")

	store, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, store.Posts.Create(ctx, newPost("persisted")))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(dir)
	require.NoError(t, err)
	defer reopened.Close()

	post, err := reopened.Posts.FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", post.Title)
}

func TestStoreBackupRestore(t *testing.T) {
	ctx := context.Background()

	src, err := OpenBadger("")
	require.NoError(t, err)
	defer src.Close()

	posts := []*models.BlogPost{newPost("first"), newPost("second")}
	require.NoError(t, src.Posts.InsertMany(ctx, posts))

	var buf bytes.Buffer
	require.NoError(t, src.Backup(&buf))
	assert.NotZero(t, buf.Len())

	dst, err := OpenBadger("")
	require.NoError(t, err)
	defer dst.Close()

	require.NoError(t, dst.Restore(&buf))

	restored, err := dst.Posts.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)
	assert.Equal(t, posts[0].ID, restored[0].ID)
	assert.Equal(t, "second", restored[1].Title)
}

type plainRepo struct{ PostRepository }

func TestStoreBackupUnsupported(t *testing.T) {
	store := &Store{Posts: plainRepo{}, driver: config.DriverMongo}

	assert.ErrorIs(t, store.Backup(&bytes.Buffer{}), ErrUnsupported)
	assert.ErrorIs(t, store.Restore(&bytes.Buffer{}), ErrUnsupported)
	assert.NoError(t, store.Close())
}
