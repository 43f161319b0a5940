package services

import (
	"context"
	"testing"

	"lostfound/models"
	"lostfound/storage"

	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *storage.Cache {
	t.Helper()
	local, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return storage.NewCache(local, nil)
}

func seedCollection(t *testing.T, cache *storage.Cache, col storage.Collection, records interface{}) {
	t.Helper()
	version := cache.Local().Version(col)
	_, err := cache.Write(context.Background(), col, records, version)
	require.NoError(t, err)
}

func seedUser(t *testing.T, cache *storage.Cache, id, name, email string) {
	t.Helper()
	var users []models.User
	_, err := cache.Read(storage.CollectionUsers, &users)
	require.NoError(t, err)
	users = append(users, models.User{ID: id, FullName: name, Email: email})
	seedCollection(t, cache, storage.CollectionUsers, users)
}
