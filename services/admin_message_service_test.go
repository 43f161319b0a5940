package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lostfound/models"
	"lostfound/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// messagesAPIStub records create/delete requests the way the remote
// admin-messages API would receive them.
type messagesAPIStub struct {
	mu      sync.Mutex
	created []models.AdminMessage
	deleted []string
	listing []models.AdminMessage
}

func (s *messagesAPIStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/messages", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(s.listing)
		case http.MethodPost:
			var msg models.AdminMessage
			json.NewDecoder(r.Body).Decode(&msg)
			s.created = append(s.created, msg)
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/admin/messages/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.deleted = append(s.deleted, r.URL.Path[len("/api/admin/messages/"):])
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func validMessageInput() MessageInput {
	return MessageInput{
		Title:   "Library timings",
		Content: "The library closes at 8pm during exams",
		Type:    models.MessageTypeAnnouncement,
	}
}

func newMessageFixture(t *testing.T) (*AdminMessageService, *SyncService, *messagesAPIStub, *storage.Cache) {
	t.Helper()
	stub := &messagesAPIStub{}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	cache := newTestCache(t)
	api := NewMessageAPIClient(server.URL)
	queue := NewSyncService(cache, nil, api)
	return NewAdminMessageService(cache, api, queue), queue, stub, cache
}

// newOfflineMessageFixture points the API client at an address that
// refuses connections.
func newOfflineMessageFixture(t *testing.T) (*AdminMessageService, *SyncService, *storage.Cache) {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	cache := newTestCache(t)
	api := NewMessageAPIClient(url)
	queue := NewSyncService(cache, nil, api)
	return NewAdminMessageService(cache, api, queue), queue, cache
}

func TestCreateMessageOnline(t *testing.T) {
	svc, queue, stub, cache := newMessageFixture(t)

	msg, offline, err := svc.Create(context.Background(), "Admin", validMessageInput())
	require.NoError(t, err)
	assert.False(t, offline)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, models.RecipientAll, msg.RecipientType)

	stub.mu.Lock()
	require.Len(t, stub.created, 1)
	assert.Equal(t, msg.ID, stub.created[0].ID)
	stub.mu.Unlock()

	pending, err := queue.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	var local []models.AdminMessage
	_, err = cache.Read(storage.CollectionAdminMessages, &local)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, *msg, local[0])
}

func TestCreateMessageOfflineQueuesOp(t *testing.T) {
	svc, queue, cache := newOfflineMessageFixture(t)

	msg, offline, err := svc.Create(context.Background(), "Admin", validMessageInput())
	require.NoError(t, err)
	assert.True(t, offline)

	// The stored record is identical to what the online path persists.
	var local []models.AdminMessage
	_, err = cache.Read(storage.CollectionAdminMessages, &local)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, *msg, local[0])

	pending, err := queue.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.SyncActionCreate, pending[0].Action)
	assert.Equal(t, msg.ID, pending[0].RecordID)
}

func TestCreateMessageValidation(t *testing.T) {
	svc, _, _ := newOfflineMessageFixture(t)
	ctx := context.Background()

	in := validMessageInput()
	in.Title = ""
	_, _, err := svc.Create(ctx, "Admin", in)
	assert.Error(t, err)

	in = validMessageInput()
	in.Type = "gossip"
	_, _, err = svc.Create(ctx, "Admin", in)
	assert.Error(t, err)
}

func TestDeleteMessage(t *testing.T) {
	svc, queue, stub, _ := newMessageFixture(t)
	ctx := context.Background()

	msg, _, err := svc.Create(ctx, "Admin", validMessageInput())
	require.NoError(t, err)

	offline, err := svc.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, offline)

	stub.mu.Lock()
	assert.Equal(t, []string{msg.ID}, stub.deleted)
	stub.mu.Unlock()

	_, err = svc.Delete(ctx, msg.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	pending, err := queue.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestListPrefersRemoteAndFallsBackToLocal(t *testing.T) {
	svc, _, stub, cache := newMessageFixture(t)
	ctx := context.Background()

	stub.mu.Lock()
	stub.listing = []models.AdminMessage{
		{ID: "r1", Title: "remote", CreatedAt: time.Now().UTC()},
	}
	stub.mu.Unlock()

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	// The remote listing refreshed the local mirror, which now serves
	// degraded reads.
	var local []models.AdminMessage
	_, err = cache.Read(storage.CollectionAdminMessages, &local)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "r1", local[0].ID)

	offlineSvc, _, offlineCache := newOfflineMessageFixture(t)
	seedCollection(t, offlineCache, storage.CollectionAdminMessages, local)

	got, err = offlineSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}

func TestSortMessagesPinnedFirstThenNewest(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	messages := []models.AdminMessage{
		{ID: "a", CreatedAt: t0.Add(3 * time.Hour)},
		{ID: "b", CreatedAt: t0, PinToTop: true},
		{ID: "c", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "d", CreatedAt: t0.Add(1 * time.Hour), PinToTop: true},
	}

	SortMessages(messages)

	ids := []string{messages[0].ID, messages[1].ID, messages[2].ID, messages[3].ID}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
}
