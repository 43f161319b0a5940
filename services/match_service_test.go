package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lostfound/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matcherStub struct {
	matches       []models.Match
	failFind      bool
	notifyCalls   atomic.Int64
	notifySuccess bool
}

func (m *matcherStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/find_matches", func(w http.ResponseWriter, r *http.Request) {
		if m.failFind {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(m.matches)
	})
	mux.HandleFunc("/ai_find_matches", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(m.matches)
	})
	mux.HandleFunc("/send_notification", func(w http.ResponseWriter, r *http.Request) {
		m.notifyCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": m.notifySuccess})
	})
	return mux
}

func testMatch(lostName, foundName string) models.Match {
	return models.Match{
		Lost:       models.MatchItem{Name: lostName, Email: lostName + "@klu.ac.in", ItemName: "Blue Bottle"},
		Found:      models.MatchItem{Name: foundName, Email: foundName + "@klu.ac.in", ItemName: "Blue Bottle"},
		MatchScore: "87%",
		Similarity: 0.87,
	}
}

func newTestMatchService(t *testing.T, stub *matcherStub) *MatchService {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	cache := newTestCache(t)
	matcher := NewMatcherClient(server.URL)
	return NewMatchService(matcher, NewNotificationService(cache, nil))
}

func TestFetchMatchesReplacesHeldList(t *testing.T) {
	stub := &matcherStub{matches: []models.Match{testMatch("a", "b"), testMatch("c", "d")}}
	svc := newTestMatchService(t, stub)
	ctx := context.Background()

	matches, err := svc.FetchMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Len(t, svc.Current(), 2)

	stub.matches = []models.Match{testMatch("e", "f")}
	matches, err = svc.FetchMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, "e", svc.Current()[0].Lost.Name)
}

func TestFetchFailureKeepsPriorList(t *testing.T) {
	stub := &matcherStub{matches: []models.Match{testMatch("a", "b")}}
	svc := newTestMatchService(t, stub)
	ctx := context.Background()

	_, err := svc.FetchMatches(ctx)
	require.NoError(t, err)

	stub.failFind = true
	_, err = svc.FetchMatches(ctx)
	require.Error(t, err)
	assert.Len(t, svc.Current(), 1, "failed fetch leaves the held list untouched")
}

func TestSendNotificationByIndex(t *testing.T) {
	stub := &matcherStub{matches: []models.Match{testMatch("a", "b")}, notifySuccess: true}
	svc := newTestMatchService(t, stub)
	ctx := context.Background()

	// No list held yet.
	err := svc.SendNotification(ctx, 0)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = svc.FetchMatches(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.SendNotification(ctx, 0))
	assert.Equal(t, int64(1), stub.notifyCalls.Load())

	assert.ErrorIs(t, svc.SendNotification(ctx, 1), ErrMatchNotFound)
	assert.ErrorIs(t, svc.SendNotification(ctx, -1), ErrMatchNotFound)
}

// A refetch that shrinks the list invalidates indices from the previous
// one; a stale index now either misses or silently addresses a
// different match. This pins down the positional addressing contract.
func TestRefetchInvalidatesIndices(t *testing.T) {
	stub := &matcherStub{matches: []models.Match{testMatch("a", "b"), testMatch("c", "d")}, notifySuccess: true}
	svc := newTestMatchService(t, stub)
	ctx := context.Background()

	_, err := svc.FetchMatches(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.SendNotification(ctx, 1))

	stub.matches = stub.matches[:1]
	_, err = svc.FetchMatches(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SendNotification(ctx, 1), ErrMatchNotFound)
}

func TestSendNotificationDeclined(t *testing.T) {
	stub := &matcherStub{matches: []models.Match{testMatch("a", "b")}, notifySuccess: false}
	svc := newTestMatchService(t, stub)
	ctx := context.Background()

	_, err := svc.FetchMatches(ctx)
	require.NoError(t, err)

	err = svc.SendNotification(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

func TestUrgencyColorFallback(t *testing.T) {
	assert.Equal(t, "#ff1744", models.UrgencyColor(models.UrgencyCritical))
	assert.Equal(t, "#4caf50", models.UrgencyColor("UNKNOWN"))
}
