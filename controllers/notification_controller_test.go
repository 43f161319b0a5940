package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lostfound/middleware"
	"lostfound/models"
	"lostfound/services"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newNotificationRouter(t *testing.T) (*gin.Engine, *services.NotificationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	local, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	cache := storage.NewCache(local, nil)

	svc := services.NewNotificationService(cache, nil)
	nc := NewNotificationController(svc)

	seed := []models.Notification{
		{ID: "n1", UserID: "u1", ItemID: "item1", Title: "match found", Date: time.Now().UTC()},
		{ID: "n2", UserID: "u1", ItemID: "item1", Title: "older match", Date: time.Now().UTC().Add(-time.Hour)},
	}
	_, err = cache.Write(context.Background(), storage.CollectionNotifications, seed, 0)
	require.NoError(t, err)

	router := gin.New()
	auth := middleware.AuthMiddleware(testSecret)
	router.GET("/api/reports/:id/notifications", auth, nc.ListForItem)
	router.GET("/api/notifications/unread-count", auth, nc.UnreadCount)
	router.DELETE("/api/notifications/:id", auth, nc.Dismiss)
	return router, svc
}

func userToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("u1", "asha@klu.ac.in", "Asha", utils.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string) (*httptest.ResponseRecorder, utils.APIResponse) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body utils.APIResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

// Opening the notification list acknowledges it: the response carries
// read entries and the unread badge drops to zero.
func TestListForItemMarksViewed(t *testing.T) {
	router, svc := newNotificationRouter(t)
	token := userToken(t)

	w, body := doJSON(router, http.MethodGet, "/api/reports/item1/notifications", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	list, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "match found", first["title"], "newest first")
	assert.Equal(t, true, first["read"])

	count, err := svc.UnreadCountFor("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUnreadCountEndpoint(t *testing.T) {
	router, _ := newNotificationRouter(t)
	token := userToken(t)

	w, body := doJSON(router, http.MethodGet, "/api/notifications/unread-count", token)
	require.Equal(t, http.StatusOK, w.Code)

	data := body.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])

	// Viewing the list clears the badge.
	_, _ = doJSON(router, http.MethodGet, "/api/reports/item1/notifications", token)
	_, body = doJSON(router, http.MethodGet, "/api/notifications/unread-count", token)
	data = body.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["count"])
}

func TestDismissEndpoint(t *testing.T) {
	router, svc := newNotificationRouter(t)
	token := userToken(t)

	w, _ := doJSON(router, http.MethodDelete, "/api/notifications/n1", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(router, http.MethodDelete, "/api/notifications/n1", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, err := svc.ListForItem("item1", "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n2", got[0].ID)
}

func TestNotificationsRequireAuth(t *testing.T) {
	router, _ := newNotificationRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
