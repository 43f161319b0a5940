package services

import (
	"context"
	"testing"
	"time"

	"lostfound/models"
	"lostfound/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReportInput() ReportInput {
	return ReportInput{
		ReporterName: "Asha",
		Email:        "asha@klu.ac.in",
		Phone:        "9876543210",
		ItemName:     "Blue Bottle",
		Category:     "accessories",
		Description:  "Steel bottle with stickers",
		Location:     "Library",
		Date:         "2026-08-30",
	}
}

func newTestReportService(t *testing.T) (*ReportService, *storage.Cache) {
	t.Helper()
	cache := newTestCache(t)
	return NewReportService(cache, nil, []string{"klu.ac.in"}), cache
}

func TestReportAssignsDefaults(t *testing.T) {
	svc, _ := newTestReportService(t)

	report, offline, err := svc.Report(context.Background(), "u1", models.KindLost, validReportInput())
	require.NoError(t, err)
	assert.False(t, offline)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "u1", report.UserID)
	assert.Equal(t, models.StatusSearching, report.Status)
	assert.Equal(t, "2026-08-30", report.DateLost)
	assert.Empty(t, report.DateFound)
	assert.Nil(t, report.ResolvedAt)
	assert.NotNil(t, report.Images)

	found, _, err := svc.Report(context.Background(), "u1", models.KindFound, validReportInput())
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnclaimed, found.Status)
	assert.Equal(t, "2026-08-30", found.DateFound)
}

func TestReportValidation(t *testing.T) {
	svc, _ := newTestReportService(t)
	ctx := context.Background()

	in := validReportInput()
	in.Email = "asha@gmail.com"
	_, _, err := svc.Report(ctx, "u1", models.KindLost, in)
	assert.Error(t, err, "foreign email domain")

	in = validReportInput()
	in.Phone = "12345"
	_, _, err = svc.Report(ctx, "u1", models.KindLost, in)
	assert.Error(t, err, "bad phone")

	in = validReportInput()
	in.ItemName = ""
	_, _, err = svc.Report(ctx, "u1", models.KindLost, in)
	assert.Error(t, err, "missing item name")

	// Nothing was persisted by the rejected submissions.
	reports, err := svc.ListByUser("u1", models.KindLost)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestListByUserNewestFirstAndScoped(t *testing.T) {
	svc, cache := newTestReportService(t)

	now := time.Now().UTC()
	seedCollection(t, cache, storage.CollectionLostItems, []models.Report{
		{ID: "old", UserID: "u1", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "other", UserID: "u2", CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "new", UserID: "u1", CreatedAt: now},
	})

	reports, err := svc.ListByUser("u1", models.KindLost)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "new", reports[0].ID)
	assert.Equal(t, "old", reports[1].ID)
}

func TestToggleStatusRoundTrip(t *testing.T) {
	svc, _ := newTestReportService(t)
	ctx := context.Background()

	report, _, err := svc.Report(ctx, "u1", models.KindLost, validReportInput())
	require.NoError(t, err)

	resolved, _, err := svc.ToggleStatus(ctx, report.ID, models.KindLost)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFound, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	reopened, _, err := svc.ToggleStatus(ctx, report.ID, models.KindLost)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSearching, reopened.Status)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestToggleStatusFoundKind(t *testing.T) {
	svc, _ := newTestReportService(t)
	ctx := context.Background()

	report, _, err := svc.Report(ctx, "u1", models.KindFound, validReportInput())
	require.NoError(t, err)

	claimed, _, err := svc.ToggleStatus(ctx, report.ID, models.KindFound)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, claimed.Status)
	require.NotNil(t, claimed.ResolvedAt)
}

func TestToggleStatusUnknownID(t *testing.T) {
	svc, _ := newTestReportService(t)
	ctx := context.Background()

	report, _, err := svc.Report(ctx, "u1", models.KindLost, validReportInput())
	require.NoError(t, err)

	_, _, err = svc.ToggleStatus(ctx, "no-such-id", models.KindLost)
	assert.ErrorIs(t, err, ErrNotFound)

	// The failed toggle mutated nothing.
	reports, err := svc.ListByUser("u1", models.KindLost)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.Status, reports[0].Status)
	assert.Nil(t, reports[0].ResolvedAt)
}

func TestUserStatsCountsResolvedAcrossKinds(t *testing.T) {
	svc, _ := newTestReportService(t)
	ctx := context.Background()

	lost, _, err := svc.Report(ctx, "u1", models.KindLost, validReportInput())
	require.NoError(t, err)
	_, _, err = svc.Report(ctx, "u1", models.KindFound, validReportInput())
	require.NoError(t, err)
	_, _, err = svc.Report(ctx, "u2", models.KindLost, validReportInput())
	require.NoError(t, err)

	stats, err := svc.UserStats("u1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{TotalLost: 1, TotalFound: 1, TotalResolved: 0}, stats)

	_, _, err = svc.ToggleStatus(ctx, lost.ID, models.KindLost)
	require.NoError(t, err)

	stats, err = svc.UserStats("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalResolved)
}
