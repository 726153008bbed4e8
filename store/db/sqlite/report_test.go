package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/store"
)

func newTestingDriver(t *testing.T) store.Driver {
	t.Helper()

	driver, err := NewDB(&profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "reports_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })

	require.NoError(t, driver.Migrate(context.Background()))
	return driver
}

func TestCreateReport(t *testing.T) {
	driver := newTestingDriver(t)
	ctx := context.Background()

	username := "cleaner"
	created, err := driver.CreateReport(ctx, &store.Report{
		UID:          "uid-1",
		UserID:       7,
		Username:     &username,
		FullName:     "Иван Иванов",
		SiteName:     "Кофейня №1 (Рахлина, 5)",
		EvidenceRefs: []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), created.ID)
	assert.NotZero(t, created.CreatedTs, "created_ts defaults to the current time")
}

func TestCreateReportDuplicateUID(t *testing.T) {
	driver := newTestingDriver(t)
	ctx := context.Background()

	_, err := driver.CreateReport(ctx, &store.Report{
		UID: "same", UserID: 1, FullName: "A", SiteName: "S", EvidenceRefs: []string{"p"},
	})
	require.NoError(t, err)

	_, err = driver.CreateReport(ctx, &store.Report{
		UID: "same", UserID: 2, FullName: "B", SiteName: "S", EvidenceRefs: []string{"p"},
	})
	assert.Error(t, err)
}

func TestListReports(t *testing.T) {
	driver := newTestingDriver(t)
	ctx := context.Background()

	username := "cleaner"
	seed := []*store.Report{
		{UID: "a", UserID: 1, Username: &username, FullName: "Иван", SiteName: "Кофейня №1 (Рахлина, 5)",
			EvidenceRefs: []string{"p1", "p2"}, CreatedTs: 100},
		{UID: "b", UserID: 2, FullName: "Пётр", SiteName: "Кофейня №2 (Тукая, 62)",
			EvidenceRefs: []string{"q1"}, CreatedTs: 200},
		{UID: "c", UserID: 1, FullName: "Иван", SiteName: "Кофейня №2 (Тукая, 62)",
			EvidenceRefs: []string{"r1", "r2", "r3"}, CreatedTs: 300},
	}
	for _, report := range seed {
		_, err := driver.CreateReport(ctx, report)
		require.NoError(t, err)
	}

	// Unfiltered, newest first.
	all, err := driver.ListReports(ctx, &store.FindReport{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].UID)
	assert.Equal(t, "a", all[2].UID)

	// Evidence refs round-trip in order.
	assert.Equal(t, []string{"r1", "r2", "r3"}, all[0].EvidenceRefs)

	// Username column is nullable.
	assert.Nil(t, all[0].Username)
	require.NotNil(t, all[2].Username)
	assert.Equal(t, "cleaner", *all[2].Username)

	// Filter by user.
	userID := int64(1)
	mine, err := driver.ListReports(ctx, &store.FindReport{UserID: &userID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Filter by site.
	site := "Кофейня №2 (Тукая, 62)"
	bySite, err := driver.ListReports(ctx, &store.FindReport{SiteName: &site})
	require.NoError(t, err)
	assert.Len(t, bySite, 2)

	// Limit and offset.
	limit, offset := 1, 1
	page, err := driver.ListReports(ctx, &store.FindReport{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].UID)
}
