package report

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeops/genkabot/store"
)

// mockReportStore is a mock implementation of the ReportStore interface.
type mockReportStore struct {
	mu      sync.Mutex
	reports []*store.Report
	err     error
	panics  bool
}

func (m *mockReportStore) CreateReport(_ context.Context, create *store.Report) (*store.Report, error) {
	if m.panics {
		panic("store blew up")
	}
	if m.err != nil {
		return nil, m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	create.ID = int32(len(m.reports) + 1)
	if create.UID == "" {
		create.UID = "test-uid"
	}
	create.CreatedTs = time.Now().Unix()
	m.reports = append(m.reports, create)
	return create, nil
}

func (m *mockReportStore) created() []*store.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*store.Report{}, m.reports...)
}

// mockNotifier is a mock implementation of the Notifier interface.
type mockNotifier struct {
	mu        sync.Mutex
	summaries []string
	refs      [][]string
	err       error
}

func (m *mockNotifier) Notify(_ context.Context, summary string, evidenceRefs []string) error {
	if m.err != nil {
		return m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, summary)
	m.refs = append(m.refs, append([]string{}, evidenceRefs...))
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTimeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(5 * time.Second)
}

func fullSession(userID int64) *Session {
	sess := newSession(userID)
	sess.Step = StepCollectingEvidence
	sess.SelectedSite = "Кофейня №2 (Тукая, 62)"
	sess.Evidence = []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}
	return sess
}

func TestFinalizeDelivered(t *testing.T) {
	reportStore := &mockReportStore{}
	notifier := &mockNotifier{}
	sessions := NewSessionStore()
	finalizer := NewFinalizer(reportStore, notifier, sessions, discardLogger())
	finalizer.now = func() time.Time { return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC) }

	sess := fullSession(1)
	sessions.Save(1, sess)

	outcome := finalizer.Finalize(context.Background(), sess, Submitter{
		UserID:   1,
		Username: "cleaner",
		FullName: "Иван Иванов",
	})
	assert.Equal(t, OutcomeDelivered, outcome)

	created := reportStore.created()
	require.Len(t, created, 1)
	assert.Equal(t, int64(1), created[0].UserID)
	require.NotNil(t, created[0].Username)
	assert.Equal(t, "cleaner", *created[0].Username)
	assert.Equal(t, "Иван Иванов", created[0].FullName)
	assert.Equal(t, "Кофейня №2 (Тукая, 62)", created[0].SiteName)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}, created[0].EvidenceRefs)

	require.Len(t, notifier.summaries, 1)
	assert.Contains(t, notifier.summaries[0], "НОВЫЙ ОТЧЁТ ОБ УБОРКЕ")
	assert.Contains(t, notifier.summaries[0], "Кофейня №2 (Тукая, 62)")
	assert.Contains(t, notifier.summaries[0], "Иван Иванов")
	assert.Contains(t, notifier.summaries[0], "01.06.2025 14:30")
	assert.Equal(t, created[0].EvidenceRefs, notifier.refs[0])

	// Session is reset, never left full.
	got, ok := sessions.Get(1)
	require.True(t, ok)
	assert.Equal(t, StepAwaitingSite, got.Step)
	assert.Empty(t, got.Evidence)
}

func TestFinalizeDeliveryFailureDegrades(t *testing.T) {
	reportStore := &mockReportStore{}
	notifier := &mockNotifier{err: errors.New("chat unreachable")}
	sessions := NewSessionStore()
	finalizer := NewFinalizer(reportStore, notifier, sessions, discardLogger())

	sess := fullSession(1)
	sessions.Save(1, sess)

	outcome := finalizer.Finalize(context.Background(), sess, Submitter{UserID: 1, FullName: "Иван"})
	assert.Equal(t, OutcomePersistedOnly, outcome)

	// No rollback: the record stays durable.
	assert.Len(t, reportStore.created(), 1)

	got, _ := sessions.Get(1)
	assert.Equal(t, StepAwaitingSite, got.Step)
}

func TestFinalizeStorageFailure(t *testing.T) {
	reportStore := &mockReportStore{err: errors.New("disk full")}
	notifier := &mockNotifier{}
	sessions := NewSessionStore()
	finalizer := NewFinalizer(reportStore, notifier, sessions, discardLogger())

	sess := fullSession(1)
	sessions.Save(1, sess)

	outcome := finalizer.Finalize(context.Background(), sess, Submitter{UserID: 1, FullName: "Иван"})
	assert.Equal(t, OutcomeFailed, outcome)

	// Persistence failed, so no notification was attempted.
	assert.Empty(t, notifier.summaries)

	// The session is still reset to avoid a stuck full state.
	got, _ := sessions.Get(1)
	assert.Equal(t, StepAwaitingSite, got.Step)
	assert.Empty(t, got.Evidence)
}

func TestFinalizePanicIsFailed(t *testing.T) {
	reportStore := &mockReportStore{panics: true}
	notifier := &mockNotifier{}
	sessions := NewSessionStore()
	finalizer := NewFinalizer(reportStore, notifier, sessions, discardLogger())

	sess := fullSession(1)
	sessions.Save(1, sess)

	var outcome Outcome
	require.NotPanics(t, func() {
		outcome = finalizer.Finalize(context.Background(), sess, Submitter{UserID: 1, FullName: "Иван"})
	})
	assert.Equal(t, OutcomeFailed, outcome)

	got, _ := sessions.Get(1)
	assert.Equal(t, StepAwaitingSite, got.Step)
}

func TestFinalizeWithoutUsername(t *testing.T) {
	reportStore := &mockReportStore{}
	notifier := &mockNotifier{}
	sessions := NewSessionStore()
	finalizer := NewFinalizer(reportStore, notifier, sessions, discardLogger())

	sess := fullSession(1)
	sessions.Save(1, sess)

	outcome := finalizer.Finalize(context.Background(), sess, Submitter{UserID: 1, FullName: "Иван"})
	assert.Equal(t, OutcomeDelivered, outcome)

	created := reportStore.created()
	require.Len(t, created, 1)
	assert.Nil(t, created[0].Username)
}
