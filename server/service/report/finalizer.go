package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/coffeops/genkabot/store"
)

// Outcome is the result of one finalization attempt, consumed by the engine
// to pick the exact user-visible message. No outcome is swallowed.
type Outcome int

const (
	// OutcomeFailed means the durable write failed; the report is lost for
	// this attempt and the user is asked to retry.
	OutcomeFailed Outcome = iota
	// OutcomePersistedOnly means the report is durable but the supervisor
	// notification could not be delivered.
	OutcomePersistedOnly
	// OutcomeDelivered means the report was persisted and forwarded.
	OutcomeDelivered
)

// Finalization timeouts. Persistence and delivery are the only I/O the core
// performs; a timeout counts as failure of that step.
const (
	persistTimeout = 10 * time.Second
	notifyTimeout  = 30 * time.Second
)

// ReportStore is the store surface the finalizer needs.
type ReportStore interface {
	CreateReport(ctx context.Context, create *store.Report) (*store.Report, error)
}

// Notifier delivers the supervisor notification.
type Notifier interface {
	Notify(ctx context.Context, summary string, evidenceRefs []string) error
}

// Submitter identifies who is finishing a report.
type Submitter struct {
	UserID   int64
	Username string
	FullName string
}

// Finalizer assembles the final record once the evidence quota is reached,
// persists it, dispatches the notification, and always resets the session.
type Finalizer struct {
	store    ReportStore
	notifier Notifier
	sessions *SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewFinalizer(reportStore ReportStore, notifier Notifier, sessions *SessionStore, logger *slog.Logger) *Finalizer {
	return &Finalizer{
		store:    reportStore,
		notifier: notifier,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Finalize runs the persist-then-notify sequence. The session is reset on
// every exit path, panics included, so it never survives in a full state.
func (f *Finalizer) Finalize(ctx context.Context, sess *Session, sub Submitter) (outcome Outcome) {
	defer f.sessions.Reset(sess.UserID)
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("finalization panicked",
				slog.Int64("user_id", sess.UserID),
				slog.String("site", sess.SelectedSite),
				slog.Any("panic", r))
			outcome = OutcomeFailed
		}
	}()

	report := &store.Report{
		UserID:       sub.UserID,
		FullName:     sub.FullName,
		SiteName:     sess.SelectedSite,
		EvidenceRefs: sess.Evidence,
	}
	if sub.Username != "" {
		username := sub.Username
		report.Username = &username
	}

	persistCtx, cancelPersist := context.WithTimeout(ctx, persistTimeout)
	defer cancelPersist()
	created, err := f.store.CreateReport(persistCtx, report)
	if err != nil {
		f.logger.Error("failed to persist report",
			slog.Int64("user_id", sess.UserID),
			slog.String("site", sess.SelectedSite),
			slog.String("error", err.Error()))
		return OutcomeFailed
	}

	summary := summaryMessage(sess.SelectedSite, sub.FullName, f.now())

	notifyCtx, cancelNotify := context.WithTimeout(ctx, notifyTimeout)
	defer cancelNotify()
	if err := f.notifier.Notify(notifyCtx, summary, created.EvidenceRefs); err != nil {
		// The record is already durable; degrade rather than roll back.
		f.logger.Warn("failed to deliver report notification",
			slog.Int64("user_id", sess.UserID),
			slog.String("report_uid", created.UID),
			slog.String("error", err.Error()))
		return OutcomePersistedOnly
	}

	f.logger.Info("report finalized",
		slog.Int64("user_id", sess.UserID),
		slog.String("report_uid", created.UID),
		slog.String("site", sess.SelectedSite))
	return OutcomeDelivered
}
