// Package report implements the cleaning-report conversation: a fixed
// three-step state machine per user (site selection → instruction
// acknowledgment → evidence collection) with exactly-once finalization.
//
// Key properties:
//   - Events for one user are serialized in arrival order; users are
//     independent of each other.
//   - Invalid input re-prompts instead of erroring, so progress already made
//     (notably the selected site) survives user mistakes.
//   - The engine is pure with respect to the transport: it consumes Events
//     and returns Actions, which makes the transition table unit-testable
//     without a live connection.
package report

import (
	"context"
	"log/slog"
)

// Engine is the conversation state machine. It fetches the session, applies
// one event under the per-user lock, and releases it back to the store.
type Engine struct {
	catalog   *Catalog
	sessions  *SessionStore
	finalizer *Finalizer
	logger    *slog.Logger
}

func NewEngine(catalog *Catalog, sessions *SessionStore, finalizer *Finalizer, logger *slog.Logger) *Engine {
	return &Engine{
		catalog:   catalog,
		sessions:  sessions,
		finalizer: finalizer,
		logger:    logger,
	}
}

// HandleEvent applies one inbound event and returns the outbound actions.
// The per-user lock is held for the whole call, finalization included, so a
// reset arriving mid-finalization is applied only after it completes.
func (e *Engine) HandleEvent(ctx context.Context, event Event) []Action {
	release := e.sessions.Acquire(event.EventUserID())
	defer release()

	switch ev := event.(type) {
	case ResetCommand:
		return e.handleReset(ev)
	case TextEvent:
		return e.handleText(ev)
	case EvidenceEvent:
		return e.handleEvidence(ctx, ev)
	default:
		e.logger.Warn("dropping event of unknown kind", slog.Int64("user_id", event.EventUserID()))
		return nil
	}
}

func (e *Engine) handleReset(ev ResetCommand) []Action {
	e.sessions.Reset(ev.UserID)
	return []Action{SendSelectionPrompt{
		UserID: ev.UserID,
		Text:   MsgChooseSite,
		Sites:  e.catalog.Names(),
	}}
}

func (e *Engine) handleText(ev TextEvent) []Action {
	sess := e.sessions.GetOrCreate(ev.UserID)

	switch sess.Step {
	case StepAwaitingSite:
		site, ok := e.catalog.LookupByName(ev.Text)
		if !ok {
			return []Action{SendSelectionPrompt{
				UserID: ev.UserID,
				Text:   MsgSiteNotInList,
				Sites:  e.catalog.Names(),
			}}
		}
		sess.SelectedSite = site.Name
		sess.Step = StepAwaitingAck
		e.sessions.Save(ev.UserID, sess)
		return []Action{SendInstructions{UserID: ev.UserID}}

	case StepAwaitingAck:
		if ev.Text != AckPhrase {
			return []Action{SendMessage{UserID: ev.UserID, Text: MsgConfirmInstruction}}
		}
		sess.Evidence = []string{}
		sess.Step = StepCollectingEvidence
		e.sessions.Save(ev.UserID, sess)
		return []Action{SendEvidencePrompt{UserID: ev.UserID}}

	case StepCollectingEvidence:
		// Non-evidence input while collecting is silently ignored.
		return nil

	default:
		return nil
	}
}

func (e *Engine) handleEvidence(ctx context.Context, ev EvidenceEvent) []Action {
	sess := e.sessions.GetOrCreate(ev.UserID)

	switch sess.Step {
	case StepAwaitingSite:
		// Evidence before site selection counts as unmatched text.
		return []Action{SendSelectionPrompt{
			UserID: ev.UserID,
			Text:   MsgSiteNotInList,
			Sites:  e.catalog.Names(),
		}}

	case StepAwaitingAck:
		return []Action{SendMessage{UserID: ev.UserID, Text: MsgConfirmInstruction}}

	case StepCollectingEvidence:
		if err := ValidateEvidence(ev.Width, ev.Height); err != nil {
			return []Action{SendMessage{UserID: ev.UserID, Text: MsgEvidenceTooSmall}}
		}

		sess.Evidence = append(sess.Evidence, ev.EvidenceRef)
		e.sessions.Save(ev.UserID, sess)

		if len(sess.Evidence) < RequiredEvidenceCount {
			return []Action{SendMessage{UserID: ev.UserID, Text: progressMessage(len(sess.Evidence))}}
		}

		// Quota reached: finalize synchronously before this user's next
		// event is accepted. The finalizer resets the session itself.
		outcome := e.finalizer.Finalize(ctx, sess, Submitter{
			UserID:   ev.UserID,
			Username: ev.Username,
			FullName: ev.FullName,
		})
		return []Action{SendMessage{UserID: ev.UserID, Text: outcomeMessage(outcome)}}

	default:
		return nil
	}
}

func outcomeMessage(outcome Outcome) string {
	switch outcome {
	case OutcomeDelivered:
		return MsgReportDelivered
	case OutcomePersistedOnly:
		return MsgReportPersistedOnly
	default:
		return MsgReportFailed
	}
}
