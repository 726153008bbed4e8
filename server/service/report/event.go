package report

// Event is one inbound conversation event, tagged by concrete type so the
// engine can dispatch on (step, event kind) exhaustively.
type Event interface {
	// EventUserID identifies the submitter the event belongs to.
	EventUserID() int64
}

// TextEvent is a plain text message from a user.
type TextEvent struct {
	UserID   int64
	Username string
	FullName string
	Text     string
}

func (e TextEvent) EventUserID() int64 { return e.UserID }

// EvidenceEvent is one submitted photo with its reported dimensions.
type EvidenceEvent struct {
	UserID   int64
	Username string
	FullName string
	// EvidenceRef is the Telegram file id of the largest available size.
	EvidenceRef string
	Width       int
	Height      int
}

func (e EvidenceEvent) EventUserID() int64 { return e.UserID }

// ResetCommand restarts the conversation from scratch (/start and /cancel).
type ResetCommand struct {
	UserID int64
}

func (e ResetCommand) EventUserID() int64 { return e.UserID }

// Action is one outbound request the engine asks the transport to perform.
type Action interface {
	// ActionUserID identifies the recipient.
	ActionUserID() int64
}

// SendSelectionPrompt renders text plus the site-selection keyboard.
type SendSelectionPrompt struct {
	UserID int64
	Text   string
	Sites  []string
}

func (a SendSelectionPrompt) ActionUserID() int64 { return a.UserID }

// SendInstructions renders the cleaning instruction block with the
// acknowledgment keyboard.
type SendInstructions struct {
	UserID int64
}

func (a SendInstructions) ActionUserID() int64 { return a.UserID }

// SendEvidencePrompt renders the photo requirements and removes the keyboard.
type SendEvidencePrompt struct {
	UserID int64
}

func (a SendEvidencePrompt) ActionUserID() int64 { return a.UserID }

// SendMessage renders a plain message.
type SendMessage struct {
	UserID int64
	Text   string
}

func (a SendMessage) ActionUserID() int64 { return a.UserID }
