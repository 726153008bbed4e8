package telegram

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/coffeops/genkabot/server/service/report"
)

const (
	longPollTimeoutSeconds = 60

	// userQueueSize bounds the per-user backlog. A user who floods faster
	// than their events are processed loses the excess instead of stalling
	// everyone else.
	userQueueSize = 64
)

// Handler applies one inbound event and returns the outbound actions.
type Handler interface {
	HandleEvent(ctx context.Context, event report.Event) []report.Action
}

// Poller runs the long-polling loop. Updates are fanned out to one ordered
// queue per user: events for the same user apply in arrival order and never
// overlap, while different users proceed independently.
type Poller struct {
	client  *Client
	handler Handler
	logger  *slog.Logger

	mu     sync.Mutex
	queues map[int64]chan report.Event
	wg     sync.WaitGroup
}

func NewPoller(client *Client, handler Handler, logger *slog.Logger) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
		logger:  logger,
		queues:  make(map[int64]chan report.Event),
	}
}

// Run blocks until ctx is cancelled, then drains the per-user workers.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = longPollTimeoutSeconds

	updates := p.client.bot.GetUpdatesChan(cfg)
	// Drop the backlog accumulated while the bot was down; stale
	// conversation input is useless after a restart.
	updates.Clear()

	p.logger.Info("bot started")

	for {
		select {
		case <-ctx.Done():
			p.client.bot.StopReceivingUpdates()
			p.closeQueues()
			p.wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				p.closeQueues()
				p.wg.Wait()
				return nil
			}
			event, ok := eventFromUpdate(update)
			if !ok {
				continue
			}
			p.dispatch(ctx, event)
		}
	}
}

// dispatch enqueues the event on its user's queue, starting a worker on
// first contact.
func (p *Poller) dispatch(ctx context.Context, event report.Event) {
	userID := event.EventUserID()

	p.mu.Lock()
	queue, ok := p.queues[userID]
	if !ok {
		queue = make(chan report.Event, userQueueSize)
		p.queues[userID] = queue
		p.wg.Add(1)
		go p.worker(ctx, queue)
	}
	p.mu.Unlock()

	select {
	case queue <- event:
	default:
		p.logger.Warn("dropping event, user queue full", slog.Int64("user_id", userID))
	}
}

func (p *Poller) worker(ctx context.Context, queue <-chan report.Event) {
	defer p.wg.Done()
	for event := range queue {
		for _, action := range p.handler.HandleEvent(ctx, event) {
			if err := p.client.Perform(ctx, action); err != nil {
				p.logger.Warn("failed to perform action",
					slog.Int64("user_id", action.ActionUserID()),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (p *Poller) closeQueues() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, queue := range p.queues {
		close(queue)
	}
	p.queues = make(map[int64]chan report.Event)
}

// eventFromUpdate maps one Telegram update onto a conversation event.
// Updates the bot has no use for (edits, stickers, joins) are dropped here.
func eventFromUpdate(update tgbotapi.Update) (report.Event, bool) {
	message := update.Message
	if message == nil || message.From == nil {
		return nil, false
	}

	userID := message.From.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start", "cancel":
			return report.ResetCommand{UserID: userID}, true
		default:
			return nil, false
		}
	}

	if len(message.Photo) > 0 {
		// Telegram lists sizes smallest first; validate the best one.
		best := message.Photo[len(message.Photo)-1]
		return report.EvidenceEvent{
			UserID:      userID,
			Username:    message.From.UserName,
			FullName:    fullName(message.From),
			EvidenceRef: best.FileID,
			Width:       best.Width,
			Height:      best.Height,
		}, true
	}

	if message.Text != "" {
		return report.TextEvent{
			UserID:   userID,
			Username: message.From.UserName,
			FullName: fullName(message.From),
			Text:     message.Text,
		}, true
	}

	return nil, false
}
