package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Dispatcher delivers a threshold-crossing alert for one page.
// Dispatch must be idempotent-safe in the sense that the caller (the risk
// aggregator) guarantees at most one call per page lifetime; implementations
// do not deduplicate.
type Dispatcher interface {
	// Dispatch emits the user-facing notification and the page warning
	// instruction, carrying a human-readable reason.
	Dispatch(ctx context.Context, pageID, reason string)
}

// Notifier emits a system-level notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// PageMessenger delivers a message to a page's rendering context.
type PageMessenger interface {
	Send(ctx context.Context, msg Message)
}

// StandardDispatcher sends one system notification and one SHOW_WARNING
// page message per dispatch.
type StandardDispatcher struct {
	notifier  Notifier
	messenger PageMessenger
	logger    *slog.Logger
}

// NewStandardDispatcher creates a dispatcher wired to the given sinks.
func NewStandardDispatcher(notifier Notifier, messenger PageMessenger, logger *slog.Logger) *StandardDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandardDispatcher{notifier: notifier, messenger: messenger, logger: logger}
}

// Dispatch emits both alert effects for the page.
func (d *StandardDispatcher) Dispatch(ctx context.Context, pageID, reason string) {
	d.logger.Info("dispatching risk alert",
		"page_id", pageID,
		"reason", reason,
	)

	d.notifier.Notify(ctx, "scamguard security alert",
		fmt.Sprintf("Suspicious page detected: %s.", reason))

	d.messenger.Send(ctx, Message{
		Type:    TypeShowWarning,
		PageID:  pageID,
		Warning: fmt.Sprintf("DANGER: %s", reason),
	})
}

// LogNotifier writes system notifications to the structured log.
// It stands in for a desktop notification service in headless deployments.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the notification at warning level so it surfaces even with
// default verbosity.
func (n *LogNotifier) Notify(_ context.Context, title, body string) {
	n.logger.Warn(title, "notification", body)
}

// ChannelMessenger delivers page messages over a buffered channel.
// The rendering side (or a test) consumes from Messages. When the buffer is
// full the message is dropped rather than blocking the analysis pipeline;
// a stalled consumer must not stall scoring.
type ChannelMessenger struct {
	ch     chan Message
	logger *slog.Logger

	closeOnce sync.Once
}

// NewChannelMessenger creates a messenger with the given buffer size.
func NewChannelMessenger(buffer int, logger *slog.Logger) *ChannelMessenger {
	if buffer <= 0 {
		buffer = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelMessenger{
		ch:     make(chan Message, buffer),
		logger: logger,
	}
}

// Messages returns the receive side of the message stream.
func (m *ChannelMessenger) Messages() <-chan Message {
	return m.ch
}

// Send enqueues the message, dropping it if the buffer is full.
func (m *ChannelMessenger) Send(_ context.Context, msg Message) {
	select {
	case m.ch <- msg:
	default:
		m.logger.Warn("page message dropped, consumer not keeping up",
			"type", msg.Type,
			"page_id", msg.PageID,
		)
	}
}

// Close shuts the message stream. Safe to call more than once.
func (m *ChannelMessenger) Close() {
	m.closeOnce.Do(func() { close(m.ch) })
}
