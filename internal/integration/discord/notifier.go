// Package discord delivers direct messages through a Discord bot session.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// maxMessageLength is the Discord limit for one message body, in runes.
const maxMessageLength = 2000

// Session is the subset of *discordgo.Session used to send direct messages.
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier implements adapter.Notifier with Discord DMs.
type Notifier struct {
	session  Session
	mu       sync.Mutex
	channels map[string]string
}

// NewNotifier creates a notifier. A nil session yields a notifier whose
// every Send reports the message as not delivered.
func NewNotifier(session Session) *Notifier {
	return &Notifier{
		session:  session,
		channels: make(map[string]string),
	}
}

// NewSession opens a bot session for token. An empty token returns a nil
// session and no error.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		slog.Warn("DISCORD_BOT_TOKEN is not set, direct messages are disabled")
		return nil, nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsDirectMessages
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}
	return session, nil
}

// Send delivers text to userID. A nil error means Discord accepted the message.
func (n *Notifier) Send(ctx context.Context, userID, text string) error {
	if n.session == nil {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeNotifierDisabled,
			"discord session not configured",
			domainerror.ErrNotifierUnavailable,
		)
	}

	channelID, err := n.channelFor(ctx, userID)
	if err != nil {
		slog.Warn("Failed to open DM channel", "user_id", userID, "error", err)
		return domainerror.NewNotificationError(
			domainerror.ErrCodeChannelOpenFailed,
			"failed to open DM channel",
			fmt.Errorf("%w: %v", domainerror.ErrNotificationNotDelivered, err),
		)
	}

	if _, err := n.session.ChannelMessageSend(channelID, truncate(text), discordgo.WithContext(ctx)); err != nil {
		n.forget(userID)
		slog.Warn("Failed to send DM", "user_id", userID, "error", err)
		return domainerror.NewNotificationError(
			domainerror.ErrCodeMessageSendFailed,
			"failed to send DM",
			fmt.Errorf("%w: %v", domainerror.ErrNotificationNotDelivered, err),
		)
	}

	slog.Info("Sent DM", "user_id", userID)
	return nil
}

func (n *Notifier) channelFor(ctx context.Context, userID string) (string, error) {
	n.mu.Lock()
	id, ok := n.channels[userID]
	n.mu.Unlock()
	if ok {
		return id, nil
	}

	channel, err := n.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}

	n.mu.Lock()
	n.channels[userID] = channel.ID
	n.mu.Unlock()
	return channel.ID, nil
}

func (n *Notifier) forget(userID string) {
	n.mu.Lock()
	delete(n.channels, userID)
	n.mu.Unlock()
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLength {
		return text
	}
	return string(runes[:maxMessageLength-1]) + "…"
}

var _ adapter.Notifier = (*Notifier)(nil)
