//go:build integration

package mock

import (
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Discord records direct messages instead of delivering them.
type Discord struct {
	mu       sync.Mutex
	messages map[string][]string
	failing  map[string]bool
}

func NewDiscord() *Discord {
	return &Discord{
		messages: map[string][]string{},
		failing:  map[string]bool{},
	}
}

func (d *Discord) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing[recipientID] {
		return nil, errors.New("cannot send messages to this user")
	}
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (d *Discord) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	userID := channelID[len("dm-"):]
	d.messages[userID] = append(d.messages[userID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// FailFor makes every delivery to userID fail.
func (d *Discord) FailFor(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failing[userID] = true
}

// Recover lets deliveries to userID succeed again.
func (d *Discord) Recover(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.failing, userID)
}

func (d *Discord) Messages(userID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages[userID]...)
}

func (d *Discord) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, msgs := range d.messages {
		n += len(msgs)
	}
	return n
}
