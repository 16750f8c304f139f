package core

import (
	"context"
	"fmt"

	stream "github.com/GetStream/stream-chat-go/v6"
	"github.com/google/uuid"

	"github.com/fkalogeros/stream-ai-chat/internal/config"
)

const (
	channelType      = "messaging"
	channelName      = "Chat AI"
	channelCreatorID = "ai_bot"
)

// StreamService implements Directory on top of the Stream Chat API.
type StreamService struct {
	client *stream.Client
}

func NewStreamService() (*StreamService, error) {
	client, err := stream.NewClient(config.AppConfig.StreamAPIKey, config.AppConfig.StreamAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Stream client: %w", err)
	}
	return &StreamService{client: client}, nil
}

func (s *StreamService) QueryUser(ctx context.Context, userID string) (bool, error) {
	resp, err := s.client.QueryUsers(ctx, &stream.QueryOption{
		Filter: map[string]interface{}{
			"id": map[string]interface{}{"$eq": userID},
		},
	})
	if err != nil {
		return false, fmt.Errorf("%w: Stream user query failed: %v", ErrUpstream, err)
	}
	return len(resp.Users) > 0, nil
}

func (s *StreamService) UpsertUser(ctx context.Context, userID, name, email string) error {
	_, err := s.client.UpsertUser(ctx, &stream.User{
		ID:   userID,
		Name: name,
		Role: "user",
		ExtraData: map[string]interface{}{
			"email": email,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: Stream user upsert failed: %v", ErrUpstream, err)
	}
	return nil
}

// EnsureChannel creates (or fetches, the call is idempotent) the user's
// mirror channel, named deterministically from the userID.
func (s *StreamService) EnsureChannel(ctx context.Context, userID string) (Channel, error) {
	resp, err := s.client.CreateChannel(ctx, channelType, "chat-"+userID, channelCreatorID, &stream.ChannelRequest{
		ExtraData: map[string]interface{}{
			"name": channelName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Stream channel create failed: %v", ErrUpstream, err)
	}
	return &streamChannel{channel: resp.Channel}, nil
}

type streamChannel struct {
	channel *stream.Channel
}

func (c *streamChannel) SendMessage(ctx context.Context, text, userID string) error {
	msg := &stream.Message{
		ID:   uuid.NewString(),
		Text: text,
	}
	if _, err := c.channel.SendMessage(ctx, msg, userID); err != nil {
		return fmt.Errorf("%w: Stream message send failed: %v", ErrUpstream, err)
	}
	return nil
}
