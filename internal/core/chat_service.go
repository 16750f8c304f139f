package core

import (
	"context"
	"fmt"
	"log"

	"github.com/fkalogeros/stream-ai-chat/internal/ident"
	"github.com/fkalogeros/stream-ai-chat/internal/store"
)

// historyWindow is how many stored exchanges feed the completion prompt.
const historyWindow = 10

type ChatService struct {
	dbStore   *store.SQLiteStore
	directory Directory
	completer Completer
}

func NewChatService(db *store.SQLiteStore, directory Directory, completer Completer) *ChatService {
	return &ChatService{
		dbStore:   db,
		directory: directory,
		completer: completer,
	}
}

type RegisteredUser struct {
	UserID string
	Name   string
	Email  string
}

// Register ensures a user record exists in both the messaging directory
// and the local store. Repeated calls with the same email converge to the
// same state.
func (s *ChatService) Register(ctx context.Context, name, email string) (*RegisteredUser, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	userID := ident.UserID(email)

	exists, err := s.directory.QueryUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.directory.UpsertUser(ctx, userID, name, email); err != nil {
			return nil, err
		}
	}

	user, err := s.dbStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if user == nil {
		log.Printf("User %s does not exist in the database, adding them", userID)
		if err := s.dbStore.CreateUser(ctx, userID, name, email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	return &RegisteredUser{UserID: userID, Name: name, Email: email}, nil
}

// Chat runs one conversation turn: verify the user, assemble the prompt
// from recent history, call the completion service, persist the exchange
// and mirror the reply into the user's channel.
func (s *ChatService) Chat(ctx context.Context, userID, message string) (string, error) {
	if message == "" || userID == "" {
		return "", fmt.Errorf("%w: message and userId are required", ErrValidation)
	}

	exists, err := s.directory.QueryUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: user not found, please register first", ErrNotFound)
	}

	user, err := s.dbStore.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: user not found in database, please register", ErrNotFound)
	}

	history, err := s.dbStore.GetRecentExchanges(ctx, userID, historyWindow)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Each stored exchange becomes a user turn and an assistant turn,
	// oldest first, with the incoming message as the final user turn.
	turns := make([]Turn, 0, len(history)*2+1)
	for _, ex := range history {
		turns = append(turns,
			Turn{Role: RoleUser, Content: ex.Message},
			Turn{Role: RoleAssistant, Content: ex.Reply},
		)
	}
	turns = append(turns, Turn{Role: RoleUser, Content: message})

	reply, err := s.completer.Complete(ctx, turns)
	if err != nil {
		return "", err
	}

	if err := s.dbStore.CreateExchange(ctx, userID, message, reply); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// The exchange is committed at this point. A failed mirror delivery
	// is logged but does not fail the request; the caller still gets the
	// reply.
	if err := s.mirrorReply(ctx, userID, reply); err != nil {
		log.Printf("Failed to mirror reply to channel for user %s: %v", userID, err)
	}

	return reply, nil
}

func (s *ChatService) mirrorReply(ctx context.Context, userID, reply string) error {
	channel, err := s.directory.EnsureChannel(ctx, userID)
	if err != nil {
		return err
	}
	return channel.SendMessage(ctx, reply, userID)
}

// History returns up to the 10 most recent exchanges for a user, oldest
// to newest. Unknown users yield an empty list, not an error.
func (s *ChatService) History(ctx context.Context, userID string) ([]store.ChatExchange, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	history, err := s.dbStore.GetRecentExchanges(ctx, userID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if history == nil {
		history = []store.ChatExchange{}
	}
	return history, nil
}
