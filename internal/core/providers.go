package core

import "context"

// Turn is one role-tagged message in a completion prompt.
type Turn struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Completer generates a reply from an ordered list of conversation turns.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Channel is a messaging-service channel generated replies are mirrored
// into.
type Channel interface {
	SendMessage(ctx context.Context, text, userID string) error
}

// Directory is the external messaging service: its user directory plus
// channel creation and delivery.
type Directory interface {
	// QueryUser reports whether a user with the given id exists in the
	// directory.
	QueryUser(ctx context.Context, userID string) (bool, error)
	// UpsertUser creates or updates a directory entry for the user.
	UpsertUser(ctx context.Context, userID, name, email string) error
	// EnsureChannel creates the user's mirror channel if it does not
	// exist yet and returns it.
	EnsureChannel(ctx context.Context, userID string) (Channel, error)
}
