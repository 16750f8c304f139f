package store

import "time"

type User struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatExchange is one stored (message, reply) pair attributed to a user.
type ChatExchange struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"createdAt"`
}
