// Package chat holds the ports the bridge uses to talk back to the
// chat platform, plus a REST implementation. Delivery is
// fire-and-forget: callers log errors and move on.
package chat

import "context"

// Button is a link button rendered inside an actions block
type Button struct {
	ActionID string `json:"action_id"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Style    string `json:"style,omitempty"`
}

// ActionsBlock is an interactive block attached to a message
type ActionsBlock struct {
	Type     string   `json:"type"`
	Elements []Button `json:"elements"`
}

// NewActionsBlock builds an actions block from buttons
func NewActionsBlock(buttons ...Button) ActionsBlock {
	return ActionsBlock{Type: "actions", Elements: buttons}
}

// Notifier delivers a message visible only to one user in a room,
// optionally carrying interactive blocks
type Notifier interface {
	NotifyUser(ctx context.Context, userID, roomID, text string, blocks ...ActionsBlock) error
}

// Poster posts a regular message into a room
type Poster interface {
	PostMessage(ctx context.Context, roomID, text string) error
}

// RoomResolver resolves a room name to its identifier
type RoomResolver interface {
	RoomByName(ctx context.Context, name string) (string, error)
}
