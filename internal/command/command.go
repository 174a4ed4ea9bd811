// Package command parses and executes slash-command invocations.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Devansht420/Apps.Asana.Integration/internal/asana"
	"github.com/Devansht420/Apps.Asana.Integration/internal/chat"
	"github.com/Devansht420/Apps.Asana.Integration/internal/store"
)

// AsanaAPI is the slice of the Asana client the dispatcher uses
type AsanaAPI interface {
	Projects(ctx context.Context, token, workspaceGID string) ([]asana.Project, error)
	ProjectTasks(ctx context.Context, token, projectGID string) ([]asana.Task, error)
	Me(ctx context.Context, token string) (*asana.User, error)
	UserTaskListGID(ctx context.Context, token, userGID, workspaceGID string) (string, error)
	UserTaskListTasks(ctx context.Context, token, listGID string) ([]asana.Task, error)
	CreateWebhook(ctx context.Context, token, resourceGID, target string) (*asana.Webhook, error)
}

// Authorizer starts an OAuth authorization for a user
type Authorizer interface {
	BeginAuthorization(userID, roomID string) (string, error)
}

// Invocation is one slash-command execution: the sender, the room it
// was issued in, and the whitespace-split arguments.
type Invocation struct {
	UserID string
	RoomID string
	Args   []string
}

// Handler routes subcommands and runs them. Configuration and user
// errors become notifications; only structural errors (missing or
// unknown subcommand) are returned, so the host can surface a
// command-level failure.
type Handler struct {
	Store        store.CredentialStore
	API          AsanaAPI
	Notifier     chat.Notifier
	Authorizer   Authorizer
	WorkspaceGID string

	// WebhookTarget is the public URL Asana delivers events to,
	// used by the subscribe subcommand.
	WebhookTarget string

	Log *logrus.Entry

	// Now is replaceable for tests; defaults to time.Now.
	Now func() time.Time
}

// Execute runs one invocation
func (h *Handler) Execute(ctx context.Context, inv Invocation) error {
	if len(inv.Args) == 0 {
		h.notify(ctx, inv, "Please input a valid prompt or subcommand (connect/tasks/help).")
		return fmt.Errorf("missing subcommand")
	}

	subcommand := inv.Args[0]
	switch subcommand {
	case "help":
		h.notify(ctx, inv, helpMessage)
		return nil
	case "connect":
		return h.connect(ctx, inv)
	case "projects":
		return h.projects(ctx, inv)
	case "my-tasks":
		return h.myTasks(ctx, inv)
	case "feed":
		return h.feed(ctx, inv)
	case "summary":
		h.notify(ctx, inv, "Asana Summary")
		return nil
	case "subscribe":
		return h.subscribe(ctx, inv)
	default:
		return fmt.Errorf("unknown subcommand: %s", subcommand)
	}
}

func (h *Handler) connect(ctx context.Context, inv Invocation) error {
	url, err := h.Authorizer.BeginAuthorization(inv.UserID, inv.RoomID)
	if err != nil {
		h.Log.WithError(err).WithField("user", inv.UserID).Error("Failed to start authorization")
		h.notify(ctx, inv, "Failed to start Asana authorization. Please try again.")
		return nil
	}

	block := chat.NewActionsBlock(chat.Button{
		ActionID: "authorize",
		Text:     "Connect",
		URL:      url,
		Style:    "primary",
	})
	h.notify(ctx, inv, "Authorize Asana", block)
	return nil
}

func (h *Handler) subscribe(ctx context.Context, inv Invocation) error {
	if len(inv.Args) < 2 || inv.Args[1] == "" {
		h.notify(ctx, inv, "Usage: /asana subscribe <resource-gid>")
		return nil
	}
	resourceGID := inv.Args[1]

	token, ok := h.requireToken(ctx, inv)
	if !ok {
		return nil
	}

	webhook, err := h.API.CreateWebhook(ctx, token, resourceGID, h.WebhookTarget)
	if err != nil {
		h.Log.WithError(err).WithField("resource", resourceGID).Error("Failed to create webhook")
		h.notify(ctx, inv, "Failed to create Asana webhook.")
		return nil
	}

	h.notify(ctx, inv, fmt.Sprintf("Webhook created for resource `%s` 🔔 You will now receive task updates here.", webhook.Resource.GID))
	return nil
}

// requireToken is the token-presence guard shared by the data-bearing
// subcommands
func (h *Handler) requireToken(ctx context.Context, inv Invocation) (string, bool) {
	token, err := h.Store.Token(inv.UserID)
	if err != nil {
		if err != store.ErrNotFound {
			h.Log.WithError(err).WithField("user", inv.UserID).Error("Failed to read token")
		}
		h.notify(ctx, inv, "You are not connected to Asana. Please run /asana connect first.")
		return "", false
	}
	return token, true
}

// requireWorkspace is the configuration guard shared by the
// workspace-scoped subcommands
func (h *Handler) requireWorkspace(ctx context.Context, inv Invocation) (string, bool) {
	if h.WorkspaceGID == "" {
		h.Log.Error("Workspace GID is not set in the app settings")
		h.notify(ctx, inv, "Workspace GID is not set in the app settings. Please configure it.")
		return "", false
	}
	return h.WorkspaceGID, true
}

func (h *Handler) notify(ctx context.Context, inv Invocation, text string, blocks ...chat.ActionsBlock) {
	if err := h.Notifier.NotifyUser(ctx, inv.UserID, inv.RoomID, text, blocks...); err != nil {
		h.Log.WithError(err).WithField("user", inv.UserID).Error("Failed to send notification")
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
