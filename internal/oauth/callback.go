package oauth

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Devansht420/Apps.Asana.Integration/internal/chat"
	"github.com/Devansht420/Apps.Asana.Integration/internal/store"
)

const (
	successText = "Asana Authentication Successful! 🚀"
	failureText = "Asana Authentication Failed! 😔"

	// CallbackPage is the browser-facing response body for the redirect.
	CallbackPage = "Authentication successful. You can now close this window."
)

// Callback finishes an authorization when Asana redirects back.
// Success persists the token; failure persists nothing. Either way the
// pending interaction context is consumed and the initiating room is
// notified. A missing or stale context is logged and skipped, never an
// error to the caller.
type Callback struct {
	Store     store.CredentialStore
	Notifier  chat.Notifier
	Exchanger CodeExchanger
	Log       *logrus.Entry
}

// Handle processes one redirect. errParam is the error query parameter
// Asana sets when the user denies access.
func (c *Callback) Handle(ctx context.Context, state, code, errParam string) {
	userID, roomID, err := c.Store.RoomContext(state)
	if err != nil {
		if err == store.ErrNotFound {
			c.Log.WithField("state", state).Error("No room context found for OAuth callback")
		} else {
			c.Log.WithError(err).Error("Failed to read room context")
		}
		return
	}

	text := successText
	switch {
	case errParam != "" || code == "":
		c.Log.WithFields(logrus.Fields{"user": userID, "error": errParam}).Warn("Asana authorization denied")
		text = failureText
	default:
		token, err := c.Exchanger.Exchange(ctx, code)
		if err != nil {
			c.Log.WithError(err).WithField("user", userID).Error("Token exchange failed")
			text = failureText
		} else if err := c.Store.SaveToken(userID, token); err != nil {
			c.Log.WithError(err).WithField("user", userID).Error("Failed to store token")
			text = failureText
		}
	}

	if err := c.Store.DeleteRoomContext(state); err != nil {
		c.Log.WithError(err).Warn("Failed to clear room context")
	}

	if err := c.Notifier.NotifyUser(ctx, userID, roomID, text); err != nil {
		c.Log.WithError(err).WithField("user", userID).Error("Failed to notify user")
	}
}
