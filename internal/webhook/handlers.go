package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/Devansht420/Apps.Asana.Integration/internal/command"
)

// hookSecretHeader is Asana's handshake header; its value must be
// echoed back verbatim before any body parsing.
const hookSecretHeader = "X-Hook-Secret"

// asanaEvent is one entry of a webhook event batch
type asanaEvent struct {
	User      *eventUser    `json:"user"`
	CreatedAt string        `json:"created_at"`
	Action    string        `json:"action"`
	Resource  eventResource `json:"resource"`
	Parent    *eventResource `json:"parent"`
}

type eventUser struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

type eventResource struct {
	GID          string `json:"gid"`
	ResourceType string `json:"resource_type"`
	Name         string `json:"name"`
}

type commandRequest struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

func (s *Server) handleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	inv := command.Invocation{
		UserID: req.UserID,
		RoomID: req.RoomID,
		Args:   strings.Fields(req.Text),
	}

	if err := s.commands.Execute(c.Request.Context(), inv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAsanaWebhook(c *gin.Context) {
	// Handshake comes before any body parsing
	if secret := c.GetHeader(hookSecretHeader); secret != "" {
		s.log.Info("Received Asana webhook handshake request")
		c.Header(hookSecretHeader, secret)
		c.Status(http.StatusOK)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.log.WithError(err).Warn("Failed to read webhook body")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	events := gjson.GetBytes(body, "events")
	if !events.IsArray() {
		s.log.Warn("Received Asana webhook payload without a valid events array")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	batch := events.Array()
	if len(batch) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	s.log.Infof("Received %d Asana event(s). Processing...", len(batch))

	roomID, err := s.rooms.RoomByName(c.Request.Context(), s.notifyRoom)
	if err != nil {
		// Asana must not redeliver just because the local room lookup
		// failed, so this is still a success response.
		s.log.WithError(err).Errorf("Target room %q not found", s.notifyRoom)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"warning": fmt.Sprintf("Room %s not found", s.notifyRoom),
		})
		return
	}

	for _, raw := range batch {
		s.processEvent(c.Request.Context(), roomID, raw.Raw)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// processEvent handles a single event in isolation: a malformed or
// panicking event is logged and never aborts the rest of the batch or
// changes the HTTP response.
func (s *Server) processEvent(ctx context.Context, roomID, raw string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Panic while processing Asana event: %v", r)
		}
	}()

	var event asanaEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		s.log.WithError(err).Warn("Skipping malformed Asana event")
		return
	}

	// Only task changes produce notifications
	if event.Resource.ResourceType != "task" || event.Action != "changed" {
		return
	}

	taskGID := event.Resource.GID
	modifierName := "Someone"
	if event.User != nil && event.User.Name != "" {
		modifierName = event.User.Name
	}
	projectName := ""
	if event.Parent != nil {
		projectName = event.Parent.Name
	}

	s.log.Infof("Processing 'task changed' event for Task GID: %s", taskGID)

	text := fmt.Sprintf("%s updated Asana Task `%s` 🔔", modifierName, taskGID)
	if projectName != "" {
		text += fmt.Sprintf(" in project *%s*", projectName)
	}
	text += "."
	// The event carries no permalink; the generic link uses placeholder
	// workspace and project segments.
	text += fmt.Sprintf(" [View Task](https://app.asana.com/0/0/%s)", taskGID)

	if err := s.poster.PostMessage(ctx, roomID, text); err != nil {
		s.log.WithError(err).Errorf("Failed to send notification for Task GID: %s", taskGID)
		return
	}
	s.log.Infof("Sent notification for Task GID: %s", taskGID)
}
