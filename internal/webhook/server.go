// Package webhook is the HTTP surface of the bridge: the Asana
// webhook endpoint, the slash-command route the chat platform calls,
// and the OAuth redirect.
package webhook

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Devansht420/Apps.Asana.Integration/internal/chat"
	"github.com/Devansht420/Apps.Asana.Integration/internal/command"
	"github.com/Devansht420/Apps.Asana.Integration/internal/oauth"
)

// CommandRunner executes a parsed slash-command invocation
type CommandRunner interface {
	Execute(ctx context.Context, inv command.Invocation) error
}

// OAuthCompleter finishes an OAuth redirect
type OAuthCompleter interface {
	Handle(ctx context.Context, state, code, errParam string)
}

// Server is the bridge HTTP server
type Server struct {
	router   *gin.Engine
	commands CommandRunner
	poster   chat.Poster
	rooms    chat.RoomResolver
	callback OAuthCompleter

	// notifyRoom is the room name webhook notifications go to
	notifyRoom string

	log *logrus.Entry
}

// NewServer creates the bridge HTTP server
func NewServer(commands CommandRunner, poster chat.Poster, rooms chat.RoomResolver, callback OAuthCompleter, notifyRoom string, log *logrus.Entry) *Server {
	router := gin.Default()

	s := &Server{
		router:     router,
		commands:   commands,
		poster:     poster,
		rooms:      rooms,
		callback:   callback,
		notifyRoom: notifyRoom,
		log:        log,
	}

	router.POST("/api/command", s.handleCommand)
	router.POST("/api/webhooks/asana", s.handleAsanaWebhook)
	router.GET("/oauth/callback", s.handleOAuthCallback)

	return s
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleOAuthCallback(c *gin.Context) {
	s.callback.Handle(c.Request.Context(), c.Query("state"), c.Query("code"), c.Query("error"))
	c.String(200, oauth.CallbackPage)
}
