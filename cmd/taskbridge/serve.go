package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Devansht420/Apps.Asana.Integration/internal/asana"
	"github.com/Devansht420/Apps.Asana.Integration/internal/chat"
	"github.com/Devansht420/Apps.Asana.Integration/internal/command"
	"github.com/Devansht420/Apps.Asana.Integration/internal/config"
	"github.com/Devansht420/Apps.Asana.Integration/internal/oauth"
	"github.com/Devansht420/Apps.Asana.Integration/internal/store"
	"github.com/Devansht420/Apps.Asana.Integration/internal/webhook"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the bridge HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")

	return cmd
}

func runServe(configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg.Log.Level)

	db, err := store.NewSQLiteStore(config.ExpandPath(cfg.Storage.DBPath))
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer db.Close()

	api := asana.NewClient()
	chatClient := chat.NewRESTClient(cfg.Chat.BaseURL, cfg.Chat.BotToken, cfg.Chat.BotUserID)

	publicURL := strings.TrimRight(cfg.Server.PublicURL, "/")
	authorizer := oauth.NewAuthorizer(
		cfg.Asana.ClientID,
		cfg.Asana.ClientSecret,
		publicURL+"/oauth/callback",
		db,
	)

	callback := &oauth.Callback{
		Store:     db,
		Notifier:  chatClient,
		Exchanger: authorizer,
		Log:       log.WithField("operation", "oauth_callback"),
	}

	commands := &command.Handler{
		Store:         db,
		API:           api,
		Notifier:      chatClient,
		Authorizer:    authorizer,
		WorkspaceGID:  cfg.Asana.WorkspaceGID,
		WebhookTarget: publicURL + "/api/webhooks/asana",
		Log:           log.WithField("operation", "command"),
	}

	server := webhook.NewServer(
		commands,
		chatClient,
		chatClient,
		callback,
		cfg.Chat.NotifyRoom,
		log.WithField("operation", "server"),
	)

	log.Infof("Starting TaskBridge server at %s", cfg.Server.Addr)
	return server.Run(cfg.Server.Addr)
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
