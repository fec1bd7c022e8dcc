package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/talento-plus/internal/core/events"
	"github.com/frahmantamala/talento-plus/internal/notification"
	"github.com/frahmantamala/talento-plus/pkg/logger"
	"github.com/frahmantamala/talento-plus/pkg/textnorm"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification commands",
}

var welcomeCmd = &cobra.Command{
	Use:   "welcome <email>",
	Short: "Resend the welcome mail to an existing account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		if !cfg.Mail.Enabled {
			log.Fatal("mail is disabled in the configuration")
		}

		deps, err := initializeDependencies(cfg, logger.L())
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.Close()

		ctx := context.Background()
		email := textnorm.Fold(args[0])
		exists, err := deps.Accounts.AccountExists(ctx, email)
		if err != nil {
			log.Fatalf("failed to look up account: %v", err)
		}
		if !exists {
			log.Fatalf("no account for %s", email)
		}

		handler := notification.WelcomeHandler(notification.NewMailer(cfg.Mail), logger.L())
		if err := handler(ctx, events.NewAccountProvisionedEvent(0, email)); err != nil {
			log.Fatalf("failed to send welcome mail: %v", err)
		}
	},
}

func init() {
	notifyCmd.AddCommand(welcomeCmd)
}
