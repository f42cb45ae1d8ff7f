package cmd

import (
	"pathlab/config"
	"pathlab/cron"
	"pathlab/utils"

	"github.com/spf13/cobra"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the patient email worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger()
			srv, mux := cron.NewNotificationWorker(newMailer(config.AppConfig, logger), logger)
			logger.Info("Notification worker running")
			// Run blocks until SIGINT or SIGTERM.
			return srv.Run(mux)
		},
	}
}
