package cmd

import (
	"context"
	"fmt"

	"pathlab/config"
	"pathlab/services/admin"
	"pathlab/utils"

	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account commands",
	}
	cmd.AddCommand(newSetPasswordCommand())
	return cmd
}

func newSetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <password>",
		Short: "Replace the admin dashboard password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if cfg.LocalStore == "redis" {
				if err := utils.InitRedis(); err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer utils.CloseRedis()
			}
			kv, err := openLocalKV(cfg)
			if err != nil {
				return fmt.Errorf("open local store: %w", err)
			}

			credential := admin.NewStoredCredential(kv, cfg.AdminDefaultPassword)
			if err := credential.SetPassword(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "admin password updated")
			return nil
		},
	}
}
