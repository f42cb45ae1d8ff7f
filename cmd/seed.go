package cmd

import (
	"context"
	"errors"
	"fmt"

	"pathlab/config"
	"pathlab/services/lab"
	"pathlab/utils"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter test catalog into an empty remote backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger()
			ctx := context.Background()

			remote, err := openRemote(ctx, config.AppConfig, logger)
			if err != nil {
				return err
			}
			if remote == nil {
				return errors.New("remote backend is not configured")
			}
			defer remote.Close()

			n, err := lab.SeedRemote(ctx, remote)
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already populated, nothing to do")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tests\n", n)
			return nil
		},
	}
}
