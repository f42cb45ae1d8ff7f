package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pathlab/config"
	"pathlab/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "pathlab",
	Short: "Ravi Diagnostic Lab booking and reporting service.",
	Long: `pathlab serves the lab test catalog, the patient booking wizard,
appointment tracking with printable reports, and the password-gated admin
dashboard API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		config.LoadConfig()
		utils.InitializeLogger()
		utils.RegisterValidators()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newAdminCommand())
	rootCmd.AddCommand(newWorkerCommand())
}
