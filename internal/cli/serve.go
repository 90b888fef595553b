package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/civicpulse/civicpulse/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Override the listen host")
	serveCmd.Flags().Int("port", 0, "Override the listen port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the civicpulse API daemon",
	Long:  `Start the HTTP API daemon. Configuration is read from $CIVICPULSE_HOME/config.toml; flags override the listener address.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx, cfg)
}
