package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Commands carrying this annotation take over the terminal, so logs must not
// reach stderr.
const interactiveAnnotation = "interactive"

var (
	cfgFile string
	logFile *os.File
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fraudshield",
		Short: "🛡️  Operator console for the fraud scoring service",
		Long: `fraudshield: a terminal console for analysts working against the
transaction fraud scoring service.

Run without a subcommand to open the interactive console. Score single
transactions, review fraud alerts and model metrics, or score a whole bank
statement from the command line.`,
		Annotations:       map[string]string{interactiveAnnotation: "true"},
		PersistentPreRunE: initConfig,
		RunE:              runConsole,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/fraudshield/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "write logs to this file (the console discards logs otherwise)")
	flags.String("base-url", config.DefaultBaseURL, "scoring service base URL")
	flags.Duration("timeout", 0, "per-call timeout for the scoring service (0 waits indefinitely)")

	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
	_ = viper.BindPFlag(config.KeyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))

	addViewFlag(cmd)

	cmd.AddCommand(consoleCmd())
	cmd.AddCommand(scoreCmd())
	cmd.AddCommand(alertsCmd())
	cmd.AddCommand(metricsCmd())
	cmd.AddCommand(scoreOFXCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		common.LogError(err, "Command failed", common.Fields{"args": os.Args[1:]})
	}
	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints the operator-facing message of err.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, cli.FormatError(common.UserMessage(err, err.Error())))
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/fraudshield", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// FRAUDSHIELD_SERVICE_BASE_URL overrides service.base_url.
	viper.SetEnvPrefix("FRAUDSHIELD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	config.SetDefaults(viper.GetViper())

	if err := setupLogging(cmd.Annotations[interactiveAnnotation] == "true"); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(interactive bool) error {
	var w io.Writer
	if path := config.ExpandPath(viper.GetString(config.KeyLogFile)); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	} else if interactive {
		w = io.Discard
	}

	return common.SetupLogger(w,
		viper.GetString(config.KeyLogLevel),
		viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fraudshield %s\n", version)
		},
	}
}
