package main

import (
	"errors"
	"os"
	"time"

	"github.com/nimda/fritz-reconnect/internal/fritzbox"
	"github.com/nimda/fritz-reconnect/pkg/duallog"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	debugMode bool
	traceMode bool
)

var rootCmd = &cobra.Command{
	Use:   "fritz-reconnect",
	Short: "FRITZ!Box WAN Reconnection Tool",
	Long: "This tool talks to a FRITZ!Box router's UPnP control endpoint to force a WAN\n" +
		"reconnection and obtain a new public IP address. Without a subcommand it\n" +
		"prints the current IP, reconnects, and prints the new IP.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := zerolog.InfoLevel
		if traceMode {
			logLevel = zerolog.TraceLevel
		} else if debugMode {
			logLevel = zerolog.DebugLevel
		}
		duallog.Setup(logLevel)

		if traceMode {
			zlog.Trace().Msg("🔍🔍 TRACE MODE ENABLED")
		} else if debugMode {
			zlog.Debug().Msg("🔍 DEBUG MODE ENABLED")
		}
	},
	RunE: runChangeIP,
}

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the router's current public IP address",
	RunE:  runIP,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the router's WAN connection status",
	RunE:  runStatus,
}

var reconnectCmd = &cobra.Command{
	Use:   "reconnect",
	Short: "Force a WAN reconnection and wait for the router to come back",
	RunE:  runReconnect,
}

func init() {
	// Global flags (logging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")

	// Router endpoint flags (shared by all commands)
	rootCmd.PersistentFlags().String("url", "http://fritz.box:49000", "Base URL of the router's SOAP endpoint")
	rootCmd.PersistentFlags().String("timeout", "10s", "Per-request timeout")

	// Reconnection workflow pacing
	rootCmd.PersistentFlags().String("grace-period", "10s", "Wait after forcing termination before the first status check")
	rootCmd.PersistentFlags().String("poll-interval", "2s", "Delay between status checks while waiting for reconnection")
	rootCmd.PersistentFlags().String("max-wait", "5m", "Maximum time to wait for reconnection (0 to wait forever)")

	rootCmd.AddCommand(ipCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reconnectCmd)
}

// toolConfig holds configuration for a router session
type toolConfig struct {
	url       string
	timeout   time.Duration
	reconnect fritzbox.ReconnectConfig
}

// parseToolConfig parses session configuration from command flags
func parseToolConfig(cmd *cobra.Command) *toolConfig {
	url, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetString("timeout")
	gracePeriod, _ := cmd.Flags().GetString("grace-period")
	pollInterval, _ := cmd.Flags().GetString("poll-interval")
	maxWait, _ := cmd.Flags().GetString("max-wait")

	timeoutDuration, err := time.ParseDuration(timeout)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid timeout")
	}

	graceDuration, err := time.ParseDuration(gracePeriod)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid grace-period")
	}

	pollDuration, err := time.ParseDuration(pollInterval)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid poll-interval")
	}

	maxWaitDuration, err := time.ParseDuration(maxWait)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid max-wait")
	}

	return &toolConfig{
		url:     url,
		timeout: timeoutDuration,
		reconnect: fritzbox.ReconnectConfig{
			GracePeriod:  graceDuration,
			PollInterval: pollDuration,
			MaxWait:      maxWaitDuration,
		},
	}
}

func newClient(cfg *toolConfig) *fritzbox.Client {
	zlog.Debug().Str("url", cfg.url).Dur("timeout", cfg.timeout).Msg("Creating router client")
	return fritzbox.NewClient(cfg.url, fritzbox.WithTimeout(cfg.timeout))
}

// runChangeIP is the default flow: show the current IP, reconnect, show the
// new IP. A failed initial lookup does not stop the reconnect; a failed
// reconnect stops the new-IP read.
func runChangeIP(cmd *cobra.Command, args []string) error {
	cfg := parseToolConfig(cmd)
	client := newClient(cfg)
	ctx := cmd.Context()

	ip, found, err := client.GetPublicIP(ctx)
	switch {
	case err != nil:
		zlog.Error().Err(err).Msg("Failed to get public IP")
	case !found:
		zlog.Warn().Msg("Router did not report a public IP")
	default:
		duallog.Result("Current IP is: %s", ip)
	}

	if err := client.ReconnectAndWait(ctx, cfg.reconnect); err != nil {
		zlog.Error().Err(err).Msg("Failed to change IP address")
		return err
	}
	zlog.Info().Msg("Successfully changed IP address")

	ip, found, err = client.GetPublicIP(ctx)
	if err != nil {
		zlog.Error().Err(err).Msg("Failed to get new public IP")
		return err
	}
	if !found {
		return errors.New("router did not report a public IP after reconnecting")
	}
	duallog.Result("New IP is: %s", ip)
	return nil
}

func runIP(cmd *cobra.Command, args []string) error {
	cfg := parseToolConfig(cmd)
	client := newClient(cfg)

	ip, found, err := client.GetPublicIP(cmd.Context())
	if err != nil {
		return err
	}
	if !found {
		return errors.New("router did not report a public IP")
	}
	duallog.Result("%s", ip)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := parseToolConfig(cmd)
	client := newClient(cfg)

	status, err := client.GetConnectionStatus(cmd.Context())
	if err != nil {
		return err
	}
	duallog.Result("%s", status)
	return nil
}

func runReconnect(cmd *cobra.Command, args []string) error {
	cfg := parseToolConfig(cmd)
	client := newClient(cfg)

	if err := client.ReconnectAndWait(cmd.Context(), cfg.reconnect); err != nil {
		return err
	}
	zlog.Info().Msg("Reconnection completed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
