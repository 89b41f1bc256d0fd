package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mirrorscope/internal/mirror"
)

func main() {
	root := &cobra.Command{
		Use:          "mirrorscope",
		Short:        "Cross-chain event mirror checker",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Compare event counts between a source and a destination chain",
		RunE:  runCheck,
	}

	checkCmd.Flags().String("src-rpc", "", "source chain RPC URL")
	checkCmd.Flags().String("dst-rpc", "", "destination chain RPC URL")
	checkCmd.Flags().String("address", "", "contract address to inspect on both chains")
	checkCmd.Flags().String("signature", "", "event signature, e.g. Transfer(address,address,uint256)")
	checkCmd.Flags().Int64("src-from", -1, "source chain start block (inclusive, -1 means latest-10000)")
	checkCmd.Flags().Int64("src-to", -1, "source chain end block (inclusive, -1 means latest)")
	checkCmd.Flags().Int64("dst-from", -1, "destination chain start block (inclusive, -1 means latest-10000)")
	checkCmd.Flags().Int64("dst-to", -1, "destination chain end block (inclusive, -1 means latest)")
	checkCmd.Flags().Uint64("step", 2000, "blocks per get-logs request")
	checkCmd.Flags().Duration("timeout", 30*time.Second, "per-request RPC timeout")
	checkCmd.Flags().Uint64("allow-drift", 0, "allowed difference in counts before marking mismatch")
	checkCmd.Flags().Bool("json", false, "emit JSON summary to stdout")
	checkCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(checkCmd)

	topicCmd := &cobra.Command{
		Use:   "topic <signature>",
		Short: "Print the topic0 hash for an event signature",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopic,
	}

	root.AddCommand(topicCmd)

	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode keeps validation failures distinct from transport failures and
// unsound comparisons.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUnsound),
		errors.Is(err, mirror.ErrTransport),
		errors.Is(err, mirror.ErrConnection):
		return 2
	default:
		return 1
	}
}

func runTopic(cmd *cobra.Command, args []string) error {
	topic0, err := mirror.TopicFromSignature(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), topic0.Hex())
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
