package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mirrorscope/internal/chain"
	"mirrorscope/internal/config"
	"mirrorscope/internal/mirror"
	"mirrorscope/internal/report"
)

// defaultLookback is how far behind the chain head an unset start block lands.
const defaultLookback = 10_000

// errUnsound marks a completed comparison whose drift exceeded the allowance.
var errUnsound = errors.New("mirror unsound")

func runCheck(cmd *cobra.Command, _ []string) error {
	started := time.Now()

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCheck(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.SrcRPC == "" {
		return fmt.Errorf("source rpc url is required")
	}
	if cfg.DstRPC == "" {
		return fmt.Errorf("destination rpc url is required")
	}
	if err := mirror.ValidateEndpoint(cfg.SrcRPC); err != nil {
		return err
	}
	if err := mirror.ValidateEndpoint(cfg.DstRPC); err != nil {
		return err
	}

	address, err := mirror.ParseAddress(cfg.Address)
	if err != nil {
		return err
	}
	topic0, err := mirror.TopicFromSignature(cfg.Signature)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srcClient, err := chain.NewClient(ctx, cfg.SrcRPC, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("%w: source %s: %v", mirror.ErrConnection, cfg.SrcRPC, err)
	}
	defer srcClient.Close()

	dstClient, err := chain.NewClient(ctx, cfg.DstRPC, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("%w: destination %s: %v", mirror.ErrConnection, cfg.DstRPC, err)
	}
	defer dstClient.Close()

	srcRange, err := resolveRange(ctx, srcClient, "source", cfg.SrcFrom, cfg.SrcTo)
	if err != nil {
		return err
	}
	dstRange, err := resolveRange(ctx, dstClient, "destination", cfg.DstFrom, cfg.DstTo)
	if err != nil {
		return err
	}

	logger.Info("mirror check start",
		zap.String("contract", address.Hex()),
		zap.String("topic0", topic0.Hex()),
		zap.Uint64("src_from", srcRange.From),
		zap.Uint64("src_to", srcRange.To),
		zap.Uint64("dst_from", dstRange.From),
		zap.Uint64("dst_to", dstRange.To),
		zap.Uint64("step", cfg.Step),
		zap.Uint64("allow_drift", cfg.AllowDrift),
	)

	src := mirror.Side{
		Label:  "source",
		Source: srcClient,
		Query:  mirror.Query{Address: address, Topic0: topic0, Range: srcRange, Step: cfg.Step},
	}
	dst := mirror.Side{
		Label:  "destination",
		Source: dstClient,
		Query:  mirror.Query{Address: address, Topic0: topic0, Range: dstRange, Step: cfg.Step},
	}

	comparison, err := mirror.Compare(ctx, src, dst, cfg.AllowDrift, logger)
	if err != nil {
		return err
	}

	summary := report.Summary{
		Contract:       address.Hex(),
		EventSignature: cfg.Signature,
		Topic0:         topic0.Hex(),
		Source:         sideSummary("source", cfg.SrcRPC, srcRange, comparison.SourceCount, chainID(ctx, srcClient, logger)),
		Destination:    sideSummary("destination", cfg.DstRPC, dstRange, comparison.DestinationCount, chainID(ctx, dstClient, logger)),
		Drift:          comparison.Drift,
		AllowDrift:     comparison.AllowedDrift,
		Verdict:        comparison.Verdict,
		OK:             comparison.Sound(),
		ElapsedSeconds: time.Since(started).Seconds(),
	}

	out := cmd.OutOrStdout()
	if err := report.Render(out, summary); err != nil {
		return err
	}
	if cfg.JSON {
		if err := report.WriteJSON(out, summary); err != nil {
			return err
		}
	}

	if !comparison.Sound() {
		return fmt.Errorf("%w: drift %d exceeds allowed %d", errUnsound, comparison.Drift, comparison.AllowedDrift)
	}
	return nil
}

// resolveRange fills unset bounds from the chain head: from defaults to
// latest-10000 (floored at zero), to defaults to latest.
func resolveRange(ctx context.Context, client *chain.Client, label string, from, to int64) (mirror.BlockRange, error) {
	if from >= 0 && to >= 0 {
		return mirror.NewBlockRange(uint64(from), uint64(to))
	}

	latest, err := client.LatestBlockNumber(ctx)
	if err != nil {
		return mirror.BlockRange{}, fmt.Errorf("%w: %s latest block: %v", mirror.ErrConnection, label, err)
	}

	resolvedFrom := uint64(0)
	switch {
	case from >= 0:
		resolvedFrom = uint64(from)
	case latest > defaultLookback:
		resolvedFrom = latest - defaultLookback
	}

	resolvedTo := latest
	if to >= 0 {
		resolvedTo = uint64(to)
	}

	return mirror.NewBlockRange(resolvedFrom, resolvedTo)
}

// chainID is best-effort enrichment for display; a failure here never
// affects the outcome.
func chainID(ctx context.Context, client *chain.Client, logger *zap.Logger) uint64 {
	id, err := client.ChainID(ctx)
	if err != nil {
		logger.Warn("chain id fetch failed", zap.Error(err))
		return 0
	}
	if !id.IsUint64() {
		return 0
	}
	return id.Uint64()
}

func sideSummary(label, endpoint string, rng mirror.BlockRange, count, chainID uint64) report.SideSummary {
	return report.SideSummary{
		Label:     label,
		Endpoint:  endpoint,
		ChainID:   chainID,
		FromBlock: rng.From,
		ToBlock:   rng.To,
		Count:     count,
	}
}
