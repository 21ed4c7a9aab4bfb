package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/campus/internal/assistant"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var assistantFlags struct {
	addr        string
	metricsAddr string
}

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Serve the school catalog as MCP tools",
	Long: `Serve the school catalog to chat assistants over MCP (streamable HTTP).

Tools: list-countries, list-schools, get-school and create-school. When
metrics_addr is configured, Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runAssistant,
}

func init() {
	assistantCmd.Flags().StringVar(&assistantFlags.addr, "addr", "", "Listen address (default: assistant_addr from config)")
	assistantCmd.Flags().StringVar(&assistantFlags.metricsAddr, "metrics-addr", "", "Metrics listen address (default: metrics_addr from config)")
}

func runAssistant(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if assistantFlags.addr != "" {
		cfg.AssistantAddr = assistantFlags.addr
	}
	if assistantFlags.metricsAddr != "" {
		cfg.MetricsAddr = assistantFlags.metricsAddr
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	srv := assistant.New(b.service)
	if _, err := srv.Start(ctx, cfg.AssistantAddr); err != nil {
		return fmt.Errorf("failed to start assistant: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "MCP endpoint: %s\n", srv.URL())

	var metrics *http.Server
	if cfg.MetricsAddr != "" {
		metrics = serveMetrics(cfg.MetricsAddr)
		fmt.Fprintf(cmd.OutOrStdout(), "Metrics: http://%s/metrics\n", cfg.MetricsAddr)
	}

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	var errs []error
	if metrics != nil {
		errs = append(errs, metrics.Shutdown(shutdownCtx))
	}
	errs = append(errs, srv.Stop(shutdownCtx))
	return errors.Join(errs...)
}

// serveMetrics exposes the default Prometheus registry on addr.
func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed: %v", err)
		}
	}()
	logger.Info("Metrics listening on %s", addr)
	return s
}
