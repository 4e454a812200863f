package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/config"
	"github.com/theirongolddev/spendwatch/internal/daemon"
)

var (
	flagWatchAddr         string
	flagWatchInterval     time.Duration
	flagWatchEventsBuffer int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the API and serve spending changes over HTTP/SSE",
	Long: "Run a foreground monitor that polls the expense list and serves " +
		"/healthz, /v1/status, /v1/events and /v1/stream (server-sent events).",
	RunE: runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running monitor",
	RunE:  runWatchStatus,
}

func init() {
	watchCmd.PersistentFlags().StringVar(&flagWatchAddr, "addr", "127.0.0.1:8788", "HTTP listen address")
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 30*time.Second, "Polling interval")
	watchCmd.Flags().IntVar(&flagWatchEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	watchCmd.AddCommand(watchStatusCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := daemon.New(rt.client, daemon.Config{
		Host:         rt.client.Host(),
		Search:       flagSearch,
		Category:     rt.category(),
		Interval:     flagWatchInterval,
		Addr:         flagWatchAddr,
		EventsBuffer: flagWatchEventsBuffer,
		Logger:       rt.log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Watching %s every %s\n", rt.client.Host(), flagWatchInterval)
		fmt.Fprintf(os.Stderr, "  Status: http://%s/v1/status   Stream: http://%s/v1/stream\n", flagWatchAddr, flagWatchAddr)
	}
	return svc.Run(ctx)
}

func runWatchStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+flagWatchAddr+"/v1/status", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("  Monitor: not running")
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decoding status: %w", err)
	}

	currency := cli.DefaultCurrency
	if cfg, err := config.Load(); err == nil {
		currency = cfg.General.Currency
	}
	rows := [][]string{
		{"Host", st.Host},
		{"Filter", st.Category},
		{"Started", st.StartedAt.Local().Format(time.DateTime)},
		{"Last poll", st.LastPollAt.Local().Format(time.DateTime)},
		{"Polls", fmt.Sprintf("%d every %ds", st.PollCount, st.PollIntervalSec)},
		{"---"},
		{"Expenses", fmt.Sprintf("%d", st.Summary.Count)},
		{"Total", cli.FormatAmount(currency, st.Summary.Total)},
		{"This Month", cli.FormatAmount(currency, st.Summary.ThisMonthTotal)},
		{"Trend", cli.RenderTrend(st.Summary.Trend)},
		{"---"},
		{"Events", fmt.Sprintf("%d", st.EventCount)},
		{"Subscribers", fmt.Sprintf("%d", st.SubscriberCount)},
	}
	if st.LastError != "" {
		rows = append(rows, []string{"Last error", cli.RenderNotice(st.LastError)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monitor  " + flagWatchAddr,
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))
	return nil
}
