package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/config"
	"github.com/theirongolddev/spendwatch/internal/logging"
	"github.com/theirongolddev/spendwatch/internal/pipeline"
	"github.com/theirongolddev/spendwatch/internal/store"
	"github.com/theirongolddev/spendwatch/internal/view"
)

var (
	flagHost      string
	flagSearch    string
	flagCategory  string
	flagQuiet     bool
	flagVerbose   bool
	flagNoJournal bool
)

// requestTimeout bounds each remote request.
var requestTimeout = 15 * time.Second

var rootCmd = &cobra.Command{
	Use:           "spendwatch",
	Short:         "Personal expense tracker client",
	Long:          "Browse, summarise and edit the expenses stored on your expense tracker server.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "  "+cli.RenderNotice(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "API base URL (overrides config and "+config.HostEnv+")")
	rootCmd.PersistentFlags().StringVarP(&flagSearch, "search", "s", "", "Filter by title (case-insensitive substring)")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", pipeline.AllCategories, "Filter by category")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log to stderr as well as the log file")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "Don't record requests in the activity journal")

	categoryFilterSet = func() bool { return rootCmd.PersistentFlags().Changed("category") }
}

// categoryFilterSet reports whether the persistent --category flag was given.
// Assigned in init because rootCmd's RunE reaches back here.
var categoryFilterSet func() bool

// runtime bundles what every command needs: config, logger, journal and
// API client. Close releases them.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	journal *store.Journal // nil when disabled or unavailable
	client  *api.Client

	closeLog func()
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagHost != "" {
		cfg.API.Host = flagHost
	}

	log, closeLog, err := logging.New(logging.Options{
		File:    cfg.LogPath(),
		Level:   cfg.Log.Level,
		Verbose: flagVerbose,
		Console: os.Stderr,
	})
	if err != nil {
		// A broken log file shouldn't stop the command.
		log, closeLog = zap.NewNop(), func() {}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Logging disabled: %v\n", err)
		}
	}

	rt := &runtime{cfg: cfg, log: log, closeLog: closeLog}

	if !flagNoJournal {
		j, err := store.Open(config.JournalPath())
		if err != nil {
			log.Warn("activity journal unavailable", zap.Error(err))
		} else {
			rt.journal = j
		}
	}

	opts := []api.Option{
		api.WithLogger(log),
		api.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	}
	if rt.journal != nil {
		opts = append(opts, api.WithHook(journalHook(rt.journal, log)))
	}
	rt.client, err = api.NewClient(cfg.API.Host, opts...)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.journal != nil {
		if err := rt.journal.Close(); err != nil {
			rt.log.Warn("closing journal", zap.Error(err))
		}
	}
	rt.closeLog()
}

func (rt *runtime) currency() string { return rt.cfg.General.Currency }

// category returns the persistent --category filter, falling back to the
// configured default when it was left alone. add and edit shadow the flag
// with their own --category, which names the record's category instead.
func (rt *runtime) category() string {
	if categoryFilterSet() {
		return flagCategory
	}
	if dc := rt.cfg.General.DefaultCategory; dc != "" {
		return dc
	}
	return flagCategory
}

// journalHook records each API call. Journal failures are logged, never
// surfaced.
func journalHook(j *store.Journal, log *zap.Logger) func(api.Call) {
	return func(c api.Call) {
		msg := c.Message
		if msg == "" && c.Err != nil {
			msg = c.Err.Error()
		}
		err := j.Record(store.Entry{
			Op:        c.Op,
			ExpenseID: c.ExpenseID,
			Success:   c.Success,
			Status:    c.Status,
			Message:   msg,
			RequestID: c.RequestID,
		})
		if err != nil {
			log.Warn("journal record failed", zap.String("op", c.Op), zap.Error(err))
		}
	}
}

// Notices printed when a request fails and the server gave no message.
const (
	msgFetchFailed  = "Failed to fetch expenses"
	msgLoadFailed   = "Failed to load expense data"
	msgAddFailed    = "Failed to add expense"
	msgUpdateFailed = "Failed to update"
	msgDeleteFailed = "Failed to delete expense"
)

// notify prints a one-line failure notice to stderr.
func notify(msg string) {
	fmt.Fprintln(os.Stderr, "  "+cli.RenderNotice(msg))
}

// loadView fetches the list and applies the filter flags.
func loadView(cmd *cobra.Command, rt *runtime) (view.Controller, error) {
	category := rt.category()
	ctl, seq := view.New(category).BeginFetch()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching expenses from %s...\n", rt.client.Host())
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	list, err := rt.client.List(ctx)
	if err != nil {
		notify(msgFetchFailed)
		return ctl.ReceiveError(seq, msgFetchFailed), fmt.Errorf("fetching expenses: %w", err)
	}
	now := time.Now()
	ctl = ctl.ReceiveList(seq, list, now)
	return ctl.ApplyFilter(flagSearch, category, now), nil
}

// requestContext bounds one CLI request.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}

// interactive reports whether stdin and stdout are terminals, so huh forms
// can run.
func interactive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}
