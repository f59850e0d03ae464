// leads is the terminal client of the lead service. Without a command it
// opens the interactive lead viewer; the other commands print one result
// and exit so they can be scripted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/jordanlanch/leadmanager/config"
	"github.com/jordanlanch/leadmanager/pkg/cache"
	"github.com/jordanlanch/leadmanager/pkg/leadsapi"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"tui":       {usage: "open the interactive lead viewer (default)", run: runTUI},
	"login":     {usage: "sign in and store the session", run: runLogin},
	"register":  {usage: "create an account and store the session", run: runRegister},
	"logout":    {usage: "forget the stored session", run: runLogout},
	"list":      {usage: "print one page of leads", run: runList},
	"show":      {usage: "print the details of a lead", run: runShow},
	"dashboard": {usage: "print lead analytics", run: runDashboard},
	"seed":      {usage: "replace all leads with generated sample data", run: runSeed},
	"add":       {usage: "create a lead, or update one with --id", run: runAdd},
	"export":    {usage: "write one page of leads to CSV or XLSX", run: runExport},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	name := "tui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if name == "help" {
		printUsage(stdout)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", name)
	}

	a, err := newApp(ctx, config.LoadClient(), stdin, stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := cmd.run(ctx, a, args); err != nil {
		return err
	}
	return a.writeMetrics()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leads [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].usage)
	}
}

// app holds what every command shares
type app struct {
	cfg      *config.ClientConfig
	log      logger.Logger
	store    session.Store
	client   *leadsapi.Client
	registry *prometheus.Registry
	metrics  *metrics.ClientMetrics
	stdin    io.Reader
	out      io.Writer

	metricsOut string
	closers    []func() error
}

func newApp(ctx context.Context, cfg *config.ClientConfig, stdin io.Reader, stdout io.Writer) (*app, error) {
	a := &app{
		cfg:      cfg,
		log:      logger.Discard(),
		registry: prometheus.NewRegistry(),
		stdin:    stdin,
		out:      stdout,
	}

	// The terminal belongs to the viewer, so logs go to a file
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file %s: %w", cfg.LogFile, err)
		}
		a.closers = append(a.closers, file.Close)
		a.log = logger.NewWithWriter(file, cfg.LogLevel)
	}

	a.metrics = metrics.NewClient(a.registry)

	redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		a.log.Warn("redis unavailable, session will not outlive this run", "error", err)
		a.store = session.NewMemoryStore(0)
	} else {
		a.closers = append(a.closers, redisClient.Close)
		a.store = session.NewRedisStore(redisClient, cfg.SessionKey)
	}

	var creds session.Provider = a.store
	if cfg.Token != "" {
		creds = session.Static(cfg.Token)
	}

	a.client = leadsapi.New(cfg.APIBaseURL, creds,
		leadsapi.WithTimeout(cfg.RequestTimeout),
		leadsapi.WithLogger(a.log),
		leadsapi.WithMetrics(a.metrics),
	)
	return a, nil
}

// Close releases the log file and the Redis connection
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// flagSet creates the flag set of a command with the flags every command takes
func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("leads "+name, pflag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&a.metricsOut, "metrics-out", "", "write client metrics to this file on exit")
	return fs
}

// writeMetrics dumps the client metrics when --metrics-out was given
func (a *app) writeMetrics() error {
	if a.metricsOut == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.metricsOut, a.registry)
}
