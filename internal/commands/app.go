package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/categorize"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/events"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/ledgers"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/storage"
	"github.com/cleared-dev/tally/internal/voucher"
)

// app is everything a command needs to work on one books directory.
type app struct {
	root     string
	cfg      *config.Config
	company  string
	logger   *slog.Logger
	renderer report.Renderer
	store    storage.Store
	pub      events.Publisher
	audit    *auditlog.Log
	vouchers *voucher.Service
	ledgers  *ledgers.Service
}

// openApp loads tally.yaml from the books directory and opens the configured
// store and publisher. Callers must Close it.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	root, err := filepath.Abs(opts.books)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := filepath.Join(root, config.FileName)
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no %s in %s; run \"tally init\" first", config.FileName, root)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	a := &app{
		root:     root,
		cfg:      cfg,
		company:  cfg.Company.Name,
		logger:   logger,
		renderer: report.Renderer{Format: format},
		audit:    auditlog.New(root),
	}
	if opts.company != "" {
		a.company = opts.company
	}

	a.ledgers, err = ledgers.Load(root)
	if err != nil {
		return nil, err
	}

	a.store, err = storage.Open(cmd.Context(), cfg.Storage, root, logger)
	if err != nil {
		return nil, err
	}

	a.pub, err = events.New(cfg.Events, logger)
	if err != nil {
		// Notifications are best effort; the books still work without them.
		logger.Warn("events disabled", "error", err)
		a.pub = events.Nop{}
	}

	a.vouchers = voucher.NewService(a.store, a.pub, a.audit, logger)
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	if a.pub != nil {
		errs = append(errs, a.pub.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

func (a *app) filter(from, to time.Time) storage.Filter {
	return storage.Filter{Company: a.company, From: from, To: to}
}

// classifier follows ledgers.mode: the chart drives the balance sheet only in
// chart mode.
func (a *app) classifier() aggregate.Classifier {
	if a.cfg.Ledgers.Mode == "chart" {
		return aggregate.ChartClassifier{Chart: a.ledgers}
	}
	return aggregate.SignClassifier{}
}

func (a *app) checkOptions() aggregate.CheckOptions {
	opts := aggregate.CheckOptions{CashLedgers: a.cfg.Checks.CashLedgers}
	if a.cfg.Ledgers.Mode == "chart" {
		opts.Chart = a.ledgers.All()
	}
	return opts
}

func (a *app) rules() (categorize.Rules, error) {
	path := a.cfg.Import.CategoriesFile
	if path == "" {
		path = "categories.yaml"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.root, path)
	}

	rules, err := categorize.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		rules = categorize.DefaultRules()
	} else if err != nil {
		return categorize.Rules{}, err
	}
	if rules.Fallback == "" {
		rules.Fallback = a.cfg.Import.Fallback
	}
	return rules, nil
}

// commit snapshots the books directory when auto-commit applies. Failures are
// logged, never returned, since the change itself already succeeded.
func (a *app) commit(message string) {
	if !a.cfg.Git.AutoCommit || a.cfg.Storage.Backend != "csv" {
		return
	}
	if !gitops.Available() || !gitops.IsRepo(a.root) {
		return
	}
	hash, err := gitops.CommitAll(a.root, message, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		a.logger.Warn("auto-commit failed", "component", "gitops", "error", err)
	default:
		a.logger.Debug("books committed", "component", "gitops", "hash", hash)
	}
}

func (a *app) recordAudit(action, id, details string) {
	if err := a.audit.Record(action, id, details); err != nil {
		a.logger.Warn("audit log write failed", "action", action, "error", err)
	}
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(voucher.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %q is not a YYYY-MM-DD date", name, value)
	}
	return d, nil
}

// outputFile returns the -o target, or the command's stdout when path is empty.
func outputFile(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}
