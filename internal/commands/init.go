package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/categorize"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/ledgers"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var backend string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.books
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, opts.company, backend, !noGit)
		},
	}

	cmd.Flags().StringVar(&backend, "storage", "csv", "voucher storage: csv, sqlite or postgres")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(out io.Writer, dir, company, backend string, useGit bool) error {
	if company == "" {
		return errors.New("--company is required")
	}
	switch backend {
	case "csv", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid storage backend %q: must be csv, sqlite or postgres", backend)
	}
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	// Create directory structure.
	dirs := []string{
		"ledgers",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tally.yaml.
	cfg := config.Default(company)
	cfg.Storage.Backend = backend
	if backend == "sqlite" {
		cfg.Storage.Path = "tally.db"
	}
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the ledger master.
	if err := ledgers.NewService(ledgers.DefaultChart()).Save(dir); err != nil {
		return fmt.Errorf("writing ledger master: %w", err)
	}

	// Write starter categorization rules.
	if err := categorize.Save(filepath.Join(dir, cfg.Import.CategoriesFile), categorize.DefaultRules()); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\n*.db\n*.db-journal\n*.tmp\nexports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := auditlog.New(dir).Record(auditlog.ActionInit, "", "books for "+company); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	if !useGit || !gitops.Available() {
		fmt.Fprintf(out, "Initialized tally books for %s at %s\n", company, dir)
		return nil
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+company, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized tally books for %s at %s (%s)\n", company, dir, hash)
	return nil
}
