package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/untoldecay/entitylink/internal/config"
	"github.com/untoldecay/entitylink/internal/export"
	"github.com/untoldecay/entitylink/internal/storage/sqlite"
	"github.com/untoldecay/entitylink/internal/ui"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the local entity knowledge base",
}

var kbImportCmd = &cobra.Command{
	Use:   "import <entities.jsonl>",
	Short: "Load entities and aliases into the knowledge base",
	Long: `Reads one JSON object per line and upserts it into the knowledge base:

  {"id": "Q42", "label": "Douglas Adams", "description": "English writer",
   "views": 31337, "aliases": ["Douglas Noël Adams"]}

The label is always indexed as an alias. When several entities share an
alias the one with the most views wins.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kbPath := config.GetString(config.KeyKBPath)
		n, err := importKB(rootCtx, kbPath, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entities into %s\n", n, kbPath)
	},
}

var kbLookupCmd = &cobra.Command{
	Use:   "lookup <alias>",
	Short: "Show the knowledge base entities for an alias",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := lookupKB(rootCtx, cmd.OutOrStdout(), config.GetString(config.KeyKBPath), strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	kbCmd.AddCommand(kbImportCmd, kbLookupCmd)
	rootCmd.AddCommand(kbCmd)
}

// importKB loads srcPath into the database at kbPath while holding an
// exclusive lock beside it.
func importKB(ctx context.Context, kbPath, srcPath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(kbPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create knowledge base directory: %w", err)
	}

	lock := flock.New(kbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquiring import lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("another import into %s is in progress", kbPath)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Open(srcPath) // #nosec G304 - user supplied import file
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer f.Close()

	store, err := sqlite.New(ctx, kbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	n, err := store.ImportJSONL(ctx, f)
	if err != nil {
		return n, fmt.Errorf("import %s: %w", srcPath, err)
	}
	return n, nil
}

func lookupKB(ctx context.Context, out io.Writer, kbPath, alias string) error {
	store, err := sqlite.NewReadOnly(ctx, kbPath)
	if err != nil {
		return fmt.Errorf("open knowledge base %s: %w", kbPath, err)
	}
	defer store.Close()

	entities, err := store.Candidates(ctx, alias)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		fmt.Fprintf(out, "No entities found for %q\n", alias)
		suggestions, err := store.SuggestAliases(ctx, alias, 5)
		if err != nil {
			return err
		}
		if len(suggestions) > 0 {
			fmt.Fprintln(out, "\nDid you mean:")
			for _, s := range suggestions {
				fmt.Fprintf(out, "  %s\n", s)
			}
		}
		return nil
	}

	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{
			e.QID(),
			e.Label,
			strconv.FormatInt(e.Views, 10),
			export.Truncate(e.Description, export.DescriptionWidth),
		})
	}
	return ui.RenderRows(out, []string{"wikidata_id", "label", "views", "description"}, rows)
}
