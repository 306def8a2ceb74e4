package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/BrandSum/internal/common"
	"github.com/yildizm/BrandSum/internal/history"
)

var (
	historyLimit  int
	historyOffset int
	historyFile   string
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a history file into the SQLite store",
		Long: `Import every well-formed record of a history JSON file into the SQLite
history store. Records keep their ids; records without one get a new UUID.
Malformed records are skipped. Retention keeps the newest analyses only.

Examples:
  brandsum import analysis_history.json
  brandsum import analysis_history.json --db ./brandsum.sqlite3`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	records, err := common.LoadRecordsFromFile(args[0])
	if err != nil {
		return err
	}

	store, path, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	ctx, cancel := analysisContext()
	defer cancel()

	result, err := store.Import(ctx, records)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if isJSONOutput() {
		output, err := marshalJSON(result)
		if err != nil {
			return err
		}
		return handleOutputDestination(cmd.OutOrStdout(), output)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Imported %d record(s) into %s\n", GetEmoji("database"), result.Imported, path)
	if result.Skipped > 0 {
		fmt.Fprintf(out, "%s Skipped %d malformed record(s)\n", GetEmoji("warning"), result.Skipped)
	}
	return nil
}

func newHistoryCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage stored analyses",
		Long: `List stored analyses newest first, or delete one from the SQLite store.

The listing reads --file when given, otherwise the configured source.`,
	}

	historyCmd.AddCommand(newHistoryListCommand())
	historyCmd.AddCommand(newHistoryDeleteCommand())

	return historyCmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored analyses, newest first",
		Example: `  # First page from the configured source
  brandsum history list

  # Second page of alice's analyses in a history file
  brandsum history list --file history.json --owner alice --limit 10 --offset 10`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "records per page, 0 lists all")
	cmd.Flags().IntVar(&historyOffset, "offset", 0, "records to skip")
	cmd.Flags().StringVarP(&historyFile, "file", "f", "", "history file to list")

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 || historyOffset < 0 {
		return fmt.Errorf("--limit and --offset must be non-negative")
	}

	src, err := openSource(historyFile)
	if err != nil {
		return err
	}
	defer src.cleanup()

	page, err := src.List(context.Background(), history.Query{Owner: owner, Offset: historyOffset, Limit: historyLimit})
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if isJSONOutput() {
		output, err := marshalJSON(page)
		if err != nil {
			return err
		}
		return handleOutputDestination(cmd.OutOrStdout(), output)
	}

	return handleOutputDestination(cmd.OutOrStdout(), []byte(renderHistoryPage(page, historyOffset)))
}

func renderHistoryPage(page *history.Page, offset int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d stored analyses", GetEmoji("database"), page.Total)
	if len(page.Records) > 0 {
		fmt.Fprintf(&b, " (showing %d-%d)", offset+1, offset+len(page.Records))
	}
	b.WriteString("\n\n")

	for i, r := range page.Records {
		if r.Malformed() {
			fmt.Fprintf(&b, "  %3d. %s %s (malformed)\n", offset+i+1, GetEmoji("warning"), displayID(r))
			continue
		}
		fmt.Fprintf(&b, "  %3d. %s %-36s %-20s %s  %d brand(s)\n",
			offset+i+1, GetEmoji("video"), displayID(r), r.Timestamp, r.Username, r.Brands().Len())
		if title := r.Title(); title != "" {
			fmt.Fprintf(&b, "       %s\n", title)
		}
	}

	if page.HasMore {
		fmt.Fprintf(&b, "\n  ... more available (use --offset %d)\n", offset+len(page.Records))
	}
	return b.String()
}

func displayID(r *common.AnalysisRecord) string {
	if r == nil || r.ID == "" {
		return "(no id)"
	}
	return r.ID
}

func newHistoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored analysis",
		Long: `Delete one analysis from the SQLite store. With --owner set, analyses owned
by someone else are reported as not found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.Delete(context.Background(), args[0], owner); err != nil {
				if errors.Is(err, history.ErrNotFound) {
					return fmt.Errorf("no analysis %s to delete", args[0])
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted analysis %s\n", GetEmoji("success"), args[0])
			return nil
		},
	}
}
