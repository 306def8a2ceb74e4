package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yildizm/BrandSum/internal/ui"
)

var dashboardTheme string

func newDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [file]",
		Short: "Browse the report in an interactive terminal UI",
		Long: `Open a full-screen dashboard with Overview, Brands, Confidence and
Performance tabs.

Keys: tab/shift+tab or 1-4 switch tabs, up/down or j/k scroll, s cycles the
brand sort key, r reloads, h shows help, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboard,
	}

	cmd.Flags().StringVar(&dashboardTheme, "theme", "default", "color theme (default, high-contrast, minimal)")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !ui.SetThemeByName(dashboardTheme) {
		GetLogger("dashboard").Warn("unknown theme %q, using default", dashboardTheme)
	}

	engine, err := buildEngine("", 0)
	if err != nil {
		return err
	}

	file := fileArg(args)
	load := func(ctx context.Context) (*ui.Snapshot, error) {
		records, err := loadRecords(ctx, file)
		if err != nil {
			return nil, err
		}
		report, err := engine.Analyze(ctx, records)
		if err != nil {
			return nil, err
		}
		return &ui.Snapshot{Records: records, Report: report, Timeline: engine.Timeline}, nil
	}

	return ui.DashboardRun(load)
}
