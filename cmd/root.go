package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridsel/internal/config"
	"gridsel/internal/domain"
	"gridsel/internal/eventbus"
	"gridsel/internal/logging"
	"gridsel/internal/selectable"
	"gridsel/internal/table"
	"gridsel/internal/ui"
)

var (
	configPath string
	genRows    int
	genCols    int
	printFlag  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gridsel [layout.toml]",
	Short: "Select cells, rows and columns of a grid in the terminal",
	Long: `gridsel renders a grid from a TOML layout file and lets you select cells.
Header cells marked "column", body cells marked "row" and any cell marked
"all" toggle their whole group. Without a layout file a generated grid is used.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		layoutPath := ""
		if len(args) == 1 {
			layoutPath = args[0]
		}
		return run(cmd.OutOrStdout(), layoutPath)
	},
}

func init() {
	RootCmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file (default ./"+config.DefaultConfigFile+")")
	RootCmd.Flags().IntVar(&genRows, "rows", 5, "rows of the generated grid")
	RootCmd.Flags().IntVar(&genCols, "cols", 4, "columns of the generated grid")
	RootCmd.Flags().BoolVarP(&printFlag, "print", "p", false, "print the selected cells on exit")
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logging.New(logging.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(out io.Writer, layoutPath string) error {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	if printFlag {
		settings.UI.PrintOnExit = true
	}

	logger, err := logging.New(settings.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	layout, err := loadLayout(layoutPath)
	if err != nil {
		return err
	}
	grid, err := layout.Grid()
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}

	bus := eventbus.New(logger)
	bus.Subscribe(eventbus.EventLayoutLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.LayoutLoadedEvent); ok {
			logger.Info("layout loaded",
				zap.String("source", ev.Source),
				zap.Int("rows", ev.Rows),
				zap.Int("cols", ev.Cols))
		}
	})
	bus.Subscribe(eventbus.EventSelectionEnded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SelectionEndedEvent); ok {
			logger.Debug("selection session ended",
				zap.Int("selected", ev.Selected),
				zap.Int("total", ev.Total))
		}
	})
	bus.Publish(eventbus.LayoutLoadedEvent{Source: layoutPath, Rows: len(grid.Body), Cols: grid.Width()})

	store := selectable.New(grid, bus, selectable.WithVersion(settings.Host.Version))

	var warning string
	if table.Attach(store, grid, logger) == nil {
		warning = groupWarning(store, grid)
	}

	model := ui.NewModel(ui.Options{
		Title:    layout.Title,
		Grid:     grid,
		Store:    store,
		Settings: settings.UI,
		Logger:   logger,
		Warning:  warning,
	})

	logger.Info("starting UI")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally", zap.Int("selected", store.CountSelected()))

	if settings.UI.PrintOnExit {
		for _, text := range model.SelectedTexts() {
			fmt.Fprintln(out, text)
		}
	}
	return nil
}

func loadLayout(path string) (*config.Layout, error) {
	if path == "" {
		if genRows < 1 || genCols < 1 {
			return nil, fmt.Errorf("generated grid needs at least one row and column, got %dx%d", genRows, genCols)
		}
		return config.DefaultLayout(genRows, genCols), nil
	}
	layout, err := config.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	if layout.Title == "" {
		layout.Title = filepath.Base(path)
	}
	return layout, nil
}

func groupWarning(store *selectable.Store, grid *domain.Grid) string {
	if !table.Compatible(store.Version()) {
		return fmt.Sprintf("group selection disabled: store version %s is older than %s", store.Version(), table.MinHostVersion)
	}
	if len(grid.Body) == 0 {
		return "group selection disabled: grid has no body rows"
	}
	return ""
}
