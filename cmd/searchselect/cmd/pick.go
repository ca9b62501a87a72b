package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/searchselect/internal/config"
	"github.com/donaldgifford/searchselect/internal/tui"
	"github.com/donaldgifford/searchselect/internal/widget"
	"github.com/donaldgifford/searchselect/pkg/logger"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// errAborted is returned when the user quits the picker without submitting.
var errAborted = errors.New("selection aborted")

type pickFlags struct {
	single    bool
	preselect []string
}

func pickCmd() *cobra.Command {
	var flags pickFlags

	cmd := &cobra.Command{
		Use:   "pick <type>",
		Short: "Open the interactive picker and print the selection",
		Long: "Opens a search-as-you-type picker for the given type. The picker is drawn\n" +
			"on stderr so the final selection can be captured from stdout.",
		Example: `  searchselect pick empresa
  searchselect pick colaborador --single --output json
  ids=$(searchselect pick setor --preselect 3,7 --output json | jq -r .selectedValues)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, domain.SearchType(args[0]), flags)
		},
	}
	cmd.Flags().BoolVar(&flags.single, "single", false, "allow only one selection")
	cmd.Flags().StringSliceVar(&flags.preselect, "preselect", nil, "ids selected when the picker opens")

	return cmd
}

func runPick(cmd *cobra.Command, t domain.SearchType, flags pickFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := logger.NewFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	settings := cfg.WidgetFor(t)
	if cmd.Flags().Changed("single") {
		settings.Multiple = !flags.single
	}

	w, err := widget.New(newClient(cfg, log), widgetOptions(t, settings, log)...)
	if err != nil {
		return fmt.Errorf("creating picker: %w", err)
	}
	defer w.Destroy()

	if len(flags.preselect) > 0 {
		w.SetSelectedItems(flags.preselect)
	}

	res, err := tui.Run(cmd.Context(), w, tea.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	if res.Aborted {
		return errAborted
	}

	log.Info("selection submitted", "values", res.Change.SelectedValues)
	return printChange(cmd.OutOrStdout(), res.Change, w.State().Selected, jsonOutput())
}

// widgetOptions maps resolved settings onto widget options.
func widgetOptions(t domain.SearchType, s config.WidgetSettings, log *slog.Logger) []widget.Option {
	return []widget.Option{
		widget.WithType(t),
		widget.WithMultiple(s.Multiple),
		widget.WithMinLength(s.MinLength),
		widget.WithDebounce(s.Debounce),
		widget.WithCacheTime(s.CacheTime),
		widget.WithCacheSize(s.CacheSize),
		widget.WithMaxResults(s.MaxResults),
		widget.WithAllowClear(s.AllowClear),
		widget.WithShowFilters(s.ShowFilters),
		widget.WithBlurGrace(s.BlurGrace),
		widget.WithPlaceholder(s.Placeholder),
		widget.WithLogger(log),
	}
}

func printChange(w io.Writer, change widget.ChangeEvent, selected []domain.SearchItem, asJSON bool) error {
	if asJSON {
		return outputJSON(w, change)
	}
	return printSelectionTable(w, selected)
}
