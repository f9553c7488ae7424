package cmd

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/navcore/prefs"
	"github.com/grovetools/navcore/tui"
	"github.com/grovetools/navcore/tui/browser"
	"github.com/grovetools/navcore/tui/theme"
	"github.com/spf13/cobra"
)

func NewBrowseCmd() *cobra.Command {
	var settingsFile string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the navigation graph interactively",
		Long: `Open the interactive browser over the navigation host.

Keys: enter opens or selects, a adds a channel, d deletes one, esc goes
back (closing the menu first), m toggles the menu, + toggles the install
button, ? shows every binding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			var tuiCfg struct {
				Theme string `yaml:"theme"`
			}
			if err := a.cfg.UnmarshalExtension("tui", &tuiCfg); err != nil {
				a.logger.WithError(err).Warn("Ignoring malformed tui section")
			}
			theme.Use(tuiCfg.Theme)
			tui.InitializeTUI()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			host, err := a.newHost(ctx, settingsFile)
			if err != nil {
				return err
			}

			model := browser.New(host)
			defer model.Close()
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

			if a.cfg.ShouldWatchPrefs() {
				if err := os.MkdirAll(filepath.Dir(a.prefs.Path()), 0o755); err != nil {
					a.logger.WithError(err).Warn("Cannot create preferences directory, not watching")
				} else if err := prefs.Watch(ctx, a.prefs, func() { program.Send(browser.PrefsChangedMsg{}) }); err != nil {
					a.logger.WithError(err).Warn("Cannot watch preferences file")
				}
			}

			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&settingsFile, "settings", "", "JSON or YAML settings tree (overrides settings_file)")
	return cmd
}
