package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/grovetools/navcore/cli"
	"github.com/grovetools/navcore/nav"
	"github.com/grovetools/navcore/settings"
	"github.com/grovetools/navcore/tui/theme"
	"github.com/spf13/cobra"
)

type routeRow struct {
	Route string `json:"route"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

func NewRoutesCmd() *cobra.Command {
	var settingsFile string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print every navigation route",
		Long: `Print every route the navigation host registers.

The settings tree is read from --settings or the configured settings_file.
Without one only the games route exists.

Examples:
  navcore routes --settings ./settings.json
  navcore routes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			host, err := a.newHost(cmd.Context(), settingsFile)
			if err != nil {
				return err
			}

			rows := make([]routeRow, 0)
			for _, route := range host.Routes() {
				d, _ := host.Destination(route)
				rows = append(rows, routeRow{Route: d.Route, Kind: d.Kind.String(), Title: d.Title})
			}

			w := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			if host.GamesOnly() {
				fmt.Fprintln(cmd.ErrOrStderr(), theme.RenderStatus("info", "No settings tree attached, games screen only"))
			}
			for _, row := range rows {
				fmt.Fprintf(w, "%-20s %s\n", theme.DefaultTheme.Muted.Render(row.Kind), row.Route)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsFile, "settings", "", "JSON or YAML settings tree (overrides settings_file)")
	return cmd
}

// newHost starts a navigation host over the app's registry. settingsFile
// overrides the configured one.
func (a *app) newHost(ctx context.Context, settingsFile string) (*nav.Host, error) {
	if settingsFile == "" {
		settingsFile = a.cfg.SettingsFile
	}
	if ctx == nil {
		ctx = context.Background()
	}
	host := nav.New(nav.Options{
		Registry: a.registry,
		Settings: settings.FileSource{Path: settingsFile},
		Logger:   a.logger.WithField("component", "nav"),
	})
	if err := host.Start(ctx); err != nil {
		return nil, err
	}
	return host, nil
}
