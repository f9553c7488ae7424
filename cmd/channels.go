package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/cli"
	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/tui/theme"
	"github.com/spf13/cobra"
)

// channelRow is one line of `channels list`.
type channelRow struct {
	Label     string `json:"label"`
	ID        string `json:"id"`
	Selected  bool   `json:"selected"`
	Deletable bool   `json:"deletable"`
}

func NewChannelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Inspect and edit the download channel lists",
		Long: `Inspect and edit the per-category download channel lists.

Categories are gpu_driver (alias: driver), ui and rpcsx (alias: core).
Labels are what the channel screens show: "Release" and "Development"
stand for the category's built-in channels.

Examples:
  navcore channels list rpcsx
  navcore channels add ui me/rpcsx-ui-fork
  navcore channels select rpcsx Development
  navcore channels rm driver someone/drivers`,
	}

	cmd.AddCommand(newChannelsListCmd())
	cmd.AddCommand(newChannelsAddCmd())
	cmd.AddCommand(newChannelsRmCmd())
	cmd.AddCommand(newChannelsSelectCmd())
	return cmd
}

func newChannelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List a category's channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			return printChannels(cmd, store)
		},
	}
}

func newChannelsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <label>",
		Short: "Add a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			store, err := a.store(args[0])
			if err != nil {
				return err
			}

			id := store.Spec().ParseLabel(args[1])
			before := len(store.Snapshot().List)
			if len(store.Add(id)) == before {
				fmt.Fprintln(cmd.ErrOrStderr(), theme.RenderStatus("warning", fmt.Sprintf("'%s' was not added: already listed or reserved", args[1])))
			}
			if err := a.prefs.Flush(); err != nil {
				return err
			}
			return printChannels(cmd, store)
		},
	}
}

func newChannelsRmCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <category> <label>",
		Short: "Remove a channel",
		Long: `Remove a channel from a category's list.

Protected channels are refused: the built-in channels of ui and rpcsx, and
the last remaining gpu_driver channel. --force removes them anyway.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			store, err := a.store(args[0])
			if err != nil {
				return err
			}

			id := store.Spec().ParseLabel(args[1])
			if !force && !store.IsDeletable(id) {
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("channel '%s' is protected", args[1])).
					WithDetail("category", string(store.Spec().Category))
			}
			store.Remove(id)
			if err := a.prefs.Flush(); err != nil {
				return err
			}
			return printChannels(cmd, store)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Remove protected channels too")
	return cmd
}

func newChannelsSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <category> <label>",
		Short: "Select the channel downloads come from",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			store, err := a.store(args[0])
			if err != nil {
				return err
			}

			store.Select(store.Spec().ParseLabel(args[1]))
			if err := a.prefs.Flush(); err != nil {
				return err
			}
			return printChannels(cmd, store)
		},
	}
}

func printChannels(cmd *cobra.Command, store *channels.Store) error {
	spec := store.Spec()
	snap := store.Snapshot()
	rows := make([]channelRow, 0, len(snap.List))
	for _, id := range snap.List {
		rows = append(rows, channelRow{
			Label:     spec.DisplayLabel(id),
			ID:        id,
			Selected:  id == snap.Selected,
			Deletable: store.IsDeletable(id),
		})
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

	t := theme.DefaultTheme
	fmt.Fprintln(w, t.Header.Render(spec.Title))
	for _, row := range rows {
		marker := "  "
		label := row.Label
		if row.Selected {
			marker = t.Success.Render("● ")
			label = t.Bold.Render(label)
		}
		line := marker + label
		if row.Label != row.ID {
			line += t.Muted.Render(" (" + row.ID + ")")
		}
		if !row.Deletable {
			line += t.Muted.Render(" [protected]")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
