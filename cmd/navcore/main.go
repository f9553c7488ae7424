package main

import (
	"os"

	"github.com/grovetools/navcore/cli"
	"github.com/grovetools/navcore/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"navcore",
		"Download channels and navigation routes of the emulator front end",
	)

	rootCmd.AddCommand(cmd.NewChannelsCmd())
	rootCmd.AddCommand(cmd.NewRoutesCmd())
	rootCmd.AddCommand(cmd.NewBrowseCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("navcore"))
	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		opts := cli.GetOptions(rootCmd)
		cli.NewErrorHandler(opts.Verbose, rootCmd.ErrOrStderr()).Handle(err)
		os.Exit(1)
	}
}
