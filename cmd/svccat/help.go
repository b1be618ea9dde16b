package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// setHelp replaces the top-level help with a short command list.
// Subcommands keep cobra's help so their flags are shown.
func setHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Usage:\n  %s <command> [arguments] [options]\n\n", cmd.Name())
		fmt.Fprintf(out, "Available Commands:\n")
		for _, subCmd := range cmd.Commands() {
			if subCmd.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-15s %s\n", subCmd.Name(), subCmd.Short)
			}
		}
		fmt.Fprintf(out, "\nGlobal Options:\n%s", cmd.PersistentFlags().FlagUsages())
		fmt.Fprintf(out, "\nUse \"%s help <command>\" for more information about a command.\n", cmd.Name())
	})
}

func missingArgError(cmd *cobra.Command, arg string) error {
	_ = cmd.Help()
	return fmt.Errorf("required argument %s not set", arg)
}
