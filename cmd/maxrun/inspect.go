package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <sample.json>",
	Short: "Show the bans the constraints would request for a partial grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := readSample(args[0])
		if err != nil {
			return err
		}
		a := newApp(newLogger())
		rep, err := a.uc.Inspect(cmd.Context(), s)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range rep.Bans {
			fmt.Fprintf(out, "ban %v\n", p)
		}
		if rep.Contradiction {
			fmt.Fprintln(out, "contradiction")
		}
		return nil
	},
}
