package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <sample.json>",
	Short: "Report cells that lie in runs longer than allowed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := readSample(args[0])
		if err != nil {
			return err
		}
		a := newApp(newLogger())
		ok, conflicts, err := a.uc.Validate(cmd.Context(), s)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ok {
			fmt.Fprintln(out, "ok")
			return nil
		}
		for _, p := range conflicts {
			fmt.Fprintf(out, "conflict %v %s\n", p, s.At(p))
		}
		return fmt.Errorf("%d cells in overlong runs", len(conflicts))
	},
}
