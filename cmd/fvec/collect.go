package main

import (
	"github.com/spf13/cobra"

	"github.com/wasilibs/fallible/vec"
)

var collectHint int

func init() {
	cmd := newCollectCmd()
	cmd.Flags().IntVar(&collectHint, "hint", 0, "Lower bound reported by the source")
	rootCmd.AddCommand(cmd)
}

func newCollectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect <count>",
		Short: "Collect 0..count-1 into a new list",
		Long: `The collect command gathers count integers from a generator into a
new list, growing it as needed.

Example:
  fvec collect 100 --budget 512
  fvec collect 10 --hint 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, args)
		},
	}
}

func runCollect(cmd *cobra.Command, args []string) error {
	count, err := parseIndex(args[0], "count")
	if err != nil {
		return err
	}

	s := newSession(cmd)
	i := 0
	var src vec.Source[int] = vec.FromFunc(func() (int, bool) {
		if i >= count {
			return 0, false
		}
		i++
		return i - 1, true
	})
	if collectHint > 0 {
		src = vec.WithHint(src, collectHint)
	}

	b, err := vec.Collect(src, s.alloc())
	if err != nil {
		// Collect disposes what it gathered; report how far it got.
		s.log.Debug().Int("produced", i).Msg("collect failed")
		return s.report(nil, err)
	}
	return s.report(b, nil)
}
