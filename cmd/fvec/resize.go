package main

import (
	"github.com/spf13/cobra"

	"github.com/wasilibs/fallible/vec"
)

var resizeStep int

func init() {
	cmd := newResizeCmd()
	cmd.Flags().IntVar(&resizeStep, "step", 0, "Add step to the fill value for each new slot")
	rootCmd.AddCommand(cmd)
}

func newResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <values> <length> <fill>",
		Short: "Grow or shrink a list to a length",
		Long: `The resize command grows values to length with copies of fill, or
truncates it. With --step each new slot holds the previous one plus step.

Example:
  fvec resize 1,2 5 0
  fvec resize 1,2 6 10 --step 10`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResize(cmd, args)
		},
	}
}

func runResize(cmd *cobra.Command, args []string) error {
	values, err := parseInts(args[0])
	if err != nil {
		return err
	}
	n, err := parseIndex(args[1], "length")
	if err != nil {
		return err
	}
	fill, err := parseIndex(args[2], "fill")
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}

	s := newSession(cmd)
	b, err := vec.Of(s.alloc(), values...)
	if err != nil {
		return s.report(nil, err)
	}

	s.log.Debug().Int("from", b.Len()).Int("to", n).Msg("resize")
	if resizeStep == 0 {
		return s.report(b, b.Resize(n, fill))
	}
	next := fill
	return s.report(b, b.ResizeFunc(n, func() int {
		v := next
		next += resizeStep
		return v
	}))
}
