package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wasilibs/fallible/vec"
)

var (
	spliceUnbounded bool
	spliceHint      int
)

func init() {
	cmd := newSpliceCmd()
	cmd.Flags().BoolVar(&spliceUnbounded, "unbounded", false, "Hide the replacement length from the buffer")
	cmd.Flags().IntVar(&spliceHint, "hint", -1, "Lower bound reported for the replacement (-1 for none)")
	rootCmd.AddCommand(cmd)
}

func newSpliceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "splice <values> <start> <end> <replacement>",
		Short: "Replace a range of a list",
		Long: `The splice command replaces values[start:end] with the replacement list.

Example:
  fvec splice 1,2,3,4,5 2 4 10,11,12
  fvec splice 1,2,3 1 1 7,8,9 --unbounded --budget 256`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplice(cmd, args)
		},
	}
}

func runSplice(cmd *cobra.Command, args []string) error {
	values, err := parseInts(args[0])
	if err != nil {
		return err
	}
	start, err := parseIndex(args[1], "start")
	if err != nil {
		return err
	}
	end, err := parseIndex(args[2], "end")
	if err != nil {
		return err
	}
	replacement, err := parseInts(args[3])
	if err != nil {
		return err
	}
	if start < 0 || start > end || end > len(values) {
		return fmt.Errorf("range [%d:%d] out of bounds for %d values", start, end, len(values))
	}

	s := newSession(cmd)
	a := s.alloc()
	b, err := vec.Of(a, values...)
	if err != nil {
		return s.report(nil, err)
	}

	var src vec.Source[int] = vec.FromSlice(replacement)
	if spliceUnbounded {
		seq := vec.FromSeq(slices.Values(replacement))
		defer seq.Stop()
		src = seq
	}
	if spliceHint >= 0 {
		src = vec.WithHint(src, spliceHint)
	}

	s.log.Debug().Int("start", start).Int("end", end).Int("replacement", len(replacement)).Msg("splice")
	return s.report(b, b.Splice(start, end, src, a))
}
