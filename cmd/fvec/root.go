package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wasilibs/fallible/allocator"
	"github.com/wasilibs/fallible/allocator/allocatortest"
	"github.com/wasilibs/fallible/vec"
)

var (
	// Global flags
	budgetBytes int
	failAfter   int
	verbose     bool
	jsonOut     bool
	dump        bool
)

var rootCmd = &cobra.Command{
	Use:   "fvec",
	Short: "Run fallible buffer operations on integer lists",
	Long: `fvec runs splice, resize and collect on lists of integers.

Storage comes from the Go heap, optionally capped by a byte budget. When a
request cannot be satisfied the command reports the allocation error and the
state the buffer was left in.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().IntVar(&budgetBytes, "budget", env.Int("FVEC_BUDGET", 0), "Byte budget shared by all allocations (0 for none)")
	rootCmd.PersistentFlags().IntVar(&failAfter, "fail-after", -1, "Refuse every allocation after this many succeed (-1 never)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log allocator activity")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "Dump the buffer structure")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session holds the allocator stack for one command invocation.
type session struct {
	out    io.Writer
	log    zerolog.Logger
	budget *allocator.Budget
	failer *allocatortest.Failing[int]
}

func newSession(cmd *cobra.Command) *session {
	cfg := allocator.LoadConfig()
	if verbose && (cfg.LogLevel == zerolog.Disabled || cfg.LogLevel > zerolog.DebugLevel) {
		cfg.LogLevel = zerolog.DebugLevel
	}
	cfg.LogOutput = cmd.ErrOrStderr()

	s := &session{out: cmd.OutOrStdout(), log: cfg.Logger()}
	if budgetBytes > 0 {
		s.budget = allocator.NewBudget(budgetBytes)
	}
	return s
}

// alloc returns the stack selected by the flags: heap, then the budget,
// then fault injection.
func (s *session) alloc() allocator.Allocator[int] {
	var a allocator.Allocator[int] = allocator.NewHeap[int](allocator.WithLogger(s.log))
	if s.budget != nil {
		a = allocator.NewLimited(a, s.budget, allocator.WithLogger(s.log))
	}
	if failAfter >= 0 {
		s.failer = &allocatortest.Failing[int]{Inner: a, After: failAfter}
		a = s.failer
	}
	return a
}

type result struct {
	Values []int  `json:"values"`
	Len    int    `json:"len"`
	Cap    int    `json:"cap"`
	Used   int    `json:"used_bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

// report prints the buffer state. opErr is the operation's allocation error,
// reported alongside the state it left behind.
func (s *session) report(b *vec.Buffer[int], opErr error) error {
	r := result{Values: []int{}}
	if b != nil {
		r.Values = append(r.Values, b.Slice()...)
		r.Len, r.Cap = b.Len(), b.Cap()
	}
	if s.budget != nil {
		r.Used = s.budget.Used()
	}
	if opErr != nil {
		r.Error = opErr.Error()
	}

	if jsonOut {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(s.out, "%v\n", r.Values)
		fmt.Fprintf(s.out, "len %d cap %d\n", r.Len, r.Cap)
		if s.budget != nil {
			p := message.NewPrinter(language.English)
			p.Fprintf(s.out, "budget %d of %d bytes used\n", r.Used, s.budget.Limit())
		}
		if r.Error != "" {
			fmt.Fprintf(s.out, "error: %s\n", r.Error)
		}
	}
	if dump && b != nil {
		spew.Fdump(s.out, b)
	}
	return opErr
}

// parseInts parses a comma separated list. An empty string is an empty list.
func parseInts(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	fields := strings.Split(arg, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseIndex(arg, name string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	return n, nil
}
