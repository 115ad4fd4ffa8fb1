package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/internal/config"
)

// errFailed reports that some formulas failed. Their errors have already been
// printed.
var errFailed = errors.New("some formulas could not be evaluated")

type options struct {
	in      string
	ops     string
	extra   bool
	lines   bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "formula:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "formula [formula...]",
		Short: "Evaluate integer formulas",
		Long: `Evaluate integer formulas using +, -, *, /, and parentheses.

Each argument is evaluated as a separate formula. With no arguments, the
formula is read from standard input or from the file named by --in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.ops, "ops", "", "YAML file defining additional operators")
	pf.BoolVar(&o.extra, "extra", false, "enable the ^, %, and √ operators")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "trace evaluation to stderr")
	f := root.Flags()
	f.StringVar(&o.in, "in", "", "input file (default stdin if no args given)")
	f.BoolVarP(&o.lines, "lines", "n", false, "evaluate separate input lines as separate formulas")
	root.AddCommand(newOpsCmd(&o))
	return root
}

func newOpsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the available operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := calculator(cmd, o)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tPRIORITY\tUNARY")
			for _, op := range c.Operators() {
				fmt.Fprintf(w, "%s\t%d\t%t\n", op.Symbol, op.Priority, op.Unary)
			}
			return w.Flush()
		},
	}
}

// calculator builds the calculator described by the command line.
func calculator(cmd *cobra.Command, o *options) (*formula.Calculator, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	opts := []formula.Option{formula.WithLogger(log)}
	if o.extra {
		opts = append(opts, formula.WithOperators(formula.Extras()...))
	}
	if o.ops != "" {
		f, err := config.Load(o.ops)
		if err != nil {
			return nil, err
		}
		more, err := f.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, more...)
		log.Debug("loaded operators", slog.String("file", o.ops), slog.Int("count", len(f.Operators)))
	}
	return formula.New(opts...)
}

func run(cmd *cobra.Command, o *options, args []string) error {
	c, err := calculator(cmd, o)
	if err != nil {
		return err
	}
	srcs := args
	if len(args) == 0 || o.in != "" {
		in, err := input(cmd, o.in)
		if err != nil {
			return err
		}
		// Formulas from --in come before any arguments.
		more, err := formulas(in, o.lines)
		if err != nil {
			return err
		}
		srcs = append(more, args...)
	}
	failed := false
	for _, src := range srcs {
		r, err := c.ComputeString(src)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			failed = true
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	if failed {
		return errFailed
	}
	return nil
}

func input(cmd *cobra.Command, name string) (io.Reader, error) {
	if name == "" || name == "-" {
		return cmd.InOrStdin(), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(string(b)), nil
}

// formulas reads formulas from r. If lines is set, each non-blank line is a
// separate formula; otherwise the entire input is one.
func formulas(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var v []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		v = append(v, s.Text())
	}
	return v, s.Err()
}
