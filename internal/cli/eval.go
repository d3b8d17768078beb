package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/config"
	"github.com/born-ml/gradgraph/internal/trace"
)

func newEvalCmd() *cobra.Command {
	var (
		sets    []string
		mode    string
		wrt     string
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Differentiate an inline expression",
		Long: `Differentiate an inline expression.

Every variable in EXPR needs a value given with --set. Inputs are created
in the order of the --set flags.`,
		Example: `  gradgraph eval 'mul(add(x, x), x)' --set x=3
  gradgraph eval 'log(x1) + x1 * x2 - sin(x2)' -s x1=2 -s x2=5 --mode reverse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			m, err := config.ParseMode(mode)
			if err != nil {
				return err
			}
			p := &config.Problem{Output: args[0], Mode: m, Wrt: wrt, Trace: tracing, Inputs: inputs}
			if err := p.Validate(); err != nil {
				return err
			}
			return solveAndReport(cmd, p)
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "input value as name=value (repeatable)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(config.ModeBoth), "propagation mode: forward, reverse or both")
	cmd.Flags().StringVar(&wrt, "wrt", "", "forward-mode seed input (default: every input)")
	cmd.Flags().BoolVarP(&tracing, "trace", "t", false, "print every construction and propagation step")

	return cmd
}

func newRunCmd() *cobra.Command {
	var tracing bool

	cmd := &cobra.Command{
		Use:     "run FILE",
		Short:   "Differentiate a TOML problem file",
		Example: `  gradgraph run problem.toml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("trace") {
				p.Trace = tracing
			}
			return solveAndReport(cmd, p)
		},
	}

	cmd.Flags().BoolVarP(&tracing, "trace", "t", false, "print every construction and propagation step (overrides the file)")

	return cmd
}

// solveAndReport runs p and prints the report to the command's output.
func solveAndReport(cmd *cobra.Command, p *config.Problem) error {
	logger := loggerFromContext(cmd.Context())
	logger.Debug("solving", "output", p.Output, "mode", p.Mode, "inputs", len(p.Inputs))

	sink := trace.Discard
	if p.Trace {
		sink = trace.NewLogSink(newLogger(cmd.ErrOrStderr(), log.DebugLevel).WithPrefix("trace"))
	}

	prog := newProgress(logger)
	res, err := Solve(p, autodiff.WithSink(sink))
	if err != nil {
		return err
	}
	prog.done("solved", "nodes", res.Nodes)

	return writeReport(cmd.OutOrStdout(), p, res)
}

// parseAssignments turns name=value flags into inputs, keeping flag order.
func parseAssignments(sets []string) ([]config.Input, error) {
	inputs := make([]config.Input, 0, len(sets))
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --set %q: want name=value", config.ErrInvalid, s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: --set %q: %v", config.ErrInvalid, s, err)
		}
		inputs = append(inputs, config.Input{Name: strings.TrimSpace(name), Value: v})
	}
	return inputs, nil
}
