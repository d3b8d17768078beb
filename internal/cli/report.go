package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/born-ml/gradgraph/internal/config"
)

// writeReport prints the result as an aligned table:
//
//	output  mul(add(x, x), x) = 18
//
//	INPUT  VALUE  FORWARD  REVERSE
//	x      3      12       12
func writeReport(w io.Writer, p *config.Problem, res *Result) error {
	if _, err := fmt.Fprintf(w, "output  %s = %s\n", p.Output, formatFloat(res.Value)); err != nil {
		return err
	}
	if len(res.Inputs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "INPUT\tVALUE\tFORWARD\tREVERSE")
	for _, in := range res.Inputs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			in.Name,
			formatFloat(in.Value),
			optional(in.Forward, in.HasForward),
			optional(in.Reverse, in.HasReverse),
		)
	}
	return tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func optional(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return formatFloat(v)
}
