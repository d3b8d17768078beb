package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the available primitives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tARITY")
			for _, name := range ops.Names() {
				op, _ := ops.Lookup(name)
				fmt.Fprintf(tw, "%s\t%d\n", name, op.Arity())
			}
			return tw.Flush()
		},
	}
}
