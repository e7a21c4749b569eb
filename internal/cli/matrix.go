package cli

import (
	"github.com/spf13/cobra"
)

// NewCmdMatrix creates the matrix command, which prints the submission plan.
func NewCmdMatrix(global *GlobalOptions) *cobra.Command {
	flags := &PlanFlags{}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the jobs submit would queue, in submission order",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := global.newApp()
			if err != nil {
				return err
			}
			return a.Matrix(cmd.Context(), flags.options())
		},
	}
	flags.AddFlags(cmd.Flags())
	return cmd
}
