package cli

import (
	"github.com/spf13/cobra"
)

// NewCmdStatus creates the status command.
func NewCmdStatus(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status JOB_ID...",
		Short: "Run the status reporter for submitted jobs",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := global.newApp()
			if err != nil {
				return err
			}
			return a.Status(cmd.Context(), args)
		},
	}
}
