package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vk/releasegrid/internal/app"
)

// SubmitOptions holds the flags of the submit command.
type SubmitOptions struct {
	*GlobalOptions
	PlanFlags
	DryRun bool
}

// NewCmdSubmit creates the submit command.
func NewCmdSubmit(global *GlobalOptions) *cobra.Command {
	o := &SubmitOptions{GlobalOptions: global}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one remote build job per matrix cell plus the sdist job",
		Long: `Submit enumerates the release matrix and submits one remote job per cell,
strictly in order, followed by the source distribution job. The first failed
submission stops the run; jobs that were already queued keep running.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.Run(cmd.Context())
		},
	}
	o.PlanFlags.AddFlags(cmd.Flags())
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false, "Print the submissions instead of running the submission tool.")
	return cmd
}

// Run submits the release matrix.
func (o *SubmitOptions) Run(ctx context.Context) error {
	a, err := o.newApp()
	if err != nil {
		return err
	}
	_, err = a.Submit(ctx, app.SubmitOptions{PlanOptions: o.PlanFlags.options(), DryRun: o.DryRun})
	return err
}
