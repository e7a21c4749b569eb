package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/vk/releasegrid/internal/app"
)

// CellOptions holds the arguments of the build and upload commands, which
// run inside a remote job for one matrix cell.
type CellOptions struct {
	*GlobalOptions
	Platform  string
	OutputDir string

	cell app.CellOptions
}

func (o *CellOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Platform, "platform", "p", "linux", "Platform the artifacts were built for ('linux' or 'windows').")
	cmd.Flags().StringVarP(&o.OutputDir, "output", "o", ".", "Directory the build runs in and artifacts are collected from.")
}

// Complete fills the cell from the positional arguments
// RUNTIME TOOLKIT BRANCH [JOB_GROUP].
func (o *CellOptions) Complete(args []string) error {
	o.cell = app.CellOptions{
		Runtime:   args[0],
		Toolkit:   args[1],
		Branch:    args[2],
		Platform:  o.Platform,
		OutputDir: o.OutputDir,
	}
	if len(args) > 3 {
		o.cell.JobGroup = args[3]
	}
	return nil
}

// Validate rejects empty positional arguments.
func (o *CellOptions) Validate() error {
	if o.cell.Runtime == "" || o.cell.Toolkit == "" || o.cell.Branch == "" {
		return usage(errors.New("runtime, toolkit and branch must not be empty"))
	}
	return nil
}

// RunBuild builds the cell and uploads its artifacts.
func (o *CellOptions) RunBuild(ctx context.Context) error {
	a, err := o.newApp()
	if err != nil {
		return err
	}
	return a.Build(ctx, o.cell)
}

// RunUpload uploads the artifacts already in the output directory.
func (o *CellOptions) RunUpload(ctx context.Context) error {
	a, err := o.newApp()
	if err != nil {
		return err
	}
	_, err = a.Upload(ctx, o.cell)
	return err
}

// NewCmdBuild creates the build command.
func NewCmdBuild(global *GlobalOptions) *cobra.Command {
	o := &CellOptions{GlobalOptions: global}

	cmd := &cobra.Command{
		Use:   "build RUNTIME TOOLKIT BRANCH [JOB_GROUP]",
		Short: "Build the artifacts of one matrix cell and upload them",
		Long: `Build runs the configured build entrypoint with RUNTIME and TOOLKIT in the
output directory, then copies the produced artifacts to the storage bucket.
Use "sdist" as TOOLKIT to build the source distribution. Without JOB_GROUP
the artifacts are built but not uploaded. A failed build exits with the
build's own exit code.`,
		Args: usageArgs(cobra.RangeArgs(3, 4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.RunBuild(cmd.Context())
		},
	}
	o.addFlags(cmd)
	return cmd
}

// NewCmdUpload creates the upload command.
func NewCmdUpload(global *GlobalOptions) *cobra.Command {
	o := &CellOptions{GlobalOptions: global}

	cmd := &cobra.Command{
		Use:   "upload RUNTIME TOOLKIT BRANCH [JOB_GROUP]",
		Short: "Upload already built artifacts of one matrix cell",
		Args:  usageArgs(cobra.RangeArgs(3, 4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.RunUpload(cmd.Context())
		},
	}
	o.addFlags(cmd)
	return cmd
}
