package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vk/releasegrid/internal/app"
)

// GlobalOptions are the flags every command accepts.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	outW    io.Writer
	errW    io.Writer
	appOpts []app.Option
}

// AddFlags registers the global flags on fs.
func (o *GlobalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigPath, "config", "c", app.DefaultConfigPath, "Release config: a .hcl, .yaml or .yml file, or a directory of .hcl files.")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&o.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
}

// newApp validates the global flags and loads the release config.
func (o *GlobalOptions) newApp() (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPath: o.ConfigPath,
		LogLevel:   o.LogLevel,
		LogFormat:  o.LogFormat,
	})
	if err != nil {
		return nil, usage(err)
	}
	return app.NewApp(o.outW, o.errW, cfg, o.appOpts...)
}

// NewRootCommand builds the releasegrid command tree. Results go to outW and
// logs to errW.
func NewRootCommand(outW, errW io.Writer, appOpts ...app.Option) *cobra.Command {
	global := &GlobalOptions{outW: outW, errW: errW, appOpts: appOpts}

	cmd := &cobra.Command{
		Use:   "releasegrid",
		Short: "Submit, build and upload a release matrix of binary packages",
		Long: `releasegrid drives a package release across a matrix of interpreter
runtimes, accelerator toolkits and platforms.

"submit" queues one remote job per matrix cell plus one source distribution
job. Each remote job runs "build", which invokes the project build entrypoint
and copies the artifacts to the storage bucket. "status" asks the status
reporter about the submitted jobs.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err)
	})
	global.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		NewCmdSubmit(global),
		NewCmdBuild(global),
		NewCmdUpload(global),
		NewCmdStatus(global),
		NewCmdMatrix(global),
	)
	return cmd
}

// Execute runs the command tree on args and returns an *ExitError describing
// how the process should exit, or nil on success.
func Execute(ctx context.Context, outW, errW io.Writer, args []string, appOpts ...app.Option) *ExitError {
	cmd := NewRootCommand(outW, errW, appOpts...)
	cmd.SetArgs(args)
	return toExitError(cmd.ExecuteContext(ctx))
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(validate(cmd, args))
	}
}
