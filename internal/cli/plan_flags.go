package cli

import (
	"github.com/spf13/pflag"
	"github.com/vk/releasegrid/internal/app"
)

// PlanFlags select the part of the release matrix submit and matrix work on.
type PlanFlags struct {
	Branch       string
	JobGroup     string
	OnlyPlatform string
	SkipSdist    bool
}

// AddFlags registers the plan flags on fs.
func (f *PlanFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Branch, "branch", "b", "", "Branch to release; overrides release.branch in the config.")
	fs.StringVar(&f.JobGroup, "job-group", "", "Job group token shared by all jobs of the run (default: current time, 2006-01-02_15:04:05).")
	fs.StringVar(&f.OnlyPlatform, "only-platform", "", "Only submit the cells of this platform ('linux' or 'windows').")
	fs.BoolVar(&f.SkipSdist, "skip-sdist", false, "Do not submit the source distribution job.")
}

func (f *PlanFlags) options() app.PlanOptions {
	return app.PlanOptions{
		Branch:       f.Branch,
		JobGroup:     f.JobGroup,
		OnlyPlatform: f.OnlyPlatform,
		SkipSdist:    f.SkipSdist,
	}
}
