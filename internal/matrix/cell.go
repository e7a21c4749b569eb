package matrix

import "fmt"

// SdistToolkit is the toolkit token passed to build and upload commands for
// the source distribution job.
const SdistToolkit = "sdist"

// Kind distinguishes wheel jobs from the source distribution job.
type Kind int

const (
	// KindWheel builds one binary wheel for a matrix cell.
	KindWheel Kind = iota
	// KindSdist builds the single source distribution of a release.
	KindSdist
)

func (k Kind) String() string {
	if k == KindSdist {
		return "sdist"
	}
	return "wheel"
}

// Cell is one (runtime, toolkit, platform) combination of the matrix.
type Cell struct {
	Runtime  string
	Toolkit  string
	Platform Platform
}

func (c Cell) String() string {
	return fmt.Sprintf("%s/py%s/cuda%s", c.Platform, c.Runtime, c.Toolkit)
}

// Job is a single unit of submission: a wheel cell or the sdist job.
type Job struct {
	Kind Kind
	Cell Cell
}

// SdistJob returns the source distribution job built with the given runtime.
// Source distributions are produced on the native platform.
func SdistJob(runtime string) Job {
	return Job{
		Kind: KindSdist,
		Cell: Cell{Runtime: runtime, Toolkit: SdistToolkit, Platform: Linux},
	}
}

// IsSdist reports whether j is the source distribution job.
func (j Job) IsSdist() bool { return j.Kind == KindSdist }

func (j Job) String() string {
	if j.IsSdist() {
		return fmt.Sprintf("sdist/py%s", j.Cell.Runtime)
	}
	return j.Cell.String()
}
