package matrix

// Spec describes the sets a matrix is enumerated from.
type Spec struct {
	Runtimes  []string
	Toolkits  []string
	Platforms []Platform

	// IncludeSdist appends the source distribution job after every cell.
	IncludeSdist bool
	SdistRuntime string
}

// Enumerate returns every job described by s in submission order: platform,
// then toolkit, then runtime, each in the order listed, followed by the sdist
// job when requested. Enumerate never reorders or deduplicates its inputs.
func Enumerate(s Spec) []Job {
	jobs := make([]Job, 0, len(s.Platforms)*len(s.Toolkits)*len(s.Runtimes)+1)
	for _, platform := range s.Platforms {
		for _, toolkit := range s.Toolkits {
			for _, runtime := range s.Runtimes {
				jobs = append(jobs, Job{
					Kind: KindWheel,
					Cell: Cell{Runtime: runtime, Toolkit: toolkit, Platform: platform},
				})
			}
		}
	}
	if s.IncludeSdist {
		jobs = append(jobs, SdistJob(s.SdistRuntime))
	}
	return jobs
}
