package matrix

import "time"

// JobGroupLayout is the time layout job group tokens are generated with.
const JobGroupLayout = "2006-01-02_15:04:05"

// JobGroup namespaces the uploads and submissions of one orchestration run.
// An empty JobGroup disables artifact upload on the remote side.
type JobGroup string

// NewJobGroup derives a job group token from t.
func NewJobGroup(t time.Time) JobGroup {
	return JobGroup(t.Format(JobGroupLayout))
}

// Empty reports whether no job group was supplied.
func (g JobGroup) Empty() bool { return g == "" }

func (g JobGroup) String() string { return string(g) }
