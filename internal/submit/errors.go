package submit

import (
	"fmt"
	"strings"
)

// SubmissionFailedError reports a submission call that did not yield a job.
// Jobs submitted before it are unaffected.
type SubmissionFailedError struct {
	Project string
	Command string
	// Invocation is the full submission tool command line.
	Invocation string
	Output     string
	ExitCode   int
	// Err is set when the tool exited zero but its output was unusable.
	Err error
}

func (e *SubmissionFailedError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		fmt.Fprintf(&b, "submission to project %q failed: %v", e.Project, e.Err)
	} else {
		fmt.Fprintf(&b, "submission to project %q failed with exit code %d", e.Project, e.ExitCode)
	}
	fmt.Fprintf(&b, "\ncommand: %s", e.Invocation)
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&b, "\noutput:\n%s", out)
	}
	return b.String()
}

func (e *SubmissionFailedError) Unwrap() error { return e.Err }
