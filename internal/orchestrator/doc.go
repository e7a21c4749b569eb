// Package orchestrator submits one remote job per release matrix cell plus
// the source distribution job.
//
// Submission is strictly sequential: each call to the Submitter blocks the
// next enumeration step. The first failure ends the run. Jobs submitted
// before it keep running on the backend; the run returns them with the
// error so the caller can report them.
package orchestrator
