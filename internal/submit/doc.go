// Package submit wraps the external job submission tool. A Submitter makes
// exactly one submission call per invocation, never retries, and returns the
// identifier of the queued job taken from the status URL the tool prints.
package submit
