// Package matrix defines the release build matrix: the platforms a release
// targets, the cells of the runtime × toolkit × platform cross product, the
// source-distribution job, and the job group token that namespaces one
// submission run.
//
// Enumeration is deterministic. Platforms are walked in the order they were
// configured, toolkit versions within a platform, runtime versions within a
// toolkit, and the single sdist job comes last.
package matrix
