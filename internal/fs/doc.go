// Package fs abstracts the file system operations the pipeline performs
// on its scoped working directory, so tests can observe directory
// lifecycle and inject I/O faults.
package fs
