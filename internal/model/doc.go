// Package model provisions the offline translation model package.
//
// Ensure downloads the model archive on first use, guarded by a file lock
// so concurrent runs never clobber each other, and checks free disk space
// before fetching. The download lands in a temp file and is renamed into
// the model directory only once complete.
package model
