// Package executor coordinates a parallel coasting run.
//
// The buffer is split into boundary-safe chunks, every chunk is handed to a
// worker through an artifact store, and each worker coasts its own private
// copy. No state is shared between workers. Once every worker has finished,
// the coasted chunks are concatenated in their original order and the
// per-chunk statistics are summed.
//
// A worker that cannot read its chunk fails the whole run; there is no
// retry or reassignment.
package executor
