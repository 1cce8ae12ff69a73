// Package artifact stores the per-chunk handoff between the coordinator and
// its workers: each chunk's input lines and its coasted output.
//
// # Implementations
//
//   - MemStore keeps everything in memory. It is the default and leaves
//     nothing behind.
//   - DirStore writes `<n>.in` and `<n>.out` files into a scratch directory
//     namespaced by a run ID, so concurrent runs in the same place never see
//     each other's files. The directory is removed on Close unless it was
//     opened with retain set, which is how intermediate artifacts are kept
//     for inspection.
//
// Both are safe for concurrent use by workers handling different chunks.
package artifact
