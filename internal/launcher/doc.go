// Package launcher implements the batch launcher: a single linear pass over a
// whitespace-delimited input file that starts one external program per line
// whose token count matches the profile's arity.
//
// The pass is fire-and-forget. Lines are tokenized with strings.Fields, lines
// of the wrong arity (blank lines included) are skipped, and every eligible
// line is handed to a Spawner in file order. The launcher does not wait for
// children, collect their exit codes, or report spawn failures to its caller;
// the only error Run returns for a well-formed call is ErrConfigUnreadable.
//
// Two hooks exist for callers that want more than the silent default:
//
//   - Observer receives skipped lines, started children and spawn failures.
//     NewLogObserver turns them into debug-level log records.
//
//   - Report keeps the Handle of every started child, and Report.Wait blocks
//     until all of them exit.
package launcher
