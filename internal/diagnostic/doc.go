// Package diagnostic collects the warnings and errors raised while
// resolving views, so a run can finish and report everything at once.
//
// Typical codes:
//   - unsupported_field: a field type no view can represent
//   - malformed_source: an auxiliary YAML source was skipped
//   - fatal: the run was aborted; the output holds only the message
package diagnostic
