// Package preflight provides readiness checks for the external tools and
// filesystem paths vidbridge depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll at startup and logs a warning per failed check.
//     A missing ffprobe does not stop the bridge; get_video_info reports the
//     launch error to callers instead.
//   - The CLI "vidbridge status" command renders the same results as a table.
package preflight
