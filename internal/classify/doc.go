// Package classify decides what is wrong, if anything, with a single
// image reference.
//
// A Classifier answers two independent questions about an image URL:
//   - Is the image hosted on the monitored IP address?
//   - Is the image broken (unreachable or answering with a non-2xx status)?
//
// The host check is a pure string comparison. The reachability check
// issues exactly one HEAD request per image per run with a short timeout;
// there are no retries, and no error ever escapes to the caller. Every
// failure mode of the check collapses into IsBroken = true.
package classify
