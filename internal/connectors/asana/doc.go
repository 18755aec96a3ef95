// Package asana implements the rate-limited fetch client for the Asana
// REST API. It is the only package allowed to talk to the remote system;
// everything else reaches it through the driven.ResourceAPI port.
//
// The client combines proactive throttling (a token bucket pinned under
// Asana's 150 requests/minute budget) with reactive retry: exponential
// backoff on rate-limit responses and a fixed delay on other upstream
// failures, both bounded by a retry ceiling.
package asana
