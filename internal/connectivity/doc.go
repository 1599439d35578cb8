// Package connectivity tracks whether the remote API is reachable.
//
// [Monitor] holds the online state and notifies subscribers on transitions.
// The state is driven by host events ([Monitor.SetOnline]) and, optionally,
// by a [Prober] that checks the remote health endpoint at an interval.
package connectivity
