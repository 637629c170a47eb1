// Package simulated provides a stand-in answer generator that waits a fixed
// delay and returns a templated answer. It needs no network access.
package simulated
