// Package idgen wraps identifier generation so that it can be stubbed in
// tests. Callers outside this module create identifiers with package uid.
package idgen
