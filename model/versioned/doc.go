// Package versioned defines the contract of an entity version and the
// temporal queries over an entity history.
//
// A version is active at instant t when it was created at or before t and has
// not expired by t; the expiry instant itself is exclusive. A well formed
// history has at most one active version at any instant. The queries do not
// enforce that; when more than one version matches they return the one with
// the highest version number.
package versioned
