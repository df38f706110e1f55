// Package model holds the value types shared by every versionary layer.
//
// Identifiers live in `uid`, (id, version) addresses in `locator`, the
// version contract and its temporal queries in `versioned`, and the error
// taxonomy in `types`. None of them perform I/O.
package model
