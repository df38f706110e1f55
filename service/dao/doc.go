// Package dao defines the read (Finder) and write (Repository) contracts of
// versioned entity stores, the errors they report and the write-side checks
// shared by every implementation.
//
// Implementations live in sub-packages:
//
//   - finder     - immutable, copy-on-write in-memory finder
//   - store      - in-memory repository
//   - record/fs  - afs backed repository of versioned.Record values
//   - traced     - OpenTelemetry decorator for any repository
package dao
