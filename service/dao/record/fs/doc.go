// Package fs provides a dao.Repository of versioned.Record values persisted
// through github.com/viant/afs, one JSON history document per id.
//
// Record ids are restored with uid.Parse and double as file names, so only
// well-formed codes are accepted: a NanoID of the URL-safe alphabet or a
// ULID. Any other id is rejected with dao.ErrInvalidID.
package fs
