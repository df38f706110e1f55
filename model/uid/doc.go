// Package uid defines opaque, comparable entity identifiers.
//
// Two variants exist:
//
//   - Random    - a 21 character NanoID over a URL-safe alphabet; no ordering.
//   - Monotonic - a 26 character ULID (48-bit millisecond timestamp followed
//     by 80 random bits); sortable and convertible to a UUID.
//
// Equality is defined by the canonical code string. Codes are told apart by
// length alone, so the length of every variant must stay unique; use
// ParseKind when the variant is known up front.
package uid
