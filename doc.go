// Package versionary keeps the full version history of entities and answers
// temporal questions about it: which version is active now, which one was
// active at a given instant, what changed between two versions.
//
// Every entity is identified by a uid.UID; each version by a
// locator.Locator (id plus version number starting at one). Versions are
// immutable: superseding one expires it and saves its successor.
//
// The Service facade wires a repository (in-memory or afs backed) chosen by
// Config, with optional OpenTelemetry tracing:
//
//	srv, _ := versionary.New[Note]()
//	v1, _ := srv.Create(ctx, Note{Title: "draft"})
//	v2, _ := srv.Update(ctx, v1.Loc.ID, Note{Title: "final"})
//	past, _, _ := srv.At(ctx, v1.Loc.ID, v1.CreatedAt)
//
// The building blocks live in sub-packages:
//
//   - model/uid        - identifiers (NanoID, ULID)
//   - model/locator    - (id, version) values
//   - model/versioned  - version contract and temporal queries
//   - service/dao      - finder and repository contracts and implementations
package versionary
