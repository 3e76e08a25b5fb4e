// Package storage defines the persistence contract for the site backend:
// entity repositories, the shared query expression type, and the error
// taxonomy. Two adapter packages implement it — gormstore against a
// relational database and s3store against an S3-compatible object store
// holding one JSON array per collection.
//
// Constructors in the adapter packages return these interfaces rather
// than their concrete types, so callers cannot couple to one backend:
//
//	st, err := gormstore.New(db, log)   // storage.Store
//	st, err := s3store.New(objects, log)
//
// The document backend trades concurrency for simplicity: every mutation
// rewrites the whole collection object, so two racing writers to one
// collection resolve last-writer-wins. That is an accepted property of
// the low-traffic deployments it targets, not a bug to lock around.
package storage
