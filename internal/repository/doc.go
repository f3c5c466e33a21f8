// Package repository defines the data access interface for the lab record
// store.
//
// This package provides the repository abstraction layer for persisting
// and retrieving domain entities. Two implementations exist: the sqlite
// subpackage (durable) and the memory subpackage (transient), and both
// must behave identically to callers.
//
// # Repository Interface
//
// The Repository interface defines all data access methods for users,
// projects, experiments, notes, attachments and project collaborators,
// plus substring search over notes, projects and experiments.
//
// # Cascade Deletion
//
// The underlying stores declare no cascading constraints; deletion of a
// parent runs an explicit leaf-first plan (attachments, notes,
// experiments, collaborator rows, then the parent itself) inside a single
// unit of work.
//
// # Conformance
//
// The repotest subpackage holds a backend-agnostic conformance suite that
// both implementations run from their own test packages, which keeps the
// two backends from drifting apart.
package repository
