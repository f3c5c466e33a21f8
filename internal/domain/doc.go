// Package domain defines the entity model for the lab record store.
//
// The hierarchy is Project -> Experiment -> Note -> Attachment, with Users
// as a root entity and ProjectCollaborator as the project/user join.
// Each entity has an insert shape (validated input for creation, without
// server-assigned fields) and, where mutation is supported, a patch shape
// whose pointer fields distinguish "leave alone" from "set to this value".
//
// The package holds pure data contracts: no storage, no behavior beyond
// validation and defaulting.
package domain
