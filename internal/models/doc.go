// Package models defines the group wallet aggregate.
//
// A Group exclusively owns its Members and Transactions; the three are loaded,
// mutated and saved together as one consistency boundary. All entities are
// fully initialized by their constructors: vote sets are never nil, amounts
// are always positive, and every member of a group has a distinct phone.
//
// # Authorization
//
// Group.CreatedBy is the only source of truth for admin rights. Member.IsAdmin
// is informational and is set once, for the creator, when the group is built.
//
// # Relationships
//
// Relationships use ID strings rather than pointers (Transaction.CreatedBy,
// vote sets) so the aggregate can be copied and persisted without cycles.
package models
