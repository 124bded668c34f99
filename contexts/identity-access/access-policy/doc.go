// Package accesspolicy decides who may see and change listing and account records.
//
// Layering:
// - domain/entities: Principal, Role, Action
// - domain/services: the policy table and the listing scope
//
// Boundary notes:
// - This module is the shared kernel of the identity-access context. Other
//   contexts may import its domain packages; it imports nothing but stdlib.
// - Decisions are pure: callers pass the principal explicitly and persist nothing here.
package accesspolicy
