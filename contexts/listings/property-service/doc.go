// Package propertyservice owns property listings and their approval lifecycle.
//
// Layering:
// - domain: Property, status machine, field validation
// - application: submit/edit/set-status/delete commands and public/scoped queries
// - adapters: memory, postgres (gorm), mongo, gridfs image storage, http handler facade
//
// Boundary notes:
// - Authorization goes through the access-policy shared kernel only.
// - Admin fan-out and owner contact lookup are ports wired by bootstrap.
package propertyservice
