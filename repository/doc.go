// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, property lookups, sorted and paged queries,
// transactions, and upsert support.
package repository
