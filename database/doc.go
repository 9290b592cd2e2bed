// Package database provides connection management, migrations, foreign key
// handling, SQL seeding, SQL error classification and query logging built on
// top of Bun.
package database
