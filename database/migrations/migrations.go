// Package migrations holds the schema history. Importing it registers
// every migration with the runner in pkg/migration.
package migrations
