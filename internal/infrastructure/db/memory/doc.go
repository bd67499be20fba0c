// Package memory provides in-process implementations of the repository ports.
// They mirror the unique indexes of the Mongo repositories so that service and
// HTTP tests exercise the same conflict semantics without a database.
package memory
