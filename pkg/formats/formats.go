// Package formats provides parsers for the Populous: The Beginning level and
// landscape table files.
package formats

// Note: level headers and height grids are in level.go
// Note: palette, displacement and the bigf0/cliff0/fade0 tables are in tables.go
