// Package assets implements an asset lifecycle and access control
// engine: bcrypt-backed authentication producing explicit Session
// values, a static role/action authorization gate, and a status state
// machine persisted through a whole-table read-modify-write store.
//
// The engine is storage agnostic. The workbook subpackage keeps the
// original spreadsheet format (Users and Assets sheets); the bun
// repositories in this package offer a SQLite alternative with the
// same store contract.
package assets
