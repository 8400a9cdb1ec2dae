// Package htmldoc implements the dirty package's DOM interfaces over pages
// parsed with golang.org/x/net/html. Documents are mutable: callers can set
// values, toggle checkboxes, add or remove controls and forms, and fire
// submit handlers, which makes the package usable both to compare two
// captures of a page and to drive the tracker in tests.
package htmldoc
