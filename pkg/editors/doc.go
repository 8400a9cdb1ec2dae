// Package editors defines the capability interface for rich-text editor
// integrations (TinyMCE, CKEditor and similar widgets that keep their own
// "modified" flag) and an ordered registry the dirty tracker consults when a
// backing textarea differs from its snapshot.
package editors
