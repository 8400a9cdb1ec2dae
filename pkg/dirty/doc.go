// Package dirty tracks unsaved form changes. A Tracker captures the values of
// every trackable field when a page loads and later compares that baseline
// against the live document to decide whether leaving the page should prompt
// the user. The DOM itself stays outside the package: hosts supply forms and
// fields through the Scope, Form, and Field interfaces (see pkg/htmldoc for
// parsed HTML and pkg/rodhost for a live browser page).
//
// Forms and fields are identified by their id (forms) or name (fields), with
// the other attribute used as a fallback. Anything without an identifier, any
// element carrying one of the exclusion classes, and fields of type submit,
// button, reset, image, or file are never tracked. Rich-text editors that keep
// their own modification flag can override raw value comparison through an
// editors.Registry.
package dirty
