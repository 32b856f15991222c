// Package markup implements the MarkScript conversion engine.
//
// A MarkScript document is a sequence of independent lines. Each line is
// classified by a fixed, ordered rule table (see Rules) and rendered to an
// HTML fragment. Paragraph and box text additionally goes through the inline
// resolver, which recognizes code spans, links, and colored or bordered spans.
//
// The package is pure: Render allocates its own state per call, performs no
// I/O, and never fails. Invalid input is reported in-band as escaped
// placeholders and out-of-band as Diagnostics.
//
// User text and finished markup are kept apart by type. Plain strings only
// become HTML through Escape or the element builders in this package, so
// every piece of user text is escaped exactly once.
package markup
