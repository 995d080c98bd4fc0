// Package docmirror mirrors a documentation website into a local tree of
// Markdown files. It fetches pages starting from a root URL, extracts each
// page's content element, renders it as Markdown and follows same-site links
// for a bounded number of rounds.
//
// This package contains domain types, interfaces and the pure URL helpers,
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/, rod/,
// bloom/).
package docmirror
