// Package htmlproof validates the links and assets referenced by HTML
// documents. It walks local documents, extracts one checkable reference per
// element, resolves it against the document's base location, and records
// whether the element is exempt from validation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package htmlproof
