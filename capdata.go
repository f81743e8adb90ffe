// Package capdata extracts salary-cap datasets for professional football
// teams from team cap pages. It discovers team pages on a directory page,
// locates the roster table and the cap summary on each team page, converts
// them into typed tables, and merges the results into season-wide datasets.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package capdata
