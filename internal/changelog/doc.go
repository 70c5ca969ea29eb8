// Package changelog locates and slices entries out of Keep a Changelog
// style markdown documents.
//
// This package implements:
//   - Version header detection (`## [1.2.3] - 2024-01-15`, optional v/V prefix)
//   - Latest entry extraction (first header in document order)
//   - Reading changelogs from local files or raw URLs
//   - HTML rendering of an extracted entry
//   - Watching a changelog file for newly added entries
//
// The latest entry is always the first header found when scanning the text
// from the top. Versions and dates are never compared.
package changelog
