// Package pipeline assembles rendered MarkScript fragments into complete,
// self-contained HTML pages.
//
// The stages are:
//   - stylesheet preparation: the built-in style plus optional user CSS,
//     parsed and checked before it reaches the page
//   - title extraction from the first level 1 heading of the fragment
//   - page assembly through an html/template skeleton
//
// Rendering of the document itself happens in internal/markup; PDF export
// of the assembled page is handled by the root package.
package pipeline
