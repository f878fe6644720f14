// Package pbrt adapts pbrt-v3 scenes to resolved test cases.
//
// pbrt settings are a stream of statements such as
//
//	Sampler "random" "integer pixelsamples" [4]
//
// Every parameter group becomes one statement named after the group. The
// settings template is scanned for statement identifiers and each statement
// a test case defines replaces the template's statement of the same name;
// the text of all other statements is copied verbatim.
package pbrt
