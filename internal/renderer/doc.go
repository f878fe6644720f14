// Package renderer defines the capabilities every renderer adapter provides
// and the helpers they share: scene-case file naming, scene cleanup and
// running the external renderer process while streaming its output.
//
// An adapter turns a resolved test case into a scene-case file next to the
// scene's settings template, renders it and moves the resulting image into
// the run's output directory. Templates are never modified.
package renderer
