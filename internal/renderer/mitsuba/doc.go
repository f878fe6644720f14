// Package mitsuba adapts Mitsuba 0.5 scenes, whose settings are an XML
// document, to resolved test cases.
//
// Each parameter group becomes one element named after the group. Untyped
// parameters are set as attributes of that element and typed parameters
// become child elements such as <integer name="maxDepth" value="10"/>. The
// integrator, sampler and rfilter elements replace their counterparts at
// fixed anchors of the settings template; any other group is appended to
// the scene.
package mitsuba
