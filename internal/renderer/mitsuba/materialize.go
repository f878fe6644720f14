package mitsuba

import (
	"github.com/beevik/etree"
)

// Group names with a fixed place in the settings template.
const (
	GroupIntegrator = "integrator"
	GroupSampler    = "sampler"
	GroupFilter     = "rfilter"
)

// DescriptionInclude is the file every scene-case includes after the
// settings.
const DescriptionInclude = "description.xml"

// Materialize places copies of the fragments into the settings document.
// The integrator replaces every top level integrator and becomes the first
// child of the scene. The sampler replaces the samplers next to the last film
// and is inserted right before it. The rfilter replaces the filters of that
// film and becomes its last child. Other groups are appended to the scene.
// Finally the scene description is included.
func Materialize(doc *etree.Document, frags []Fragment) error {
	root := doc.Root()
	if root == nil || root.Tag != "scene" {
		return &TemplateAnchorMissingError{Anchor: "scene"}
	}

	var film *etree.Element
	if films := doc.FindElements("/scene/sensor/film"); len(films) > 0 {
		film = films[len(films)-1]
	}

	for _, f := range frags {
		elem := f.Element.Copy()
		switch f.Group {
		case GroupIntegrator:
			for _, old := range root.SelectElements(GroupIntegrator) {
				root.RemoveChild(old)
			}
			root.InsertChildAt(0, elem)
		case GroupSampler:
			if film == nil {
				return &TemplateAnchorMissingError{Anchor: "sensor/film"}
			}
			sensor := film.Parent()
			for _, old := range sensor.SelectElements(GroupSampler) {
				sensor.RemoveChild(old)
			}
			sensor.InsertChildAt(film.Index(), elem)
		case GroupFilter:
			if film == nil {
				return &TemplateAnchorMissingError{Anchor: "sensor/film"}
			}
			for _, old := range film.SelectElements(GroupFilter) {
				film.RemoveChild(old)
			}
			film.AddChild(elem)
		default:
			root.AddChild(elem)
		}
	}

	root.CreateElement("include").CreateAttr("filename", DescriptionInclude)

	ensureDeclaration(doc)
	doc.Indent(4)
	return nil
}

func ensureDeclaration(doc *etree.Document) {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="utf-8"`))
}
