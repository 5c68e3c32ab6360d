package xspf

import "github.com/beevik/etree"

// Extension carries non-XSPF XML content inside a playlist or track. The
// Application URI identifies the specification the content follows. Content
// is opaque to this library: child elements are stored and replayed verbatim,
// never interpreted. Attr holds any additional XML attributes (including
// namespace declarations the content relies on), excluding application.
type Extension struct {
	Application URI
	Attr        []etree.Attr
	Content     []*etree.Element
}

func NewExtension(application URI) Extension {
	return Extension{
		Application: application,
		Attr:        []etree.Attr{},
		Content:     []*etree.Element{},
	}
}

// ToXMLElement renders the extension with the application attribute first,
// then the extra attributes in stored order, then deep copies of the opaque
// content.
func (e Extension) ToXMLElement() *etree.Element {
	el := etree.NewElement("extension")
	el.CreateAttr("application", e.Application)
	for _, a := range e.Attr {
		el.CreateAttr(a.FullKey(), a.Value)
	}
	for _, c := range e.Content {
		el.AddChild(c.Copy())
	}
	return el
}
