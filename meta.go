package xspf

import "github.com/beevik/etree"

// Meta attaches a metadata field to a playlist or track. Rel identifies the
// metadata type and is required; Content is plain text and must not contain
// child-element markup.
type Meta struct {
	Rel     URI
	Content string
}

func NewMeta(rel URI, content string) Meta {
	return Meta{Rel: rel, Content: content}
}

// ToXMLElement renders the meta as <meta rel="...">content</meta>.
func (m Meta) ToXMLElement() *etree.Element {
	el := etree.NewElement("meta")
	el.CreateAttr("rel", m.Rel)
	el.SetText(m.Content)
	return el
}
