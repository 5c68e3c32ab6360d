package xspf

import "github.com/beevik/etree"

// Link allows a playlist or track to point to a resource of a given type
// without the use of XML namespaces. Rel identifies the resource type and is
// required; Content is the linked resource itself.
type Link struct {
	Rel     URI
	Content URI
}

func NewLink(rel, content URI) Link {
	return Link{Rel: rel, Content: content}
}

// ToXMLElement renders the link as <link rel="...">content</link>.
func (l Link) ToXMLElement() *etree.Element {
	el := etree.NewElement("link")
	el.CreateAttr("rel", l.Rel)
	el.SetText(l.Content)
	return el
}
