package xspf

import "github.com/beevik/etree"

// Attribution records a playlist's derivation from another playlist, by
// location and/or identifier. Zero, one, or both fields may be set; each
// present field yields one child element on serialization. Setting neither
// is legal but a little odd.
type Attribution struct {
	Location   *URI
	Identifier *URI
}

// XMLElements returns one element per present field, location first.
// Attribution values are written verbatim, without location-style quoting.
func (a Attribution) XMLElements() []*etree.Element {
	var out []*etree.Element
	if a.Location != nil {
		el := etree.NewElement("location")
		el.SetText(*a.Location)
		out = append(out, el)
	}
	if a.Identifier != nil {
		el := etree.NewElement("identifier")
		el.SetText(*a.Identifier)
		out = append(out, el)
	}
	return out
}
