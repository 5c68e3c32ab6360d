package xspf

import (
	"strconv"

	"github.com/beevik/etree"
)

// dateLayout renders ISO 8601 with a numeric offset and up to microsecond
// precision, matching what the parser accepts back.
const dateLayout = "2006-01-02T15:04:05.999999-07:00"

// builder turns an entity graph into a generic XML element tree. The element
// order is fixed and deterministic: serializing the same entity twice yields
// byte-identical output. Entities are never mutated.
type builder struct {
	el *etree.Element
}

func buildTrack(t *Track) *etree.Element {
	b := builder{el: etree.NewElement("track")}

	for _, loc := range t.Location {
		b.addText("location", Quote(loc))
	}
	for _, id := range t.Identifier {
		b.addText("identifier", id)
	}
	b.addOptional("title", t.Title)
	b.addOptional("creator", t.Creator)
	b.addOptional("annotation", t.Annotation)
	b.addOptional("info", t.Info)
	b.addOptional("image", t.Image)
	b.addOptional("album", t.Album)
	b.addOptionalInt("trackNum", t.trackNum)
	b.addOptionalInt("duration", t.duration)
	b.addLinks(t.Link)
	b.addMetas(t.Meta)
	b.addExtensions(t.Extension)

	return b.el
}

func buildPlaylist(p *Playlist) *etree.Element {
	root := etree.NewElement("playlist")
	root.CreateAttr("version", "1")
	root.CreateAttr("xmlns", Namespace)
	b := builder{el: root}

	b.addOptional("title", p.Title)
	b.addOptional("creator", p.Creator)
	b.addOptional("annotation", p.Annotation)
	b.addOptional("info", p.Info)
	if p.Location != nil {
		b.addText("location", Quote(*p.Location))
	}
	b.addOptional("identifier", p.Identifier)
	b.addOptional("image", p.Image)
	b.addText("date", p.Date.Format(dateLayout))
	if p.License != nil {
		b.addText("license", Quote(*p.License))
	}
	b.addAttribution(p.Attribution)
	b.addLinks(p.Link)
	b.addMetas(p.Meta)
	b.addExtensions(p.Extension)

	// trackList is required even when empty; it serializes as <trackList/>.
	trackList := b.el.CreateElement("trackList")
	for _, t := range p.TrackList {
		trackList.AddChild(buildTrack(t))
	}

	return root
}

func (b *builder) addText(name, text string) {
	b.el.CreateElement(name).SetText(text)
}

func (b *builder) addOptional(name string, value *string) {
	if value != nil {
		b.addText(name, *value)
	}
}

func (b *builder) addOptionalInt(name string, value *int) {
	if value != nil {
		b.addText(name, strconv.Itoa(*value))
	}
}

// addAttribution emits the attribution container only when there is at least
// one record, and caps it at the first 9 entries.
func (b *builder) addAttribution(attribution []Attribution) {
	if len(attribution) == 0 {
		return
	}
	if len(attribution) > 9 {
		attribution = attribution[:9]
	}
	container := b.el.CreateElement("attribution")
	for _, a := range attribution {
		for _, el := range a.XMLElements() {
			container.AddChild(el)
		}
	}
}

func (b *builder) addLinks(links []Link) {
	for _, l := range links {
		b.el.AddChild(l.ToXMLElement())
	}
}

func (b *builder) addMetas(metas []Meta) {
	for _, m := range metas {
		b.el.AddChild(m.ToXMLElement())
	}
}

func (b *builder) addExtensions(extensions []Extension) {
	for _, e := range extensions {
		b.el.AddChild(e.ToXMLElement())
	}
}
