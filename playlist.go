package xspf

import (
	"errors"
	"io"
	"iter"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/lestrrat-go/pdebug"

	"github.com/dem214/xspf-lib/encoding"
)

// Playlist is an ordered sequence of tracks plus playlist-level metadata.
// Optional scalar fields are nil when absent. Date defaults to the creation
// time and is always serialized, as is TrackList (an empty track list still
// yields a <trackList/> element).
//
// A playlist exclusively owns its tracks and nested collections; a playlist
// referenced as an attribution is flattened to a location/identifier record
// via AsAttribution, never stored as a live back-reference.
type Playlist struct {
	Title       *string
	Creator     *string
	Annotation  *string
	Info        *URI
	Location    *URI
	Identifier  *URI
	Image       *URI
	License     *URI
	Date        time.Time
	Attribution []Attribution
	Link        []Link
	Meta        []Meta
	Extension   []Extension
	TrackList   []*Track
}

// New creates an empty playlist dated now. As with tracks, every playlist
// gets its own freshly allocated sequences.
func New() *Playlist {
	return &Playlist{
		Date:        time.Now(),
		Attribution: []Attribution{},
		Link:        []Link{},
		Meta:        []Meta{},
		Extension:   []Extension{},
		TrackList:   []*Track{},
	}
}

// Len reports the number of tracks.
func (p *Playlist) Len() int {
	return len(p.TrackList)
}

// Append adds tracks to the end of the playlist.
func (p *Playlist) Append(tracks ...*Track) {
	p.TrackList = append(p.TrackList, tracks...)
}

// Tracks iterates over the track list in order.
func (p *Playlist) Tracks() iter.Seq2[int, *Track] {
	return func(yield func(int, *Track) bool) {
		for i, t := range p.TrackList {
			if !yield(i, t) {
				break
			}
		}
	}
}

// AsAttribution flattens the playlist to an attribution record. Only the
// location and identifier of an attributed playlist are ever serialized.
func (p *Playlist) AsAttribution() Attribution {
	return Attribution{Location: p.Location, Identifier: p.Identifier}
}

// ToXMLElement builds the canonical <playlist> element. See builder.go for
// the element order.
func (p *Playlist) ToXMLElement() *etree.Element {
	return buildPlaylist(p)
}

// XMLDocument wraps the canonical element in a document carrying an XML
// declaration, ready to be written to a file or stream.
func (p *Playlist) XMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(p.ToXMLElement())
	return doc
}

// XMLString serializes the playlist element to UTF-8 text without an XML
// declaration. Empty elements collapse to self-closing form.
func (p *Playlist) XMLString() (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(p.ToXMLElement())
	return doc.WriteToString()
}

// Write serializes the playlist to w with an XML declaration.
func (p *Playlist) Write(w io.Writer) error {
	_, err := p.XMLDocument().WriteTo(w)
	return err
}

// WriteFile serializes the playlist into the file at path.
func (p *Playlist) WriteFile(path string) error {
	return p.XMLDocument().WriteToFile(path)
}

// Parse reads a full XSPF document from src and validates it. It fails with
// ErrXMLSyntax when the input is not well-formed XML, and with one of the
// classified validation errors otherwise. The first violated rule wins;
// there is no partial result.
func Parse(src io.Reader) (*Playlist, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("xspf.Parse")
		defer g.End()
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = encoding.ReaderFor
	if _, err := doc.ReadFrom(src); err != nil {
		return nil, ErrXMLSyntax{Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrXMLSyntax{Err: errors.New("document has no root element")}
	}
	if pdebug.Enabled {
		pdebug.Printf("document read, root element <%s>", root.Tag)
	}
	return PlaylistFromElement(root)
}

// ParseFile reads the XSPF document at path.
func ParseFile(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
