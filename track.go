package xspf

import "github.com/beevik/etree"

// Track describes a single resource to be rendered as part of a playlist.
//
// Optional scalar fields are nil when absent; list-valued fields are empty
// (never nil, never shared between tracks). Location and Identifier may hold
// any number of URIs in document order. TrackNum and Duration are guarded by
// setters because both must be non-negative.
type Track struct {
	Location   []URI
	Identifier []URI
	Title      *string
	Creator    *string
	Annotation *string
	Info       *URI
	Image      *URI
	Album      *string
	trackNum   *int
	duration   *int
	Link       []Link
	Meta       []Meta
	Extension  []Extension
}

// NewTrack creates an empty track. Every track gets its own freshly
// allocated sequences so that unrelated tracks never alias.
func NewTrack() *Track {
	return &Track{
		Location:   []URI{},
		Identifier: []URI{},
		Link:       []Link{},
		Meta:       []Meta{},
		Extension:  []Extension{},
	}
}

// TrackNum reports the ordinal position of the media on its album. The
// second return is false when the field is unset.
func (t *Track) TrackNum() (int, bool) {
	if t.trackNum == nil {
		return 0, false
	}
	return *t.trackNum, true
}

// SetTrackNum validates eagerly: negative values fail with ErrNegativeValue
// at assignment time, just as they would at parse time. Zero is valid.
func (t *Track) SetTrackNum(v int) error {
	if v < 0 {
		return ErrNegativeValue{Field: "trackNum", Value: v}
	}
	t.trackNum = &v
	return nil
}

func (t *Track) UnsetTrackNum() {
	t.trackNum = nil
}

// Duration reports the time to render the resource, in milliseconds. The
// second return is false when the field is unset.
func (t *Track) Duration() (int, bool) {
	if t.duration == nil {
		return 0, false
	}
	return *t.duration, true
}

// SetDuration validates eagerly, like SetTrackNum.
func (t *Track) SetDuration(v int) error {
	if v < 0 {
		return ErrNegativeValue{Field: "duration", Value: v}
	}
	t.duration = &v
	return nil
}

func (t *Track) UnsetDuration() {
	t.duration = nil
}

// ToXMLElement builds the canonical <track> element. See builder.go for the
// element order.
func (t *Track) ToXMLElement() *etree.Element {
	return buildTrack(t)
}

// XMLString serializes the track element to UTF-8 text without an XML
// declaration.
func (t *Track) XMLString() (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(t.ToXMLElement())
	return doc.WriteToString()
}
