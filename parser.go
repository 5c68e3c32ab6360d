package xspf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/lestrrat-go/pdebug"
)

// dateParseLayouts lists the accepted ISO 8601 shapes, tried in order. The
// fraction digit in a layout makes the fractional part optional for
// time.Parse, so each zone variant needs only one entry.
var dateParseLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// elementParser holds the shared leaf-extraction helpers used by both the
// playlist and the track parser. Parsing is fail-fast: the first violation
// aborts with a classified error and no partial entity escapes.
type elementParser struct {
	el *etree.Element
}

// childrenNamed returns the namespace-qualified children with the given tag.
// Children outside the XSPF namespace never match.
func (p elementParser) childrenNamed(name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range p.el.ChildElements() {
		if c.Tag == name && c.NamespaceURI() == Namespace {
			out = append(out, c)
		}
	}
	return out
}

// leafElement locates at most one child with the given tag and verifies it
// qualifies as a leaf: no nested markup, no attributes beyond xml:base.
func (p elementParser) leafElement(name string) (*etree.Element, error) {
	children := p.childrenNamed(name)
	if len(children) > 1 {
		return nil, ErrTooMany{Name: name}
	}
	if len(children) == 0 {
		return nil, nil
	}
	el := children[0]
	if err := checkMarkup(el); err != nil {
		return nil, err
	}
	if err := checkForbiddenAttributes(el, nil); err != nil {
		return nil, err
	}
	return el, nil
}

// leafValue extracts an optional text field. An absent element and an
// element with empty text both leave the field unset.
func (p elementParser) leafValue(name string) (*string, error) {
	el, err := p.leafElement(name)
	if el == nil || err != nil {
		return nil, err
	}
	text := el.Text()
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// leafURIValue extracts an optional URI field, validating the text.
func (p elementParser) leafURIValue(name string) (*URI, error) {
	el, err := p.leafElement(name)
	if el == nil || err != nil {
		return nil, err
	}
	text := el.Text()
	if text == "" {
		return nil, nil
	}
	uri, err := Urify(text)
	if err != nil {
		return nil, err
	}
	return &uri, nil
}

// leafIntValue extracts an optional integer field.
func (p elementParser) leafIntValue(name string) (*int, error) {
	el, err := p.leafElement(name)
	if el == nil || err != nil {
		return nil, err
	}
	text := el.Text()
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, ErrBadInteger{Element: name, Value: text}
	}
	return &v, nil
}

// checkNonleafContent rejects elements that carry their own text where only
// child elements are allowed (playlist, track, attribution, trackList).
func checkNonleafContent(el *etree.Element) error {
	if text := el.Text(); strings.TrimSpace(text) != "" {
		return ErrNonleafContent{Element: el.Tag, Content: text}
	}
	return nil
}

// checkMarkup rejects child elements where plain text is expected.
func checkMarkup(el *etree.Element) error {
	if len(el.ChildElements()) > 0 {
		return ErrMarkupInField{Element: el.Tag}
	}
	return nil
}

// checkForbiddenAttributes rejects any attribute not in the allowed set.
// Namespace declarations and xml:base are always tolerated: both are wiring
// the XML layer needs, not payload.
func checkForbiddenAttributes(el *etree.Element, allowed []string) error {
	var forbidden []string
attrs:
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if a.Space == "xml" && a.Key == "base" {
			continue
		}
		for _, name := range allowed {
			if a.Space == "" && a.Key == name {
				continue attrs
			}
		}
		forbidden = append(forbidden, a.FullKey())
	}
	if len(forbidden) > 0 {
		return ErrForbiddenAttribute{Element: el.Tag, Attributes: forbidden}
	}
	return nil
}

// requiredURI validates attribute or leaf text that must be a URI; absent
// text is itself a URI violation.
func requiredURI(text string) (URI, error) {
	if text == "" {
		return "", ErrInvalidURI{Value: text}
	}
	return Urify(text)
}

// PlaylistFromElement builds a playlist from an already parsed playlist
// element. The root is validated first (namespace, tag, version, stray
// attributes, stray text), then every child in document order.
func PlaylistFromElement(root *etree.Element) (*Playlist, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("xspf.PlaylistFromElement")
		defer g.End()
	}

	p := playlistParser{elementParser{el: root}, New()}
	if err := p.checkRoot(); err != nil {
		return nil, err
	}
	if err := p.insertAll(); err != nil {
		return nil, err
	}
	if pdebug.Enabled {
		pdebug.Printf("playlist accepted, %d tracks", p.playlist.Len())
	}
	return p.playlist, nil
}

type playlistParser struct {
	elementParser
	playlist *Playlist
}

func (p playlistParser) checkRoot() error {
	ns := p.el.NamespaceURI()
	if ns == "" {
		return ErrMissingNamespace
	}
	if ns != Namespace {
		return ErrWrongNamespace{Namespace: ns}
	}
	if p.el.Tag != "playlist" {
		return ErrWrongRootName{Name: p.el.Tag}
	}
	version := p.el.SelectAttr("version")
	if version == nil {
		return ErrMissingVersion
	}
	if err := checkForbiddenAttributes(p.el, []string{"version"}); err != nil {
		return err
	}
	v, err := strconv.Atoi(strings.TrimSpace(version.Value))
	if err != nil || v != 1 {
		return ErrBadVersion{Version: version.Value}
	}
	return checkNonleafContent(p.el)
}

func (p playlistParser) insertAll() error {
	steps := []func() error{
		p.insertTitle,
		p.insertCreator,
		p.insertAnnotation,
		p.insertInfo,
		p.insertLocation,
		p.insertIdentifier,
		p.insertImage,
		p.insertLicense,
		p.insertDate,
		p.insertAttributions,
		p.insertLinks,
		p.insertMetas,
		p.insertExtensions,
		p.insertTrackList,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (p playlistParser) insertTitle() error {
	v, err := p.leafValue("title")
	p.playlist.Title = v
	return err
}

func (p playlistParser) insertCreator() error {
	v, err := p.leafValue("creator")
	p.playlist.Creator = v
	return err
}

func (p playlistParser) insertAnnotation() error {
	v, err := p.leafValue("annotation")
	p.playlist.Annotation = v
	return err
}

func (p playlistParser) insertInfo() error {
	v, err := p.leafURIValue("info")
	p.playlist.Info = v
	return err
}

// insertLocation percent-decodes the validated URI so the in-memory field
// holds the readable form; serialization re-escapes it.
func (p playlistParser) insertLocation() error {
	v, err := p.leafURIValue("location")
	if err != nil || v == nil {
		return err
	}
	decoded := Unquote(*v)
	p.playlist.Location = &decoded
	return nil
}

func (p playlistParser) insertIdentifier() error {
	v, err := p.leafURIValue("identifier")
	p.playlist.Identifier = v
	return err
}

func (p playlistParser) insertImage() error {
	v, err := p.leafURIValue("image")
	p.playlist.Image = v
	return err
}

func (p playlistParser) insertLicense() error {
	v, err := p.leafURIValue("license")
	p.playlist.License = v
	return err
}

func (p playlistParser) insertDate() error {
	v, err := p.leafValue("date")
	if err != nil || v == nil {
		return err
	}
	text := strings.TrimSpace(*v)
	for _, layout := range dateParseLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			p.playlist.Date = t
			return nil
		}
	}
	return ErrBadDate{Value: text}
}

func (p playlistParser) insertAttributions() error {
	children := p.childrenNamed("attribution")
	if len(children) > 1 {
		return ErrTooMany{Name: "attribution"}
	}
	if len(children) == 0 {
		return nil
	}
	container := children[0]
	if err := checkNonleafContent(container); err != nil {
		return err
	}
	for _, child := range container.ChildElements() {
		a, err := AttributionFromElement(child)
		if err != nil {
			return err
		}
		p.playlist.Attribution = append(p.playlist.Attribution, a)
	}
	return nil
}

func (p playlistParser) insertLinks() error {
	for _, child := range p.childrenNamed("link") {
		l, err := LinkFromElement(child)
		if err != nil {
			return err
		}
		p.playlist.Link = append(p.playlist.Link, l)
	}
	return nil
}

func (p playlistParser) insertMetas() error {
	for _, child := range p.childrenNamed("meta") {
		m, err := MetaFromElement(child)
		if err != nil {
			return err
		}
		p.playlist.Meta = append(p.playlist.Meta, m)
	}
	return nil
}

func (p playlistParser) insertExtensions() error {
	for _, child := range p.childrenNamed("extension") {
		e, err := ExtensionFromElement(child)
		if err != nil {
			return err
		}
		p.playlist.Extension = append(p.playlist.Extension, e)
	}
	return nil
}

func (p playlistParser) insertTrackList() error {
	children := p.childrenNamed("trackList")
	if len(children) > 1 {
		return ErrTooMany{Name: "trackList"}
	}
	if len(children) == 0 {
		return ErrMissingTrackList
	}
	trackList := children[0]
	if err := checkNonleafContent(trackList); err != nil {
		return err
	}
	for i, child := range trackList.ChildElements() {
		t, err := TrackFromElement(child)
		if err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		p.playlist.TrackList = append(p.playlist.TrackList, t)
	}
	return nil
}

// TrackFromElement builds a track from a track element, typically a
// trackList child.
func TrackFromElement(el *etree.Element) (*Track, error) {
	p := trackParser{elementParser{el: el}, NewTrack()}
	if err := p.checkRoot(); err != nil {
		return nil, err
	}
	if err := p.insertAll(); err != nil {
		return nil, err
	}
	return p.track, nil
}

type trackParser struct {
	elementParser
	track *Track
}

func (p trackParser) checkRoot() error {
	if p.el.Tag != "track" || p.el.NamespaceURI() != Namespace {
		return ErrWrongElement{Expected: "track", Got: p.el.Tag}
	}
	return checkNonleafContent(p.el)
}

func (p trackParser) insertAll() error {
	steps := []func() error{
		p.insertLocations,
		p.insertIdentifiers,
		p.insertTitle,
		p.insertCreator,
		p.insertAnnotation,
		p.insertInfo,
		p.insertImage,
		p.insertAlbum,
		p.insertTrackNum,
		p.insertDuration,
		p.insertLinks,
		p.insertMetas,
		p.insertExtensions,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// insertLocations collects every location child, trimmed, validated and
// percent-decoded. Children with no text are skipped rather than rejected.
func (p trackParser) insertLocations() error {
	for _, child := range p.childrenNamed("location") {
		text := strings.TrimSpace(child.Text())
		if text == "" {
			continue
		}
		uri, err := Urify(text)
		if err != nil {
			return err
		}
		p.track.Location = append(p.track.Location, Unquote(uri))
	}
	return nil
}

func (p trackParser) insertIdentifiers() error {
	for _, child := range p.childrenNamed("identifier") {
		text := strings.TrimSpace(child.Text())
		if text == "" {
			continue
		}
		uri, err := Urify(text)
		if err != nil {
			return err
		}
		p.track.Identifier = append(p.track.Identifier, Unquote(uri))
	}
	return nil
}

func (p trackParser) insertTitle() error {
	v, err := p.leafValue("title")
	p.track.Title = v
	return err
}

func (p trackParser) insertCreator() error {
	v, err := p.leafValue("creator")
	p.track.Creator = v
	return err
}

func (p trackParser) insertAnnotation() error {
	v, err := p.leafValue("annotation")
	p.track.Annotation = v
	return err
}

func (p trackParser) insertInfo() error {
	v, err := p.leafURIValue("info")
	p.track.Info = v
	return err
}

func (p trackParser) insertImage() error {
	v, err := p.leafURIValue("image")
	p.track.Image = v
	return err
}

func (p trackParser) insertAlbum() error {
	v, err := p.leafValue("album")
	p.track.Album = v
	return err
}

func (p trackParser) insertTrackNum() error {
	v, err := p.leafIntValue("trackNum")
	if err != nil || v == nil {
		return err
	}
	return p.track.SetTrackNum(*v)
}

func (p trackParser) insertDuration() error {
	v, err := p.leafIntValue("duration")
	if err != nil || v == nil {
		return err
	}
	return p.track.SetDuration(*v)
}

func (p trackParser) insertLinks() error {
	for _, child := range p.childrenNamed("link") {
		l, err := LinkFromElement(child)
		if err != nil {
			return err
		}
		p.track.Link = append(p.track.Link, l)
	}
	return nil
}

func (p trackParser) insertMetas() error {
	for _, child := range p.childrenNamed("meta") {
		m, err := MetaFromElement(child)
		if err != nil {
			return err
		}
		p.track.Meta = append(p.track.Meta, m)
	}
	return nil
}

func (p trackParser) insertExtensions() error {
	for _, child := range p.childrenNamed("extension") {
		e, err := ExtensionFromElement(child)
		if err != nil {
			return err
		}
		p.track.Extension = append(p.track.Extension, e)
	}
	return nil
}

// LinkFromElement builds a link from a link element. Both the rel attribute
// and the element text must be valid URIs.
func LinkFromElement(el *etree.Element) (Link, error) {
	rel := el.SelectAttr("rel")
	if rel == nil {
		return Link{}, fmt.Errorf("<link>: %w", ErrMissingRel)
	}
	relURI, err := requiredURI(rel.Value)
	if err != nil {
		return Link{}, err
	}
	if err := checkMarkup(el); err != nil {
		return Link{}, err
	}
	content, err := requiredURI(el.Text())
	if err != nil {
		return Link{}, err
	}
	return Link{Rel: relURI, Content: content}, nil
}

// MetaFromElement builds a meta from a meta element. The content is free
// text, so the markup check runs before anything else.
func MetaFromElement(el *etree.Element) (Meta, error) {
	if err := checkMarkup(el); err != nil {
		return Meta{}, err
	}
	rel := el.SelectAttr("rel")
	if rel == nil {
		return Meta{}, fmt.Errorf("<meta>: %w", ErrMissingRel)
	}
	relURI, err := requiredURI(rel.Value)
	if err != nil {
		return Meta{}, err
	}
	return Meta{Rel: relURI, Content: el.Text()}, nil
}

// ExtensionFromElement builds an extension from an extension element. Every
// attribute but application and all child elements are preserved untouched.
func ExtensionFromElement(el *etree.Element) (Extension, error) {
	app := el.SelectAttr("application")
	if app == nil {
		return Extension{}, fmt.Errorf("<extension>: %w", ErrMissingApplication)
	}
	appURI, err := requiredURI(app.Value)
	if err != nil {
		return Extension{}, err
	}
	e := NewExtension(appURI)
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == "application" {
			continue
		}
		e.Attr = append(e.Attr, a)
	}
	for _, child := range el.ChildElements() {
		e.Content = append(e.Content, child.Copy())
	}
	return e, nil
}

// AttributionFromElement builds a single attribution record from one child
// of the attribution container. Each child stands alone: a location child
// yields a location-only record, an identifier child an identifier-only one.
// Anything else is forbidden. Location text is percent-decoded, identifier
// text is kept in its escaped form.
func AttributionFromElement(el *etree.Element) (Attribution, error) {
	if el.NamespaceURI() != Namespace {
		return Attribution{}, ErrForbiddenElement{Parent: "attribution", Name: el.Tag}
	}
	switch el.Tag {
	case "location":
		uri, err := requiredURI(strings.TrimSpace(el.Text()))
		if err != nil {
			return Attribution{}, err
		}
		decoded := Unquote(uri)
		return Attribution{Location: &decoded}, nil
	case "identifier":
		uri, err := requiredURI(strings.TrimSpace(el.Text()))
		if err != nil {
			return Attribution{}, err
		}
		return Attribution{Identifier: &uri}, nil
	default:
		return Attribution{}, ErrForbiddenElement{Parent: "attribution", Name: el.Tag}
	}
}
