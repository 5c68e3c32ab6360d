package xspf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const declUTF8 = `<?xml version="1.0" encoding="UTF-8"?>`

func parseString(t *testing.T, src string) (*Playlist, error) {
	t.Helper()
	return Parse(strings.NewReader(src))
}

func TestParseRootValidation(t *testing.T) {
	inputs := map[string]struct {
		src   string
		check func(t *testing.T, err error)
	}{
		"missing namespace": {
			src: declUTF8 + `<playlist version="1"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingNamespace)
			},
		},
		"wrong namespace": {
			src: declUTF8 + `<playlist version="1" xmlns="http://example.com/ns/"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrWrongNamespace
				require.ErrorAs(t, err, &e)
				require.Equal(t, "http://example.com/ns/", e.Namespace)
			},
		},
		"wrong root name": {
			src: declUTF8 + `<album version="1" xmlns="http://xspf.org/ns/0/"><trackList/></album>`,
			check: func(t *testing.T, err error) {
				var e ErrWrongRootName
				require.ErrorAs(t, err, &e)
				require.Equal(t, "album", e.Name)
			},
		},
		"missing version": {
			src: declUTF8 + `<playlist xmlns="http://xspf.org/ns/0/"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingVersion)
			},
		},
		"version zero": {
			src: declUTF8 + `<playlist version="0" xmlns="http://xspf.org/ns/0/"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrBadVersion
				require.ErrorAs(t, err, &e)
				require.Contains(t, e.Error(), "version 0")
			},
		},
		"version two": {
			src: declUTF8 + `<playlist version="2" xmlns="http://xspf.org/ns/0/"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrBadVersion
				require.ErrorAs(t, err, &e)
				require.Equal(t, "2", e.Version)
			},
		},
		"non-integer version": {
			src: declUTF8 + `<playlist version="one" xmlns="http://xspf.org/ns/0/"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrBadVersion
				require.ErrorAs(t, err, &e)
			},
		},
		"forbidden root attribute": {
			src: declUTF8 + `<playlist version="1" xmlns="http://xspf.org/ns/0/" mood="great"><trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrForbiddenAttribute
				require.ErrorAs(t, err, &e)
				require.Equal(t, []string{"mood"}, e.Attributes)
			},
		},
		"nonleaf root content": {
			src: declUTF8 + `<playlist version="1" xmlns="http://xspf.org/ns/0/">stray<trackList/></playlist>`,
			check: func(t *testing.T, err error) {
				var e ErrNonleafContent
				require.ErrorAs(t, err, &e)
				require.Equal(t, "playlist", e.Element)
			},
		},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := parseString(t, data.src)
			require.Error(t, err, "parse should fail")
			data.check(t, err)
		})
	}
}

func playlistDoc(body string) string {
	return declUTF8 + `<playlist version="1" xmlns="http://xspf.org/ns/0/">` + body + `</playlist>`
}

func TestParseChildValidation(t *testing.T) {
	inputs := map[string]struct {
		src   string
		check func(t *testing.T, err error)
	}{
		"two titles": {
			src: playlistDoc(`<title>a</title><title>b</title><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrTooMany
				require.ErrorAs(t, err, &e)
				require.Equal(t, "title", e.Name)
			},
		},
		"two trackLists": {
			src: playlistDoc(`<trackList/><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrTooMany
				require.ErrorAs(t, err, &e)
				require.Equal(t, "trackList", e.Name)
			},
		},
		"missing trackList": {
			src: playlistDoc(`<title>a</title>`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingTrackList)
			},
		},
		"markup in title": {
			src: playlistDoc(`<title>a<b>bold</b></title><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrMarkupInField
				require.ErrorAs(t, err, &e)
				require.Equal(t, "title", e.Element)
			},
		},
		"attribute on title": {
			src: playlistDoc(`<title lang="en">a</title><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrForbiddenAttribute
				require.ErrorAs(t, err, &e)
			},
		},
		"markup in meta": {
			src: playlistDoc(`<meta rel="http://example.com/rel"><b>x</b></meta><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrMarkupInField
				require.ErrorAs(t, err, &e)
				require.Equal(t, "meta", e.Element)
			},
		},
		"link missing rel": {
			src: playlistDoc(`<link>http://example.com/</link><trackList/>`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingRel)
			},
		},
		"link empty content": {
			src: playlistDoc(`<link rel="http://example.com/rel"></link><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrInvalidURI
				require.ErrorAs(t, err, &e)
			},
		},
		"meta missing rel": {
			src: playlistDoc(`<meta>value</meta><trackList/>`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingRel)
			},
		},
		"extension missing application": {
			src: playlistDoc(`<extension><x/></extension><trackList/>`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrMissingApplication)
			},
		},
		"foreign element in attribution": {
			src: playlistDoc(`<attribution><author>me</author></attribution><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrForbiddenElement
				require.ErrorAs(t, err, &e)
				require.Equal(t, "attribution", e.Parent)
				require.Equal(t, "author", e.Name)
			},
		},
		"text in attribution": {
			src: playlistDoc(`<attribution>oops<location>http://example.com/</location></attribution><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrNonleafContent
				require.ErrorAs(t, err, &e)
			},
		},
		"text in trackList": {
			src: playlistDoc(`<trackList>oops<track/></trackList>`),
			check: func(t *testing.T, err error) {
				var e ErrNonleafContent
				require.ErrorAs(t, err, &e)
				require.Equal(t, "trackList", e.Element)
			},
		},
		"non-track in trackList": {
			src: playlistDoc(`<trackList><song/></trackList>`),
			check: func(t *testing.T, err error) {
				var e ErrWrongElement
				require.ErrorAs(t, err, &e)
				require.Equal(t, "track", e.Expected)
				require.Equal(t, "song", e.Got)
				require.Contains(t, err.Error(), "track 0:")
			},
		},
		"negative duration": {
			src: playlistDoc(`<trackList><track><duration>-1</duration></track></trackList>`),
			check: func(t *testing.T, err error) {
				var e ErrNegativeValue
				require.ErrorAs(t, err, &e)
				require.Equal(t, "duration", e.Field)
			},
		},
		"non-integer trackNum": {
			src: playlistDoc(`<trackList><track><trackNum>first</trackNum></track></trackList>`),
			check: func(t *testing.T, err error) {
				var e ErrBadInteger
				require.ErrorAs(t, err, &e)
				require.Equal(t, "trackNum", e.Element)
			},
		},
		"bad date": {
			src: playlistDoc(`<date>yesterday</date><trackList/>`),
			check: func(t *testing.T, err error) {
				var e ErrBadDate
				require.ErrorAs(t, err, &e)
				require.Equal(t, "yesterday", e.Value)
			},
		},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := parseString(t, data.src)
			require.Error(t, err, "parse should fail")
			data.check(t, err)
		})
	}
}

func TestParseMalformedXML(t *testing.T) {
	for _, src := range []string{`<playlist`, ``, `not xml at all`} {
		_, err := parseString(t, src)
		require.Error(t, err, "parse should fail for %q", src)
		var e ErrXMLSyntax
		require.ErrorAs(t, err, &e, "error is classified as a syntax failure for %q", src)
	}
}

func TestParseMinimal(t *testing.T) {
	p, err := parseString(t, playlistDoc(`<trackList/>`))
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
	require.Nil(t, p.Title)
	require.Nil(t, p.Location)
}

func TestParseFull(t *testing.T) {
	src := playlistDoc(`
		<title>Two Songs</title>
		<creator>Tim</creator>
		<annotation>A short list.</annotation>
		<info>http://example.com/about</info>
		<location>http://example.com/my%20lists/two.xspf</location>
		<identifier>urn:uuid:7a1b%20raw</identifier>
		<image>http://example.com/cover.png</image>
		<license>http://creativecommons.org/licenses/by/4.0/</license>
		<date>2005-01-08T17:10:47-05:00</date>
		<attribution>
			<location>http://example.com/original%20list.xspf</location>
			<identifier>urn:uuid:12af</identifier>
		</attribution>
		<link rel="http://example.com/rel">http://example.com/target</link>
		<meta rel="http://example.com/genre">jazz</meta>
		<extension application="http://example.com/app"><clip start="0"/></extension>
		<trackList>
			<track>
				<location>
					http://example.com/my%20songs/one.mp3
				</location>
				<title>One</title>
				<album>Numbers</album>
				<trackNum>1</trackNum>
				<duration>183000</duration>
				<meta rel="http://example.com/bpm">120</meta>
			</track>
			<track/>
		</trackList>`)

	p, err := parseString(t, src)
	require.NoError(t, err, "parse should succeed")

	require.Equal(t, "Two Songs", *p.Title)
	require.Equal(t, "Tim", *p.Creator)
	require.Equal(t, "A short list.", *p.Annotation)
	require.Equal(t, URI("http://example.com/about"), *p.Info)
	require.Equal(t, URI("http://example.com/my lists/two.xspf"), *p.Location,
		"playlist location is percent-decoded")
	require.Equal(t, URI("urn:uuid:7a1b%20raw"), *p.Identifier,
		"playlist identifier keeps its escaped form")
	require.Equal(t, URI("http://creativecommons.org/licenses/by/4.0/"), *p.License)

	expectedDate := time.Date(2005, 1, 8, 17, 10, 47, 0, time.FixedZone("", -5*3600))
	require.True(t, p.Date.Equal(expectedDate), "date parsed with offset, got %s", p.Date)

	require.Len(t, p.Attribution, 2, "each attribution child is its own record")
	require.Equal(t, URI("http://example.com/original list.xspf"), *p.Attribution[0].Location)
	require.Nil(t, p.Attribution[0].Identifier)
	require.Equal(t, URI("urn:uuid:12af"), *p.Attribution[1].Identifier)

	require.Len(t, p.Link, 1)
	require.Equal(t, URI("http://example.com/target"), p.Link[0].Content)
	require.Len(t, p.Meta, 1)
	require.Equal(t, "jazz", p.Meta[0].Content)
	require.Len(t, p.Extension, 1)
	require.Equal(t, URI("http://example.com/app"), p.Extension[0].Application)
	require.Len(t, p.Extension[0].Content, 1)

	require.Equal(t, 2, p.Len())
	track := p.TrackList[0]
	require.Equal(t, []URI{"http://example.com/my songs/one.mp3"}, track.Location,
		"track location is trimmed and percent-decoded")
	require.Equal(t, "One", *track.Title)
	require.Equal(t, "Numbers", *track.Album)
	num, ok := track.TrackNum()
	require.True(t, ok)
	require.Equal(t, 1, num)
	dur, ok := track.Duration()
	require.True(t, ok)
	require.Equal(t, 183000, dur)
	require.Len(t, track.Meta, 1)

	empty := p.TrackList[1]
	require.Empty(t, empty.Location)
	require.Nil(t, empty.Title)
}

func TestParseDateVariants(t *testing.T) {
	inputs := map[string]time.Time{
		"2004-11-01T12:20:00Z":             time.Date(2004, 11, 1, 12, 20, 0, 0, time.UTC),
		"2004-11-01T12:20:00.123456+00:00": time.Date(2004, 11, 1, 12, 20, 0, 123456000, time.UTC),
		"2004-11-01T12:20:00":              time.Date(2004, 11, 1, 12, 20, 0, 0, time.UTC),
		"2004-11-01":                       time.Date(2004, 11, 1, 0, 0, 0, 0, time.UTC),
		"  2004-11-01T12:20:00Z  ":         time.Date(2004, 11, 1, 12, 20, 0, 0, time.UTC),
	}

	for input, expected := range inputs {
		p, err := parseString(t, playlistDoc(`<date>`+input+`</date><trackList/>`))
		require.NoError(t, err, "date %q should parse", input)
		require.True(t, p.Date.Equal(expected), "date %q parsed to %s", input, p.Date)
	}
}

func TestParseEmptyLeafLeavesFieldUnset(t *testing.T) {
	p, err := parseString(t, playlistDoc(`<title></title><location></location><trackList/>`))
	require.NoError(t, err)
	require.Nil(t, p.Title, "empty title text leaves the field unset")
	require.Nil(t, p.Location, "empty location text leaves the field unset")
}

func TestParseAttributionDecoding(t *testing.T) {
	p, err := parseString(t, playlistDoc(
		`<attribution>`+
			`<location>http://example.com/old%20list.xspf</location>`+
			`<identifier>urn:uuid:7a1b%20raw</identifier>`+
			`</attribution><trackList/>`))
	require.NoError(t, err)
	require.Len(t, p.Attribution, 2)
	require.Equal(t, URI("http://example.com/old list.xspf"), *p.Attribution[0].Location,
		"attribution location is percent-decoded")
	require.Equal(t, URI("urn:uuid:7a1b%20raw"), *p.Attribution[1].Identifier,
		"attribution identifier keeps its escaped form")
}

func TestParseUnknownChildrenIgnored(t *testing.T) {
	p, err := parseString(t, playlistDoc(`<somethingElse>x</somethingElse><trackList/>`))
	require.NoError(t, err, "unknown namespace-qualified children are ignored")
	require.Equal(t, 0, p.Len())
}
