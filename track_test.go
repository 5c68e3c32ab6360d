package xspf

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func TestTrackNum(t *testing.T) {
	track := NewTrack()

	_, ok := track.TrackNum()
	require.False(t, ok, "trackNum starts unset")

	err := track.SetTrackNum(-1)
	require.Error(t, err, "negative trackNum is rejected")
	var negative ErrNegativeValue
	require.ErrorAs(t, err, &negative)
	require.Equal(t, "trackNum", negative.Field)

	require.NoError(t, track.SetTrackNum(0), "zero is a valid trackNum")
	v, ok := track.TrackNum()
	require.True(t, ok)
	require.Equal(t, 0, v)

	track.UnsetTrackNum()
	_, ok = track.TrackNum()
	require.False(t, ok, "trackNum unset again")
}

func TestDuration(t *testing.T) {
	track := NewTrack()

	err := track.SetDuration(-100)
	require.Error(t, err, "negative duration is rejected")

	require.NoError(t, track.SetDuration(120000))
	v, ok := track.Duration()
	require.True(t, ok)
	require.Equal(t, 120000, v)
}

func TestTrackXMLString(t *testing.T) {
	track := NewTrack()
	track.Location = append(track.Location, "http://example.com/song.mp3")
	track.Identifier = append(track.Identifier, "magnet:?xt=urn:sha1:YNCKHTQCWBTRNJIV4WNAE52SJUQCZO5C")
	title := "Some Title"
	track.Title = &title
	album := "Some Album"
	track.Album = &album
	require.NoError(t, track.SetTrackNum(1))
	require.NoError(t, track.SetDuration(120000))
	track.Link = append(track.Link, NewLink("http://example.com/rel", "http://example.com/body"))
	track.Meta = append(track.Meta, NewMeta("http://example.com/rel", "body"))

	s, err := track.XMLString()
	require.NoError(t, err, "serialization should succeed")
	require.Equal(t,
		`<track>`+
			`<location>http://example.com/song.mp3</location>`+
			`<identifier>magnet:?xt=urn:sha1:YNCKHTQCWBTRNJIV4WNAE52SJUQCZO5C</identifier>`+
			`<title>Some Title</title>`+
			`<album>Some Album</album>`+
			`<trackNum>1</trackNum>`+
			`<duration>120000</duration>`+
			`<link rel="http://example.com/rel">http://example.com/body</link>`+
			`<meta rel="http://example.com/rel">body</meta>`+
			`</track>`,
		s, "canonical track serialization")
}

func TestTrackLocationQuoting(t *testing.T) {
	track := NewTrack()
	track.Location = append(track.Location, "http://example.com/my tracks/one.mp3")

	s, err := track.XMLString()
	require.NoError(t, err)
	require.Contains(t, s, "<location>http://example.com/my%20tracks/one.mp3</location>",
		"embedded space is escaped on write")
}

func TestTrackExtension(t *testing.T) {
	ext := NewExtension("http://example.com/app")
	ext.Attr = append(ext.Attr, etree.Attr{Key: "version", Value: "2"})
	child := etree.NewElement("cl")
	child.SetText("data")
	ext.Content = append(ext.Content, child)

	track := NewTrack()
	track.Extension = append(track.Extension, ext)

	s, err := track.XMLString()
	require.NoError(t, err)
	require.Equal(t,
		`<track><extension application="http://example.com/app" version="2"><cl>data</cl></extension></track>`,
		s, "extension keeps extra attributes and opaque content")

	// serializing must not consume the extension content
	s2, err := track.XMLString()
	require.NoError(t, err)
	require.Equal(t, s, s2, "serialization is repeatable")
}
