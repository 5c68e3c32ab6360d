// Package xspf implements the XML Shareable Playlist Format version 1
// (https://xspf.org/xspf-v1.html): an in-memory entity model for playlists
// and tracks, a canonical serializer, and a validating parser that rejects
// documents violating the format's structural and semantic rules.
//
// The generic XML tree handling is delegated to github.com/beevik/etree;
// this package only implements the XSPF-specific rules on top of it.
package xspf

// Version is the library version, reported by cmd/xspf-lint.
const Version = "1.0.0"

// Namespace is the one and only XML namespace of XSPF version 1 documents.
const Namespace = "http://xspf.org/ns/0/"

// URI is a semantic alias for strings constrained to the RFC 3986 uric
// character class. Fields typed URI are run through Urify before they are
// accepted by the parser; see uri.go.
type URI = string
