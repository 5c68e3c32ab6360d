package xspf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingApplication = errors.New("application attribute is missing")
	ErrMissingNamespace   = errors.New("playlist namespace declaration is missing")
	ErrMissingRel         = errors.New("rel attribute is missing")
	ErrMissingTrackList   = errors.New("trackList element not found")
	ErrMissingVersion     = errors.New("version attribute of playlist is missing")
)

// ErrWrongNamespace is returned when the root element is namespace-qualified,
// but not with the XSPF v1 namespace.
type ErrWrongNamespace struct {
	Namespace string
}

func (e ErrWrongNamespace) Error() string {
	return fmt.Sprintf("wrong playlist namespace: expected %q, got %q", Namespace, e.Namespace)
}

type ErrWrongRootName struct {
	Name string
}

func (e ErrWrongRootName) Error() string {
	return fmt.Sprintf("root tag name is not 'playlist', got '%s'", e.Name)
}

// ErrWrongElement is returned when a closed child set yields an element of
// the wrong kind, such as a non-track child of trackList.
type ErrWrongElement struct {
	Expected string
	Got      string
}

func (e ErrWrongElement) Error() string {
	return fmt.Sprintf("expected a '%s' element, got '%s'", e.Expected, e.Got)
}

type ErrBadVersion struct {
	Version string
}

func (e ErrBadVersion) Error() string {
	if strings.TrimSpace(e.Version) == "0" {
		return "XSPF version 0 is no longer maintained, switch to version 1"
	}
	return fmt.Sprintf("the version attribute must be 1, got %q", e.Version)
}

type ErrForbiddenAttribute struct {
	Element    string
	Attributes []string
}

func (e ErrForbiddenAttribute) Error() string {
	return fmt.Sprintf("<%s> carries forbidden attributes %v", e.Element, e.Attributes)
}

// ErrForbiddenElement is returned when a child tag appears where a closed
// set of tags is required, e.g. anything but location/identifier inside
// attribution.
type ErrForbiddenElement struct {
	Parent string
	Name   string
}

func (e ErrForbiddenElement) Error() string {
	return fmt.Sprintf("element <%s> is not allowed inside <%s>", e.Name, e.Parent)
}

type ErrTooMany struct {
	Name string
}

func (e ErrTooMany) Error() string {
	return fmt.Sprintf("got too many <%s> elements, at most one is allowed", e.Name)
}

// ErrNonleafContent is returned when an element that may only hold child
// elements carries non-whitespace text of its own.
type ErrNonleafContent struct {
	Element string
	Content string
}

func (e ErrNonleafContent) Error() string {
	return fmt.Sprintf("<%s> nonleaf content is not allowed, got %q", e.Element, e.Content)
}

// ErrMarkupInField is returned when child elements show up where plain text
// was expected, typically an unexpected HTML insertion.
type ErrMarkupInField struct {
	Element string
}

func (e ErrMarkupInField) Error() string {
	return fmt.Sprintf("got nested elements in <%s> where plain text was expected", e.Element)
}

type ErrInvalidURI struct {
	Value string
}

func (e ErrInvalidURI) Error() string {
	return fmt.Sprintf("only a valid URI is acceptable, got %q", e.Value)
}

type ErrBadDate struct {
	Value string
}

func (e ErrBadDate) Error() string {
	return fmt.Sprintf("cannot parse %q as an ISO 8601 timestamp", e.Value)
}

type ErrBadInteger struct {
	Element string
	Value   string
}

func (e ErrBadInteger) Error() string {
	return fmt.Sprintf("<%s> must contain an integer, got %q", e.Element, e.Value)
}

type ErrNegativeValue struct {
	Field string
	Value int
}

func (e ErrNegativeValue) Error() string {
	return fmt.Sprintf("%s must be a non-negative integer, got %d", e.Field, e.Value)
}

// ErrXMLSyntax wraps an error from the underlying XML reader: the input is
// not well-formed XML at all.
type ErrXMLSyntax struct {
	Err error
}

func (e ErrXMLSyntax) Error() string {
	return "malformed XML document: " + e.Err.Error()
}

func (e ErrXMLSyntax) Unwrap() error {
	return e.Err
}
