// Package elements provides the element repository: symbolic element keys
// mapped to browser locators, loaded once from JSON definition files.
package elements

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Type is the strategy a Locator uses to find an element, spelled the way it
// appears in element definition files.
type Type string

// The valid locator types.
const (
	CSS             Type = "css"
	Name            Type = "name"
	ID              Type = "id"
	XPath           Type = "xpath"
	LinkText        Type = "linkText"
	PartialLinkText Type = "partialLinkText"
)

// Types lists every valid locator type.
var Types = []Type{CSS, Name, ID, XPath, LinkText, PartialLinkText}

// Valid reports whether t is one of the known locator types.
func (t Type) Valid() bool {
	_, ok := strategies[t]
	return ok
}

// strategies maps each locator type onto the WebDriver search strategy.
var strategies = map[Type]string{
	CSS:             selenium.ByCSSSelector,
	Name:            selenium.ByName,
	ID:              selenium.ByID,
	XPath:           selenium.ByXPATH,
	LinkText:        selenium.ByLinkText,
	PartialLinkText: selenium.ByPartialLinkText,
}

// Locator is one named, addressable UI element. The JSON form is an object
// with string fields "key", "type" and "value".
type Locator struct {
	// Key is the symbolic, case-sensitive name steps refer to.
	Key string `json:"key"`
	// Type selects how Value is interpreted.
	Type Type `json:"type"`
	// Value is the selector expression appropriate to Type.
	Value string `json:"value"`
}

func (l Locator) String() string {
	return fmt.Sprintf("%s(%s=%q)", l.Key, l.Type, l.Value)
}

// Query is a browser search: a WebDriver strategy and its argument.
type Query struct {
	By    string
	Value string
}

// Valid reports whether q names a search strategy. The zero Query, produced
// for unknown locator types, is not valid.
func (q Query) Valid() bool {
	return q.By != ""
}

func (q Query) String() string {
	if !q.Valid() {
		return "<invalid query>"
	}
	return fmt.Sprintf("%s %q", q.By, q.Value)
}

// Query translates the locator into a browser search. Unknown types yield the
// zero Query.
func (l Locator) Query() Query {
	by, ok := strategies[l.Type]
	if !ok {
		return Query{}
	}
	return Query{By: by, Value: l.Value}
}
