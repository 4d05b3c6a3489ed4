// Package fakewd provides an in-memory selenium.WebDriver for exercising the
// session and step packages without a browser. Only the commands those
// packages issue are implemented; calling anything else panics through the
// nil embedded interface.
package fakewd

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tebeka/selenium"
)

const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// Element is a fake page element.
type Element struct {
	selenium.WebElement

	ID string

	mu        sync.Mutex
	displayed bool
	clicks    int
	moves     int
}

// NewElement returns an element with the given reference id.
func NewElement(id string, displayed bool) *Element {
	return &Element{ID: id, displayed: displayed}
}

// SetDisplayed changes what IsDisplayed reports.
func (e *Element) SetDisplayed(displayed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.displayed = displayed
}

func (e *Element) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayed, nil
}

func (e *Element) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clicks++
	return nil
}

func (e *Element) MoveTo(x, y int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moves++
	return nil
}

// Clicks returns the number of Click calls.
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// Moves returns the number of MoveTo calls.
func (e *Element) Moves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves
}

func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		w3cElementKey: e.ID,
		"ELEMENT":     e.ID,
	})
}

// Script is a recorded ExecuteScript call.
type Script struct {
	Source string
	Args   []interface{}
}

type query struct{ by, value string }

type placement struct {
	el *Element
	// misses is the number of lookups that fail before the element appears.
	misses int
}

// Driver is a fake remote session.
type Driver struct {
	selenium.WebDriver

	// Caps is returned by Capabilities.
	Caps selenium.Capabilities
	// GetErr, when set, is returned by Get.
	GetErr error
	// QuitErr, when set, is returned by Quit.
	QuitErr error
	// FindErr, when set, is returned by every FindElement call.
	FindErr error

	id string

	mu      sync.Mutex
	url     string
	page    map[query]*placement
	lookups int
	scripts []Script
	buttons []string
	quits   int
	visited []string
}

// New returns a session with the given id reporting a Chrome browser.
func New(id string) *Driver {
	return &Driver{
		id: id,
		Caps: selenium.Capabilities{
			"browserName":    "chrome",
			"browserVersion": "120.0.6099.109",
		},
		page: make(map[query]*placement),
	}
}

// Place makes el findable by the (by, value) query after misses failed
// lookups.
func (d *Driver) Place(by, value string, el *Element, misses int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.page[query{by, value}] = &placement{el: el, misses: misses}
}

func (d *Driver) SessionID() string { return d.id }

func (d *Driver) Capabilities() (selenium.Capabilities, error) {
	return d.Caps, nil
}

func (d *Driver) Get(url string) error {
	if d.GetErr != nil {
		return d.GetErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	d.visited = append(d.visited, url)
	return nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	p, ok := d.page[query{by, value}]
	if !ok {
		return nil, noSuchElement(by, value)
	}
	if p.misses > 0 {
		p.misses--
		return nil, noSuchElement(by, value)
	}
	return p.el, nil
}

func noSuchElement(by, value string) error {
	return &selenium.Error{
		Err:     "no such element",
		Message: fmt.Sprintf("unable to locate element %s=%q", by, value),
	}
}

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, Script{Source: script, Args: args})
	return nil, nil
}

func (d *Driver) Click(button int) error {
	return d.record(fmt.Sprintf("click:%d", button))
}

func (d *Driver) DoubleClick() error { return d.record("doubleclick") }

func (d *Driver) ButtonDown() error { return d.record("buttondown") }

func (d *Driver) ButtonUp() error { return d.record("buttonup") }

func (d *Driver) KeyDown(keys string) error { return d.record("keydown:" + keys) }

func (d *Driver) KeyUp(keys string) error { return d.record("keyup:" + keys) }

func (d *Driver) record(action string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buttons = append(d.buttons, action)
	return nil
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quits++
	return d.QuitErr
}

// Quits returns the number of Quit calls.
func (d *Driver) Quits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quits
}

// Lookups returns the number of FindElement calls.
func (d *Driver) Lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

// Scripts returns the executed scripts in order.
func (d *Driver) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Script(nil), d.scripts...)
}

// Visited returns every URL passed to Get, in order.
func (d *Driver) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// Actions returns the legacy mouse and keyboard commands received.
func (d *Driver) Actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.buttons...)
}
