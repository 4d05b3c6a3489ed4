package actions

import (
	"context"
	"errors"
	"time"

	"github.com/tebeka/selenium"
)

// LegacyDriver is the part of selenium.WebDriver used to replay actions on
// sessions that do not support the W3C actions command.
type LegacyDriver interface {
	Click(button int) error
	DoubleClick() error
	ButtonDown() error
	ButtonUp() error
	KeyDown(keys string) error
	KeyUp(keys string) error
}

// ErrNotSupported is returned for actions a legacy session cannot replay.
var ErrNotSupported = errors.New("action not supported by legacy sessions")

// Chain queues input actions and performs them together. A Chain is bound to
// a single session and is not safe for concurrent use.
type Chain struct {
	performer Performer
	pointer   *PointerInput
	keys      *KeyInput

	legacy LegacyDriver
	steps  []func() error

	// err is the first error met while queueing; Perform returns it.
	err error
}

// New returns a chain that sends W3C action sequences through p.
func New(p Performer) *Chain {
	return &Chain{
		performer: p,
		pointer:   NewPointerInput(Mouse, ""),
		keys:      NewKeyInput(""),
	}
}

// NewLegacy returns a chain that replays actions one command at a time on d.
func NewLegacy(d LegacyDriver) *Chain {
	return &Chain{legacy: d}
}

// W3C reports whether the chain sends W3C action sequences.
func (c *Chain) W3C() bool {
	return c.performer != nil
}

func (c *Chain) fail(err error) *Chain {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Chain) queue(f func() error) {
	c.steps = append(c.steps, f)
}

// MoveToElement moves the pointer to the centre of el.
func (c *Chain) MoveToElement(el selenium.WebElement) *Chain {
	return c.MoveToElementWithOffset(el, 0, 0)
}

// MoveToElementWithOffset moves the pointer to the given offset from the
// centre of el.
func (c *Chain) MoveToElementWithOffset(el selenium.WebElement, x, y int) *Chain {
	if !c.W3C() {
		if el == nil {
			return c.fail(errors.New("nil element"))
		}
		c.queue(func() error { return el.MoveTo(x, y) })
		return c
	}
	ref, err := ElementReference(el)
	if err != nil {
		return c.fail(err)
	}
	c.pointer.move(DefaultMoveDuration, x, y, ref)
	c.keys.pause(0)
	return c
}

// MoveByOffset moves the pointer relative to its current position.
func (c *Chain) MoveByOffset(x, y int) *Chain {
	if !c.W3C() {
		return c.fail(ErrNotSupported)
	}
	c.pointer.move(DefaultMoveDuration, x, y, OriginPointer)
	c.keys.pause(0)
	return c
}

// Click clicks the left button, first moving to el when it is not nil.
func (c *Chain) Click(el selenium.WebElement) *Chain {
	return c.click(el, LeftButton)
}

// ContextClick clicks the right button, first moving to el when it is not
// nil.
func (c *Chain) ContextClick(el selenium.WebElement) *Chain {
	return c.click(el, RightButton)
}

func (c *Chain) click(el selenium.WebElement, b MouseButton) *Chain {
	if el != nil {
		c.MoveToElement(el)
	}
	if !c.W3C() {
		c.queue(func() error { return c.legacy.Click(int(b)) })
		return c
	}
	c.pointer.down(b)
	c.pointer.up(b)
	c.keys.pause(0)
	c.keys.pause(0)
	return c
}

// DoubleClick double-clicks the left button, first moving to el when it is
// not nil.
func (c *Chain) DoubleClick(el selenium.WebElement) *Chain {
	if el != nil {
		c.MoveToElement(el)
	}
	if !c.W3C() {
		c.queue(c.legacy.DoubleClick)
		return c
	}
	for i := 0; i < 2; i++ {
		c.pointer.down(LeftButton)
		c.pointer.up(LeftButton)
		c.keys.pause(0)
		c.keys.pause(0)
	}
	return c
}

// ClickAndHold presses the left button without releasing it, first moving to
// el when it is not nil.
func (c *Chain) ClickAndHold(el selenium.WebElement) *Chain {
	if el != nil {
		c.MoveToElement(el)
	}
	if !c.W3C() {
		c.queue(c.legacy.ButtonDown)
		return c
	}
	c.pointer.down(LeftButton)
	c.keys.pause(0)
	return c
}

// Release releases the left button, first moving to el when it is not nil.
func (c *Chain) Release(el selenium.WebElement) *Chain {
	if el != nil {
		c.MoveToElement(el)
	}
	if !c.W3C() {
		c.queue(c.legacy.ButtonUp)
		return c
	}
	c.pointer.up(LeftButton)
	c.keys.pause(0)
	return c
}

// DragAndDrop holds the left button on source and releases it on target.
func (c *Chain) DragAndDrop(source, target selenium.WebElement) *Chain {
	return c.ClickAndHold(source).Release(target)
}

// KeyDown presses key without releasing it.
func (c *Chain) KeyDown(key string) *Chain {
	if !c.W3C() {
		c.queue(func() error { return c.legacy.KeyDown(key) })
		return c
	}
	c.keys.keyDown(key)
	c.pointer.pause(0)
	return c
}

// KeyUp releases key.
func (c *Chain) KeyUp(key string) *Chain {
	if !c.W3C() {
		c.queue(func() error { return c.legacy.KeyUp(key) })
		return c
	}
	c.keys.keyUp(key)
	c.pointer.pause(0)
	return c
}

// SendKeys presses and releases every character of text in turn.
func (c *Chain) SendKeys(text string) *Chain {
	for _, r := range text {
		c.KeyDown(string(r))
		c.KeyUp(string(r))
	}
	return c
}

// Pause waits for d on every input source.
func (c *Chain) Pause(d time.Duration) *Chain {
	if !c.W3C() {
		c.queue(func() error {
			time.Sleep(d)
			return nil
		})
		return c
	}
	c.pointer.pause(d)
	c.keys.pause(d)
	return c
}

// Encode returns the W3C payload for the queued actions. Sources without
// actions are omitted.
func (c *Chain) Encode() map[string]interface{} {
	sources := []interface{}{}
	if c.W3C() {
		if c.pointer.Len() > 0 {
			sources = append(sources, c.pointer.Encode())
		}
		if c.keys.Len() > 0 {
			sources = append(sources, c.keys.Encode())
		}
	}
	return map[string]interface{}{"actions": sources}
}

// Perform runs the queued actions and empties the queue.
func (c *Chain) Perform(ctx context.Context) error {
	defer c.clear()
	if c.err != nil {
		return c.err
	}
	if !c.W3C() {
		for _, step := range c.steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	}
	if c.pointer.Len() == 0 && c.keys.Len() == 0 {
		return nil
	}
	return c.performer.PerformActions(ctx, c.Encode())
}

// Reset empties the queue and, on W3C sessions, releases every held key and
// button.
func (c *Chain) Reset(ctx context.Context) error {
	c.clear()
	if !c.W3C() {
		return nil
	}
	return c.performer.ReleaseActions(ctx)
}

func (c *Chain) clear() {
	c.err = nil
	c.steps = nil
	if c.W3C() {
		c.pointer.clear()
		c.keys.clear()
	}
}
