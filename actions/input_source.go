package actions

import (
	"time"

	"github.com/google/uuid"
)

// item is one encoded action of an input source.
type item map[string]interface{}

type inputSource struct {
	id    string
	items []item
}

func newInputSource(id string) inputSource {
	if id == "" {
		id = uuid.NewString()
	}
	return inputSource{id: id}
}

// ID returns the source identifier sent to the remote end.
func (s *inputSource) ID() string {
	return s.id
}

// Len returns the number of queued actions.
func (s *inputSource) Len() int {
	return len(s.items)
}

func (s *inputSource) add(it item) {
	s.items = append(s.items, it)
}

func (s *inputSource) pause(d time.Duration) {
	s.add(item{"type": "pause", "duration": millis(d)})
}

func (s *inputSource) clear() {
	s.items = s.items[:0]
}

func (s *inputSource) encodedItems() []item {
	out := make([]item, len(s.items))
	copy(out, s.items)
	return out
}

// KeyInput is a keyboard input source.
type KeyInput struct {
	inputSource
}

// NewKeyInput returns a keyboard source. An empty id is replaced by a random
// one.
func NewKeyInput(id string) *KeyInput {
	return &KeyInput{inputSource: newInputSource(id)}
}

func (k *KeyInput) keyDown(key string) {
	k.add(item{"type": "keyDown", "value": key})
}

func (k *KeyInput) keyUp(key string) {
	k.add(item{"type": "keyUp", "value": key})
}

// Encode returns the W3C representation of the source and its actions.
func (k *KeyInput) Encode() map[string]interface{} {
	return map[string]interface{}{
		"type":    SourceKey,
		"id":      k.id,
		"actions": k.encodedItems(),
	}
}

// PointerInput is a pointer input source.
type PointerInput struct {
	inputSource
	kind PointerKind
}

// NewPointerInput returns a pointer source of the given kind. An empty id is
// replaced by a random one; an unknown kind falls back to Mouse.
func NewPointerInput(kind PointerKind, id string) *PointerInput {
	if !kind.valid() {
		kind = Mouse
	}
	return &PointerInput{inputSource: newInputSource(id), kind: kind}
}

// Kind returns the pointer kind.
func (p *PointerInput) Kind() PointerKind {
	return p.kind
}

// move queues a pointer move. origin is OriginViewport, OriginPointer or an
// element reference.
func (p *PointerInput) move(d time.Duration, x, y int, origin interface{}) {
	p.add(item{
		"type":     "pointerMove",
		"duration": millis(d),
		"x":        x,
		"y":        y,
		"origin":   origin,
	})
}

func (p *PointerInput) down(b MouseButton) {
	p.add(item{"type": "pointerDown", "duration": 0, "button": int(b)})
}

func (p *PointerInput) up(b MouseButton) {
	p.add(item{"type": "pointerUp", "duration": 0, "button": int(b)})
}

// Encode returns the W3C representation of the source and its actions.
func (p *PointerInput) Encode() map[string]interface{} {
	return map[string]interface{}{
		"type":       SourcePointer,
		"id":         p.id,
		"parameters": map[string]string{"pointerType": string(p.kind)},
		"actions":    p.encodedItems(),
	}
}
