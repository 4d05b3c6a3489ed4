package actions

import (
	"encoding/json"
	"fmt"

	"github.com/tebeka/selenium"
)

// ElementReference returns the W3C reference to el, suitable as a pointer
// move origin or a script argument.
func ElementReference(el selenium.WebElement) (map[string]string, error) {
	if el == nil {
		return nil, fmt.Errorf("nil element")
	}
	buf, err := json.Marshal(el)
	if err != nil {
		return nil, fmt.Errorf("encoding element reference: %w", err)
	}
	var ids map[string]string
	if err := json.Unmarshal(buf, &ids); err != nil {
		return nil, fmt.Errorf("decoding element reference %s: %w", buf, err)
	}
	id := ids[webElementKey]
	if id == "" {
		id = ids[legacyElementKey]
	}
	if id == "" {
		return nil, fmt.Errorf("element reference %s has no identifier", buf)
	}
	return map[string]string{webElementKey: id}, nil
}
