package svg

import "fmt"

// ErrUnsupportedStyle is returned for a style value the svg backend can not draw.
type ErrUnsupportedStyle struct {
	Key   string
	Value string
}

func (err ErrUnsupportedStyle) Error() string {
	return fmt.Sprintf("unsupported value %q for style %v", err.Value, err.Key)
}
