package svg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Attr renders attrs as svg attributes, sorted by name, followed by extra.
func Attr(attrs map[string]string, extra string) string {
	pairs := make([]string, 0, len(attrs))
	for k, v := range attrs {
		pairs = append(pairs, fmt.Sprintf(`%v="%v"`, k, v))
	}
	sort.Strings(pairs)
	extra = strings.TrimSpace(extra)
	if extra != "" {
		pairs = append(pairs, extra)
	}
	return strings.Join(pairs, " ")
}

// StringBuilder writes nested svg tags.
type StringBuilder struct {
	strings.Builder
}

// WriteTag writes tag with attr, with fn writing the body. The tag is
// always closed, even when fn fails.
func (s *StringBuilder) WriteTag(tag string, attr string, fn func(*StringBuilder) error) error {
	s.WriteRune('<')
	s.WriteString(tag)
	if attr != "" {
		s.WriteRune(' ')
		s.WriteString(attr)
	}
	s.WriteString(">\n")

	var err error
	if fn != nil {
		err = fn(s)
	}

	s.WriteString("\n</")
	s.WriteString(tag)
	s.WriteString(">\n")
	return err
}

// WriteEmptyTag writes a self closing tag.
func (s *StringBuilder) WriteEmptyTag(tag string, attr string) {
	s.WriteRune('<')
	s.WriteString(tag)
	s.WriteRune(' ')
	s.WriteString(attr)
	s.WriteString("/>\n")
}

// Color converts a backend color to svg. A bare number in 0..1 is a gray level.
func Color(c string) string {
	c = strings.TrimSpace(c)
	if c == "" || strings.EqualFold(c, "none") {
		return "none"
	}
	if v, err := strconv.ParseFloat(c, 64); err == nil && v >= 0 && v <= 1 {
		g := int(v*255 + 0.5)
		return fmt.Sprintf("rgb(%d,%d,%d)", g, g, g)
	}
	return c
}

var dashes = map[string]string{
	"":        "",
	"-":       "",
	"solid":   "",
	"--":      "6,4",
	"dashed":  "6,4",
	":":       "1,3",
	"dotted":  "1,3",
	"-.":      "6,3,1,3",
	"dashdot": "6,3,1,3",
}

// DashArray returns the stroke-dasharray for a line style name.
func DashArray(style string) (string, bool) {
	d, ok := dashes[strings.ToLower(style)]
	return d, ok
}
