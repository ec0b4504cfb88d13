package grid

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/tegola/dict"
)

// DefaultLineStyle is used by grids that do not set a style.
var DefaultLineStyle = render.LineStyle{
	FaceColor: "none",
	EdgeColor: "0.2",
	Width:     0.5,
	ZOrder:    100,
}

// DefaultTextStyle is used by labels that do not set a style.
var DefaultTextStyle = render.TextStyle{
	Color:    "black",
	FontSize: 10,
	ZOrder:   100,
}

// colorValue reads a color, which config files may give as a bare gray level number.
func colorValue(props dict.Dict, key string) (string, error) {
	if f, ok := number(props[key]); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return props.String(key, nil)
}

func sortedKeys(props dict.Dict) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applyLineStyle returns style updated with props. Keys follow the usual
// plotting aliases: c, ec, fc, lw, ls.
func applyLineStyle(style render.LineStyle, props dict.Dict) (render.LineStyle, error) {
	for _, key := range sortedKeys(props) {
		var err error
		switch key {
		case "color", "c", "edgecolor", "ec":
			style.EdgeColor, err = colorValue(props, key)
		case "facecolor", "fc":
			style.FaceColor, err = colorValue(props, key)
		case "linewidth", "lw":
			style.Width, err = props.Float(key, nil)
			if err == nil && style.Width < 0 {
				return style, ErrInvalidLineStyle{Key: key, Err: fmt.Errorf("negative width %v", style.Width)}
			}
		case "linestyle", "ls":
			style.Dash, err = props.String(key, nil)
		case "alpha":
			style.Alpha, err = props.Float(key, nil)
		case "zorder":
			style.ZOrder, err = props.Int(key, nil)
		default:
			return style, ErrInvalidLineStyle{Key: key}
		}
		if err != nil {
			return style, ErrInvalidLineStyle{Key: key, Err: err}
		}
	}
	return style, nil
}

// applyTextStyle returns style updated with props.
func applyTextStyle(style render.TextStyle, props dict.Dict) (render.TextStyle, error) {
	for _, key := range sortedKeys(props) {
		var err error
		switch key {
		case "color", "c":
			style.Color, err = colorValue(props, key)
		case "fontsize", "size":
			style.FontSize, err = props.Float(key, nil)
		case "fontfamily", "family":
			style.FontFamily, err = props.String(key, nil)
		case "fontweight", "weight":
			style.Weight, err = props.String(key, nil)
		case "zorder":
			style.ZOrder, err = props.Int(key, nil)
		default:
			return style, ErrInvalidTextStyle{Key: key}
		}
		if err != nil {
			return style, ErrInvalidTextStyle{Key: key, Err: err}
		}
	}
	return style, nil
}
