package svg

import "testing"

func TestColor(t *testing.T) {
	tests := map[string]string{
		"":        "none",
		"None":    "none",
		"0":       "rgb(0,0,0)",
		"1":       "rgb(255,255,255)",
		"0.5":     "rgb(128,128,128)",
		" red ":   "red",
		"#ff0000": "#ff0000",
		"2":       "2",
	}
	for in, want := range tests {
		if got := Color(in); got != want {
			t.Errorf("color %q, expected %v got %v", in, want, got)
		}
	}
}

func TestDashArray(t *testing.T) {
	tests := map[string]struct {
		dash string
		ok   bool
	}{
		"":        {ok: true},
		"solid":   {ok: true},
		"--":      {dash: "6,4", ok: true},
		"DashDot": {dash: "6,3,1,3", ok: true},
		":":       {dash: "1,3", ok: true},
		"wavy":    {},
	}
	for in, tc := range tests {
		dash, ok := DashArray(in)
		if dash != tc.dash || ok != tc.ok {
			t.Errorf("dash %q, expected %q %v got %q %v", in, tc.dash, tc.ok, dash, ok)
		}
	}
}

func TestAttr(t *testing.T) {
	got := Attr(map[string]string{"viewBox": "0 0 1 1", "fill": "none"}, "  data-x=\"1\" ")
	want := `fill="none" viewBox="0 0 1 1" data-x="1"`
	if got != want {
		t.Errorf("attr, expected %v got %v", want, got)
	}

	var sb StringBuilder
	sb.WriteEmptyTag("path", `d="M0 0"`)
	if sb.String() != "<path d=\"M0 0\"/>\n" {
		t.Errorf("empty tag, got %q", sb.String())
	}
}
