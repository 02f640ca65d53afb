package automation

import (
	"fmt"
	"strings"
)

// Args is an ordered positional argument list for an automation call.
//
// The first element is usually a "NAME:<name>" marker. Properties follow as
// "Key:=" strings each immediately followed by the value.
type Args []any

// NewArgs starts an argument list with a NAME marker.
func NewArgs(name string) Args {
	return Args{"NAME:" + name}
}

// Prop appends a single key/value property.
func (a Args) Prop(key string, value any) Args {
	return append(a, key+":=", value)
}

// Props appends several key/value properties in order.
// kv must alternate string keys and values.
func (a Args) Props(kv ...any) Args {
	if len(kv)%2 != 0 {
		panic("automation: Props requires key/value pairs")
	}
	for i := 0; i < len(kv); i += 2 {
		a = a.Prop(kv[i].(string), kv[i+1])
	}
	return a
}

// Name returns the value of the leading NAME marker, matched without regard
// to case, or "" if there is none.
func (a Args) Name() string {
	if len(a) == 0 {
		return ""
	}
	s, ok := a[0].(string)
	if !ok || len(s) < 5 || !strings.EqualFold(s[:5], "NAME:") {
		return ""
	}
	return s[5:]
}

// Map decodes the "Key:=" value pairs into a map. Elements that are not part
// of a pair (like the NAME marker) are skipped.
func (a Args) Map() map[string]any {
	m := make(map[string]any)
	for i := 0; i < len(a); i++ {
		s, ok := a[i].(string)
		if !ok || !strings.HasSuffix(s, ":=") {
			continue
		}
		if i+1 >= len(a) {
			break
		}
		m[strings.TrimSuffix(s, ":=")] = a[i+1]
		i++
	}
	return m
}

// Get returns the value for key and whether it was present.
func (a Args) Get(key string) (any, bool) {
	v, ok := a.Map()[key]
	return v, ok
}

// String renders the list the way the application logs it.
func (a Args) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		switch x := v.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", x)
		default:
			parts[i] = fmt.Sprintf("%v", x)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
