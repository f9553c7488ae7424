package settings

import (
	"strings"

	"github.com/grovetools/navcore/errors"
)

// Delimiter separates segments in the string form of a Path.
const Delimiter = "@@"

var (
	segmentEscaper   = strings.NewReplacer("%", "%25", "@", "%40")
	segmentUnescaper = strings.NewReplacer("%25", "%", "%40", "@")
)

// Path locates a group node by the chain of keys leading to it from the root.
// The zero value is the root.
type Path []string

// Child returns the path of key below p. p is never aliased.
func (p Path) Child(key string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Parent returns p without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// Last returns the final segment, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String is the only place a Path becomes its delimited form: "" for the
// root, otherwise Delimiter followed by each escaped segment. Escaping '%'
// and '@' keeps a segment from ever producing the delimiter.
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteString(Delimiter)
		b.WriteString(segmentEscaper.Replace(seg))
	}
	return b.String()
}

// ParsePath is the inverse of Path.String.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, Delimiter) {
		return nil, errors.InvalidPath(s, "missing leading delimiter")
	}

	raw := strings.Split(s[len(Delimiter):], Delimiter)
	p := make(Path, 0, len(raw))
	for _, seg := range raw {
		if strings.Contains(seg, "@") {
			return nil, errors.InvalidPath(s, "unescaped '@' in segment")
		}
		if !validEscapes(seg) {
			return nil, errors.InvalidPath(s, "bad escape in segment")
		}
		p = append(p, segmentUnescaper.Replace(seg))
	}
	return p, nil
}

func validEscapes(seg string) bool {
	for i := 0; i < len(seg); i++ {
		if seg[i] != '%' {
			continue
		}
		if i+2 >= len(seg) {
			return false
		}
		code := seg[i+1 : i+3]
		if code != "25" && code != "40" {
			return false
		}
		i += 2
	}
	return true
}
