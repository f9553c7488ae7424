// Package channels manages the persisted lists of update channels for each
// channel category and maps channel identifiers to the labels shown to users.
package channels

// Labels under which the two default channels of a category are displayed,
// whatever their literal identifiers are.
const (
	LabelRelease     = "Release"
	LabelDevelopment = "Development"
)

// ToLabel returns the display label for id: LabelRelease for the release
// default, LabelDevelopment for the development default, id itself otherwise.
func ToLabel(id, releaseDefault, devDefault string) string {
	switch {
	case id == releaseDefault:
		return LabelRelease
	case devDefault != "" && id == devDefault:
		return LabelDevelopment
	default:
		return id
	}
}

// FromLabel is the inverse of ToLabel. Any label other than the two reserved
// ones is taken to be a custom channel identifier.
func FromLabel(label, releaseDefault, devDefault string) string {
	switch label {
	case LabelRelease:
		return releaseDefault
	case LabelDevelopment:
		if devDefault == "" {
			return label
		}
		return devDefault
	default:
		return label
	}
}

// ToLabels maps ids element-wise, preserving order.
func ToLabels(ids []string, releaseDefault, devDefault string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = ToLabel(id, releaseDefault, devDefault)
	}
	return out
}

// FromLabels maps labels element-wise, preserving order.
func FromLabels(labels []string, releaseDefault, devDefault string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = FromLabel(label, releaseDefault, devDefault)
	}
	return out
}

// Defaults is the pair of default channel identifiers of one category.
// Development is empty for categories that only ship a release channel.
type Defaults struct {
	Release     string `yaml:"release,omitempty" toml:"release,omitempty" json:"release,omitempty"`
	Development string `yaml:"development,omitempty" toml:"development,omitempty" json:"development,omitempty"`
}

func (d Defaults) ToLabel(id string) string        { return ToLabel(id, d.Release, d.Development) }
func (d Defaults) FromLabel(label string) string   { return FromLabel(label, d.Release, d.Development) }
func (d Defaults) ToLabels(ids []string) []string  { return ToLabels(ids, d.Release, d.Development) }
func (d Defaults) FromLabels(ls []string) []string { return FromLabels(ls, d.Release, d.Development) }

// List returns the built-in channel list seeded on first use.
func (d Defaults) List() []string {
	if d.Development == "" {
		return []string{d.Release}
	}
	return []string{d.Release, d.Development}
}
