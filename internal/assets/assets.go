package assets

// DefaultStyleName is the built-in style used when none is configured.
const DefaultStyleName = "default"

var builtin = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name.
func LoadStyle(name string) (string, error) {
	return builtin.LoadStyle(name)
}
