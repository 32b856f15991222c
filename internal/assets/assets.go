package assets

// Names of the built-in assets.
const (
	DefaultStyleName = "default"
	PageTemplateName = "page"
	GrammarGuideName = "grammar"
)

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.Load(Style, name)
}

// LoadTemplate loads a built-in page template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.Load(Template, name)
}

// LoadGuide loads a built-in guide by name.
func LoadGuide(name string) (string, error) {
	return defaultLoader.Load(Guide, name)
}
