package swift

import (
	"strings"

	"github.com/refaktor/swiftgen/ci"
)

// Bindings holds the rendered text of a component's bridging header and
// Swift wrapper source.
type Bindings struct {
	Header  string
	Library string
}

type templateData struct {
	Config Config
	CI     *ci.Interface
	// Only set for the module map.
	HeaderPath string
}

func render(name, artifact string, data templateData) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", &RenderError{Artifact: artifact, Err: err}
	}
	return b.String(), nil
}

// GenerateBindings renders the bridging header and the Swift wrapper
// source for ci. Rendering is deterministic.
func GenerateBindings(ci *ci.Interface) (*Bindings, error) {
	data := templateData{
		Config: NewConfig(ci),
		CI:     ci,
	}
	header, err := render(templateHeader, ArtifactHeader, data)
	if err != nil {
		return nil, err
	}
	library, err := render(templateLibrary, ArtifactLibrary, data)
	if err != nil {
		return nil, err
	}
	return &Bindings{
		Header:  header,
		Library: library,
	}, nil
}

// GenerateModuleMap renders a module map declaring the FFI module of ci,
// with headerPath as its header. The path is embedded verbatim.
func GenerateModuleMap(ci *ci.Interface, headerPath string) (string, error) {
	return render(templateModuleMap, ArtifactModuleMap, templateData{
		Config:     NewConfig(ci),
		CI:         ci,
		HeaderPath: headerPath,
	})
}
