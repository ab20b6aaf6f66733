// Package ci holds the component interface: the language-neutral
// description of the functions and types a native library exposes.
//
// Descriptions are stored as TOML. Parsing the interface definition
// language itself is out of scope; this package only reads the already
// parsed model.
package ci

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
)

type Interface struct {
	NamespaceName string     `toml:"namespace"`
	Version       string     `toml:"version"`
	Doc           string     `toml:"doc"`
	Functions     []Function `toml:"function"`
	Records       []Record   `toml:"record"`
	Enums         []Enum     `toml:"enum"`
}

type Function struct {
	Name   string     `toml:"name"`
	Doc    string     `toml:"doc"`
	Args   []Argument `toml:"args"`
	Return Type       `toml:"return"`
	Throws bool       `toml:"throws"`
}

type Argument struct {
	Name string `toml:"name"`
	Type Type   `toml:"type"`
}

type Record struct {
	Name   string     `toml:"name"`
	Doc    string     `toml:"doc"`
	Fields []Argument `toml:"fields"`
}

type Enum struct {
	Name     string   `toml:"name"`
	Doc      string   `toml:"doc"`
	Variants []string `toml:"variants"`
}

// Namespace returns the unique identifier of the generated module.
func (ci *Interface) Namespace() string {
	return ci.NamespaceName
}

// FFIFunctionName returns the C symbol exported by the native library
// for fn.
func (ci *Interface) FFIFunctionName(fn Function) string {
	return ci.NamespaceName + "_" + fn.Name
}

// FFIHelperName returns the C symbol of a runtime helper function
// (e.g. "string_free") exported by the native library.
func (ci *Interface) FFIHelperName(helper string) string {
	return "ffi_" + ci.NamespaceName + "_" + helper
}

// Error wraps a problem with an interface description file.
type Error struct {
	filePath string
	err      error
	str      string // full, multi-line error string, or empty
}

func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in interface file " + e.filePath + ":\n" + e.str
	}
	return e.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Load reads and validates the interface description at path.
func Load(path string) (*Interface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes and validates an interface description. name is only
// used in error messages.
func Parse(name string, data []byte) (_ *Interface, err error) {
	defer func() {
		if err == nil {
			return
		}
		var decErr *toml.DecodeError
		var strictErr *toml.StrictMissingError
		var multErr *multierror.Error
		switch {
		case errors.As(err, &decErr):
			err = &Error{filePath: name, err: err, str: decErr.String()}
		case errors.As(err, &strictErr):
			err = &Error{filePath: name, err: err, str: strictErr.String()}
		case errors.As(err, &multErr):
			err = &Error{filePath: name, err: err, str: multErr.Error()}
		default:
			err = &Error{filePath: name, err: err}
		}
	}()

	ci := &Interface{}
	if err := toml.NewDecoder(bytes.NewReader(data)).
		DisallowUnknownFields().
		Decode(ci); err != nil {
		return nil, err
	}
	if err := ci.Validate(); err != nil {
		return nil, err
	}
	return ci, nil
}

// The namespace names files, directories and Swift/C modules, so it
// must be a plain identifier.
var namespaceRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the description is well formed and resolves
// named type references to records and enums. All problems found are
// returned together.
func (ci *Interface) Validate() error {
	var res *multierror.Error

	if ci.NamespaceName == "" {
		res = multierror.Append(res, errors.New("missing namespace"))
	} else if !namespaceRx.MatchString(ci.NamespaceName) {
		res = multierror.Append(res, fmt.Errorf("namespace %q is not an identifier", ci.NamespaceName))
	}
	if ci.Version != "" && !semver.IsValid("v"+ci.Version) {
		res = multierror.Append(res, fmt.Errorf("version %q is not a semantic version", ci.Version))
	}

	named := map[string]Kind{}
	declare := func(what, name string, k Kind) {
		if name == "" {
			res = multierror.Append(res, fmt.Errorf("%v without a name", what))
			return
		}
		if _, ok := named[name]; ok {
			res = multierror.Append(res, fmt.Errorf("duplicate declaration of %q", name))
			return
		}
		named[name] = k
	}
	for _, r := range ci.Records {
		declare("record", r.Name, KindRecord)
	}
	for _, e := range ci.Enums {
		declare("enum", e.Name, KindEnum)
		if len(e.Variants) == 0 {
			res = multierror.Append(res, fmt.Errorf("enum %q has no variants", e.Name))
		}
	}
	fnNames := map[string]struct{}{}
	for _, fn := range ci.Functions {
		if fn.Name == "" {
			res = multierror.Append(res, errors.New("function without a name"))
			continue
		}
		if _, ok := fnNames[fn.Name]; ok {
			res = multierror.Append(res, fmt.Errorf("duplicate function %q", fn.Name))
		}
		fnNames[fn.Name] = struct{}{}
	}

	var resolve func(where string, t *Type, allowVoid bool)
	resolve = func(where string, t *Type, allowVoid bool) {
		switch t.Kind {
		case KindVoid:
			if !allowVoid {
				res = multierror.Append(res, fmt.Errorf("%v: missing type", where))
			}
		case KindNamed, KindRecord, KindEnum:
			k, ok := named[t.Name]
			if !ok {
				res = multierror.Append(res, fmt.Errorf("%v: unknown type %q", where, t.Name))
				return
			}
			t.Kind = k
		case KindOptional, KindSequence:
			resolve(where, t.Inner, false)
		}
	}
	for i := range ci.Functions {
		fn := &ci.Functions[i]
		for j := range fn.Args {
			resolve(fmt.Sprintf("function %q argument %q", fn.Name, fn.Args[j].Name), &fn.Args[j].Type, false)
		}
		resolve(fmt.Sprintf("function %q return", fn.Name), &fn.Return, true)
	}
	for i := range ci.Records {
		r := &ci.Records[i]
		for j := range r.Fields {
			resolve(fmt.Sprintf("record %q field %q", r.Name, r.Fields[j].Name), &r.Fields[j].Type, false)
		}
	}

	return res.ErrorOrNil()
}
