package swift

import (
	"embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
	"github.com/refaktor/swiftgen/ci"
	"github.com/refaktor/swiftgen/textutils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("swift").Funcs(templateFuncMap).ParseFS(templateFS, "templates/*.tmpl"))

const (
	templateHeader    = "BridgingHeader.h.tmpl"
	templateLibrary   = "wrapper.swift.tmpl"
	templateModuleMap = "ModuleMap.modulemap.tmpl"
)

// Swift keywords that need escaping when used as identifiers.
var swiftKeywords = []string{
	"associatedtype", "class", "deinit", "enum", "extension", "fileprivate",
	"func", "import", "init", "inout", "internal", "let", "open", "operator",
	"private", "protocol", "public", "static", "struct", "subscript",
	"typealias", "var", "break", "case", "continue", "default", "defer", "do",
	"else", "fallthrough", "for", "guard", "if", "in", "repeat", "return",
	"switch", "where", "while", "as", "catch", "false", "is", "nil",
	"rethrows", "super", "self", "throw", "throws", "true", "try",
}

// swiftTypeName returns the Swift spelling of t, using sugar for
// optionals and arrays (e.g. "[Point]?").
func swiftTypeName(t ci.Type) (string, error) {
	switch t.Kind {
	case ci.KindInt8:
		return "Int8", nil
	case ci.KindInt16:
		return "Int16", nil
	case ci.KindInt32:
		return "Int32", nil
	case ci.KindInt64:
		return "Int64", nil
	case ci.KindUInt8:
		return "UInt8", nil
	case ci.KindUInt16:
		return "UInt16", nil
	case ci.KindUInt32:
		return "UInt32", nil
	case ci.KindUInt64:
		return "UInt64", nil
	case ci.KindFloat32:
		return "Float", nil
	case ci.KindFloat64:
		return "Double", nil
	case ci.KindBool:
		return "Bool", nil
	case ci.KindString:
		return "String", nil
	case ci.KindRecord, ci.KindEnum:
		return strcase.ToCamel(t.Name), nil
	case ci.KindOptional:
		inner, err := swiftTypeName(*t.Inner)
		if err != nil {
			return "", err
		}
		return inner + "?", nil
	case ci.KindSequence:
		inner, err := swiftTypeName(*t.Inner)
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	default:
		return "", fmt.Errorf("no Swift type for %v", t)
	}
}

// swiftTypeExpr is like swiftTypeName, but spells generics out so the
// result can be used in expression position (e.g. "Optional<Array<Point>>").
func swiftTypeExpr(t ci.Type) (string, error) {
	switch t.Kind {
	case ci.KindOptional, ci.KindSequence:
		inner, err := swiftTypeExpr(*t.Inner)
		if err != nil {
			return "", err
		}
		if t.Kind == ci.KindOptional {
			return "Optional<" + inner + ">", nil
		}
		return "Array<" + inner + ">", nil
	default:
		return swiftTypeName(t)
	}
}

// ffiTypeName returns the C type of t as it crosses the FFI boundary.
// Everything that isn't a plain number is serialized into a RustBuffer.
func ffiTypeName(t ci.Type) (string, error) {
	switch t.Kind {
	case ci.KindInt8, ci.KindBool:
		return "int8_t", nil
	case ci.KindInt16:
		return "int16_t", nil
	case ci.KindInt32:
		return "int32_t", nil
	case ci.KindInt64:
		return "int64_t", nil
	case ci.KindUInt8:
		return "uint8_t", nil
	case ci.KindUInt16:
		return "uint16_t", nil
	case ci.KindUInt32, ci.KindEnum:
		return "uint32_t", nil
	case ci.KindUInt64:
		return "uint64_t", nil
	case ci.KindFloat32:
		return "float", nil
	case ci.KindFloat64:
		return "double", nil
	case ci.KindString, ci.KindRecord, ci.KindOptional, ci.KindSequence:
		return "RustBuffer", nil
	default:
		return "", fmt.Errorf("no FFI type for %v", t)
	}
}

// C keywords (C11 plus the common extensions) that can't be used as
// parameter names in the bridging header.
var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "asm", "typeof", "bool",
	"true", "false", "_Bool", "_Complex", "_Imaginary", "_Alignas",
	"_Alignof", "_Atomic", "_Generic", "_Noreturn", "_Static_assert",
	"_Thread_local", "_Nonnull", "_Nullable",
}

// cIdent returns s, with an underscore appended if it is a C keyword.
func cIdent(s string) string {
	if slices.Contains(cKeywords, s) {
		return s + "_"
	}
	return s
}

// quotedString returns s as a double-quoted module map string literal.
func quotedString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func swiftIdent(s string) string {
	id := strcase.ToLowerCamel(s)
	if slices.Contains(swiftKeywords, id) {
		return "`" + id + "`"
	}
	return id
}

var templateFuncMap = template.FuncMap{
	"swiftType":     swiftTypeName,
	"swiftTypeExpr": swiftTypeExpr,
	"ffiType":       ffiTypeName,
	// Like ffiType, but accepts the absent type.
	"ffiReturnType": func(t ci.Type) (string, error) {
		if t.IsVoid() {
			return "void", nil
		}
		return ffiTypeName(t)
	},
	// Type names (records, enums, error enum).
	"className": strcase.ToCamel,
	// Functions, arguments, fields and enum cases.
	"varName": swiftIdent,
	// Parameter names in the bridging header.
	"cIdent": cIdent,
	"quote":  quotedString,
	"docComment": func(indent, doc string) string {
		c := textutils.CommentLines(doc, "/// ")
		if c == "" {
			return ""
		}
		return textutils.IndentString(c, indent, 1) + "\n"
	},
	"cComment": func(doc string) string {
		c := textutils.CommentLines(doc, "// ")
		if c == "" {
			return ""
		}
		return c + "\n"
	},
	"add":  func(a, b int) int { return a + b },
	"join": strings.Join,
}
