package utils

import (
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

func LowerCamelCase(s string) string {
	return strcase.ToLowerCamel(s)
}

func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// FuncName joins prefix and typeName into a function name that has the same
// visibility as the type: InitializeConfig for Config, initializeConfig for
// config. The type name itself is kept verbatim.
func FuncName(prefix, typeName string) string {
	name := prefix + UpperFirst(typeName)
	if unicode.IsUpper(firstRune(typeName)) {
		return UpperFirst(name)
	}
	return LowerFirst(name)
}

// HelperName is the unexported identifier used for the generated storage of
// typeName, e.g. appConfigSingleton.
func HelperName(typeName, suffix string) string {
	return LowerCamelCase(typeName) + suffix
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
