package reflection

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// serializationMarker is never a property name, the same way field names
// starting with an internal marker rune are not.
const serializationMarker = "XMLName"

func isGetterName(name string) bool {
	if strings.HasPrefix(name, "Get") {
		return len(name) > 3
	}

	return strings.HasPrefix(name, "Is") && len(name) > 2
}

func isSetterName(name string) bool {
	return strings.HasPrefix(name, "Set") && len(name) > 3
}

// methodToProperty derives a property name from an accessor method name by
// stripping the Get/Is/Set prefix and decapitalizing the remainder.
// Acronym-style names keep their case: GetURL -> "URL", GetId -> "id".
func methodToProperty(name string) string {
	switch {
	case strings.HasPrefix(name, "Is"):
		name = name[2:]
	case strings.HasPrefix(name, "Get"), strings.HasPrefix(name, "Set"):
		name = name[3:]
	}

	return decapitalize(name)
}

// fieldToProperty applies the same decapitalization rule to declared field
// names, so method-derived and field-derived names agree for mixed-case
// identifiers.
func fieldToProperty(name string) string {
	return decapitalize(name)
}

func decapitalize(name string) string {
	if name == "" {
		return name
	}

	first, size := utf8.DecodeRuneInString(name)
	if len(name) > size {
		second, _ := utf8.DecodeRuneInString(name[size:])
		if unicode.IsUpper(second) {
			return name
		}
	}

	return string(unicode.ToLower(first)) + name[size:]
}

func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, "$") {
		return false
	}

	return name != serializationMarker && name != "class"
}
