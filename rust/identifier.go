package rust

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rust keywords, strict and reserved, across editions.
var keywords = map[string]bool{
	"abstract": true,
	"as":       true,
	"async":    true,
	"await":    true,
	"become":   true,
	"box":      true,
	"break":    true,
	"const":    true,
	"continue": true,
	"crate":    true,
	"do":       true,
	"dyn":      true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"false":    true,
	"final":    true,
	"fn":       true,
	"for":      true,
	"gen":      true,
	"if":       true,
	"impl":     true,
	"in":       true,
	"let":      true,
	"loop":     true,
	"macro":    true,
	"match":    true,
	"mod":      true,
	"move":     true,
	"mut":      true,
	"override": true,
	"priv":     true,
	"pub":      true,
	"ref":      true,
	"return":   true,
	"self":     true,
	"Self":     true,
	"static":   true,
	"struct":   true,
	"super":    true,
	"trait":    true,
	"true":     true,
	"try":      true,
	"type":     true,
	"typeof":   true,
	"unsafe":   true,
	"unsized":  true,
	"use":      true,
	"virtual":  true,
	"where":    true,
	"while":    true,
	"yield":    true,
}

// Keywords that are not legal raw identifiers (`r#self` does not parse).
var cannotBeRaw = map[string]bool{
	"crate": true,
	"self":  true,
	"Self":  true,
	"super": true,
}

// escapeKeyword makes a keyword usable as an identifier: raw form where
// the language allows it, a trailing underscore where it does not.
func escapeKeyword(name string) string {
	if !keywords[name] {
		return name
	}
	if cannotBeRaw[name] {
		return name + "_"
	}
	return "r#" + name
}

// SafeName returns name as a legal Rust identifier, escaping keywords and
// replacing characters an identifier cannot contain.
func SafeName(name string) string {
	return escapeKeyword(sanitizeIdentifier(name))
}

// sanitizeIdentifier replaces illegal identifier characters with
// underscores and guards against a leading digit or empty input.
func sanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder

	if unicode.IsDigit(rune(name[0])) {
		result.WriteRune('_')
	}

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	return result.String()
}

// toUpperCamel converts a snake_case schema name to UpperCamelCase.
// All-caps segments are normalized ("MY_FIELD" becomes "MyField"); mixed
// case inside a segment is preserved ("fooBar" becomes "FooBar").
func toUpperCamel(name string) string {
	caser := cases.Title(language.English)

	var b strings.Builder
	for _, seg := range strings.Split(name, "_") {
		if seg == "" {
			continue
		}
		if !strings.ContainsFunc(seg, unicode.IsLower) {
			seg = strings.ToLower(seg)
		}
		if hasUpperTail(seg) {
			r, size := utf8.DecodeRuneInString(seg)
			b.WriteRune(unicode.ToUpper(r))
			b.WriteString(seg[size:])
			continue
		}
		b.WriteString(caser.String(seg))
	}
	return b.String()
}

// hasUpperTail reports whether any rune after the first is uppercase.
func hasUpperTail(s string) bool {
	first := true
	for _, r := range s {
		if first {
			first = false
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Scope hands out collision-free identifiers within one emitted module.
// Claimed names are remembered; a later claim of the same name gets a
// numeric suffix. Enum variants do not need a Scope: they are scoped to
// their enum by the language, so two groups may both have a "Value"
// variant without conflict.
type Scope struct {
	taken map[string]bool
}

// NewScope returns an empty identifier scope.
func NewScope() *Scope {
	return &Scope{taken: make(map[string]bool)}
}

// Claim reserves name in the scope, returning it unchanged when free or
// with the lowest free numeric suffix otherwise.
func (s *Scope) Claim(name string) string {
	if !s.taken[name] {
		s.taken[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !s.taken[candidate] {
			s.taken[candidate] = true
			return candidate
		}
	}
}
