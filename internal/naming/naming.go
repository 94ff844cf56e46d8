// Package naming derives deterministic identifiers from HTTP methods, URL
// path templates, and category names.
package naming

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// FunctionName derives the request-function identifier for an endpoint,
// e.g. ("GET", "/api/customer/v1/region/listDwg") → getCustomerV1RegionListDwgApi.
func FunctionName(method, path string) string {
	return strings.ToLower(method) + pathPart(path) + "Api"
}

// RequestTypeName derives the request declaration name,
// e.g. GetCustomerV1RegionListDwgRequestType.
func RequestTypeName(method, path string) string {
	return Pascal(strings.ToLower(method)) + pathPart(path) + "RequestType"
}

// ResponseTypeName derives the response declaration name.
func ResponseTypeName(method, path string) string {
	return Pascal(strings.ToLower(method)) + pathPart(path) + "ResponseType"
}

// pathPart turns a URL path template into a Pascal-cased identifier chunk.
// A leading "/" and a leading "api/" segment are stripped; each "{param}"
// placeholder becomes "ByParam".
func pathPart(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "api/")
	var b strings.Builder
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			b.WriteString(Pascal(seg[1 : len(seg)-1]))
			continue
		}
		b.WriteString(Pascal(seg))
	}
	return b.String()
}

// Pascal upper-cases the first letter of each chunk of a segment, splitting
// on non-alphanumeric runes. Interior casing is preserved, so "listDwg"
// stays "ListDwg".
func Pascal(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Camel is Pascal with a lower-cased first letter.
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

var pinyinArgs = pinyin.NewArgs()

// DirName maps a category name onto a directory path. Each "/"-delimited
// component becomes one path segment; Han characters are transliterated to
// their pinyin romanization, other non-ASCII runes are dropped.
func DirName(categoryName string) string {
	components := strings.Split(categoryName, "/")
	segs := make([]string, 0, len(components))
	for _, comp := range components {
		if s := dirSegment(comp); s != "" {
			segs = append(segs, s)
		}
	}
	return strings.Join(segs, "/")
}

func dirSegment(comp string) string {
	var b strings.Builder
	for _, r := range comp {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			if py := pinyin.LazyPinyin(string(r), pinyinArgs); len(py) > 0 {
				b.WriteString(py[0])
			}
		}
	}
	return strings.Trim(b.String(), "-_")
}
