package templatecache

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Interpolate replaces every {name} whose name is in values. Placeholders
// without a value are left as-is; use ExtractPlaceholders on the result to
// find them. Interpolate has no side effects.
func Interpolate(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(tok string) string {
		if v, ok := values[tok[1:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

// ExtractPlaceholders returns the distinct placeholder names of template in
// order of first appearance.
func ExtractPlaceholders(template string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
