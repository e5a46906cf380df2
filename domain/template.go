package domain

import "regexp"

var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_.]+)\}\}`)

// FillTemplate substitutes {{name}} placeholders in content with values from
// the context snapshot. Unresolved placeholders are left as literal text; the
// names of the missing values are returned so the caller can log them.
func FillTemplate(content string, values map[string]string) (string, []string) {
	var missing []string
	filled := placeholderRe.ReplaceAllStringFunc(content, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := values[name]; ok {
			return v
		}
		missing = append(missing, name)
		return m
	})
	return filled, missing
}
