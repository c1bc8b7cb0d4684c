package deploy

import (
	"strings"
)

// ParseCacheControlRules parses "glob[, glob...]:value" lines into Rules.
// Lines without a colon are skipped. The default rule keeps its value
// verbatim and is added with DefaultCacheControl when absent.
func ParseCacheControlRules(formats []string) Rules {
	result := make(Rules)

	for _, format := range formats {
		keysPart, valuePart, ok := strings.Cut(format, ":")
		if !ok {
			continue
		}

		// Special handling for default value to preserve spaces
		if strings.TrimSpace(keysPart) == DefaultPattern {
			result[DefaultPattern] = valuePart

			continue
		}

		valuePart = strings.TrimSpace(valuePart)

		for _, key := range strings.Split(keysPart, ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}

			result[key] = valuePart
		}
	}

	if _, ok := result[DefaultPattern]; !ok {
		result[DefaultPattern] = DefaultCacheControl
	}

	return result
}
