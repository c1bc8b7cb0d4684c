package deploy

import (
	"sort"
)

// Plan partitions the rules into deployment groups.
//
// The default group comes first: it selects everything except files matched by
// another pattern, and is the only group that may prune. Each other pattern
// gets a group that excludes everything and re-includes that pattern. Pattern
// groups follow in lexical order so the result is stable for a given input.
func Plan(rules Rules, pruneOnDefault bool) ([]Group, error) {
	if len(rules) == 0 {
		return nil, &ConfigurationError{Reason: "no cache-control rules"}
	}

	defaultValue, ok := rules[DefaultPattern]
	if !ok {
		return nil, &ConfigurationError{Reason: `missing default "*" cache-control rule`}
	}

	patterns := make([]string, 0, len(rules)-1)

	for pattern := range rules {
		if pattern != DefaultPattern {
			patterns = append(patterns, pattern)
		}
	}

	sort.Strings(patterns)

	groups := make([]Group, 0, len(rules))
	groups = append(groups, Group{
		ID:           DefaultGroupID,
		Exclude:      patterns,
		CacheControl: defaultValue,
		Prune:        pruneOnDefault,
	})

	for _, pattern := range patterns {
		groups = append(groups, Group{
			ID:           pattern,
			Include:      []string{pattern},
			Exclude:      []string{DefaultPattern},
			CacheControl: rules[pattern],
		})
	}

	return groups, nil
}
