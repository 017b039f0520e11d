package config

import "strings"

func splitList(value string) []string {
	var items []string

	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
