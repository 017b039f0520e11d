package util

import "strings"

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// NormaliseCode upper-cases and trims a station or train code taken from a request.
func NormaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
