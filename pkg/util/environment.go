package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// ParseFlag reads the YES/NO style switches used in the deployment manifests and request
// headers. ok is false when value is none of the known spellings.
func ParseFlag(value string) (enabled bool, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "YES", "TRUE", "1", "ON":
		return true, true
	case "NO", "FALSE", "0", "OFF":
		return false, true
	}

	return false, false
}

func EnvironmentFlag(env map[string]string, key string) bool {
	enabled, _ := ParseFlag(env[key])

	return enabled
}

func EnvironmentInt(env map[string]string, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(env[key])
	if value == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(value)
}
