package stations

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var output bytes.Buffer
	app := &cli.App{
		Name:     "ecocitty",
		Writer:   &output,
		Commands: []*cli.Command{RegisterCLI()},
	}

	err := app.Run(append([]string{"ecocitty", "stations"}, args...))

	return output.String(), err
}

func TestListCommand(t *testing.T) {
	output, err := runCLI(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "AGC"))
}

func TestSearchCommand(t *testing.T) {
	output, err := runCLI(t, "search", "delhi")
	require.NoError(t, err)

	assert.Contains(t, output, `"NDLS"`)
	assert.Contains(t, output, `"DEL"`)
	assert.NotContains(t, output, `"BCT"`)
}
