package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsOnVisibleWidth(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"CH", "SCORE"},
		[][]string{
			{StyleGreen.Render("1"), "10/10"},
			{"12", "--"},
			{"3"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "CH  SCORE", lines[0])
	assert.Equal(t, "──  ─────", lines[1])
	assert.Equal(t, "1   10/10", lines[2])
	assert.Equal(t, "12  --", lines[3])
	assert.Equal(t, "3   ", lines[4])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
