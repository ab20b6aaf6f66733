package textutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndentString(t *testing.T) {
	require := require.New(t)

	require.Equal(`  Hello
  World`,
		IndentString(`Hello
World`, "  ", 1),
	)

	require.Equal(`  Hello
  World
`,
		IndentString(`Hello
World
`, "  ", 1),
	)

	require.Equal(`  Hello
  World
`,
		IndentString(`Hello
World
  `, "  ", 1),
	)

	require.Equal(`  Hello

  World
`,
		IndentString(`Hello
  
World
`, "  ", 1),
	)

	require.Equal("\t\tx\n", IndentString("x\n", "\t", 2))
	require.Equal("", IndentString("", "  ", 1))
}

func TestCommentLines(t *testing.T) {
	require := require.New(t)

	require.Equal("/// Adds two numbers.", CommentLines("Adds two numbers.\n", "/// "))
	require.Equal("/// First\n///\n/// Second", CommentLines("First\n\nSecond", "/// "))
	require.Equal("", CommentLines("  \n", "/// "))
}
