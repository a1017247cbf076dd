package lexer_test

import (
	"strings"
	"testing"

	"github.com/dlp/fpcc/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) ([]int32, []int) {
	t.Helper()

	l := lexer.New(strings.NewReader(src))

	var codes []int32

	var lines []int

	for {
		code, line, ok := l.Next()
		if !ok {
			break
		}

		codes = append(codes, code)
		lines = append(lines, line)
	}

	require.NoError(t, l.Err())

	return codes, lines
}

func TestNext_ClassifiesKeywordsSeparatelyFromIdents(t *testing.T) {
	t.Parallel()

	codes, _ := tokenize(t, "int a")

	require.Len(t, codes, 2)
	assert.Equal(t, int32(lexer.TokKeyword), codes[0])
	assert.Equal(t, int32(lexer.TokIdent), codes[1])
}

func TestNext_RenamedIdentifierSameCode(t *testing.T) {
	t.Parallel()

	codes1, _ := tokenize(t, "int a;")
	codes2, _ := tokenize(t, "int somethingElse;")

	assert.Equal(t, codes1, codes2)
}

func TestNext_SkipsLineAndBlockComments(t *testing.T) {
	t.Parallel()

	codes, _ := tokenize(t, "int a; // trailing\nint /* mid */ b;")

	// two full "int IDENT ;" statements, no comment tokens in between.
	require.Len(t, codes, 6)
	assert.Equal(t, int32(lexer.TokKeyword), codes[0])
	assert.Equal(t, int32(lexer.TokKeyword), codes[3])
}

func TestNext_TracksLineNumbers(t *testing.T) {
	t.Parallel()

	_, lines := tokenize(t, "int a;\nint b;\n")

	require.Len(t, lines, 6)
	assert.Equal(t, 1, lines[0])
	assert.Equal(t, 2, lines[3])
}

func TestNext_StringAndCharLiterals(t *testing.T) {
	t.Parallel()

	codes, _ := tokenize(t, `"hello" 'x'`)

	require.Len(t, codes, 2)
	assert.Equal(t, int32(lexer.TokString), codes[0])
	assert.Equal(t, int32(lexer.TokChar), codes[1])
}

func TestNext_EmptyInputYieldsNoTokens(t *testing.T) {
	t.Parallel()

	codes, _ := tokenize(t, "")

	assert.Empty(t, codes)
}
