package fsx_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlp/fpcc/internal/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpener fails for any path in Deny, otherwise returns an empty
// reader -- enough to unit-test SIG's warn-and-skip loop without disk I/O.
type fakeOpener struct {
	Deny map[string]error
}

func (f fakeOpener) Open(path string) (io.ReadCloser, error) {
	if err, ok := f.Deny[path]; ok {
		return nil, err
	}

	return io.NopCloser(new(emptyReader)), nil
}

type emptyReader struct{}

func (*emptyReader) Read([]byte) (int, error) { return 0, io.EOF }

func TestReal_OpenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := fsx.NewReal().Open(filepath.Join(t.TempDir(), "nope.c"))

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestReal_OpenExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;"), 0o600))

	f, err := fsx.NewReal().Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "int x;", string(data))
}

func TestFakeOpener_DeniesChosenPaths(t *testing.T) {
	t.Parallel()

	opener := fakeOpener{Deny: map[string]error{"/denied.c": errors.New("permission denied")}}

	_, err := opener.Open("/denied.c")
	require.Error(t, err)

	f, err := opener.Open("/other.c")
	require.NoError(t, err)

	defer func() { _ = f.Close() }()
}
