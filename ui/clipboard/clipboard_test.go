package clipboard

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestCmd_WritesOSC52(t *testing.T) {
	var buf bytes.Buffer
	orig := openTTY
	openTTY = func() (io.WriteCloser, error) { return nopCloser{&buf}, nil }
	t.Cleanup(func() { openTTY = orig })

	got, ok := Cmd("Paper Harbor (1999)")().(CopiedMsg)
	require.True(t, ok)
	assert.NoError(t, got.Err)
	assert.Equal(t, "Paper Harbor (1999)", got.Text)
	assert.Equal(t, "\033]52;c;UGFwZXIgSGFyYm9yICgxOTk5KQ==\a", buf.String())
}
