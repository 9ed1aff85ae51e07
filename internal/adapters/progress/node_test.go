package progress

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func TestStdout_WritesToStandardOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	orig := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = orig })

	reporter := Stdout()
	reporter.Handle(domain.ProgressEvent{Fraction: 1})
	require.NoError(t, w.Close())

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, DoneLine+"\n", string(got))
}
