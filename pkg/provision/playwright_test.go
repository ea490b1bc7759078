package provision

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOptions(t *testing.T) {
	t.Run("quiet discards output", func(t *testing.T) {
		opts := runOptions(DriverOptions{Install: true})
		assert.Equal(t, []string{"chromium"}, opts.Browsers)
		assert.False(t, opts.Verbose)
		assert.Equal(t, io.Discard, opts.Stdout)
		assert.Equal(t, io.Discard, opts.Stderr)
	})

	t.Run("verbose forwards output", func(t *testing.T) {
		opts := runOptions(DriverOptions{Verbose: true})
		assert.True(t, opts.Verbose)
		assert.Equal(t, os.Stdout, opts.Stdout)
		assert.Equal(t, os.Stderr, opts.Stderr)
	})
}
