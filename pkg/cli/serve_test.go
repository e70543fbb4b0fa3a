package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRequiresBaseURL(t *testing.T) {
	err := rootCmd().Run(t.Context(), []string{name, "serve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base-url")
}

func TestServeRejectsRelativeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "relative path", baseURL: "192.168.1.10"},
		{name: "missing host", baseURL: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rootCmd().Run(t.Context(), []string{name, "serve", "--base-url", tt.baseURL})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "must be absolute with a host")
		})
	}
}

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := serveCmd()

	flags := map[string]bool{}
	for _, flag := range cmd.Flags {
		for _, fn := range flag.Names() {
			flags[fn] = true
		}
	}

	for _, fn := range []string{"base-url", "address", "port", "docker-host", "poll-interval", "log-level"} {
		assert.True(t, flags[fn], "expected flag %q to be defined", fn)
	}
}
