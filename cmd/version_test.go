package cmd

import (
	"bytes"
	"testing"

	"github.com/Jaggernaut555/chaoticbot/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "version="+bot.Version+"\n", buf.String())
}

func TestFlagsBound(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	assert.Equal(t, "t", flags.Lookup("token").Shorthand)
	assert.Equal(t, "p", flags.Lookup("password").Shorthand)
	assert.NotNil(t, flags.Lookup("purge"))
}
