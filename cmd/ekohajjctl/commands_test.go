package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"jobs", "trigger"})
	require.NoError(t, err)
	assert.Equal(t, triggerCmd, cmd)

	flag := rootCmd.PersistentFlags().Lookup("redis-addr")
	require.NotNil(t, flag)
	assert.NotEmpty(t, flag.DefValue)
}

func TestTriggerRequiresJobName(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"jobs", "trigger"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "accepts 1 arg")
}
