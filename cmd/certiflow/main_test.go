package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certiflow/certiflow/internal/config"
)

// The logging defaults come from two layers: the bound --log-level and
// --log-format flags, and config.SetDefaults. SetDefault wins over an
// unchanged bound flag, so the registered defaults must be values
// setupLogging accepts or every command dies before its RunE runs.
func TestSetupLogging_StartupDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Same order as initConfig: flags are bound in init(), defaults
	// registered afterwards.
	require.NoError(t, viper.BindPFlag(config.KeyLoggingLevel, rootCmd.PersistentFlags().Lookup("log-level")))
	require.NoError(t, viper.BindPFlag(config.KeyLoggingFormat, rootCmd.PersistentFlags().Lookup("log-format")))
	config.SetDefaults()

	assert.Equal(t, "console", viper.GetString(config.KeyLoggingFormat))
	assert.Equal(t, "info", viper.GetString(config.KeyLoggingLevel))
	require.NoError(t, setupLogging())
}

func TestSetupLogging_RejectsUnknownValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()

	viper.Set(config.KeyLoggingFormat, "text")
	require.Error(t, setupLogging())

	viper.Set(config.KeyLoggingFormat, "console")
	viper.Set(config.KeyLoggingLevel, "verbose")
	require.Error(t, setupLogging())
}
