package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certiflow/certiflow/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CERTIFLOW_TEST_DIR", "/data/exports")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "/tmp/out.csv", "/tmp/out.csv"},
		{"tilde only", "~", home},
		{"tilde prefix", "~/books.xlsx", filepath.Join(home, "books.xlsx")},
		{"env var", "$CERTIFLOW_TEST_DIR/books.xlsx", "/data/exports/books.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadForecast_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	months, rates, err := LoadForecast()
	require.NoError(t, err)
	assert.Equal(t, 6, months)
	assert.Equal(t, 3.0, rates.CertRevenue)
	assert.Equal(t, 2.0, rates.OtherRevenue)
	assert.Equal(t, 1.5, rates.Charges)
}

func TestLoadForecast_InvalidMonths(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set(KeyForecastMonths, 0)

	_, _, err := LoadForecast()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}

func TestLoadForecast_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set(KeyForecastMonths, 12)
	viper.Set(KeyGrowthCerts, -5.0)

	months, rates, err := LoadForecast()
	require.NoError(t, err)
	assert.Equal(t, 12, months)
	assert.Equal(t, -5.0, rates.CertRevenue)
}
