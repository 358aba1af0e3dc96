package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/forecast"
)

// Configuration keys. Every key is overridable via CERTIFLOW_ env vars,
// e.g. CERTIFLOW_FORECAST_MONTHS=12.
const (
	KeyForecastMonths = "forecast.months"
	KeyGrowthCerts    = "forecast.growth.certifications"
	KeyGrowthServices = "forecast.growth.services"
	KeyGrowthCharges  = "forecast.growth.charges"
	KeyLoggingLevel   = "logging.level"
	KeyLoggingFormat  = "logging.format"
	KeyExportDir      = "export.dir"
	KeyImportFile     = "import.file"
	KeySeedDemo       = "seed"
)

// SetDefaults registers default values for all configuration keys. Called
// once during root command initialization, before any config file is read.
func SetDefaults() {
	viper.SetDefault(KeyForecastMonths, 6)
	viper.SetDefault(KeyGrowthCerts, 3.0)
	viper.SetDefault(KeyGrowthServices, 2.0)
	viper.SetDefault(KeyGrowthCharges, 1.5)
	viper.SetDefault(KeyLoggingLevel, "info")
	viper.SetDefault(KeyLoggingFormat, "console")
	viper.SetDefault(KeyExportDir, ".")
	viper.SetDefault(KeyImportFile, "")
	viper.SetDefault(KeySeedDemo, true)
}

// LoadForecast returns the configured projection horizon and growth rates.
func LoadForecast() (int, forecast.Rates, error) {
	months := viper.GetInt(KeyForecastMonths)
	if months < 1 {
		return 0, forecast.Rates{}, fmt.Errorf("%w: %s must be at least 1, got %d",
			common.ErrInvalidConfig, KeyForecastMonths, months)
	}

	rates := forecast.Rates{
		CertRevenue:  viper.GetFloat64(KeyGrowthCerts),
		OtherRevenue: viper.GetFloat64(KeyGrowthServices),
		Charges:      viper.GetFloat64(KeyGrowthCharges),
	}
	return months, rates, nil
}
