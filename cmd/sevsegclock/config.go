package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig represents the TOML configuration file.
type fileConfig struct {
	Pins    pinsConfig    `toml:"pins"`
	Input   inputConfig   `toml:"input"`
	Display displayConfig `toml:"display"`
}

// pinsConfig maps the GPIO wiring. Names are resolved through gpioreg.
type pinsConfig struct {
	Data  *string `toml:"data"`
	Clock *string `toml:"clock"`
	Latch *string `toml:"latch"`
	Reset *string `toml:"reset"`
	Mode  *string `toml:"mode"`
}

// inputConfig maps the ADC and button settings.
type inputConfig struct {
	I2CBus     *string `toml:"i2c-bus"`
	ADCAddress *int    `toml:"adc-address"`
	ADCChannel *int    `toml:"adc-channel"`
	Debounce   *string `toml:"debounce"`
}

// displayConfig maps the display timing.
type displayConfig struct {
	Dwell *string `toml:"dwell"`
}

// loadConfig reads a TOML config from the given path. Missing file is not an error.
func loadConfig(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sevsegclock configuration
# Uncomment a value to enable it. CLI flags override config values.

[pins]
# data = %q    # Register data line (DS)
# clock = %q   # Shift clock line (SHCP)
# latch = %q   # Latch line (STCP)
# reset = %q    # Reset button, active low
# mode = %q     # Voltage mode button, active low

[input]
# i2c-bus = ""        # I2C bus of the ADC (empty: first available)
# adc-address = %d    # I2C address of the ADS1115 (0x48)
# adc-channel = %d     # ADC channel wired to the potentiometer (0-3)
# debounce = "200ms"  # Button debounce lockout

[display]
# dwell = "2ms"       # Per digit dwell during a sweep
`,
		defaultDataPin,
		defaultClockPin,
		defaultLatchPin,
		defaultResetPin,
		defaultModePin,
		defaultADCAddr,
		defaultADCChannel,
	)
}
