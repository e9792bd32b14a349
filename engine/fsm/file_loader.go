package fsm

import (
	"fmt"

	"github.com/spf13/afero"
)

// LoadConfigAuto loads FSM config with priority: customPath > embedded
func LoadConfigAuto[T any](m *Machine[T], fs afero.Fs, customPath, embeddedFallback string) error {
	if customPath != "" {
		return LoadConfigFromPath(m, fs, customPath)
	}
	return m.LoadConfig([]byte(embeddedFallback))
}

// LoadConfigFromPath loads FSM config from an arbitrary file path
func LoadConfigFromPath[T any](m *Machine[T], fs afero.Fs, configPath string) error {
	info, err := fs.Stat(configPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := m.LoadConfig(data); err != nil {
		return fmt.Errorf("failed to load FSM config from %s: %w", configPath, err)
	}
	return nil
}
