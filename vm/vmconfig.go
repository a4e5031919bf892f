// Copyright © 2024 The n2h-helper authors

package vm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// VMConfig is the per-VM descriptor persisted to staging alongside the
// exported disks, so the target VM can be re-created later without the
// source cluster being reachable.
type VMConfig struct {
	Hostname string `json:"hostname"`
	UUID     string `json:"uuid"`
	CPUCores int    `json:"cpu_cores"`
	MemoryMB int64  `json:"memory_mb"`
	BootType string `json:"boot_type"`

	Disks []VMDisk `json:"disks"`
	NICs  []VMNIC  `json:"nics"`
}

// ConfigFromVMInfo snapshots the fields needed to rebuild the VM.
func ConfigFromVMInfo(info VMInfo) VMConfig {
	return VMConfig{
		Hostname: info.Name,
		UUID:     info.UUID,
		CPUCores: info.CPU,
		MemoryMB: info.MemoryMB,
		BootType: info.BootType,
		Disks:    info.VMDisks,
		NICs:     info.NICs,
	}
}

// Save writes the config as indented JSON, creating parent directories.
func (c VMConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal vm config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write vm config")
	}
	return nil
}

// LoadConfig reads a previously saved config.
func LoadConfig(path string) (VMConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VMConfig{}, errors.Wrap(err, "failed to read vm config")
	}
	var cfg VMConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return VMConfig{}, errors.Wrap(err, "failed to parse vm config")
	}
	return cfg, nil
}
