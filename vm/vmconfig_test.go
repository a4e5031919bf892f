// Copyright © 2024 The n2h-helper authors

package vm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := VMConfig{
		Hostname: "test-vm",
		UUID:     "vm-uuid-1",
		CPUCores: 4,
		MemoryMB: 8192,
		BootType: "UEFI",
		Disks: []VMDisk{
			{UUID: "disk-uuid-1", Size: 42949672960, Adapter: "SCSI", Index: 0,
				Path: "/mnt/staging/migrations/test-vm/test-vm-disk-0.qcow2",
				VolumeName: "test-vm-disk-0-abcd1234"},
		},
		NICs: []VMNIC{
			{MAC: "50:6b:8d:00:00:01", Subnet: "vlan100", IP: "10.0.0.5"},
		},
	}

	path := filepath.Join(t.TempDir(), "sub", "vm-config.json")
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigFromVMInfo(t *testing.T) {
	info := VMInfo{
		UUID:     "vm-uuid-1",
		Name:     "test-vm",
		CPU:      8,
		MemoryMB: 4096,
		BootType: "BIOS",
		VMDisks:  []VMDisk{{UUID: "d1", Index: 0}},
		NICs:     []VMNIC{{MAC: "aa:bb:cc:dd:ee:ff"}},
	}
	cfg := ConfigFromVMInfo(info)
	assert.Equal(t, "test-vm", cfg.Hostname)
	assert.Equal(t, 8, cfg.CPUCores)
	assert.Equal(t, info.VMDisks, cfg.Disks)
	assert.Equal(t, info.NICs, cfg.NICs)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
