// Copyright © 2024 The n2h-helper authors

package harvester

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/utils"
	vmpkg "github.com/openmigrate/n2h-helper/vm"
)

// NewVirtualMachine maps a persisted source VM descriptor onto a KubeVirt
// VirtualMachine whose disks point at the imported volumes. The VM is
// created stopped; StartVirtualMachine flips it on once everything is in
// place.
func NewVirtualMachine(cfg vmpkg.VMConfig, networkName string) *VirtualMachine {
	name := utils.SanitizeName(cfg.Hostname)

	domain := DomainSpec{
		CPU:    CPUSpec{Cores: cfg.CPUCores},
		Memory: MemorySpec{Guest: fmt.Sprintf("%dMi", cfg.MemoryMB)},
		Machine: &MachineSpec{
			Type: "q35",
		},
	}
	if cfg.BootType == constants.BootTypeUEFI {
		domain.Firmware = &FirmwareSpec{
			Bootloader: &BootloaderSpec{EFI: &EFISpec{SecureBoot: false}},
		}
	}

	var volumes []VMIVolume
	for i, disk := range cfg.Disks {
		diskName := fmt.Sprintf("disk-%d", i)
		domain.Devices.Disks = append(domain.Devices.Disks, DiskDevice{
			Name: diskName,
			Disk: &DiskBusModel{Bus: "virtio"},
		})
		volumes = append(volumes, VMIVolume{
			Name: diskName,
			PVC:  &PVCVolumeSource{ClaimName: disk.VolumeName},
		})
	}

	var networks []Network
	for i, nic := range cfg.NICs {
		ifaceName := fmt.Sprintf("nic-%d", i)
		domain.Devices.Interfaces = append(domain.Devices.Interfaces, InterfaceDevice{
			Name:       ifaceName,
			MacAddress: nic.MAC,
			Bridge:     &struct{}{},
		})
		networks = append(networks, Network{
			Name:   ifaceName,
			Multus: &MultusNetwork{NetworkName: networkName},
		})
	}
	if len(networks) == 0 {
		domain.Devices.Interfaces = append(domain.Devices.Interfaces, InterfaceDevice{
			Name:   "default",
			Bridge: &struct{}{},
		})
		networks = append(networks, Network{Name: "default", Pod: &struct{}{}})
	}

	return &VirtualMachine{
		APIVersion: "kubevirt.io/v1",
		Kind:       "VirtualMachine",
		Metadata: metav1.ObjectMeta{
			Name: name,
			Labels: map[string]string{
				"harvesterhci.io/creator": "n2h-helper",
			},
		},
		Spec: VirtualMachineSpec{
			Running: false,
			Template: VirtualMachineInstanceTmpl{
				Metadata: metav1.ObjectMeta{
					Labels: map[string]string{
						"kubevirt.io/vm": name,
					},
				},
				Spec: VirtualMachineInstanceSpec{
					Domain:   domain,
					Networks: networks,
					Volumes:  volumes,
				},
			},
		},
	}
}
