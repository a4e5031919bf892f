// Copyright © 2024 The n2h-helper authors

package nutanix

import (
	"strings"

	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/vm"
)

type vmListResponse struct {
	Entities []vmEntity `json:"entities"`
}

// vmEntity is the subset of a Prism v3 vm payload the migration needs.
type vmEntity struct {
	Metadata struct {
		UUID string `json:"uuid"`
	} `json:"metadata"`
	Status struct {
		Name      string      `json:"name"`
		Resources vmResources `json:"resources"`
	} `json:"status"`
}

type vmResources struct {
	PowerState        string `json:"power_state"`
	NumSockets        int    `json:"num_sockets"`
	NumVCPUsPerSocket int    `json:"num_vcpus_per_socket"`
	MemorySizeMiB     int64  `json:"memory_size_mib"`
	BootConfig        struct {
		BootType string `json:"boot_type"`
	} `json:"boot_config"`
	DiskList []struct {
		UUID             string `json:"uuid"`
		DiskSizeBytes    int64  `json:"disk_size_bytes"`
		DeviceProperties struct {
			DeviceType  string `json:"device_type"`
			DiskAddress struct {
				AdapterType string `json:"adapter_type"`
				DeviceIndex int    `json:"device_index"`
			} `json:"disk_address"`
		} `json:"device_properties"`
	} `json:"disk_list"`
	NicList []struct {
		MacAddress      string `json:"mac_address"`
		SubnetReference struct {
			Name string `json:"name"`
		} `json:"subnet_reference"`
		IPEndpointList []struct {
			IP string `json:"ip"`
		} `json:"ip_endpoint_list"`
	} `json:"nic_list"`
}

// ParseVMInfo flattens a Prism v3 vm entity into the internal snapshot.
// CD-ROM devices are skipped, only DISK devices are exported.
func ParseVMInfo(entity vmEntity) vm.VMInfo {
	res := entity.Status.Resources
	info := vm.VMInfo{
		UUID:       entity.Metadata.UUID,
		Name:       entity.Status.Name,
		PowerState: strings.ToUpper(res.PowerState),
		Sockets:    res.NumSockets,
		CoresPer:   res.NumVCPUsPerSocket,
		CPU:        res.NumSockets * res.NumVCPUsPerSocket,
		MemoryMB:   res.MemorySizeMiB,
		BootType:   parseBootType(res.BootConfig.BootType),
	}
	for _, d := range res.DiskList {
		if !strings.EqualFold(d.DeviceProperties.DeviceType, "DISK") {
			continue
		}
		info.VMDisks = append(info.VMDisks, vm.VMDisk{
			UUID:    d.UUID,
			Size:    d.DiskSizeBytes,
			Adapter: d.DeviceProperties.DiskAddress.AdapterType,
			Index:   d.DeviceProperties.DiskAddress.DeviceIndex,
		})
	}
	for _, n := range res.NicList {
		nic := vm.VMNIC{
			MAC:    n.MacAddress,
			Subnet: n.SubnetReference.Name,
		}
		if len(n.IPEndpointList) > 0 {
			nic.IP = n.IPEndpointList[0].IP
		}
		info.NICs = append(info.NICs, nic)
	}
	return info
}

func parseBootType(bootType string) string {
	if strings.EqualFold(bootType, "UEFI") {
		return constants.BootTypeUEFI
	}
	return constants.BootTypeBIOS
}
