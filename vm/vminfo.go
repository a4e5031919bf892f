// Copyright © 2024 The n2h-helper authors

package vm

// VMInfo is an immutable snapshot of a source VM taken at inspection
// time. It is never mutated in place, only re-fetched.
type VMInfo struct {
	UUID       string   `json:"uuid"`
	Name       string   `json:"name"`
	PowerState string   `json:"power_state"`
	CPU        int      `json:"vcpu"`
	Sockets    int      `json:"num_sockets"`
	CoresPer   int      `json:"num_vcpus_per_socket"`
	MemoryMB   int64    `json:"memory_mb"`
	BootType   string   `json:"boot_type"`
	VMDisks    []VMDisk `json:"disks"`
	NICs       []VMNIC  `json:"nics"`
}

// VMDisk identifies one source disk uniquely within a VM.
type VMDisk struct {
	UUID    string `json:"uuid"`
	Size    int64  `json:"size_bytes"`
	Adapter string `json:"adapter"`
	Index   int    `json:"index"`
	// Set during export: path of the staged image file.
	Path string `json:"path,omitempty"`
	// Set during import: name of the target block volume.
	VolumeName string `json:"volume_name,omitempty"`
}

// VMNIC describes one source network interface.
type VMNIC struct {
	MAC    string `json:"mac"`
	Subnet string `json:"subnet"`
	IP     string `json:"ip,omitempty"`
}
