// Copyright © 2024 The n2h-helper authors

package constants

import "time"

const (
	// PrismAPIPort is the port of the Prism v3 REST gateway.
	PrismAPIPort = 9440

	// MigrationSnapshotDir is the subdirectory of staging that holds
	// per-VM export artifacts (raw/qcow2 images and vm-config.json).
	MigrationSnapshotDir = "migrations"

	// DefaultStagingMount is where the shared staging filesystem is mounted.
	DefaultStagingMount = "/mnt/staging"

	// DefaultHTTPServerPort is the port the staging file server binds to.
	DefaultHTTPServerPort = 8080

	// PVCBindPollInterval is the interval between volume status polls.
	PVCBindPollInterval = 5 * time.Second

	// PVCBindTimeout is how long a requested volume may stay unbound.
	PVCBindTimeout = 300 * time.Second

	// PodCompletionPollInterval is the interval between conversion pod polls.
	PodCompletionPollInterval = 2 * time.Second

	// PodCompletionTimeout is how long the conversion pod may run.
	PodCompletionTimeout = 7200 * time.Second

	// DataVolumePollInterval is the interval between DataVolume status polls.
	DataVolumePollInterval = 5 * time.Second

	// DataVolumeTimeout is how long a DataVolume import may take.
	DataVolumeTimeout = 1800 * time.Second

	// ImageReadyPollInterval is the interval between source image state polls.
	ImageReadyPollInterval = 10 * time.Second

	// ImageReadyTimeout is how long a source disk image may take to become
	// downloadable after creation.
	ImageReadyTimeout = 3600 * time.Second

	// DownloadProgressInterval is the minimum gap between transfer
	// progress callbacks.
	DownloadProgressInterval = time.Second

	// DownloadChunkSize is the copy buffer used for streamed image downloads.
	DownloadChunkSize = 8 * 1024 * 1024

	// ConversionPodImage runs qemu-img inside the target cluster.
	ConversionPodImage = "quay.io/kubevirt/cdi-importer:latest"

	// ConversionDevicePath is where the target block volume appears
	// inside the conversion pod.
	ConversionDevicePath = "/dev/target"

	// ConversionMountPath is where the staging NFS share is mounted
	// inside the conversion pod.
	ConversionMountPath = "/mnt/source"

	// PowerOffPollInterval is the interval between source power state polls.
	PowerOffPollInterval = 5 * time.Second

	// MaxPowerOffCheckCount bounds the guest shutdown wait.
	MaxPowerOffCheckCount = 60

	// VMReachableCheckInterval is the interval between post-create pings.
	VMReachableCheckInterval = 10 * time.Second

	// MaxVMReachableCheckCount bounds the post-create reachability wait.
	MaxVMReachableCheckCount = 30

	// MaxHTTPRetryCount is the retry budget for REST calls.
	MaxHTTPRetryCount = 5

	// VMConfigFileName is the per-VM persisted descriptor in staging.
	VMConfigFileName = "vm-config.json"

	PowerStateOn      = "ON"
	PowerStateOff     = "OFF"
	PowerStateUnknown = "UNKNOWN"

	BootTypeBIOS = "BIOS"
	BootTypeUEFI = "UEFI"

	EventMessageExportingDisk  = "Exporting disk from source cluster"
	EventMessageConvertingDisk = "Converting disk to qcow2"
	EventMessageImportingDisk  = "Importing disk to target cluster"
	EventMessageCreatingVM     = "Creating target VM"
	EventMessageMigrationDone  = "Migration workflow complete"
)

// Workflow step identifiers, in execution order.
const (
	StepGetVM      = "get_vm"
	StepPowerCheck = "power_check"
	StepExport     = "export"
	StepConvert    = "convert"
	StepImport     = "import"
	StepCreateVM   = "create_vm"
	StepComplete   = "complete"
	StepError      = "error"
)
