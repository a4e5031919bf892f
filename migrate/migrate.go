// Copyright © 2024 The n2h-helper authors

package migrate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/monitor"
	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/qemu"
	"github.com/openmigrate/n2h-helper/staging"
	"github.com/openmigrate/n2h-helper/vm"
)

// stepWeights maps each workflow step to the overall completion percent
// reported when the step finishes.
var stepWeights = map[string]int{
	constants.StepGetVM:      5,
	constants.StepPowerCheck: 10,
	constants.StepExport:     20,
	constants.StepConvert:    50,
	constants.StepImport:     80,
	constants.StepCreateVM:   90,
	constants.StepComplete:   100,
}

// StepResult records one finished workflow step.
type StepResult struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// MigrationResult is the structured outcome of one VM migration.
type MigrationResult struct {
	Success bool         `json:"success"`
	Steps   []StepResult `json:"steps"`
	Error   string       `json:"error,omitempty"`
}

//go:generate mockgen -source=../migrate/migrate.go -destination=../migrate/migrate_mock.go -package=migrate

// DiskImporter moves staged images into target volumes.
type DiskImporter interface {
	ImportDiskSparse(ctx context.Context, vmName string, disk vm.VMDisk, onEvent monitor.EventFunc) (string, error)
	ImportDataVolume(ctx context.Context, vmName string, disk vm.VMDisk, serveIP string, onEvent monitor.EventFunc) (string, error)
}

// Migrate drives one VM through export, conversion, import and
// re-creation on the target cluster.
type Migrate struct {
	Nutanix   nutanix.NutanixOperations
	Harvester harvester.HarvesterOperations
	Qemu      qemu.QemuOperations
	Importer  DiskImporter
	Staging   *staging.Dir

	VMName        string
	Compress      bool
	NetworkName   string
	UseDataVolume bool
	ServeIP       string
	CleanupAfter  bool
	AutoPowerOff  bool

	result MigrationResult
}

func (m *Migrate) step(name, message string) {
	pct := stepWeights[name]
	m.result.Steps = append(m.result.Steps, StepResult{Name: name, Percent: pct, Message: message})
	log.Printf("[%3d%%] %s: %s", pct, name, message)
}

func (m *Migrate) fail(err error) MigrationResult {
	m.result.Success = false
	m.result.Error = err.Error()
	m.result.Steps = append(m.result.Steps, StepResult{Name: constants.StepError, Message: err.Error()})
	log.Printf("Migration of %s failed: %s", m.VMName, err)
	return m.result
}

// MigrateVM runs the full workflow and always returns a structured
// result, never panics the caller on step failure.
func (m *Migrate) MigrateVM(ctx context.Context) MigrationResult {
	m.result = MigrationResult{}

	info, err := m.Nutanix.GetVMByName(ctx, m.VMName)
	if err != nil {
		return m.fail(err)
	}
	m.step(constants.StepGetVM, fmt.Sprintf("found VM %s (%s), %d disks", info.Name, info.UUID, len(info.VMDisks)))

	if info.PowerState == constants.PowerStateOn {
		if !m.AutoPowerOff {
			m.step(constants.StepPowerCheck, "VM is running - must be powered off first")
			return m.fail(&errtypes.PreconditionError{VM: m.VMName, Reason: "VM is powered on, shut it down before migrating"})
		}
		if err := m.powerOff(ctx, &info); err != nil {
			return m.fail(err)
		}
	}
	m.step(constants.StepPowerCheck, "VM is powered off")

	if err := m.Staging.Ensure(); err != nil {
		return m.fail(err)
	}

	if err := m.exportDisks(ctx, &info); err != nil {
		return m.fail(err)
	}
	m.step(constants.StepExport, constants.EventMessageExportingDisk)

	if err := m.convertDisks(ctx, &info); err != nil {
		return m.fail(err)
	}
	m.step(constants.StepConvert, constants.EventMessageConvertingDisk)

	cfg := vm.ConfigFromVMInfo(info)
	if err := cfg.Save(m.Staging.ConfigPath()); err != nil {
		return m.fail(err)
	}

	if err := m.importDisks(ctx, &cfg); err != nil {
		return m.fail(err)
	}
	m.step(constants.StepImport, constants.EventMessageImportingDisk)

	if err := m.createVM(ctx, cfg); err != nil {
		return m.fail(err)
	}
	m.step(constants.StepCreateVM, constants.EventMessageCreatingVM)

	if m.CleanupAfter {
		if err := m.Staging.Cleanup(); err != nil {
			log.Printf("Staging cleanup failed: %s", err)
		}
	}
	m.step(constants.StepComplete, constants.EventMessageMigrationDone)
	m.result.Success = true
	return m.result
}

// powerOff shuts the source VM down and waits for the state to settle,
// re-reading the snapshot once the VM reports OFF.
func (m *Migrate) powerOff(ctx context.Context, info *vm.VMInfo) error {
	log.Printf("Powering off VM %s", info.Name)
	if err := m.Nutanix.PowerOffVM(ctx, info.UUID); err != nil {
		return err
	}
	for i := 0; i < constants.MaxPowerOffCheckCount; i++ {
		current, err := m.Nutanix.GetVM(ctx, info.UUID)
		if err != nil {
			return err
		}
		if current.PowerState == constants.PowerStateOff {
			*info = current
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.PowerOffPollInterval):
		}
	}
	return &errtypes.PreconditionError{VM: info.Name, Reason: "VM did not power off in time"}
}

// exportDisks pulls each source disk through the image service into the
// staging directory as a raw image.
func (m *Migrate) exportDisks(ctx context.Context, info *vm.VMInfo) error {
	for i := range info.VMDisks {
		disk := &info.VMDisks[i]
		imageName := fmt.Sprintf("export-%s-%d", m.VMName, disk.Index)
		imageUUID, err := m.Nutanix.CreateDiskImage(ctx, imageName, disk.UUID)
		if err != nil {
			return err
		}
		if err := m.Nutanix.WaitForImageReady(ctx, imageUUID); err != nil {
			return err
		}

		rawPath := m.Staging.DiskPath(disk.Index, "raw")
		err = m.Nutanix.DownloadImage(ctx, imageUUID, rawPath, func(copied, total int64, speed float64) {
			log.Printf("Downloading disk %d: %s of %s (%s/s)",
				disk.Index, humanize.Bytes(uint64(copied)), humanize.Bytes(uint64(total)), humanize.Bytes(uint64(speed)))
		})
		if err != nil {
			return err
		}
		disk.Path = rawPath

		// The export image is scratch space, losing it costs nothing.
		if err := m.Nutanix.DeleteImage(ctx, imageUUID); err != nil {
			log.Printf("Failed to delete export image %s: %s", imageUUID, err)
		}
	}
	return nil
}

// convertDisks rewrites each raw export as qcow2 and drops the raw file
// to bound staging usage at one extra copy per disk.
func (m *Migrate) convertDisks(ctx context.Context, info *vm.VMInfo) error {
	for i := range info.VMDisks {
		disk := &info.VMDisks[i]
		res, err := m.Qemu.ConvertRawToQcow2(ctx, disk.Path, m.Compress, func(pct float64) {
			log.Printf("Converting disk %d: %.1f%%", disk.Index, pct)
		})
		if err != nil {
			return err
		}
		log.Printf("Converted disk %d: %s -> %s (%.1f%% smaller)",
			disk.Index, humanize.Bytes(uint64(res.SizeBefore)), humanize.Bytes(uint64(res.SizeAfter)), res.ReductionPct)

		rawName := fmt.Sprintf("%s-disk-%d.raw", m.Staging.VMName, disk.Index)
		if err := m.Staging.Remove(rawName); err != nil {
			log.Printf("Failed to remove raw image %s: %s", rawName, err)
		}
		disk.Path = res.OutputFile
	}
	return nil
}

// importDisks pushes each converted image into a target volume and
// records the volume name on the disk.
func (m *Migrate) importDisks(ctx context.Context, cfg *vm.VMConfig) error {
	onEvent := func(ev monitor.Event) {
		log.Printf("Import [%s] %s", ev.Stage, ev.Message)
	}
	for i := range cfg.Disks {
		disk := &cfg.Disks[i]
		var volName string
		var err error
		if m.UseDataVolume {
			volName, err = m.Importer.ImportDataVolume(ctx, m.VMName, *disk, m.ServeIP, onEvent)
		} else {
			volName, err = m.Importer.ImportDiskSparse(ctx, m.VMName, *disk, onEvent)
		}
		if err != nil {
			return err
		}
		disk.VolumeName = volName
	}
	return nil
}

// createVM builds the target VM over the imported volumes and starts it.
func (m *Migrate) createVM(ctx context.Context, cfg vm.VMConfig) error {
	target := harvester.NewVirtualMachine(cfg, m.NetworkName)
	if err := m.Harvester.CreateVirtualMachine(ctx, target); err != nil {
		return err
	}
	if err := m.Harvester.StartVirtualMachine(ctx, target.Metadata.Name); err != nil {
		return err
	}
	m.waitVMReachable(ctx, target.Metadata.Name, cfg)
	return nil
}

// waitVMReachable pings the guest until it answers, preferring the
// address the running instance reports over the source NIC snapshot.
// Purely informational: an unreachable guest (no IP carried over, ICMP
// filtered) does not fail the migration.
func (m *Migrate) waitVMReachable(ctx context.Context, name string, cfg vm.VMConfig) {
	var ip string
	if vmi, err := m.Harvester.GetVMI(ctx, name); err == nil {
		for _, iface := range vmi.Status.Interfaces {
			if iface.IP != "" {
				ip = iface.IP
				break
			}
		}
	}
	if ip == "" {
		for _, nic := range cfg.NICs {
			if nic.IP != "" {
				ip = nic.IP
				break
			}
		}
	}
	if ip == "" {
		return
	}
	for i := 0; i < constants.MaxVMReachableCheckCount; i++ {
		pinger, err := probing.NewPinger(ip)
		if err != nil {
			return
		}
		pinger.Count = 1
		pinger.Timeout = 2 * time.Second
		if err := pinger.Run(); err == nil && pinger.Statistics().PacketsRecv > 0 {
			log.Printf("Target VM answers at %s", ip)
			return
		}
		time.Sleep(constants.VMReachableCheckInterval)
	}
	log.Printf("Target VM did not answer at %s, continuing", ip)
}
