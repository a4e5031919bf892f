// Copyright © 2024 The n2h-helper authors

package migrate

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/qemu"
	"github.com/openmigrate/n2h-helper/staging"
	"github.com/openmigrate/n2h-helper/vm"
)

func testVMInfo(powerState string) vm.VMInfo {
	return vm.VMInfo{
		UUID:       "vm-uuid-1",
		Name:       "test-vm",
		PowerState: powerState,
		CPU:        4,
		MemoryMB:   4096,
		BootType:   constants.BootTypeBIOS,
		VMDisks: []vm.VMDisk{
			{UUID: "disk-uuid-1", Size: 1 << 30, Adapter: "SCSI", Index: 0},
		},
		NICs: []vm.VMNIC{
			{MAC: "50:6b:8d:00:00:01", Subnet: "vlan100"},
		},
	}
}

func stepNames(steps []StepResult) []string {
	var names []string
	for _, s := range steps {
		names = append(names, s.Name)
	}
	return names
}

func TestMigrateVMSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	harvesterOps := harvester.NewMockHarvesterOperations(ctrl)
	qemuOps := qemu.NewMockQemuOperations(ctrl)
	imp := NewMockDiskImporter(ctrl)
	stagingDir := staging.NewDir(t.TempDir(), "test-vm")

	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOff), nil)
	nutanixOps.EXPECT().CreateDiskImage(gomock.Any(), "export-test-vm-0", "disk-uuid-1").Return("img-1", nil)
	nutanixOps.EXPECT().WaitForImageReady(gomock.Any(), "img-1").Return(nil)
	nutanixOps.EXPECT().DownloadImage(gomock.Any(), "img-1", stagingDir.DiskPath(0, "raw"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, destPath string, _ nutanix.ProgressFunc) error {
			return os.WriteFile(destPath, []byte("raw"), 0644)
		})
	nutanixOps.EXPECT().DeleteImage(gomock.Any(), "img-1").Return(nil)

	qemuOps.EXPECT().ConvertRawToQcow2(gomock.Any(), stagingDir.DiskPath(0, "raw"), true, gomock.Any()).
		Return(qemu.ConversionResult{
			OutputFile:   stagingDir.DiskPath(0, "qcow2"),
			SizeBefore:   1 << 30,
			SizeAfter:    1 << 29,
			ReductionPct: 50,
		}, nil)

	imp.EXPECT().ImportDiskSparse(gomock.Any(), "test-vm", gomock.Any(), gomock.Any()).Return("test-vm-disk-0-abcd1234", nil)

	harvesterOps.EXPECT().CreateVirtualMachine(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target *harvester.VirtualMachine) error {
			assert.Equal(t, "test-vm", target.Metadata.Name)
			require.Len(t, target.Spec.Template.Spec.Volumes, 1)
			assert.Equal(t, "test-vm-disk-0-abcd1234", target.Spec.Template.Spec.Volumes[0].PVC.ClaimName)
			return nil
		})
	harvesterOps.EXPECT().StartVirtualMachine(gomock.Any(), "test-vm").Return(nil)
	harvesterOps.EXPECT().GetVMI(gomock.Any(), "test-vm").Return(nil, assert.AnError)

	m := &Migrate{
		Nutanix:     nutanixOps,
		Harvester:   harvesterOps,
		Qemu:        qemuOps,
		Importer:    imp,
		Staging:     stagingDir,
		VMName:      "test-vm",
		Compress:    true,
		NetworkName: "default/vlan100",
	}
	result := m.MigrateVM(context.Background())

	require.True(t, result.Success, "migration failed: %s", result.Error)
	assert.Equal(t, []string{
		constants.StepGetVM,
		constants.StepPowerCheck,
		constants.StepExport,
		constants.StepConvert,
		constants.StepImport,
		constants.StepCreateVM,
		constants.StepComplete,
	}, stepNames(result.Steps))
	assert.Equal(t, 100, result.Steps[len(result.Steps)-1].Percent)

	// The descriptor persists in staging for later re-creation.
	cfg, err := vm.LoadConfig(stagingDir.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "test-vm", cfg.Hostname)
	assert.Equal(t, "test-vm-disk-0-abcd1234", cfg.Disks[0].VolumeName)
}

func TestMigrateVMRefusesPoweredOnVM(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOn), nil)

	m := &Migrate{
		Nutanix: nutanixOps,
		Staging: staging.NewDir(t.TempDir(), "test-vm"),
		VMName:  "test-vm",
	}
	result := m.MigrateVM(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "powered on")
	// The power check is recorded exactly once before the terminal error.
	names := stepNames(result.Steps)
	assert.Equal(t, []string{constants.StepGetVM, constants.StepPowerCheck, constants.StepError}, names)
	count := 0
	for _, s := range result.Steps {
		if s.Name == constants.StepPowerCheck {
			count++
			assert.Equal(t, 10, s.Percent)
			assert.Contains(t, s.Message, "must be powered off")
		}
	}
	assert.Equal(t, 1, count)
}

func TestMigrateVMExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOff), nil)
	nutanixOps.EXPECT().CreateDiskImage(gomock.Any(), gomock.Any(), gomock.Any()).Return("", assert.AnError)

	m := &Migrate{
		Nutanix: nutanixOps,
		Staging: staging.NewDir(t.TempDir(), "test-vm"),
		VMName:  "test-vm",
	}
	result := m.MigrateVM(context.Background())

	assert.False(t, result.Success)
	names := stepNames(result.Steps)
	assert.Equal(t, constants.StepError, names[len(names)-1])
	assert.NotContains(t, names, constants.StepExport)
}

func TestMigrateVMAutoPowerOff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOn), nil)
	nutanixOps.EXPECT().PowerOffVM(gomock.Any(), "vm-uuid-1").Return(nil)
	nutanixOps.EXPECT().GetVM(gomock.Any(), "vm-uuid-1").Return(testVMInfo(constants.PowerStateOff), nil)
	// Fail the export so the test stops after the power steps.
	nutanixOps.EXPECT().CreateDiskImage(gomock.Any(), gomock.Any(), gomock.Any()).Return("", assert.AnError)

	m := &Migrate{
		Nutanix:      nutanixOps,
		Staging:      staging.NewDir(t.TempDir(), "test-vm"),
		VMName:       "test-vm",
		AutoPowerOff: true,
	}
	result := m.MigrateVM(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, stepNames(result.Steps), constants.StepPowerCheck)
}

func TestMigrateVMConversionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	qemuOps := qemu.NewMockQemuOperations(ctrl)
	stagingDir := staging.NewDir(t.TempDir(), "test-vm")

	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOff), nil)
	nutanixOps.EXPECT().CreateDiskImage(gomock.Any(), gomock.Any(), gomock.Any()).Return("img-1", nil)
	nutanixOps.EXPECT().WaitForImageReady(gomock.Any(), "img-1").Return(nil)
	nutanixOps.EXPECT().DownloadImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	nutanixOps.EXPECT().DeleteImage(gomock.Any(), "img-1").Return(nil)
	qemuOps.EXPECT().ConvertRawToQcow2(gomock.Any(), gomock.Any(), false, gomock.Any()).
		Return(qemu.ConversionResult{}, &errtypes.ConversionError{ExitCode: 1})

	m := &Migrate{
		Nutanix: nutanixOps,
		Qemu:    qemuOps,
		Staging: stagingDir,
		VMName:  "test-vm",
	}
	result := m.MigrateVM(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "qemu-img failed with code 1")
	names := stepNames(result.Steps)
	assert.NotContains(t, names, constants.StepConvert)
	assert.Equal(t, constants.StepError, names[len(names)-1])
}

func TestMigrateVMDataVolumePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nutanixOps := nutanix.NewMockNutanixOperations(ctrl)
	harvesterOps := harvester.NewMockHarvesterOperations(ctrl)
	qemuOps := qemu.NewMockQemuOperations(ctrl)
	imp := NewMockDiskImporter(ctrl)
	stagingDir := staging.NewDir(t.TempDir(), "test-vm")

	nutanixOps.EXPECT().GetVMByName(gomock.Any(), "test-vm").Return(testVMInfo(constants.PowerStateOff), nil)
	nutanixOps.EXPECT().CreateDiskImage(gomock.Any(), gomock.Any(), gomock.Any()).Return("img-1", nil)
	nutanixOps.EXPECT().WaitForImageReady(gomock.Any(), "img-1").Return(nil)
	nutanixOps.EXPECT().DownloadImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	nutanixOps.EXPECT().DeleteImage(gomock.Any(), "img-1").Return(nil)
	qemuOps.EXPECT().ConvertRawToQcow2(gomock.Any(), gomock.Any(), false, gomock.Any()).
		Return(qemu.ConversionResult{OutputFile: stagingDir.DiskPath(0, "qcow2")}, nil)

	imp.EXPECT().ImportDataVolume(gomock.Any(), "test-vm", gomock.Any(), "10.0.0.7", gomock.Any()).Return("dv-vol", nil)

	harvesterOps.EXPECT().CreateVirtualMachine(gomock.Any(), gomock.Any()).Return(nil)
	harvesterOps.EXPECT().StartVirtualMachine(gomock.Any(), gomock.Any()).Return(nil)
	harvesterOps.EXPECT().GetVMI(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	m := &Migrate{
		Nutanix:       nutanixOps,
		Harvester:     harvesterOps,
		Qemu:          qemuOps,
		Importer:      imp,
		Staging:       stagingDir,
		VMName:        "test-vm",
		UseDataVolume: true,
		ServeIP:       "10.0.0.7",
	}
	result := m.MigrateVM(context.Background())
	require.True(t, result.Success, "migration failed: %s", result.Error)
}
