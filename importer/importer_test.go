// Copyright © 2024 The n2h-helper authors

package importer

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/monitor"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/vm"
)

func boundPVC() *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		Status: corev1.PersistentVolumeClaimStatus{Phase: corev1.ClaimBound},
	}
}

func terminalPod(phase corev1.PodPhase, reason string) *corev1.Pod {
	return &corev1.Pod{
		Status: corev1.PodStatus{
			Phase: phase,
			ContainerStatuses: []corev1.ContainerStatus{
				{State: corev1.ContainerState{
					Terminated: &corev1.ContainerStateTerminated{Reason: reason},
				}},
			},
		},
	}
}

func TestImportDiskSparseSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := harvester.NewMockHarvesterOperations(ctrl)

	var createdPVC *corev1.PersistentVolumeClaim
	var createdPod *corev1.Pod
	client.EXPECT().CreatePVC(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pvc *corev1.PersistentVolumeClaim) error {
			createdPVC = pvc
			return nil
		})
	client.EXPECT().GetPVC(gomock.Any(), gomock.Any()).Return(boundPVC(), nil)
	client.EXPECT().CreatePod(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pod *corev1.Pod) error {
			createdPod = pod
			return nil
		})
	client.EXPECT().GetPod(gomock.Any(), gomock.Any()).Return(terminalPod(corev1.PodSucceeded, "Completed"), nil)
	client.EXPECT().GetPodLogs(gomock.Any(), gomock.Any()).Return("", nil)
	client.EXPECT().DeletePod(gomock.Any(), gomock.Any()).Return(nil)

	im := NewImporter(client, monitor.NewMonitor(client), "10.0.0.9", "/export/staging", "longhorn")
	disk := vm.VMDisk{
		UUID:  "disk-uuid-1",
		Size:  42949672960,
		Index: 0,
		Path:  "/export/staging/migrations/vm1/vm1-disk-0.qcow2",
	}
	volName, err := im.ImportDiskSparse(context.Background(), "vm1", disk, nil)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, im.State())

	assert.Equal(t, volName, createdPVC.Name)
	qty := createdPVC.Spec.Resources.Requests[corev1.ResourceStorage]
	assert.Equal(t, int64(42949672960), qty.Value())

	// The pod mounts the share root and references the image by its
	// path relative to the export root.
	assert.Equal(t, "import-"+volName, createdPod.Name)
	assert.Contains(t, createdPod.Spec.Containers[0].Command[2], "migrations/vm1/vm1-disk-0.qcow2")
}

func TestImportDiskSparsePodFailureKeepsPVC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := harvester.NewMockHarvesterOperations(ctrl)

	client.EXPECT().CreatePVC(gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().GetPVC(gomock.Any(), gomock.Any()).Return(boundPVC(), nil)
	client.EXPECT().CreatePod(gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().GetPod(gomock.Any(), gomock.Any()).Return(terminalPod(corev1.PodFailed, "Error"), nil)
	client.EXPECT().GetPodLogs(gomock.Any(), gomock.Any()).Return("qemu-img: write error\n", nil)
	// The pod is still cleaned up on failure; the PVC is never deleted.
	client.EXPECT().DeletePod(gomock.Any(), gomock.Any()).Return(nil)

	im := NewImporter(client, monitor.NewMonitor(client), "10.0.0.9", "/export/staging", "")
	disk := vm.VMDisk{Size: 1024, Index: 0, Path: "/export/staging/d.qcow2"}
	_, err := im.ImportDiskSparse(context.Background(), "vm1", disk, nil)
	require.Error(t, err)
	assert.Equal(t, StateFailed, im.State())
}

func TestImportDiskSparseBindTimeoutLaunchesNoPod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := harvester.NewMockHarvesterOperations(ctrl)

	client.EXPECT().CreatePVC(gomock.Any(), gomock.Any()).Return(nil)
	// Never bound: the orchestrator must give up without creating a pod.
	client.EXPECT().GetPVC(gomock.Any(), gomock.Any()).
		Return(pvcWithPhase(corev1.ClaimPending), nil).AnyTimes()

	mon := monitor.NewMonitorWithSleep(client, func(time.Duration) {})
	im := NewImporter(client, mon, "10.0.0.9", "/export/staging", "")
	disk := vm.VMDisk{Size: 1024, Index: 0, Path: "/export/staging/d.qcow2"}
	_, err := im.ImportDiskSparse(context.Background(), "vm1", disk, nil)

	var bindErr *errtypes.BindTimeoutError
	require.ErrorAs(t, err, &bindErr)
	// An unbound volume is a provisioning failure, not a job timeout.
	assert.Equal(t, StateFailed, im.State())
}

func pvcWithPhase(phase corev1.PersistentVolumeClaimPhase) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		Status: corev1.PersistentVolumeClaimStatus{Phase: phase},
	}
}

func TestImportDiskSparseCompletionTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := harvester.NewMockHarvesterOperations(ctrl)

	running := &corev1.Pod{
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			ContainerStatuses: []corev1.ContainerStatus{
				{State: corev1.ContainerState{Running: &corev1.ContainerStateRunning{}}},
			},
		},
	}
	client.EXPECT().CreatePVC(gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().GetPVC(gomock.Any(), gomock.Any()).Return(boundPVC(), nil)
	client.EXPECT().CreatePod(gomock.Any(), gomock.Any()).Return(nil)
	// The pod never terminates within the completion window.
	client.EXPECT().GetPod(gomock.Any(), gomock.Any()).Return(running, nil).AnyTimes()
	client.EXPECT().GetPodLogs(gomock.Any(), gomock.Any()).Return("", nil).AnyTimes()
	client.EXPECT().DeletePod(gomock.Any(), gomock.Any()).Return(nil)

	mon := monitor.NewMonitorWithSleep(client, func(time.Duration) {})
	im := NewImporter(client, mon, "10.0.0.9", "/export/staging", "")
	disk := vm.VMDisk{Size: 1024, Index: 0, Path: "/export/staging/d.qcow2"}
	_, err := im.ImportDiskSparse(context.Background(), "vm1", disk, nil)

	var jobErr *errtypes.JobTimeoutError
	require.ErrorAs(t, err, &jobErr)
	assert.Equal(t, StateTimedOut, im.State())
}

func TestImportDiskSparsePodCleanupErrorSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := harvester.NewMockHarvesterOperations(ctrl)

	client.EXPECT().CreatePVC(gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().GetPVC(gomock.Any(), gomock.Any()).Return(boundPVC(), nil)
	client.EXPECT().CreatePod(gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().GetPod(gomock.Any(), gomock.Any()).Return(terminalPod(corev1.PodSucceeded, "Completed"), nil)
	client.EXPECT().GetPodLogs(gomock.Any(), gomock.Any()).Return("", nil)
	client.EXPECT().DeletePod(gomock.Any(), gomock.Any()).Return(assert.AnError)

	im := NewImporter(client, monitor.NewMonitor(client), "10.0.0.9", "/export/staging", "")
	disk := vm.VMDisk{Size: 1024, Index: 0, Path: "/export/staging/d.qcow2"}
	_, err := im.ImportDiskSparse(context.Background(), "vm1", disk, nil)
	// A failed pod delete does not fail a successful import.
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, im.State())
}
