// Copyright © 2024 The n2h-helper authors

package importer

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/monitor"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/pkg/utils"
	"github.com/openmigrate/n2h-helper/staging"
	"github.com/openmigrate/n2h-helper/vm"
)

// State tracks where one disk import is in its lifecycle. Transitions
// only move forward; a failed import keeps its PVC around for debugging
// and retry, only the conversion pod is cleaned up.
type State string

const (
	StateCreated            State = "Created"
	StateProvisionRequested State = "ProvisionRequested"
	StateAwaitingBind       State = "AwaitingBind"
	StateJobLaunched        State = "JobLaunched"
	StateAwaitingCompletion State = "AwaitingCompletion"
	StateSucceeded          State = "Succeeded"
	StateFailed             State = "Failed"
	StateTimedOut           State = "TimedOut"
)

// Importer moves staged disk images into target-cluster volumes.
type Importer struct {
	client       harvester.HarvesterOperations
	mon          *monitor.Monitor
	nfsServer    string
	nfsPath      string
	storageClass string

	// state of the most recent import, exposed for status reporting
	state State
}

func NewImporter(client harvester.HarvesterOperations, mon *monitor.Monitor, nfsServer, nfsPath, storageClass string) *Importer {
	return &Importer{
		client:       client,
		mon:          mon,
		nfsServer:    nfsServer,
		nfsPath:      nfsPath,
		storageClass: storageClass,
		state:        StateCreated,
	}
}

// State returns the current lifecycle state.
func (im *Importer) State() State {
	return im.state
}

func (im *Importer) transition(s State) {
	log.Printf("Import state: %s -> %s", im.state, s)
	im.state = s
}

// ImportDiskSparse writes one staged qcow2 image onto a fresh block
// volume via an in-cluster conversion pod, preserving sparseness. The
// disk's Path must point at the staged image. Returns the volume name.
//
// The pod is removed on every terminal outcome, best effort. The PVC is
// never removed here: on success the target VM consumes it, on failure
// it holds whatever was written for inspection.
func (im *Importer) ImportDiskSparse(ctx context.Context, vmName string, disk vm.VMDisk, onEvent monitor.EventFunc) (string, error) {
	volName := fmt.Sprintf("%s-disk-%d-%s", utils.SanitizeName(vmName), disk.Index, utils.RandomSuffix())
	podName := "import-" + volName

	im.transition(StateProvisionRequested)
	pvc := harvester.NewBlockPVC(volName, im.storageClass, disk.Size)
	if err := im.client.CreatePVC(ctx, pvc); err != nil {
		im.transition(StateFailed)
		return "", errors.Wrapf(err, "failed to create volume %s", volName)
	}

	im.transition(StateAwaitingBind)
	if err := im.mon.WaitForPVCBound(ctx, volName); err != nil {
		im.transition(StateFailed)
		return "", err
	}

	im.transition(StateJobLaunched)
	imageFile, err := filepath.Rel(im.nfsPath, disk.Path)
	if err != nil || strings.HasPrefix(imageFile, "..") {
		// Path not under the export root; fall back to the base name.
		imageFile = filepath.Base(disk.Path)
	}
	pod := harvester.NewConversionPod(podName, volName, im.nfsServer, im.nfsPath, imageFile)
	if err := im.client.CreatePod(ctx, pod); err != nil {
		im.transition(StateFailed)
		return "", errors.Wrapf(err, "failed to create conversion pod %s", podName)
	}

	im.transition(StateAwaitingCompletion)
	waitErr := im.mon.WaitForPodCompletion(ctx, podName, onEvent)

	// Terminal cleanup regardless of outcome.
	if err := im.client.DeletePod(ctx, podName); err != nil {
		log.Printf("Failed to delete conversion pod %s: %s", podName, err)
	}

	if waitErr != nil {
		// A pod that never finished within the window is a timeout, any
		// other wait outcome is a plain failure.
		var jobTimeout *errtypes.JobTimeoutError
		if errors.As(waitErr, &jobTimeout) {
			im.transition(StateTimedOut)
		} else {
			im.transition(StateFailed)
		}
		return "", waitErr
	}
	im.transition(StateSucceeded)
	return volName, nil
}

// ImportDataVolume imports one staged image by serving it over HTTP and
// letting the cluster's CDI importer pull it into a DataVolume. Used
// when no shared NFS path to the cluster exists.
func (im *Importer) ImportDataVolume(ctx context.Context, vmName string, disk vm.VMDisk, serveIP string, onEvent monitor.EventFunc) (string, error) {
	volName := fmt.Sprintf("%s-disk-%d-%s", utils.SanitizeName(vmName), disk.Index, utils.RandomSuffix())

	url, err := staging.DefaultFileServer().Serve(disk.Path, serveIP, 0)
	if err != nil {
		return "", err
	}
	defer staging.DefaultFileServer().Stop()

	dv := harvester.NewDataVolume(volName, url, im.storageClass, disk.Size)
	if err := im.client.CreateDataVolume(ctx, dv); err != nil {
		return "", errors.Wrapf(err, "failed to create datavolume %s", volName)
	}

	if !im.mon.WaitForDataVolume(ctx, volName, onEvent) {
		return "", errors.Errorf("datavolume import for %s did not succeed", volName)
	}
	return volName, nil
}
