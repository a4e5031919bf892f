// Copyright © 2024 The n2h-helper authors

package harvester

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/openmigrate/n2h-helper/pkg/constants"
)

// DataVolume is the CDI DataVolume subset the importer drives.
type DataVolume struct {
	APIVersion string            `json:"apiVersion"`
	Kind       string            `json:"kind"`
	Metadata   metav1.ObjectMeta `json:"metadata"`
	Spec       DataVolumeSpec    `json:"spec"`
	Status     DataVolumeStatus  `json:"status,omitempty"`
}

type DataVolumeSpec struct {
	Source DataVolumeSource                  `json:"source"`
	PVC    *corev1.PersistentVolumeClaimSpec `json:"pvc,omitempty"`
}

type DataVolumeSource struct {
	HTTP *DataVolumeSourceHTTP `json:"http,omitempty"`
}

type DataVolumeSourceHTTP struct {
	URL string `json:"url"`
}

type DataVolumeStatus struct {
	Phase    string `json:"phase,omitempty"`
	Progress string `json:"progress,omitempty"`
}

// VirtualMachine is the KubeVirt VirtualMachine subset needed to rebuild
// the source VM on the target cluster.
type VirtualMachine struct {
	APIVersion string             `json:"apiVersion"`
	Kind       string             `json:"kind"`
	Metadata   metav1.ObjectMeta  `json:"metadata"`
	Spec       VirtualMachineSpec `json:"spec"`
}

type VirtualMachineSpec struct {
	Running  bool                       `json:"running"`
	Template VirtualMachineInstanceTmpl `json:"template"`
}

type VirtualMachineInstanceTmpl struct {
	Metadata metav1.ObjectMeta          `json:"metadata,omitempty"`
	Spec     VirtualMachineInstanceSpec `json:"spec"`
}

type VirtualMachineInstanceSpec struct {
	Domain   DomainSpec  `json:"domain"`
	Networks []Network   `json:"networks,omitempty"`
	Volumes  []VMIVolume `json:"volumes"`
}

type DomainSpec struct {
	CPU      CPUSpec       `json:"cpu"`
	Memory   MemorySpec    `json:"memory"`
	Firmware *FirmwareSpec `json:"firmware,omitempty"`
	Devices  DeviceSpec    `json:"devices"`
	Features *FeatureSpec  `json:"features,omitempty"`
	Machine  *MachineSpec  `json:"machine,omitempty"`
}

type CPUSpec struct {
	Cores int `json:"cores"`
}

type MemorySpec struct {
	Guest string `json:"guest"`
}

type FirmwareSpec struct {
	Bootloader *BootloaderSpec `json:"bootloader,omitempty"`
}

type BootloaderSpec struct {
	EFI *EFISpec `json:"efi,omitempty"`
}

type EFISpec struct {
	SecureBoot bool `json:"secureBoot"`
}

type FeatureSpec struct {
	SMM *FeatureState `json:"smm,omitempty"`
}

type FeatureState struct {
	Enabled bool `json:"enabled"`
}

type MachineSpec struct {
	Type string `json:"type"`
}

type DeviceSpec struct {
	Disks      []DiskDevice      `json:"disks"`
	Interfaces []InterfaceDevice `json:"interfaces,omitempty"`
}

type DiskDevice struct {
	Name string        `json:"name"`
	Disk *DiskBusModel `json:"disk,omitempty"`
}

type DiskBusModel struct {
	Bus string `json:"bus"`
}

type InterfaceDevice struct {
	Name       string    `json:"name"`
	MacAddress string    `json:"macAddress,omitempty"`
	Bridge     *struct{} `json:"bridge,omitempty"`
}

type Network struct {
	Name   string         `json:"name"`
	Multus *MultusNetwork `json:"multus,omitempty"`
	Pod    *struct{}      `json:"pod,omitempty"`
}

type MultusNetwork struct {
	NetworkName string `json:"networkName"`
}

type VMIVolume struct {
	Name string               `json:"name"`
	PVC  *PVCVolumeSource     `json:"persistentVolumeClaim,omitempty"`
	DV   *DataVolumeSourceRef `json:"dataVolume,omitempty"`
}

type PVCVolumeSource struct {
	ClaimName string `json:"claimName"`
}

type DataVolumeSourceRef struct {
	Name string `json:"name"`
}

// VirtualMachineInstance is the running-instance subset used for address
// discovery after a migrated VM starts.
type VirtualMachineInstance struct {
	APIVersion string                       `json:"apiVersion"`
	Kind       string                       `json:"kind"`
	Metadata   metav1.ObjectMeta            `json:"metadata"`
	Status     VirtualMachineInstanceStatus `json:"status,omitempty"`
}

type VirtualMachineInstanceStatus struct {
	Phase      string         `json:"phase,omitempty"`
	Interfaces []VMIInterface `json:"interfaces,omitempty"`
}

type VMIInterface struct {
	Name string `json:"name,omitempty"`
	IP   string `json:"ipAddress,omitempty"`
	MAC  string `json:"mac,omitempty"`
}

// NewBlockPVC builds the target volume claim for one disk. Block mode is
// required so the conversion pod can write the image straight onto the
// device.
func NewBlockPVC(name, storageClass string, sizeBytes int64) *corev1.PersistentVolumeClaim {
	blockMode := corev1.PersistentVolumeBlock
	pvc := &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "PersistentVolumeClaim",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			VolumeMode:  &blockMode,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: *resource.NewQuantity(sizeBytes, resource.BinarySI),
				},
			},
		},
	}
	if storageClass != "" {
		pvc.Spec.StorageClassName = &storageClass
	}
	return pvc
}

// NewConversionPod builds the one-shot pod that writes a staged qcow2
// image onto the block PVC. The staging NFS share is mounted read-write
// and the PVC is attached as a raw block device.
func NewConversionPod(podName, pvcName, nfsServer, nfsPath, imageFile string) *corev1.Pod {
	cmd := fmt.Sprintf("qemu-img convert -f qcow2 -O raw %s/%s %s && sync",
		constants.ConversionMountPath, imageFile, constants.ConversionDevicePath)
	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: podName,
			Labels: map[string]string{
				"app": "n2h-import",
			},
		},
		Spec: corev1.PodSpec{
			RestartPolicy: corev1.RestartPolicyNever,
			Containers: []corev1.Container{
				{
					Name:    "convert",
					Image:   constants.ConversionPodImage,
					Command: []string{"/bin/sh", "-c", cmd},
					VolumeDevices: []corev1.VolumeDevice{
						{
							Name:       "target",
							DevicePath: constants.ConversionDevicePath,
						},
					},
					VolumeMounts: []corev1.VolumeMount{
						{
							Name:      "source",
							MountPath: constants.ConversionMountPath,
						},
					},
				},
			},
			Volumes: []corev1.Volume{
				{
					Name: "target",
					VolumeSource: corev1.VolumeSource{
						PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
							ClaimName: pvcName,
						},
					},
				},
				{
					Name: "source",
					VolumeSource: corev1.VolumeSource{
						NFS: &corev1.NFSVolumeSource{
							Server: nfsServer,
							Path:   nfsPath,
						},
					},
				},
			},
		},
	}
}

// NewDataVolume builds a CDI DataVolume that pulls a served image over
// HTTP into a fresh volume.
func NewDataVolume(name, url, storageClass string, sizeBytes int64) *DataVolume {
	dv := &DataVolume{
		APIVersion: "cdi.kubevirt.io/v1beta1",
		Kind:       "DataVolume",
		Metadata: metav1.ObjectMeta{
			Name: name,
		},
		Spec: DataVolumeSpec{
			Source: DataVolumeSource{
				HTTP: &DataVolumeSourceHTTP{URL: url},
			},
			PVC: &corev1.PersistentVolumeClaimSpec{
				AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
				Resources: corev1.VolumeResourceRequirements{
					Requests: corev1.ResourceList{
						corev1.ResourceStorage: *resource.NewQuantity(sizeBytes, resource.BinarySI),
					},
				},
			},
		},
	}
	if storageClass != "" {
		dv.Spec.PVC.StorageClassName = &storageClass
	}
	return dv
}
