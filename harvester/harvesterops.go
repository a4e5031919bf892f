// Copyright © 2024 The n2h-helper authors

package harvester

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"

	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
)

//go:generate mockgen -source=../harvester/harvesterops.go -destination=../harvester/harvesterops_mock.go -package=harvester

type HarvesterOperations interface {
	CreatePVC(ctx context.Context, pvc *corev1.PersistentVolumeClaim) error
	GetPVC(ctx context.Context, name string) (*corev1.PersistentVolumeClaim, error)
	DeletePVC(ctx context.Context, name string) error
	CreatePod(ctx context.Context, pod *corev1.Pod) error
	GetPod(ctx context.Context, name string) (*corev1.Pod, error)
	ListPods(ctx context.Context, labelSelector string) ([]corev1.Pod, error)
	GetPodLogs(ctx context.Context, name string) (string, error)
	DeletePod(ctx context.Context, name string) error
	CreateDataVolume(ctx context.Context, dv *DataVolume) error
	GetDataVolume(ctx context.Context, name string) (*DataVolume, error)
	DeleteDataVolume(ctx context.Context, name string) error
	CreateVirtualMachine(ctx context.Context, vm *VirtualMachine) error
	GetVirtualMachine(ctx context.Context, name string) (*VirtualMachine, error)
	StartVirtualMachine(ctx context.Context, name string) error
	GetVMI(ctx context.Context, name string) (*VirtualMachineInstance, error)
	Close() error
}

// HarvesterClient talks to the Harvester Kubernetes API with client
// certificate auth. The base64 PEM material from the config is written
// to temp files at construction and removed by Close.
type HarvesterClient struct {
	cfg       config.HarvesterConfig
	baseURL   string
	namespace string
	client    *retryablehttp.Client
	certFiles []string
}

func NewHarvesterClient(cfg config.HarvesterConfig) (*HarvesterClient, error) {
	h := &HarvesterClient{
		cfg:       cfg,
		baseURL:   cfg.APIURL,
		namespace: cfg.Namespace,
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}
	if cfg.CertificateAuthorityData != "" {
		caPath, err := h.writeTempPEM("harvester-ca-*.pem", cfg.CertificateAuthorityData)
		if err != nil {
			return nil, err
		}
		caData, err := os.ReadFile(caPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CA file")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caData) {
			h.Close()
			return nil, errors.New("failed to parse certificate authority data")
		}
		tlsConfig.RootCAs = pool
	}
	if cfg.ClientCertificateData != "" && cfg.ClientKeyData != "" {
		certPath, err := h.writeTempPEM("harvester-cert-*.pem", cfg.ClientCertificateData)
		if err != nil {
			return nil, err
		}
		keyPath, err := h.writeTempPEM("harvester-key-*.pem", cfg.ClientKeyData)
		if err != nil {
			return nil, err
		}
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			h.Close()
			return nil, errors.Wrap(err, "failed to load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	client := retryablehttp.NewClient()
	client.RetryMax = constants.MaxHTTPRetryCount
	client.Logger = nil
	client.HTTPClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	h.client = client
	return h, nil
}

func (h *HarvesterClient) writeTempPEM(pattern, b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		h.Close()
		return "", errors.Wrap(err, "failed to decode certificate data")
	}
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		h.Close()
		return "", errors.Wrap(err, "failed to create temp cert file")
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		h.Close()
		return "", errors.Wrap(err, "failed to write temp cert file")
	}
	h.certFiles = append(h.certFiles, f.Name())
	return f.Name(), nil
}

// Close removes the temp certificate files.
func (h *HarvesterClient) Close() error {
	var firstErr error
	for _, f := range h.certFiles {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	h.certFiles = nil
	return firstErr
}

func (h *HarvesterClient) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(data)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/merge-patch+json")
	} else {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to %s %s", method, path)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, data)
	}
	return data, nil
}

func parseAPIError(status int, body []byte) error {
	msg := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &msg); err != nil || msg.Message == "" {
		msg.Message = string(body)
	}
	return &errtypes.APIError{Status: status, Message: msg.Message}
}

// notFound converts a 404 APIError into a typed NotFoundError so callers
// can distinguish absence from failure.
func notFound(err error, kind, name string) error {
	var apiErr *errtypes.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return &errtypes.NotFoundError{Kind: kind, Name: name}
	}
	return err
}

func (h *HarvesterClient) corePath(resource, name string) string {
	p := fmt.Sprintf("/api/v1/namespaces/%s/%s", h.namespace, resource)
	if name != "" {
		p += "/" + name
	}
	return p
}

// CreatePVC creates the block volume the conversion pod writes into.
func (h *HarvesterClient) CreatePVC(ctx context.Context, pvc *corev1.PersistentVolumeClaim) error {
	_, err := h.do(ctx, http.MethodPost, h.corePath("persistentvolumeclaims", ""), pvc)
	return err
}

func (h *HarvesterClient) GetPVC(ctx context.Context, name string) (*corev1.PersistentVolumeClaim, error) {
	data, err := h.do(ctx, http.MethodGet, h.corePath("persistentvolumeclaims", name), nil)
	if err != nil {
		return nil, notFound(err, "persistentvolumeclaim", name)
	}
	pvc := &corev1.PersistentVolumeClaim{}
	if err := json.Unmarshal(data, pvc); err != nil {
		return nil, errors.Wrap(err, "failed to parse pvc response")
	}
	return pvc, nil
}

// DeletePVC removes a leftover volume. Not called by the import flow,
// which keeps volumes; cleanup is an explicit operator action.
func (h *HarvesterClient) DeletePVC(ctx context.Context, name string) error {
	_, err := h.do(ctx, http.MethodDelete, h.corePath("persistentvolumeclaims", name), nil)
	return err
}

func (h *HarvesterClient) CreatePod(ctx context.Context, pod *corev1.Pod) error {
	_, err := h.do(ctx, http.MethodPost, h.corePath("pods", ""), pod)
	return err
}

func (h *HarvesterClient) GetPod(ctx context.Context, name string) (*corev1.Pod, error) {
	data, err := h.do(ctx, http.MethodGet, h.corePath("pods", name), nil)
	if err != nil {
		return nil, notFound(err, "pod", name)
	}
	pod := &corev1.Pod{}
	if err := json.Unmarshal(data, pod); err != nil {
		return nil, errors.Wrap(err, "failed to parse pod response")
	}
	return pod, nil
}

// ListPods returns the pods matching a label selector.
func (h *HarvesterClient) ListPods(ctx context.Context, labelSelector string) ([]corev1.Pod, error) {
	path := h.corePath("pods", "")
	if labelSelector != "" {
		path += "?labelSelector=" + url.QueryEscape(labelSelector)
	}
	data, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	list := &corev1.PodList{}
	if err := json.Unmarshal(data, list); err != nil {
		return nil, errors.Wrap(err, "failed to parse pod list response")
	}
	return list.Items, nil
}

// GetPodLogs returns the pod's full log so far.
func (h *HarvesterClient) GetPodLogs(ctx context.Context, name string) (string, error) {
	data, err := h.do(ctx, http.MethodGet, h.corePath("pods", name)+"/log", nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *HarvesterClient) DeletePod(ctx context.Context, name string) error {
	_, err := h.do(ctx, http.MethodDelete, h.corePath("pods", name), nil)
	return err
}

func (h *HarvesterClient) cdiPath(name string) string {
	p := fmt.Sprintf("/apis/cdi.kubevirt.io/v1beta1/namespaces/%s/datavolumes", h.namespace)
	if name != "" {
		p += "/" + name
	}
	return p
}

func (h *HarvesterClient) CreateDataVolume(ctx context.Context, dv *DataVolume) error {
	_, err := h.do(ctx, http.MethodPost, h.cdiPath(""), dv)
	return err
}

func (h *HarvesterClient) GetDataVolume(ctx context.Context, name string) (*DataVolume, error) {
	data, err := h.do(ctx, http.MethodGet, h.cdiPath(name), nil)
	if err != nil {
		return nil, notFound(err, "datavolume", name)
	}
	dv := &DataVolume{}
	if err := json.Unmarshal(data, dv); err != nil {
		return nil, errors.Wrap(err, "failed to parse datavolume response")
	}
	return dv, nil
}

func (h *HarvesterClient) DeleteDataVolume(ctx context.Context, name string) error {
	_, err := h.do(ctx, http.MethodDelete, h.cdiPath(name), nil)
	return err
}

func (h *HarvesterClient) kubevirtPath(name string) string {
	p := fmt.Sprintf("/apis/kubevirt.io/v1/namespaces/%s/virtualmachines", h.namespace)
	if name != "" {
		p += "/" + name
	}
	return p
}

func (h *HarvesterClient) CreateVirtualMachine(ctx context.Context, vm *VirtualMachine) error {
	_, err := h.do(ctx, http.MethodPost, h.kubevirtPath(""), vm)
	return err
}

func (h *HarvesterClient) GetVirtualMachine(ctx context.Context, name string) (*VirtualMachine, error) {
	data, err := h.do(ctx, http.MethodGet, h.kubevirtPath(name), nil)
	if err != nil {
		return nil, notFound(err, "virtualmachine", name)
	}
	vm := &VirtualMachine{}
	if err := json.Unmarshal(data, vm); err != nil {
		return nil, errors.Wrap(err, "failed to parse virtualmachine response")
	}
	return vm, nil
}

// StartVirtualMachine patches spec.running true.
func (h *HarvesterClient) StartVirtualMachine(ctx context.Context, name string) error {
	patch := map[string]interface{}{
		"spec": map[string]interface{}{
			"running": true,
		},
	}
	_, err := h.do(ctx, http.MethodPatch, h.kubevirtPath(name), patch)
	return err
}

// GetVMI fetches the running instance, mainly to discover the guest's
// reported addresses.
func (h *HarvesterClient) GetVMI(ctx context.Context, name string) (*VirtualMachineInstance, error) {
	path := fmt.Sprintf("/apis/kubevirt.io/v1/namespaces/%s/virtualmachineinstances/%s", h.namespace, name)
	data, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	vmi := &VirtualMachineInstance{}
	if err := json.Unmarshal(data, vmi); err != nil {
		return nil, errors.Wrap(err, "failed to parse virtualmachineinstance response")
	}
	return vmi, nil
}
