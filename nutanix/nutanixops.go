// Copyright © 2024 The n2h-helper authors

package nutanix

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/vm"
)

//go:generate mockgen -source=../nutanix/nutanixops.go -destination=../nutanix/nutanixops_mock.go -package=nutanix

type NutanixOperations interface {
	GetVMByName(ctx context.Context, name string) (vm.VMInfo, error)
	GetVM(ctx context.Context, uuid string) (vm.VMInfo, error)
	ListVMs(ctx context.Context) ([]vm.VMInfo, error)
	PowerOffVM(ctx context.Context, uuid string) error
	PowerOnVM(ctx context.Context, uuid string) error
	CreateDiskImage(ctx context.Context, imageName, diskUUID string) (string, error)
	WaitForImageReady(ctx context.Context, imageUUID string) error
	DownloadImage(ctx context.Context, imageUUID, destPath string, progress ProgressFunc) error
	DeleteImage(ctx context.Context, imageUUID string) error
}

// ProgressFunc receives throttled transfer updates. Speed is the
// instantaneous rate since the previous callback, in bytes per second.
type ProgressFunc func(copied, total int64, speed float64)

// NutanixClient talks to the Prism v3 REST gateway.
type NutanixClient struct {
	cfg     config.NutanixConfig
	baseURL string
	client  *retryablehttp.Client
}

func NewNutanixClient(cfg config.NutanixConfig) *NutanixClient {
	client := retryablehttp.NewClient()
	client.RetryMax = constants.MaxHTTPRetryCount
	client.Logger = nil
	if !cfg.VerifySSL {
		client.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &NutanixClient{
		cfg:     cfg,
		baseURL: fmt.Sprintf("https://%s:%d/api/nutanix/v3", cfg.PrismIP, constants.PrismAPIPort),
		client:  client,
	}
}

func (n *NutanixClient) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(data)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, n.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.SetBasicAuth(n.cfg.Username, n.cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
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

// GetVMByName finds exactly one VM with the given name.
func (n *NutanixClient) GetVMByName(ctx context.Context, name string) (vm.VMInfo, error) {
	body := map[string]interface{}{
		"kind":   "vm",
		"filter": fmt.Sprintf("vm_name==%s", name),
		"length": 10,
	}
	data, err := n.do(ctx, http.MethodPost, "/vms/list", body)
	if err != nil {
		return vm.VMInfo{}, err
	}
	var list vmListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return vm.VMInfo{}, errors.Wrap(err, "failed to parse vm list response")
	}
	if len(list.Entities) == 0 {
		return vm.VMInfo{}, &errtypes.NotFoundError{Kind: "vm", Name: name}
	}
	if len(list.Entities) > 1 {
		return vm.VMInfo{}, errors.Errorf("found %d VMs named %s, expected one", len(list.Entities), name)
	}
	return ParseVMInfo(list.Entities[0]), nil
}

// GetVM fetches a VM by UUID, used to re-check power state.
func (n *NutanixClient) GetVM(ctx context.Context, uuid string) (vm.VMInfo, error) {
	data, err := n.do(ctx, http.MethodGet, "/vms/"+uuid, nil)
	if err != nil {
		return vm.VMInfo{}, err
	}
	var entity vmEntity
	if err := json.Unmarshal(data, &entity); err != nil {
		return vm.VMInfo{}, errors.Wrap(err, "failed to parse vm response")
	}
	return ParseVMInfo(entity), nil
}

// ListVMs returns every VM the account can see.
func (n *NutanixClient) ListVMs(ctx context.Context) ([]vm.VMInfo, error) {
	body := map[string]interface{}{
		"kind":   "vm",
		"length": 500,
	}
	data, err := n.do(ctx, http.MethodPost, "/vms/list", body)
	if err != nil {
		return nil, err
	}
	var list vmListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "failed to parse vm list response")
	}
	infos := make([]vm.VMInfo, 0, len(list.Entities))
	for _, e := range list.Entities {
		infos = append(infos, ParseVMInfo(e))
	}
	return infos, nil
}

// PowerOffVM requests an ACPI shutdown through the v3 update flow: fetch
// the full entity, move spec.resources.power_state and PUT it back.
func (n *NutanixClient) PowerOffVM(ctx context.Context, uuid string) error {
	return n.setPowerState(ctx, uuid, constants.PowerStateOff)
}

func (n *NutanixClient) PowerOnVM(ctx context.Context, uuid string) error {
	return n.setPowerState(ctx, uuid, constants.PowerStateOn)
}

func (n *NutanixClient) setPowerState(ctx context.Context, uuid, state string) error {
	data, err := n.do(ctx, http.MethodGet, "/vms/"+uuid, nil)
	if err != nil {
		return err
	}
	entity := map[string]interface{}{}
	if err := json.Unmarshal(data, &entity); err != nil {
		return errors.Wrap(err, "failed to parse vm entity")
	}
	// The PUT body carries spec+metadata only, status is server-owned.
	delete(entity, "status")
	spec, ok := entity["spec"].(map[string]interface{})
	if !ok {
		return errors.Errorf("vm %s has no spec", uuid)
	}
	res, ok := spec["resources"].(map[string]interface{})
	if !ok {
		return errors.Errorf("vm %s has no spec.resources", uuid)
	}
	res["power_state"] = state
	if _, err := n.do(ctx, http.MethodPut, "/vms/"+uuid, entity); err != nil {
		return err
	}
	log.Printf("Requested power state %s for VM %s", state, uuid)
	return nil
}

// CreateDiskImage snapshots one VM disk into the image service so it can
// be downloaded. Returns the new image UUID.
func (n *NutanixClient) CreateDiskImage(ctx context.Context, imageName, diskUUID string) (string, error) {
	body := map[string]interface{}{
		"spec": map[string]interface{}{
			"name": imageName,
			"resources": map[string]interface{}{
				"image_type": "DISK_IMAGE",
				"data_source_reference": map[string]interface{}{
					"kind": "vm_disk",
					"uuid": diskUUID,
				},
			},
		},
		"metadata": map[string]interface{}{
			"kind": "image",
		},
	}
	data, err := n.do(ctx, http.MethodPost, "/images", body)
	if err != nil {
		return "", err
	}
	created := struct {
		Metadata struct {
			UUID string `json:"uuid"`
		} `json:"metadata"`
	}{}
	if err := json.Unmarshal(data, &created); err != nil {
		return "", errors.Wrap(err, "failed to parse image create response")
	}
	log.Printf("Created disk image %s (%s)", imageName, created.Metadata.UUID)
	return created.Metadata.UUID, nil
}

// WaitForImageReady polls until the image reaches COMPLETE, so its file
// endpoint serves the full disk.
func (n *NutanixClient) WaitForImageReady(ctx context.Context, imageUUID string) error {
	deadline := time.Now().Add(constants.ImageReadyTimeout)
	for time.Now().Before(deadline) {
		data, err := n.do(ctx, http.MethodGet, "/images/"+imageUUID, nil)
		if err != nil {
			log.Printf("Image status check failed, retrying: %s", err)
		} else {
			status := struct {
				Status struct {
					State string `json:"state"`
				} `json:"status"`
			}{}
			if err := json.Unmarshal(data, &status); err != nil {
				return errors.Wrap(err, "failed to parse image status")
			}
			switch status.Status.State {
			case "COMPLETE":
				return nil
			case "ERROR":
				return errors.Errorf("image %s entered ERROR state", imageUUID)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.ImageReadyPollInterval):
		}
	}
	return errors.Errorf("image %s not ready within %s", imageUUID, constants.ImageReadyTimeout)
}

// DownloadImage streams the image file endpoint to destPath. Progress
// callbacks fire at most once per second and carry the rate measured
// since the previous callback.
func (n *NutanixClient) DownloadImage(ctx context.Context, imageUUID, destPath string, progress ProgressFunc) error {
	url := n.baseURL + "/images/" + imageUUID + "/file"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create download request")
	}
	req.SetBasicAuth(n.cfg.Username, n.cfg.Password)

	resp, err := n.client.Do(req)
	if err != nil {
		return &errtypes.TransferError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &errtypes.TransferError{URL: url, Status: resp.StatusCode}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", destPath)
	}
	defer out.Close()

	total := resp.ContentLength
	var copied, lastCopied int64
	lastReport := time.Now()
	buf := make([]byte, constants.DownloadChunkSize)
	for {
		nr, rerr := resp.Body.Read(buf)
		if nr > 0 {
			if _, werr := out.Write(buf[:nr]); werr != nil {
				return errors.Wrapf(werr, "failed to write %s", destPath)
			}
			copied += int64(nr)
			if progress != nil && time.Since(lastReport) >= constants.DownloadProgressInterval {
				elapsed := time.Since(lastReport).Seconds()
				progress(copied, total, float64(copied-lastCopied)/elapsed)
				lastReport = time.Now()
				lastCopied = copied
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &errtypes.TransferError{URL: url, Err: rerr}
		}
	}
	if progress != nil {
		progress(copied, total, 0)
	}
	log.Printf("Downloaded %s to %s", humanize.Bytes(uint64(copied)), destPath)
	return nil
}

// DeleteImage removes the temporary export image. Failures are returned
// but callers treat them as non-fatal.
func (n *NutanixClient) DeleteImage(ctx context.Context, imageUUID string) error {
	_, err := n.do(ctx, http.MethodDelete, "/images/"+imageUUID, nil)
	return err
}
