// Copyright © 2024 The n2h-helper authors

package nutanix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
)

const vmEntityJSON = `{
	"metadata": {"uuid": "vm-uuid-1"},
	"status": {
		"name": "test-vm",
		"resources": {
			"power_state": "OFF",
			"num_sockets": 2,
			"num_vcpus_per_socket": 4,
			"memory_size_mib": 8192,
			"boot_config": {"boot_type": "UEFI"},
			"disk_list": [
				{
					"uuid": "disk-uuid-1",
					"disk_size_bytes": 42949672960,
					"device_properties": {
						"device_type": "DISK",
						"disk_address": {"adapter_type": "SCSI", "device_index": 0}
					}
				},
				{
					"uuid": "cdrom-uuid",
					"device_properties": {
						"device_type": "CDROM",
						"disk_address": {"adapter_type": "IDE", "device_index": 0}
					}
				}
			],
			"nic_list": [
				{
					"mac_address": "50:6b:8d:00:00:01",
					"subnet_reference": {"name": "vlan100"},
					"ip_endpoint_list": [{"ip": "10.0.0.5"}]
				}
			]
		}
	}
}`

func testClient(serverURL string) *NutanixClient {
	c := NewNutanixClient(config.NutanixConfig{
		PrismIP:  "unused",
		Username: "admin",
		Password: "secret",
	})
	c.baseURL = serverURL
	return c
}

func TestGetVMByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vms/list", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vm", body["kind"])
		assert.Equal(t, "vm_name==test-vm", body["filter"])

		w.Write([]byte(`{"entities": [` + vmEntityJSON + `]}`))
	}))
	defer server.Close()

	info, err := testClient(server.URL).GetVMByName(context.Background(), "test-vm")
	require.NoError(t, err)
	assert.Equal(t, "vm-uuid-1", info.UUID)
	assert.Equal(t, "OFF", info.PowerState)
	assert.Equal(t, 8, info.CPU)
	assert.Equal(t, int64(8192), info.MemoryMB)
	assert.Equal(t, "UEFI", info.BootType)
	// CD-ROM entries are not exported.
	require.Len(t, info.VMDisks, 1)
	assert.Equal(t, "disk-uuid-1", info.VMDisks[0].UUID)
	assert.Equal(t, int64(42949672960), info.VMDisks[0].Size)
	require.Len(t, info.NICs, 1)
	assert.Equal(t, "10.0.0.5", info.NICs[0].IP)
}

func TestGetVMByNameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entities": []}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetVMByName(context.Background(), "missing")
	var notFound *errtypes.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestGetVMByNameAmbiguous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entities": [` + vmEntityJSON + `,` + vmEntityJSON + `]}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetVMByName(context.Background(), "test-vm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one")
}

func TestAPIErrorParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetVM(context.Background(), "vm-uuid-1")
	var apiErr *errtypes.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestDownloadImage(t *testing.T) {
	payload := strings.Repeat("x", 4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/img-1/file", r.URL.Path)
		w.Write([]byte(payload))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "disk.raw")
	var lastCopied int64
	err := testClient(server.URL).DownloadImage(context.Background(), "img-1", dest, func(copied, total int64, speed float64) {
		lastCopied = copied
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4096), lastCopied)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Len(t, data, 4096)
}

func TestDownloadImageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := testClient(server.URL).DownloadImage(context.Background(), "img-1", filepath.Join(t.TempDir(), "d.raw"), nil)
	var transferErr *errtypes.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, http.StatusNotFound, transferErr.Status)
}

func TestPowerOffVM(t *testing.T) {
	var putBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{
				"metadata": {"uuid": "vm-uuid-1", "spec_version": 3},
				"spec": {"resources": {"power_state": "ON"}},
				"status": {"state": "COMPLETE"}
			}`))
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	require.NoError(t, testClient(server.URL).PowerOffVM(context.Background(), "vm-uuid-1"))

	// Status is server-owned and must not be echoed back.
	assert.NotContains(t, putBody, "status")
	spec := putBody["spec"].(map[string]interface{})
	res := spec["resources"].(map[string]interface{})
	assert.Equal(t, "OFF", res["power_state"])
}

func TestListVMs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vms/list", r.URL.Path)
		w.Write([]byte(`{"entities": [` + vmEntityJSON + `]}`))
	}))
	defer server.Close()

	vms, err := testClient(server.URL).ListVMs(context.Background())
	require.NoError(t, err)
	require.Len(t, vms, 1)
	assert.Equal(t, "test-vm", vms[0].Name)
}

func TestCreateDiskImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/images", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		spec := body["spec"].(map[string]interface{})
		assert.Equal(t, "export-test-vm-0", spec["name"])
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"metadata": {"uuid": "img-new"}}`))
	}))
	defer server.Close()

	uuid, err := testClient(server.URL).CreateDiskImage(context.Background(), "export-test-vm-0", "disk-uuid-1")
	require.NoError(t, err)
	assert.Equal(t, "img-new", uuid)
}
