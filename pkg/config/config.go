// Copyright © 2024 The n2h-helper authors

package config

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/openmigrate/n2h-helper/pkg/constants"
)

// NutanixConfig holds Prism connection settings.
type NutanixConfig struct {
	PrismIP   string `json:"prism_ip"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	VerifySSL bool   `json:"verify_ssl"`
	// CVM SSH settings for the NFS fast-export path.
	CVMIP   string `json:"cvm_ip"`
	CVMUser string `json:"cvm_user"`
}

// HarvesterConfig holds target cluster connection settings. The
// certificate fields carry base64-encoded PEM data, the same material a
// kubeconfig embeds.
type HarvesterConfig struct {
	APIURL                   string `json:"api_url"`
	Namespace                string `json:"namespace"`
	VerifySSL                bool   `json:"verify_ssl"`
	CertificateAuthorityData string `json:"certificate_authority_data"`
	ClientCertificateData    string `json:"client_certificate_data"`
	ClientKeyData            string `json:"client_key_data"`
}

// TransferConfig holds staging and data-path settings.
type TransferConfig struct {
	StagingMount string `json:"staging_mount"`
	NFSServer    string `json:"nfs_server"`
	NFSPath      string `json:"nfs_path"`
	HTTPServerIP string `json:"http_server_ip"`
}

// Config is the full config.yaml contents.
type Config struct {
	Nutanix   NutanixConfig   `json:"nutanix"`
	Harvester HarvesterConfig `json:"harvester"`
	Transfer  TransferConfig  `json:"transfer"`
}

// Load reads and validates config.yaml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Transfer.StagingMount == "" {
		c.Transfer.StagingMount = constants.DefaultStagingMount
	}
	if c.Harvester.Namespace == "" {
		c.Harvester.Namespace = "default"
	}
	if c.Nutanix.CVMIP == "" {
		c.Nutanix.CVMIP = c.Nutanix.PrismIP
	}
	if c.Nutanix.CVMUser == "" {
		c.Nutanix.CVMUser = "nutanix"
	}
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.Nutanix.PrismIP == "" {
		return errors.New("nutanix.prism_ip is required")
	}
	if c.Nutanix.Username == "" || c.Nutanix.Password == "" {
		return errors.New("nutanix.username and nutanix.password are required")
	}
	if c.Harvester.APIURL == "" {
		return errors.New("harvester.api_url is required")
	}
	return nil
}
