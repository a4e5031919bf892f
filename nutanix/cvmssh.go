// Copyright © 2024 The n2h-helper authors

package nutanix

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"github.com/openmigrate/n2h-helper/pkg/utils"
)

// CVMClient runs commands on a Controller VM over SSH. It backs the fast
// export path: instead of routing a disk through the image service, the
// vdisk file is located on the storage container and copied straight off
// the cluster's NFS export.
type CVMClient struct {
	host   string
	client *ssh.Client
}

// NewCVMClient dials the CVM with password auth.
func NewCVMClient(host, user, password string) (*CVMClient, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}
	client, err := ssh.Dial("tcp", net.JoinHostPort(host, "22"), config)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to CVM %s", host)
	}
	return &CVMClient{host: host, client: client}, nil
}

// RunCommand executes one command and returns combined stdout.
func (c *CVMClient) RunCommand(cmd string) (string, error) {
	session, err := c.client.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "failed to open ssh session")
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	if err := session.Run(cmd); err != nil {
		return "", errors.Wrapf(err, "command %q failed: %s", cmd, stderr.String())
	}
	return stdout.String(), nil
}

// FindVDiskPath locates the backing file of a vm disk on its storage
// container, relative to the container's NFS export root.
func (c *CVMClient) FindVDiskPath(diskUUID string) (string, error) {
	out, err := c.RunCommand(fmt.Sprintf(
		"source /etc/profile; nfs_ls -liar / 2>/dev/null | grep %s", diskUUID))
	if err != nil {
		return "", errors.Wrapf(err, "failed to locate vdisk %s", diskUUID)
	}
	lines := utils.RemoveEmptyStrings(strings.Split(strings.TrimSpace(out), "\n"))
	if len(lines) == 0 {
		return "", errors.Errorf("vdisk %s not found on any container", diskUUID)
	}
	fields := strings.Fields(lines[0])
	path := fields[len(fields)-1]
	log.Printf("Located vdisk %s at %s", diskUUID, path)
	return path, nil
}

// Close tears down the SSH connection.
func (c *CVMClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
