// Copyright © 2024 The n2h-helper authors

package staging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/utils"
)

// Dir manages one VM's artifact directory on the shared staging mount.
type Dir struct {
	Mount  string
	VMName string
}

func NewDir(mount, vmName string) *Dir {
	return &Dir{Mount: mount, VMName: utils.SanitizeName(vmName)}
}

// Path returns the VM's directory under the staging mount, under
// migrations/<vm-name>.
func (d *Dir) Path() string {
	return filepath.Join(d.Mount, constants.MigrationSnapshotDir, d.VMName)
}

// Ensure creates the artifact directory if missing.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.Path(), 0755); err != nil {
		return errors.Wrapf(err, "failed to create staging dir %s", d.Path())
	}
	return nil
}

// DiskPath returns the staged image path for one disk index.
func (d *Dir) DiskPath(index int, format string) string {
	return filepath.Join(d.Path(), fmt.Sprintf("%s-disk-%d.%s", d.VMName, index, format))
}

// ConfigPath returns the persisted VM descriptor path.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.Path(), constants.VMConfigFileName)
}

// ListFiles returns the staged artifact names sorted by name.
func (d *Dir) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(d.Path())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list staging dir %s", d.Path())
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// IsMounted reports whether a filesystem is mounted at path. Exports to
// a local directory work too, so callers only warn on false.
func IsMounted(path string) bool {
	data, err := os.ReadFile("/proc/mounts")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == path {
			return true
		}
	}
	return false
}

// FileSize returns the size of one staged artifact.
func (d *Dir) FileSize(name string) (int64, error) {
	stat, err := os.Stat(filepath.Join(d.Path(), name))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %s", name)
	}
	return stat.Size(), nil
}

// Remove deletes one staged artifact. Used to reclaim the raw image once
// the qcow2 exists.
func (d *Dir) Remove(name string) error {
	path := filepath.Join(d.Path(), name)
	stat, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	log.Printf("Removing staged file %s (%s)", name, humanize.Bytes(uint64(stat.Size())))
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "failed to remove %s", path)
	}
	return nil
}

// Cleanup deletes the whole artifact directory after a successful import.
func (d *Dir) Cleanup() error {
	log.Printf("Cleaning up staging dir %s", d.Path())
	if err := os.RemoveAll(d.Path()); err != nil {
		return errors.Wrapf(err, "failed to remove staging dir %s", d.Path())
	}
	return nil
}
