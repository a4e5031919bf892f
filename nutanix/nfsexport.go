// Copyright © 2024 The n2h-helper authors

package nutanix

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/pkg/constants"
)

// ExportVDiskFromMount copies a vdisk backing file off an NFS-mounted
// storage container into staging. Fast path for clusters where the
// container is whitelisted for the staging host: no image service copy,
// no HTTPS overhead. Progress callbacks follow the same throttling as
// DownloadImage.
func ExportVDiskFromMount(ctx context.Context, srcPath, destPath string, progress ProgressFunc) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open vdisk %s", srcPath)
	}
	defer src.Close()

	stat, err := src.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat vdisk %s", srcPath)
	}
	total := stat.Size()

	dst, err := os.Create(destPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", destPath)
	}
	defer dst.Close()

	var copied, lastCopied int64
	lastReport := time.Now()
	buf := make([]byte, constants.DownloadChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		nr, rerr := src.Read(buf)
		if nr > 0 {
			if _, werr := dst.Write(buf[:nr]); werr != nil {
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
			return errors.Wrapf(rerr, "failed to read %s", srcPath)
		}
	}
	if progress != nil {
		progress(copied, total, 0)
	}
	log.Printf("Copied %s from container export to %s", humanize.Bytes(uint64(copied)), destPath)
	return nil
}
