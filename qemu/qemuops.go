// Copyright © 2024 The n2h-helper authors

package qemu

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/pkg/errtypes"
)

//go:generate mockgen -source=../qemu/qemuops.go -destination=../qemu/qemuops_mock.go -package=qemu

type QemuOperations interface {
	ConvertRawToQcow2(ctx context.Context, rawPath string, compress bool, progress func(pct float64)) (ConversionResult, error)
	ImageInfo(path string) (ImageInfo, error)
}

// ConversionResult reports the outcome of one qemu-img convert run.
type ConversionResult struct {
	InputFile    string
	OutputFile   string
	SizeBefore   int64
	SizeAfter    int64
	ReductionPct float64
}

// ImageInfo is the subset of `qemu-img info` output the pipeline needs.
type ImageInfo struct {
	Format      string `json:"format"`
	VirtualSize int64  `json:"virtual-size"`
	ActualSize  int64  `json:"actual-size"`
}

type QemuOps struct{}

func NewQemuOps() *QemuOps {
	return &QemuOps{}
}

// ConvertRawToQcow2 converts a raw image in staging to qcow2 next to it,
// streaming qemu-img's `-p` progress output into the callback.
func (q *QemuOps) ConvertRawToQcow2(ctx context.Context, rawPath string, compress bool, progress func(pct float64)) (ConversionResult, error) {
	stat, err := os.Stat(rawPath)
	if err != nil {
		return ConversionResult{}, errors.Wrapf(err, "failed to stat %s", rawPath)
	}
	sizeBefore := stat.Size()
	qcow2Path := strings.TrimSuffix(rawPath, ".raw") + ".qcow2"

	args := []string{"convert", "-f", "raw", "-O", "qcow2"}
	if compress {
		args = append(args, "-c")
	}
	args = append(args, "-p", rawPath, qcow2Path)

	cmd := exec.CommandContext(ctx, "qemu-img", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ConversionResult{}, errors.Wrap(err, "failed to open qemu-img stdout")
	}
	cmd.Stderr = cmd.Stdout
	log.Printf("Executing %s", cmd.String())

	if err := cmd.Start(); err != nil {
		return ConversionResult{}, errors.Wrap(err, "failed to start qemu-img")
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if pct, ok := ParseProgressLine(scanner.Text()); ok && progress != nil {
			progress(pct)
		}
	}

	if err := cmd.Wait(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return ConversionResult{}, &errtypes.ConversionError{ExitCode: code}
	}

	afterStat, err := os.Stat(qcow2Path)
	if err != nil {
		return ConversionResult{}, errors.Wrapf(err, "failed to stat %s", qcow2Path)
	}
	return ConversionResult{
		InputFile:    rawPath,
		OutputFile:   qcow2Path,
		SizeBefore:   sizeBefore,
		SizeAfter:    afterStat.Size(),
		ReductionPct: ReductionPercent(sizeBefore, afterStat.Size()),
	}, nil
}

// ParseProgressLine extracts the last percentage token from a qemu-img
// progress line like "    (42.17/100%)". Malformed tokens are skipped so
// the caller keeps its previous value.
func ParseProgressLine(line string) (float64, bool) {
	if !strings.Contains(line, "%") {
		return 0, false
	}
	fields := strings.Fields(strings.ReplaceAll(line, "%", " "))
	for i := len(fields) - 1; i >= 0; i-- {
		token := strings.Trim(fields[i], "(/)")
		if idx := strings.LastIndex(token, "/"); idx >= 0 {
			token = token[:idx]
		}
		pct, err := strconv.ParseFloat(token, 64)
		if err == nil && pct >= 0 && pct <= 100 {
			return pct, true
		}
	}
	return 0, false
}

// ReductionPercent computes how much smaller the converted image is.
// A zero-byte source yields 0 rather than a division by zero.
func ReductionPercent(before, after int64) float64 {
	if before <= 0 {
		return 0
	}
	return (1 - float64(after)/float64(before)) * 100
}

// ImageInfo shells out to `qemu-img info --output=json`.
func (q *QemuOps) ImageInfo(path string) (ImageInfo, error) {
	cmd := exec.Command("qemu-img", "info", "--output=json", path)
	out, err := cmd.Output()
	if err != nil {
		return ImageInfo{}, errors.Wrapf(err, "failed to run qemu-img info on %s", path)
	}
	var info ImageInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return ImageInfo{}, errors.Wrap(err, "failed to parse qemu-img info output")
	}
	return info, nil
}
