// Copyright © 2024 The n2h-helper authors

package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
)

// Event is one progress observation forwarded to the caller.
type Event struct {
	// Stage is "volume", "pod", "datavolume" or "error".
	Stage   string
	Message string
	// Phase is the watched resource's phase at emission time, empty
	// when the resource could not be read.
	Phase string
}

// EventFunc receives progress events. Implementations must not block.
type EventFunc func(Event)

// Monitor polls target-cluster resources until they reach a terminal
// state. The sleep hook exists so tests can run poll loops instantly.
type Monitor struct {
	client harvester.HarvesterOperations
	sleep  func(time.Duration)
}

func NewMonitor(client harvester.HarvesterOperations) *Monitor {
	return &Monitor{client: client, sleep: time.Sleep}
}

// NewMonitorWithSleep replaces the interval sleep, for tests.
func NewMonitorWithSleep(client harvester.HarvesterOperations, sleep func(time.Duration)) *Monitor {
	return &Monitor{client: client, sleep: sleep}
}

// WaitForPVCBound polls until the claim is Bound. Transient API errors
// are logged and polling continues; only the timeout is fatal.
func (m *Monitor) WaitForPVCBound(ctx context.Context, name string) error {
	polls := int(constants.PVCBindTimeout / constants.PVCBindPollInterval)
	for i := 0; i < polls; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pvc, err := m.client.GetPVC(ctx, name)
		if err != nil {
			log.Printf("PVC %s status check failed, retrying: %s", name, err)
		} else if pvc.Status.Phase == corev1.ClaimBound {
			return nil
		}
		m.sleep(constants.PVCBindPollInterval)
	}
	return &errtypes.BindTimeoutError{Name: name, Timeout: constants.PVCBindTimeout.String()}
}

// WaitForPodCompletion polls the conversion pod until it succeeds or
// fails, forwarding container state changes and new log lines as events.
// Log lines already forwarded are suppressed by exact content, so the
// repeated full-log fetches do not replay old output.
func (m *Monitor) WaitForPodCompletion(ctx context.Context, name string, onEvent EventFunc) error {
	seen := make(map[string]struct{})
	lastState := ""
	polls := int(constants.PodCompletionTimeout / constants.PodCompletionPollInterval)
	for i := 0; i < polls; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pod, err := m.client.GetPod(ctx, name)
		if err != nil {
			emit(onEvent, Event{Stage: "error", Message: err.Error()})
			m.sleep(constants.PodCompletionPollInterval)
			continue
		}

		phase := string(pod.Status.Phase)
		if state := containerState(pod); state != lastState {
			lastState = state
			emit(onEvent, Event{Stage: "pod", Message: state, Phase: phase})
		}
		m.forwardNewLogLines(ctx, name, phase, seen, onEvent)

		switch pod.Status.Phase {
		case corev1.PodSucceeded:
			return nil
		case corev1.PodFailed:
			return fmt.Errorf("conversion pod %s failed: %s", name, pod.Status.Reason)
		}
		m.sleep(constants.PodCompletionPollInterval)
	}
	return &errtypes.JobTimeoutError{Name: name, Timeout: constants.PodCompletionTimeout.String()}
}

func (m *Monitor) forwardNewLogLines(ctx context.Context, name, phase string, seen map[string]struct{}, onEvent EventFunc) {
	logs, err := m.client.GetPodLogs(ctx, name)
	if err != nil {
		// Logs are best effort while the pod is starting.
		return
	}
	for _, line := range strings.Split(logs, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		emit(onEvent, Event{Stage: "pod", Message: line, Phase: phase})
	}
}

// containerState summarizes the first container's state the way kubectl
// renders it.
func containerState(pod *corev1.Pod) string {
	if len(pod.Status.ContainerStatuses) == 0 {
		return string(pod.Status.Phase)
	}
	state := pod.Status.ContainerStatuses[0].State
	switch {
	case state.Running != nil:
		return "Running"
	case state.Waiting != nil:
		return "Waiting: " + state.Waiting.Reason
	case state.Terminated != nil:
		return "Terminated: " + state.Terminated.Reason
	}
	return string(pod.Status.Phase)
}

// WaitForDataVolume polls a CDI import until it succeeds. It reports
// success as a bool: a Failed or Error phase and a timeout both return
// false, error detail having already been forwarded as events. Progress
// strings are forwarded only when they change.
func (m *Monitor) WaitForDataVolume(ctx context.Context, name string, onEvent EventFunc) bool {
	lastProgress := ""
	polls := int(constants.DataVolumeTimeout / constants.DataVolumePollInterval)
	for i := 0; i < polls; i++ {
		if ctx.Err() != nil {
			return false
		}
		dv, err := m.client.GetDataVolume(ctx, name)
		if err != nil {
			emit(onEvent, Event{Stage: "error", Message: err.Error()})
			m.sleep(constants.DataVolumePollInterval)
			continue
		}

		marker := dv.Status.Phase
		if dv.Status.Progress != "" {
			marker = fmt.Sprintf("%s %s", dv.Status.Phase, dv.Status.Progress)
		}
		if marker != lastProgress {
			lastProgress = marker
			emit(onEvent, Event{Stage: "datavolume", Message: marker, Phase: dv.Status.Phase})
		}

		switch dv.Status.Phase {
		case "Succeeded":
			return true
		case "Failed", "Error":
			return false
		}
		m.sleep(constants.DataVolumePollInterval)
	}
	emit(onEvent, Event{Stage: "error", Message: fmt.Sprintf("datavolume %s import timed out", name)})
	return false
}

func emit(onEvent EventFunc, ev Event) {
	if onEvent != nil {
		onEvent(ev)
	}
}
