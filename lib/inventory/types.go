package inventory

import (
	"encoding/json"
)

// RawImage is one image as reported by the inventory collector.
type RawImage struct {
	Tags        []string `json:"tags"`
	Created     string   `json:"created"`
	Size        int64    `json:"size"`
	VirtualSize int64    `json:"virtual_size"`
}

// CapabilityContainerMap maps a capability name to the container references
// it requires. A capability with no entry is different from one with an empty list.
type CapabilityContainerMap map[string][]string

// RawWorker is one autograding machine from the workers configuration.
type RawWorker struct {
	Capabilities []string `json:"capabilities"`
	NumWorkers   int      `json:"num_autograding_workers"`
	Enabled      bool     `json:"enabled"`
}

// UnmarshalJSON accepts the worker count under either
// "num_autograding_workers" or "num_workers".
func (w *RawWorker) UnmarshalJSON(data []byte) error {
	var raw struct {
		Capabilities          []string `json:"capabilities"`
		NumAutogradingWorkers *int     `json:"num_autograding_workers"`
		NumWorkers            *int     `json:"num_workers"`
		Enabled               bool     `json:"enabled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	w.Capabilities = raw.Capabilities
	w.Enabled = raw.Enabled
	switch {
	case raw.NumAutogradingWorkers != nil:
		w.NumWorkers = *raw.NumAutogradingWorkers
	case raw.NumWorkers != nil:
		w.NumWorkers = *raw.NumWorkers
	default:
		w.NumWorkers = 0
	}
	return nil
}

// Snapshot is the full input of a reconciliation. Images, Containers and
// Workers are required; DockerInfo is passed through untouched.
type Snapshot struct {
	Images     []RawImage
	Containers CapabilityContainerMap
	Workers    map[string]RawWorker
	DockerInfo map[string]any
}

// Image is a discovered image prepared for display.
type Image struct {
	Identifiers     []string `json:"tags"`
	Repository      string   `json:"name"`
	Tag             string   `json:"tag"`
	AdditionalNames []string `json:"additional_names"`
	Created         string   `json:"created"`
	TimestampParsed bool     `json:"timestamp_parsed"`
	Size            string   `json:"size"`
	VirtualSize     string   `json:"virtual_size"`
	SizeBytes       int64    `json:"size_bytes"`
}

// Canonical returns the primary identifier of the image.
func (i *Image) Canonical() string {
	return i.Identifiers[0]
}

// View is the reconciled view model handed to the presentation layer.
type View struct {
	AutogradingContainers         ContainerSummary `json:"autograding_containers"`
	Capabilities                  []string         `json:"capabilities"`
	WorkerMachines                []WorkerView     `json:"worker_machines"`
	CapabilitiesWithoutContainers []string         `json:"capabilities_without_containers"`
	DockerInfo                    map[string]any   `json:"docker_info,omitempty"`
	Warnings                      []Warning        `json:"warnings"`
}

// ContainerSummary groups the catalog with the configured containers that
// were and were not found in it.
type ContainerSummary struct {
	Found     []*Image `json:"found"`
	AllImages Catalog  `json:"all_images"`
	NotFound  []string `json:"not_found"`
}

// WorkerView is one worker machine with its capabilities resolved to images.
type WorkerView struct {
	Name             string   `json:"name"`
	Capabilities     []string `json:"capabilities"`
	NumWorkers       int      `json:"num_workers"`
	Enabled          bool     `json:"enabled"`
	Images           []*Image `json:"images"`
	ImagesNotFound   []string `json:"images_not_found"`
	CapabilityVector []bool   `json:"capability_vector"`
}

// Worker returns the view for the named worker.
func (v *View) Worker(name string) (*WorkerView, bool) {
	for i := range v.WorkerMachines {
		if v.WorkerMachines[i].Name == name {
			return &v.WorkerMachines[i], true
		}
	}
	return nil, false
}
