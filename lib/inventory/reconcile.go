// Package inventory reconciles the discovered Docker images against the
// autograding container configuration and the worker roster, producing the
// view model for the admin Docker dashboard.
//
// Reconciliation is a pure function of its input: it keeps no package state
// and may be called concurrently with independent snapshots.
package inventory

import (
	"fmt"
	"strings"
)

// Reconcile builds the dashboard view from a snapshot. Only a missing
// snapshot section is fatal; malformed images and container references are
// reported in View.Warnings.
func Reconcile(snap *Snapshot) (*View, error) {
	if err := validate(snap); err != nil {
		return nil, err
	}

	catalog, warnings := BuildCatalog(snap.Images)
	warnings = append(warnings, LintContainers(snap.Containers)...)

	found, missing := Resolve(catalog, snap.Containers)
	capabilities, unmapped, workers := GroupWorkers(catalog, snap.Containers, snap.Workers)

	if warnings == nil {
		warnings = make([]Warning, 0)
	}

	return &View{
		AutogradingContainers: ContainerSummary{
			Found:     found,
			AllImages: catalog,
			NotFound:  missing,
		},
		Capabilities:                  capabilities,
		WorkerMachines:                workers,
		CapabilitiesWithoutContainers: unmapped,
		DockerInfo:                    snap.DockerInfo,
		Warnings:                      warnings,
	}, nil
}

func validate(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: no snapshot", ErrIncompleteSnapshot)
	}

	var missing []string
	if snap.Images == nil {
		missing = append(missing, "images")
	}
	if snap.Containers == nil {
		missing = append(missing, "autograding containers")
	}
	if snap.Workers == nil {
		missing = append(missing, "autograding workers")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteSnapshot, strings.Join(missing, ", "))
	}
	return nil
}
