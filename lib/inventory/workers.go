package inventory

import (
	"sort"

	"github.com/samber/lo"
)

// GroupWorkers resolves each worker's capabilities to images.
//
// It runs in two passes. The first resolves images per worker and collects
// the global capability set; the second builds each worker's capability
// vector against that final set, with a fresh slice per worker.
//
// Workers are emitted in name order. Returned are the sorted global
// capabilities, the sorted capabilities that have no container mapping,
// and one view per worker.
func GroupWorkers(catalog Catalog, containers CapabilityContainerMap, workers map[string]RawWorker) ([]string, []string, []WorkerView) {
	names := lo.Keys(workers)
	sort.Strings(names)

	views := make([]WorkerView, 0, len(names))
	declared := make([]string, 0)
	unmapped := make([]string, 0)

	for _, name := range names {
		w := workers[name]
		view := WorkerView{
			Name:           name,
			Capabilities:   append([]string{}, w.Capabilities...),
			NumWorkers:     w.NumWorkers,
			Enabled:        w.Enabled,
			Images:         make([]*Image, 0),
			ImagesNotFound: make([]string, 0),
		}

		var refs []string
		for _, capability := range w.Capabilities {
			declared = append(declared, capability)

			required, ok := containers[capability]
			if !ok {
				unmapped = append(unmapped, capability)
				continue
			}
			refs = append(refs, required...)
		}

		// Refs are deduplicated by identifier only: two aliases of one
		// image each contribute an entry.
		for _, ref := range lo.Uniq(refs) {
			img, ok := catalog.Lookup(ref)
			if !ok {
				view.ImagesNotFound = append(view.ImagesNotFound, ref)
				continue
			}
			view.Images = append(view.Images, img)
		}

		views = append(views, view)
	}

	capabilities := lo.Uniq(declared)
	sort.Strings(capabilities)
	unmapped = lo.Uniq(unmapped)
	sort.Strings(unmapped)

	for i := range views {
		views[i].CapabilityVector = capabilityVector(capabilities, views[i].Capabilities)
	}

	return capabilities, unmapped, views
}

func capabilityVector(capabilities, declared []string) []bool {
	has := lo.SliceToMap(declared, func(c string) (string, struct{}) {
		return c, struct{}{}
	})

	vector := make([]bool, len(capabilities))
	for i, capability := range capabilities {
		_, vector[i] = has[capability]
	}
	return vector
}
