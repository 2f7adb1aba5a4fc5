package inventory

import (
	"sort"

	"github.com/samber/lo"
)

// RequiredRefs returns every container reference named by any capability,
// deduplicated and sorted.
func (m CapabilityContainerMap) RequiredRefs() []string {
	refs := lo.Uniq(lo.Flatten(lo.Values(m)))
	sort.Strings(refs)
	return refs
}

// Resolve matches the configured containers against the catalog. found holds
// the distinct images carrying at least one required reference, ordered by
// repository; missing holds the required references no image carries.
func Resolve(catalog Catalog, containers CapabilityContainerMap) ([]*Image, []string) {
	found := make([]*Image, 0)
	missing := make([]string, 0)
	seen := make(map[*Image]struct{})

	for _, ref := range containers.RequiredRefs() {
		img, ok := catalog.Lookup(ref)
		if !ok {
			missing = append(missing, ref)
			continue
		}
		if _, dup := seen[img]; dup {
			continue
		}
		seen[img] = struct{}{}
		found = append(found, img)
	}

	return sortImages(found), missing
}
