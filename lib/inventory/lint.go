package inventory

import (
	"sort"

	"github.com/samber/lo"
	"github.com/submitty/dockerdash/lib/images"
)

// LintContainers reports configured container references that are not valid
// image names, and valid ones that no engine tag can ever equal (digest pins
// and references without a tag). Capabilities are visited in name order.
func LintContainers(containers CapabilityContainerMap) []Warning {
	capabilities := lo.Keys(containers)
	sort.Strings(capabilities)

	var warnings []Warning
	for _, capability := range capabilities {
		for _, raw := range containers[capability] {
			ref, err := images.ParseRef(raw)
			switch {
			case err != nil:
				warnings = append(warnings, Warning{
					Kind:       ErrInvalidContainerRef,
					Identifier: raw,
					Detail:     "capability " + capability,
				})
			case ref.IsDigest():
				warnings = append(warnings, Warning{
					Kind:       ErrUnmatchableContainerRef,
					Identifier: raw,
					Detail:     "capability " + capability + ": pinned by digest " + ref.String(),
				})
			case ref.Tag() == "":
				warnings = append(warnings, Warning{
					Kind:       ErrUnmatchableContainerRef,
					Identifier: raw,
					Detail:     "capability " + capability + ": no tag, normalizes to " + ref.String(),
				})
			}
		}
	}
	return warnings
}
