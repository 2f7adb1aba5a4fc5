package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/submitty/dockerdash/lib/images"
)

// Catalog indexes discovered images by every alias they carry. Several keys
// may point at the same *Image, so unique-image operations must deduplicate
// by pointer rather than count keys.
type Catalog map[string]*Image

// BuildCatalog turns raw image records into a Catalog. Images whose primary
// tag cannot be split are skipped; images with an unparsable creation date
// keep the raw string. Both cases are reported as warnings.
func BuildCatalog(raw []RawImage) (Catalog, []Warning) {
	catalog := make(Catalog, len(raw))
	var warnings []Warning

	for _, r := range raw {
		if len(r.Tags) == 0 {
			warnings = append(warnings, Warning{
				Kind:   ErrMalformedImageReference,
				Detail: "image has no tags",
			})
			continue
		}

		img, err := newImage(r)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:       ErrMalformedImageReference,
				Identifier: r.Tags[0],
				Detail:     "no ':' in primary tag",
			})
			continue
		}
		if !img.TimestampParsed {
			warnings = append(warnings, Warning{
				Kind:       ErrMalformedTimestamp,
				Identifier: img.Canonical(),
				Detail:     fmt.Sprintf("created %q", r.Created),
			})
		}

		for _, alias := range img.Identifiers {
			catalog[alias] = img
		}
	}

	return catalog, warnings
}

func newImage(r RawImage) (*Image, error) {
	repository, tag, err := images.SplitReference(r.Tags[0])
	if err != nil {
		return nil, err
	}

	img := &Image{
		Identifiers:     append([]string(nil), r.Tags...),
		Repository:      repository,
		Tag:             tag,
		AdditionalNames: append([]string{}, r.Tags[1:]...),
		Created:         r.Created,
		Size:            images.FormatMB(r.Size, true),
		VirtualSize:     images.FormatMB(r.VirtualSize, true),
		SizeBytes:       r.Size,
	}

	if created, err := images.ParseCreated(r.Created); err == nil {
		img.Created = created
		img.TimestampParsed = true
	}

	return img, nil
}

// Lookup resolves a container reference to the image carrying it as an alias.
func (c Catalog) Lookup(ref string) (*Image, bool) {
	img, ok := c[ref]
	return img, ok
}

// sortImages orders images by repository, then by primary identifier.
func sortImages(imgs []*Image) []*Image {
	sort.SliceStable(imgs, func(i, j int) bool {
		if imgs[i].Repository != imgs[j].Repository {
			return imgs[i].Repository < imgs[j].Repository
		}
		if imgs[i].Canonical() != imgs[j].Canonical() {
			return imgs[i].Canonical() < imgs[j].Canonical()
		}
		return strings.Join(imgs[i].Identifiers, ",") < strings.Join(imgs[j].Identifiers, ",")
	})
	return imgs
}
