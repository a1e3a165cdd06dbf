package diagram

import (
	"cmp"
	"slices"

	"github.com/matzehuels/classdiagram/pkg/meta"
)

// Catalog returns the definitions of src whose namespace equals namespace,
// sorted by name using byte-wise comparison. Definitions with equal names
// are ordered by full name. The result is empty, never nil, when nothing
// matches.
func Catalog(src Source, namespace string) []*meta.TypeDef {
	out := []*meta.TypeDef{}
	for _, d := range src.Types() {
		if d != nil && d.Namespace == namespace {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b *meta.TypeDef) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.FullName(), b.FullName())
	})
	return out
}
