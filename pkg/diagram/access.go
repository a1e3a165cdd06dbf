package diagram

import (
	"github.com/matzehuels/classdiagram/pkg/meta"
)

// Access descriptors for properties missing an accessor.
const (
	AccessReadOnly  = "read-only"
	AccessWriteOnly = "write-only"
)

// ResolveAccess describes the accessor pair of a property. A property
// without a getter is "write-only", one without a setter "read-only".
// Otherwise each side is resolved on its own:
//
//	public get; protected set;
func ResolveAccess(p meta.Property) string {
	if p.Getter == nil {
		return AccessWriteOnly
	}
	if p.Setter == nil {
		return AccessReadOnly
	}
	return accessorVisibility(p.Getter) + " get; " + accessorVisibility(p.Setter) + " set;"
}

// accessorVisibility folds every visibility other than public, private and
// protected into "internal".
func accessorVisibility(a *meta.Accessor) string {
	switch a.Visibility {
	case meta.Public, meta.Private, meta.Protected:
		return string(a.Visibility)
	default:
		return string(meta.Internal)
	}
}
