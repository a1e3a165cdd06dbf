package meta

import (
	"slices"
	"testing"

	"github.com/matzehuels/classdiagram/pkg/errors"
)

func sampleDefs() []*TypeDef {
	return []*TypeDef{
		{Name: "Zebra", Namespace: "Zoo", Category: CategoryClass},
		{Name: "Keeper", Namespace: "Zoo.Staff", Category: CategoryClass},
		{Name: "Diet", Namespace: "Zoo", Category: CategoryEnum},
	}
}

func TestUniverseAdd(t *testing.T) {
	u := New("Zoo", "2.0")
	if err := u.Add(sampleDefs()...); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if u.Len() != 3 {
		t.Errorf("Len = %d, want 3", u.Len())
	}

	names := make([]string, 0, u.Len())
	for _, d := range u.Types() {
		names = append(names, d.Name)
	}
	if want := []string{"Zebra", "Keeper", "Diet"}; !slices.Equal(names, want) {
		t.Errorf("Types order = %v, want %v", names, want)
	}

	d, ok := u.Lookup("Zoo.Staff.Keeper")
	if !ok || d.Name != "Keeper" {
		t.Errorf("Lookup(Zoo.Staff.Keeper) = %v, %v", d, ok)
	}
	if _, ok := u.Lookup("Keeper"); ok {
		t.Error("Lookup should use full names")
	}
}

func TestUniverseAddRejects(t *testing.T) {
	tests := []struct {
		name string
		def  *TypeDef
		code errors.Code
	}{
		{"nil", nil, errors.ErrCodeInvalidUniverse},
		{"bad name", &TypeDef{Name: "1st", Category: CategoryClass}, errors.ErrCodeInvalidUniverse},
		{"bad namespace", &TypeDef{Name: "A", Namespace: "Zoo..X", Category: CategoryClass}, errors.ErrCodeInvalidUniverse},
		{"bad kind", &TypeDef{Name: "A", Category: "delegate"}, errors.ErrCodeInvalidUniverse},
		{"duplicate", &TypeDef{Name: "Zebra", Namespace: "Zoo", Category: CategoryStruct}, errors.ErrCodeDuplicateType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := New("Zoo", "")
			u.MustAdd(sampleDefs()...)
			err := u.Add(tt.def)
			if err == nil {
				t.Fatal("Add should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
			if u.Len() != 3 {
				t.Errorf("Len after failed Add = %d, want 3", u.Len())
			}
		})
	}
}

func TestUniverseTypesIsCopy(t *testing.T) {
	u := New("Zoo", "").MustAdd(sampleDefs()...)
	types := u.Types()
	types[0] = nil
	if u.Types()[0] == nil {
		t.Error("Types should return a copy")
	}
}

func TestUniverseNamespaces(t *testing.T) {
	u := New("Zoo", "").MustAdd(sampleDefs()...)
	got := u.Namespaces()
	want := []string{"Zoo", "Zoo.Staff"}
	if !slices.Equal(got, want) {
		t.Errorf("Namespaces = %v, want %v", got, want)
	}
}

func TestUniverseComments(t *testing.T) {
	u := New("Zoo", "")
	u.SetComment("Zoo.Zebra", "Striped.")

	if c, ok := u.Comment("Zoo.Zebra"); !ok || c != "Striped." {
		t.Errorf("Comment = %q, %v", c, ok)
	}
	if _, ok := u.Comment("Zoo.Diet"); ok {
		t.Error("Comment should be absent for Zoo.Diet")
	}

	u.SetComment("Zoo.Zebra", "")
	if _, ok := u.Comment("Zoo.Zebra"); ok {
		t.Error("empty text should remove the comment")
	}
}

func TestUniverseMerge(t *testing.T) {
	a := New("", "").MustAdd(&TypeDef{Name: "A", Namespace: "N", Category: CategoryClass})
	b := New("Lib", "3.1").MustAdd(&TypeDef{Name: "B", Namespace: "N", Category: CategoryEnum})
	b.SetComment("N.B", "bee")

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if a.Name() != "Lib" || a.Version() != "3.1" {
		t.Errorf("Name/Version = %q/%q, want Lib/3.1", a.Name(), a.Version())
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
	if c, _ := a.Comment("N.B"); c != "bee" {
		t.Errorf("merged comment = %q", c)
	}

	if err := a.Merge(b); !errors.Is(err, errors.ErrCodeDuplicateType) {
		t.Errorf("second Merge error = %v, want DUPLICATE_TYPE", err)
	}
	if err := a.Merge(nil); err != nil {
		t.Errorf("Merge(nil) error: %v", err)
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in      string
		want    Visibility
		wantErr bool
	}{
		{"public", Public, false},
		{"PRIVATE", Private, false},
		{"protected  internal", ProtectedInternal, false},
		{" private protected ", PrivateProtected, false},
		{"friend", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisibility(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPropertyIsPublic(t *testing.T) {
	tests := []struct {
		name string
		p    Property
		want bool
	}{
		{"public get", Property{Getter: Get(Public)}, true},
		{"private get public set", Property{Getter: Get(Private), Setter: Set(Public)}, true},
		{"protected both", Property{Getter: Get(Protected), Setter: Set(Protected)}, false},
		{"no accessors", Property{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsPublic(); got != tt.want {
				t.Errorf("IsPublic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeDefDeclares(t *testing.T) {
	d := &TypeDef{Name: "Cow", Namespace: "Farm", Category: CategoryClass}
	if !d.Declares("") || !d.Declares("Farm.Cow") {
		t.Error("Declares should accept empty and own full name")
	}
	if d.Declares("Farm.Animal") {
		t.Error("Declares should reject inherited members")
	}
}
