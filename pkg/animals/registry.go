package animals

import (
	"github.com/matzehuels/classdiagram/pkg/meta"
)

// Namespace is the namespace all library types are registered under.
const Namespace = "AnimalLibrary"

// AssemblyName is the assembly reported for the library.
const AssemblyName = "AnimalLibrary"

// Full names of the registered types.
const (
	AnimalType           = Namespace + ".Animal"
	CowType              = Namespace + ".Cow"
	LionType             = Namespace + ".Lion"
	PigType              = Namespace + ".Pig"
	ClassificationType   = Namespace + ".eClassificationAnimal"
	FavoriteFoodType     = Namespace + ".eFavoriteFood"
	CommentAttributeType = Namespace + ".CommentAttribute"
)

// Comments are the documentation texts declared on the library types.
var Comments = map[string]CommentAttribute{
	AnimalType:         NewCommentAttribute("Abstract base class for all animals"),
	CowType:            NewCommentAttribute("A cow: herbivore, loves plants"),
	LionType:           NewCommentAttribute("A lion: carnivore, hides from other animals"),
	PigType:            NewCommentAttribute("A pig: omnivore, eats everything"),
	ClassificationType: NewCommentAttribute("Dietary classification of an animal"),
	FavoriteFoodType:   NewCommentAttribute("Favorite food of an animal"),
}

// GoMethodNames maps registered method names to the Go methods that
// implement them where the two differ.
var GoMethodNames = map[string]string{
	"GetClassificationAnimal": "Classification",
	"GetFavouriteFood":        "FavoriteFood",
}

var (
	stringRef = meta.RefPtr("System.String")
	boolRef   = meta.RefPtr("System.Boolean")
	objectRef = meta.RefPtr(meta.RootTypeName)
)

// objectMembers are the public methods every class inherits from the root
// type. They are registered so that filtering can be observed.
func objectMembers() []meta.Method {
	return []meta.Method{
		{Name: "ToString", Returns: stringRef, Visibility: meta.Public, Virtual: true, DeclaredBy: meta.RootTypeName},
		{Name: "Equals", Returns: boolRef, Visibility: meta.Public, Virtual: true, DeclaredBy: meta.RootTypeName,
			Params: []meta.Parameter{{Name: "obj", Type: objectRef}}},
		{Name: "GetHashCode", Returns: meta.RefPtr("System.Int32"), Visibility: meta.Public, Virtual: true, DeclaredBy: meta.RootTypeName},
		{Name: "GetType", Returns: meta.RefPtr("System.Type"), Visibility: meta.Public, DeclaredBy: meta.RootTypeName},
	}
}

func animalDef() *meta.TypeDef {
	rw := func(name string, typ *meta.TypeRef) meta.Property {
		return meta.Property{Name: name, Type: typ, Getter: meta.Get(meta.Public), Setter: meta.Set(meta.Public)}
	}
	accessors := []meta.Method{
		{Name: "get_Country", Returns: stringRef, Visibility: meta.Public, Special: true},
		{Name: "set_Country", Visibility: meta.Public, Special: true, Params: []meta.Parameter{{Name: "value", Type: stringRef}}},
		{Name: "get_WhatAnimal", Returns: stringRef, Visibility: meta.Public, Special: true},
		{Name: "set_WhatAnimal", Visibility: meta.Protected, Special: true, Params: []meta.Parameter{{Name: "value", Type: stringRef}}},
		{Name: ".ctor", Visibility: meta.Protected, Special: true},
	}
	methods := append(accessors,
		meta.Method{Name: "Deconstruct", Visibility: meta.Public, Params: []meta.Parameter{
			{Name: "country", Type: stringRef},
			{Name: "hideFromOtherAnimals", Type: boolRef},
			{Name: "name", Type: stringRef},
			{Name: "whatAnimal", Type: stringRef},
		}},
		meta.Method{Name: "GetClassificationAnimal", Returns: meta.RefPtr(ClassificationType), Visibility: meta.Public, Abstract: true, Virtual: true},
		meta.Method{Name: "GetFavouriteFood", Returns: meta.RefPtr(FavoriteFoodType), Visibility: meta.Public, Abstract: true, Virtual: true},
		meta.Method{Name: "SayHello", Visibility: meta.Public, Abstract: true, Virtual: true},
	)
	return &meta.TypeDef{
		Name:      "Animal",
		Namespace: Namespace,
		Category:  meta.CategoryClass,
		Abstract:  true,
		Base:      objectRef,
		Properties: []meta.Property{
			rw("Country", stringRef),
			rw("HideFromOtherAnimals", boolRef),
			rw("Name", stringRef),
			{Name: "WhatAnimal", Type: stringRef, Getter: meta.Get(meta.Public), Setter: meta.Set(meta.Protected)},
		},
		Methods: append(methods, objectMembers()...),
	}
}

// speciesDef describes one concrete animal. Inherited properties are listed
// with their declaring type, as a runtime would report them.
func speciesDef(name string) *meta.TypeDef {
	inherited := func(prop string, typ *meta.TypeRef) meta.Property {
		return meta.Property{Name: prop, Type: typ, Getter: meta.Get(meta.Public), Setter: meta.Set(meta.Public), DeclaredBy: AnimalType}
	}
	full := Namespace + "." + name
	return &meta.TypeDef{
		Name:      name,
		Namespace: Namespace,
		Category:  meta.CategoryClass,
		Base:      meta.RefPtr(AnimalType),
		Properties: []meta.Property{
			inherited("Country", stringRef),
			inherited("HideFromOtherAnimals", boolRef),
			inherited("Name", stringRef),
		},
		Methods: append([]meta.Method{
			{Name: ".ctor", Visibility: meta.Public, Special: true, Params: []meta.Parameter{
				{Name: "country", Type: stringRef},
				{Name: "hideFromOtherAnimals", Type: boolRef},
				{Name: "name", Type: stringRef},
			}},
			{Name: "GetClassificationAnimal", Returns: meta.RefPtr(ClassificationType), Visibility: meta.Public, Virtual: true, DeclaredBy: full},
			{Name: "GetFavouriteFood", Returns: meta.RefPtr(FavoriteFoodType), Visibility: meta.Public, Virtual: true, DeclaredBy: full},
			{Name: "SayHello", Visibility: meta.Public, Virtual: true, DeclaredBy: full},
			{Name: "Deconstruct", Visibility: meta.Public, DeclaredBy: AnimalType},
		}, objectMembers()...),
	}
}

func enumDef(name string, values []meta.EnumMember) *meta.TypeDef {
	return &meta.TypeDef{
		Name:      name,
		Namespace: Namespace,
		Category:  meta.CategoryEnum,
		Base:      meta.RefPtr("System.Enum"),
		Values:    values,
	}
}

func commentAttributeDef() *meta.TypeDef {
	return &meta.TypeDef{
		Name:      "CommentAttribute",
		Namespace: Namespace,
		Category:  meta.CategoryClass,
		Base:      meta.RefPtr("System.Attribute"),
		Properties: []meta.Property{
			{Name: "Comment", Type: stringRef, Getter: meta.Get(meta.Public)},
			{Name: "TypeId", Type: objectRef, Getter: meta.Get(meta.Public), DeclaredBy: "System.Attribute"},
		},
		Methods: []meta.Method{
			{Name: "get_Comment", Returns: stringRef, Visibility: meta.Public, Special: true},
			{Name: ".ctor", Visibility: meta.Public, Special: true, Params: []meta.Parameter{{Name: "comment", Type: stringRef}}},
			{Name: "IsDefaultAttribute", Returns: boolRef, Visibility: meta.Public, Virtual: true, DeclaredBy: "System.Attribute"},
		},
	}
}

// Universe returns the metadata of the library: every type of this package
// registered under [Namespace], with the documentation texts of [Comments].
// Each call builds a fresh universe.
//
// The metadata uses the library's published member names, which differ from
// the Go identifiers; see [GoMethodNames].
func Universe() *meta.Universe {
	u := meta.New(AssemblyName, "")
	u.MustAdd(
		animalDef(),
		speciesDef("Cow"),
		speciesDef("Lion"),
		speciesDef("Pig"),
		enumDef("eClassificationAnimal", []meta.EnumMember{
			{Name: Herbivore.String(), Value: int(Herbivore)},
			{Name: Carnivore.String(), Value: int(Carnivore)},
			{Name: Omnivore.String(), Value: int(Omnivore)},
		}),
		enumDef("eFavoriteFood", []meta.EnumMember{
			{Name: Meat.String(), Value: int(Meat)},
			{Name: Plants.String(), Value: int(Plants)},
			{Name: Everything.String(), Value: int(Everything)},
		}),
		commentAttributeDef(),
	)
	for name, c := range Comments {
		u.SetComment(name, c.Comment())
	}
	return u
}
