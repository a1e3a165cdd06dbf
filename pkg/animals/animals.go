// Package animals is the small animal library the class diagram is drawn
// from, together with its metadata registry.
//
// The Go types here are the library itself. [Universe] describes the same
// types as type definitions so that the diagram package can work on them
// without reflection.
package animals

import (
	"fmt"
	"io"
	"strconv"
)

// Classification is the dietary class of an animal.
type Classification int

// Classifications.
const (
	Herbivore Classification = iota
	Carnivore
	Omnivore
)

var classificationNames = [...]string{"Herbivore", "Carnivore", "Omnivore"}

func (c Classification) String() string {
	if c < 0 || int(c) >= len(classificationNames) {
		return "Classification(" + strconv.Itoa(int(c)) + ")"
	}
	return classificationNames[c]
}

// FavoriteFood is what an animal prefers to eat.
type FavoriteFood int

// Foods.
const (
	Meat FavoriteFood = iota
	Plants
	Everything
)

var foodNames = [...]string{"Meat", "Plants", "Everything"}

func (f FavoriteFood) String() string {
	if f < 0 || int(f) >= len(foodNames) {
		return "FavoriteFood(" + strconv.Itoa(int(f)) + ")"
	}
	return foodNames[f]
}

// CommentAttribute attaches documentation text to a type.
type CommentAttribute struct {
	comment string
}

// NewCommentAttribute returns an attribute carrying text.
func NewCommentAttribute(text string) CommentAttribute {
	return CommentAttribute{comment: text}
}

// Comment returns the documentation text.
func (a CommentAttribute) Comment() string { return a.comment }

// Animal is implemented by every concrete animal.
type Animal interface {
	Info() *Base
	Classification() Classification
	FavoriteFood() FavoriteFood
	SayHello() string
}

// Base holds the state shared by all animals.
type Base struct {
	Country              string
	HideFromOtherAnimals bool
	Name                 string

	whatAnimal string
}

func newBase(country string, hide bool, name, what string) Base {
	b := Base{Country: country, HideFromOtherAnimals: hide, Name: name}
	b.setWhatAnimal(what)
	return b
}

// Info returns b itself, giving access to the shared state through the
// Animal interface.
func (b *Base) Info() *Base { return b }

// WhatAnimal returns the species. It is set by the concrete animal only.
func (b *Base) WhatAnimal() string { return b.whatAnimal }

func (b *Base) setWhatAnimal(what string) { b.whatAnimal = what }

// Deconstruct returns all shared fields at once.
func (b *Base) Deconstruct() (country string, hideFromOtherAnimals bool, name, whatAnimal string) {
	return b.Country, b.HideFromOtherAnimals, b.Name, b.whatAnimal
}

// Cow is a herbivore.
type Cow struct{ Base }

// NewCow returns a cow.
func NewCow(country string, hide bool, name string) *Cow {
	return &Cow{Base: newBase(country, hide, name, "Cow")}
}

func (*Cow) Classification() Classification { return Herbivore }
func (*Cow) FavoriteFood() FavoriteFood     { return Plants }
func (*Cow) SayHello() string               { return "Moo!" }

// Lion is a carnivore.
type Lion struct{ Base }

// NewLion returns a lion.
func NewLion(country string, hide bool, name string) *Lion {
	return &Lion{Base: newBase(country, hide, name, "Lion")}
}

func (*Lion) Classification() Classification { return Carnivore }
func (*Lion) FavoriteFood() FavoriteFood     { return Meat }
func (*Lion) SayHello() string               { return "Roar!" }

// Pig is an omnivore.
type Pig struct{ Base }

// NewPig returns a pig.
func NewPig(country string, hide bool, name string) *Pig {
	return &Pig{Base: newBase(country, hide, name, "Pig")}
}

func (*Pig) Classification() Classification { return Omnivore }
func (*Pig) FavoriteFood() FavoriteFood     { return Everything }
func (*Pig) SayHello() string               { return "Oink!" }

// Herd returns the animals of the demonstration.
func Herd() []Animal {
	return []Animal{
		NewCow("Russia", false, "Burenka"),
		NewLion("Africa", true, "Simba"),
		NewPig("USA", false, "Wilbur"),
	}
}

// Greet writes the details and the greeting of each animal to w.
func Greet(w io.Writer, animals ...Animal) error {
	for _, a := range animals {
		b := a.Info()
		_, err := fmt.Fprintf(w, "\n%s %s:\n  Country: %s\n  Hides from other animals: %t\n  Classification: %s\n  Favorite food: %s\n  Greeting: %s\n",
			b.WhatAnimal(), b.Name, b.Country, b.HideFromOtherAnimals, a.Classification(), a.FavoriteFood(), a.SayHello())
		if err != nil {
			return err
		}
	}
	return nil
}
