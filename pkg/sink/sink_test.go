package sink

import (
	"time"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

var generatedAt = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func strPtr(s string) *string { return &s }

// testDocument is a small diagram covering every optional element.
func testDocument() *diagram.Document {
	return &diagram.Document{
		AssemblyName:    "Shop",
		AssemblyVersion: "1.0.0.0",
		GeneratedAt:     generatedAt,
		Types: []diagram.TypeDescriptor{
			{Kind: diagram.KindAbstractClass, Name: "Entity", FullName: "Shop.Entity"},
			{
				Kind:     diagram.KindClass,
				Name:     "Order",
				FullName: "Shop.Order",
				Comment:  strPtr("Places goods & pays."),
				BaseType: &diagram.TypeRef{Name: "Entity", FullName: "Shop.Entity"},
				Properties: []diagram.PropertyDescriptor{
					{Name: "Lines", TypeName: "List<Dictionary<String, Int32>>", Access: "read-only"},
					{Name: "Total", TypeName: "Decimal", Access: "public get; protected set;"},
				},
				Methods: []diagram.MethodDescriptor{
					{Name: "Add", ReturnTypeName: "void", Parameters: []diagram.ParameterDescriptor{
						{Name: "sku", TypeName: "String"},
						{Name: "qty", TypeName: "Int32"},
					}},
					{Name: "Close", ReturnTypeName: "Boolean", IsVirtual: true},
				},
			},
			{
				Kind:     diagram.KindEnum,
				Name:     "Priority",
				FullName: "Shop.Priority",
				EnumValues: []diagram.EnumValue{
					{Name: "Low", Value: 5},
					{Name: "Medium", Value: 1},
					{Name: "High", Value: 10},
				},
			},
			{Kind: diagram.KindType, Name: "IShippable", FullName: "Shop.IShippable", Comment: strPtr("Can be shipped.")},
		},
	}
}
