package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

// XMLHeader is the declaration written before the document element.
const XMLHeader = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>` + "\n"

// GeneratedLayout is the time layout of the AssemblyInfo Generated attribute.
const GeneratedLayout = "2006-01-02 15:04:05"

type xmlDiagram struct {
	XMLName  xml.Name    `xml:"ClassDiagram"`
	Assembly xmlAssembly `xml:"AssemblyInfo"`
	Types    xmlTypes    `xml:"Types"`
}

type xmlAssembly struct {
	Name      string `xml:"Name,attr"`
	Version   string `xml:"Version,attr"`
	Generated string `xml:"Generated,attr"`
}

type xmlTypes struct {
	Items []xmlType `xml:",any"`
}

// xmlType is written under the element named by its kind.
type xmlType struct {
	XMLName    xml.Name
	Name       string        `xml:"Name,attr"`
	FullName   string        `xml:"FullName,attr"`
	Comment    *string       `xml:"Comment,omitempty"`
	BaseType   *xmlRef       `xml:"BaseType,omitempty"`
	Values     *xmlValues     `xml:"Values"`
	Properties *xmlProperties `xml:"Properties"`
	Methods    *xmlMethods    `xml:"Methods"`
}

// Container elements are pointers so that empty ones are left out.
type xmlValues struct {
	Items []xmlValue `xml:"Value"`
}

type xmlProperties struct {
	Items []xmlProperty `xml:"Property"`
}

type xmlMethods struct {
	Items []xmlMethod `xml:"Method"`
}

type xmlParameters struct {
	Items []xmlParameter `xml:"Parameter"`
}

type xmlRef struct {
	Name     string `xml:"Name,attr"`
	FullName string `xml:"FullName,attr"`
}

type xmlValue struct {
	Name  string `xml:"Name,attr"`
	Value int    `xml:"Value,attr"`
}

type xmlProperty struct {
	Name   string `xml:"Name,attr"`
	Type   string `xml:"Type,attr"`
	Access string `xml:"Access,attr"`
}

type xmlMethod struct {
	Name       string         `xml:"Name,attr"`
	ReturnType string         `xml:"ReturnType,attr"`
	IsAbstract bool           `xml:"IsAbstract,attr"`
	IsVirtual  bool           `xml:"IsVirtual,attr"`
	Parameters *xmlParameters `xml:"Parameters"`
}

type xmlParameter struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

// WriteXML encodes doc as an indented class diagram and writes it to w.
// Optional parts of a type (comment, base type, values, properties,
// methods, parameters) are left out when they are empty.
func WriteXML(w io.Writer, doc *diagram.Document) error {
	if doc == nil {
		return fmt.Errorf("encode xml: nil document")
	}
	if _, err := io.WriteString(w, XMLHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(toXML(doc)); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// RenderXML is WriteXML into a byte slice.
func RenderXML(doc *diagram.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadXML decodes a class diagram written by WriteXML. The Generated
// attribute is interpreted in the local time zone.
func ReadXML(r io.Reader) (*diagram.Document, error) {
	var x xmlDiagram
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}
	return fromXML(&x)
}

func toXML(doc *diagram.Document) *xmlDiagram {
	out := &xmlDiagram{
		Assembly: xmlAssembly{
			Name:      doc.AssemblyName,
			Version:   doc.AssemblyVersion,
			Generated: doc.GeneratedAt.Format(GeneratedLayout),
		},
	}
	for _, t := range doc.Types {
		xt := xmlType{
			XMLName:  xml.Name{Local: string(t.Kind)},
			Name:     t.Name,
			FullName: t.FullName,
			Comment:  t.Comment,
		}
		if t.BaseType != nil {
			xt.BaseType = &xmlRef{Name: t.BaseType.Name, FullName: t.BaseType.FullName}
		}
		if len(t.EnumValues) > 0 {
			xt.Values = &xmlValues{}
		}
		for _, v := range t.EnumValues {
			xt.Values.Items = append(xt.Values.Items, xmlValue{Name: v.Name, Value: v.Value})
		}
		if len(t.Properties) > 0 {
			xt.Properties = &xmlProperties{}
		}
		for _, p := range t.Properties {
			xt.Properties.Items = append(xt.Properties.Items, xmlProperty{Name: p.Name, Type: p.TypeName, Access: p.Access})
		}
		if len(t.Methods) > 0 {
			xt.Methods = &xmlMethods{}
		}
		for _, m := range t.Methods {
			xm := xmlMethod{
				Name:       m.Name,
				ReturnType: m.ReturnTypeName,
				IsAbstract: m.IsAbstract,
				IsVirtual:  m.IsVirtual,
			}
			if len(m.Parameters) > 0 {
				xm.Parameters = &xmlParameters{}
			}
			for _, p := range m.Parameters {
				xm.Parameters.Items = append(xm.Parameters.Items, xmlParameter{Name: p.Name, Type: p.TypeName})
			}
			xt.Methods.Items = append(xt.Methods.Items, xm)
		}
		out.Types.Items = append(out.Types.Items, xt)
	}
	return out
}

func fromXML(x *xmlDiagram) (*diagram.Document, error) {
	generated, err := time.ParseInLocation(GeneratedLayout, x.Assembly.Generated, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse Generated attribute: %w", err)
	}
	doc := &diagram.Document{
		AssemblyName:    x.Assembly.Name,
		AssemblyVersion: x.Assembly.Version,
		GeneratedAt:     generated,
		Types:           make([]diagram.TypeDescriptor, 0, len(x.Types.Items)),
	}
	for _, xt := range x.Types.Items {
		kind := diagram.Kind(xt.XMLName.Local)
		switch kind {
		case diagram.KindEnum, diagram.KindAbstractClass, diagram.KindClass, diagram.KindType:
		default:
			return nil, fmt.Errorf("unknown type element <%s>", xt.XMLName.Local)
		}
		t := diagram.TypeDescriptor{
			Kind:     kind,
			Name:     xt.Name,
			FullName: xt.FullName,
			Comment:  xt.Comment,
		}
		if xt.BaseType != nil {
			t.BaseType = &diagram.TypeRef{Name: xt.BaseType.Name, FullName: xt.BaseType.FullName}
		}
		if xt.Values != nil {
			for _, v := range xt.Values.Items {
				t.EnumValues = append(t.EnumValues, diagram.EnumValue{Name: v.Name, Value: v.Value})
			}
		}
		if xt.Properties != nil {
			for _, p := range xt.Properties.Items {
				t.Properties = append(t.Properties, diagram.PropertyDescriptor{Name: p.Name, TypeName: p.Type, Access: p.Access})
			}
		}
		if xt.Methods != nil {
			for _, xm := range xt.Methods.Items {
				t.Methods = append(t.Methods, fromXMLMethod(xm))
			}
		}
		doc.Types = append(doc.Types, t)
	}
	return doc, nil
}

func fromXMLMethod(xm xmlMethod) diagram.MethodDescriptor {
	m := diagram.MethodDescriptor{
		Name:           xm.Name,
		ReturnTypeName: xm.ReturnType,
		IsAbstract:     xm.IsAbstract,
		IsVirtual:      xm.IsVirtual,
	}
	if xm.Parameters != nil {
		for _, p := range xm.Parameters.Items {
			m.Parameters = append(m.Parameters, diagram.ParameterDescriptor{Name: p.Name, TypeName: p.Type})
		}
	}
	return m
}
