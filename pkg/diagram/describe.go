package diagram

import (
	"github.com/matzehuels/classdiagram/pkg/errors"
	"github.com/matzehuels/classdiagram/pkg/meta"
)

// Classify returns the kind a definition is reported as.
func Classify(def *meta.TypeDef) Kind {
	switch {
	case def.IsEnum():
		return KindEnum
	case def.IsClass() && def.Abstract:
		return KindAbstractClass
	case def.IsClass():
		return KindClass
	default:
		return KindType
	}
}

// Describe converts one type definition into a descriptor. Comments are
// looked up by full name in comments, which may be nil.
//
// Class kinds get their base reference and declared public instance
// members, enums their value table. Other kinds carry only names and the
// comment. A declared member with incomplete metadata makes Describe fail
// with ErrCodeMissingMetadata.
func Describe(def *meta.TypeDef, comments CommentSource) (TypeDescriptor, error) {
	if def == nil {
		return TypeDescriptor{}, errors.New(errors.ErrCodeMissingMetadata, "nil type definition")
	}
	if comments == nil {
		comments = noComments{}
	}

	td := TypeDescriptor{
		Kind:     Classify(def),
		Name:     def.Name,
		FullName: def.FullName(),
	}
	if c, ok := comments.Comment(td.FullName); ok {
		td.Comment = &c
	}

	switch td.Kind {
	case KindEnum:
		values, err := describeValues(def)
		if err != nil {
			return TypeDescriptor{}, err
		}
		td.EnumValues = values
	case KindClass, KindAbstractClass:
		if def.Base != nil && def.Base.FullName() != meta.RootTypeName {
			td.BaseType = &TypeRef{Name: def.Base.Name, FullName: def.Base.FullName()}
		}
		props, err := describeProperties(def)
		if err != nil {
			return TypeDescriptor{}, err
		}
		methods, err := describeMethods(def)
		if err != nil {
			return TypeDescriptor{}, err
		}
		td.Properties = props
		td.Methods = methods
	}
	return td, nil
}

func describeValues(def *meta.TypeDef) ([]EnumValue, error) {
	var out []EnumValue
	for i, v := range def.Values {
		if v.Name == "" {
			return nil, errors.New(errors.ErrCodeMissingMetadata, "%s: enum member #%d has no name", def.FullName(), i)
		}
		out = append(out, EnumValue{Name: v.Name, Value: v.Value})
	}
	return out, nil
}

func describeProperties(def *meta.TypeDef) ([]PropertyDescriptor, error) {
	var out []PropertyDescriptor
	for i, p := range def.Properties {
		if p.Static || !def.Declares(p.DeclaredBy) {
			continue
		}
		if p.Getter == nil && p.Setter == nil {
			return nil, errors.New(errors.ErrCodeMissingMetadata, "%s: property %q has no accessors", def.FullName(), p.Name)
		}
		if !p.IsPublic() {
			continue
		}
		if p.Name == "" {
			return nil, errors.New(errors.ErrCodeMissingMetadata, "%s: property #%d has no name", def.FullName(), i)
		}
		if p.Type == nil {
			return nil, errors.New(errors.ErrCodeMissingMetadata, "%s: property %q has no type", def.FullName(), p.Name)
		}
		out = append(out, PropertyDescriptor{
			Name:     p.Name,
			TypeName: FormatTypeName(*p.Type),
			Access:   ResolveAccess(p),
		})
	}
	return out, nil
}

func describeMethods(def *meta.TypeDef) ([]MethodDescriptor, error) {
	var out []MethodDescriptor
	for i, m := range def.Methods {
		if m.Static || m.Special || m.Visibility != meta.Public || !def.Declares(m.DeclaredBy) {
			continue
		}
		if m.Name == "" {
			return nil, errors.New(errors.ErrCodeMissingMetadata, "%s: method #%d has no name", def.FullName(), i)
		}
		md := MethodDescriptor{
			Name:           m.Name,
			ReturnTypeName: formatOptional(m.Returns),
			IsAbstract:     m.Abstract,
			IsVirtual:      m.Virtual || m.Abstract,
		}
		for j, param := range m.Params {
			if param.Name == "" || param.Type == nil {
				return nil, errors.New(errors.ErrCodeMissingMetadata, "%s.%s: parameter #%d is incomplete", def.FullName(), m.Name, j)
			}
			md.Parameters = append(md.Parameters, ParameterDescriptor{
				Name:     param.Name,
				TypeName: FormatTypeName(*param.Type),
			})
		}
		out = append(out, md)
	}
	return out, nil
}
