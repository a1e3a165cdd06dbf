package meta

import (
	"fmt"
	"regexp"
	"strings"
)

// refNameRegex matches a possibly qualified type name with an optional arity
// marker and array suffixes: System.Int32, List`1, Byte[], T.
var refNameRegex = regexp.MustCompile("^[A-Za-z_][A-Za-z0-9_]*(\\.[A-Za-z_][A-Za-z0-9_]*)*(`[0-9]+)?(\\[\\])*$")

// ParseTypeRef parses a type reference written in source syntax.
//
//	System.String
//	System.Collections.Generic.Dictionary<System.String, System.Int32>
//	List<List<Int32>>
//	System.Byte[]
//
// Generic references get a runtime-style arity marker on the name
// ("Dictionary`2"). An explicit marker is accepted when it agrees with the
// number of arguments.
func ParseTypeRef(s string) (TypeRef, error) {
	p := refParser{src: s}
	ref, err := p.parseRef()
	if err != nil {
		return TypeRef{}, fmt.Errorf("parse type reference %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("parse type reference %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	return ref, nil
}

// MustParseTypeRef is like ParseTypeRef but panics on error. It is meant
// for statically known references in registry code.
func MustParseTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) parseRef() (TypeRef, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>, ", rune(p.src[p.pos])) {
		p.pos++
	}
	qualified := p.src[start:p.pos]
	if qualified == "" {
		return TypeRef{}, fmt.Errorf("missing type name at offset %d", start)
	}
	if !refNameRegex.MatchString(qualified) {
		return TypeRef{}, fmt.Errorf("invalid type name %q", qualified)
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		ns, name := splitFullName(qualified)
		return TypeRef{Name: name, Namespace: ns}, nil
	}
	if strings.HasSuffix(qualified, "[]") {
		return TypeRef{}, fmt.Errorf("array type %q cannot take generic arguments", qualified)
	}
	p.pos++ // '<'

	var args []TypeRef
	for {
		arg, err := p.parseRef()
		if err != nil {
			return TypeRef{}, err
		}
		args = append(args, arg)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return TypeRef{}, fmt.Errorf("unterminated generic argument list for %q", qualified)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case '>':
			p.pos++
		default:
			return TypeRef{}, fmt.Errorf("unexpected %q in generic argument list", p.src[p.pos])
		}
		break
	}

	ns, name := splitFullName(qualified)
	if i := strings.IndexByte(name, '`'); i >= 0 {
		if want := fmt.Sprintf("%d", len(args)); name[i+1:] != want {
			return TypeRef{}, fmt.Errorf("arity marker of %q does not match %d argument(s)", name, len(args))
		}
	} else {
		name = fmt.Sprintf("%s`%d", name, len(args))
	}
	return TypeRef{Name: name, Namespace: ns, Args: args}, nil
}
