package meta

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	jsonc "github.com/muhammadmuzzammil1998/jsonc"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/classdiagram/pkg/errors"
)

// Format identifies a universe file encoding.
type Format string

// Supported universe file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// formatAliases maps file extensions to formats.
var formatAliases = map[string]Format{
	".toml":  FormatTOML,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".json":  FormatJSON,
	".jsonc": FormatJSON,
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatAliases[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported universe file %q (want .toml, .yaml, .yml, .json or .jsonc)", path)
}

// Load reads, validates and decodes one universe file.
func Load(path string) (*Universe, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "universe file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	u, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}

// LoadGlob loads every file matched by the doublestar patterns (for example
// "metadata/**/*.toml") and merges them into one universe. Files are merged
// in lexical order; the first file that names an assembly names the result.
// A pattern without glob characters that matches nothing is reported as a
// missing file.
func LoadGlob(patterns ...string) (*Universe, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "universe pattern %q", pattern)
		}
		if len(matches) == 0 {
			if !strings.ContainsAny(pattern, "*?[{") {
				matches = []string{pattern}
			} else {
				return nil, errors.New(errors.ErrCodeNotFound, "universe pattern %q matched no files", pattern)
			}
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no universe files given")
	}

	u := New("", "")
	for _, f := range files {
		part, err := Load(f)
		if err != nil {
			return nil, err
		}
		if err := u.Merge(part); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	return u, nil
}

// Decode validates data against the universe schema and decodes it.
func Decode(data []byte, format Format) (*Universe, error) {
	var (
		raw  any
		file universeFile
	)
	switch format {
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "parse toml")
		}
		raw = m
		if err := validate(raw); err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "parse yaml")
		}
		if err := validate(raw); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "decode yaml")
		}
	case FormatJSON:
		clean := jsonc.ToJSON(data)
		if err := json.Unmarshal(clean, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "parse json")
		}
		if err := validate(raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(clean, &file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported universe format %q", format)
	}
	return file.universe()
}

//go:embed universe.schema.json
var schemaData []byte

const schemaURL = "mem://schemas/universe.schema.json"

var (
	compileOnce sync.Once
	schema      *jsonschema.Schema
	compileErr  error
)

func universeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("decode universe schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("register universe schema: %w", err)
			return
		}
		schema, compileErr = c.Compile(schemaURL)
	})
	return schema, compileErr
}

// validate checks a decoded document against the universe schema. The
// document is normalized through JSON first so TOML and YAML values take
// the same shapes as JSON ones.
func validate(raw any) error {
	s, err := universeSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "universe schema")
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidUniverse, err, "normalize document")
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(normalized))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidUniverse, err, "normalize document")
	}
	if err := s.Validate(instance); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidUniverse, err, "schema validation failed")
	}
	return nil
}

type universeFile struct {
	Assembly string     `toml:"assembly" yaml:"assembly" json:"assembly"`
	Version  string     `toml:"version" yaml:"version" json:"version"`
	Types    []typeFile `toml:"types" yaml:"types" json:"types"`
}

type typeFile struct {
	Name       string         `toml:"name" yaml:"name" json:"name"`
	Namespace  string         `toml:"namespace" yaml:"namespace" json:"namespace"`
	Kind       string         `toml:"kind" yaml:"kind" json:"kind"`
	Abstract   bool           `toml:"abstract" yaml:"abstract" json:"abstract"`
	Base       string         `toml:"base" yaml:"base" json:"base"`
	Comment    string         `toml:"comment" yaml:"comment" json:"comment"`
	Properties []propertyFile `toml:"properties" yaml:"properties" json:"properties"`
	Methods    []methodFile   `toml:"methods" yaml:"methods" json:"methods"`
	Values     []valueFile    `toml:"values" yaml:"values" json:"values"`
}

type propertyFile struct {
	Name       string `toml:"name" yaml:"name" json:"name"`
	Type       string `toml:"type" yaml:"type" json:"type"`
	Get        string `toml:"get" yaml:"get" json:"get"`
	Set        string `toml:"set" yaml:"set" json:"set"`
	Static     bool   `toml:"static" yaml:"static" json:"static"`
	DeclaredBy string `toml:"declared_by" yaml:"declared_by" json:"declared_by"`
}

type methodFile struct {
	Name       string      `toml:"name" yaml:"name" json:"name"`
	Returns    string      `toml:"returns" yaml:"returns" json:"returns"`
	Visibility string      `toml:"visibility" yaml:"visibility" json:"visibility"`
	Static     bool        `toml:"static" yaml:"static" json:"static"`
	Abstract   bool        `toml:"abstract" yaml:"abstract" json:"abstract"`
	Virtual    bool        `toml:"virtual" yaml:"virtual" json:"virtual"`
	Special    bool        `toml:"special" yaml:"special" json:"special"`
	DeclaredBy string      `toml:"declared_by" yaml:"declared_by" json:"declared_by"`
	Params     []paramFile `toml:"params" yaml:"params" json:"params"`
}

type paramFile struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Type string `toml:"type" yaml:"type" json:"type"`
}

type valueFile struct {
	Name  string `toml:"name" yaml:"name" json:"name"`
	Value int    `toml:"value" yaml:"value" json:"value"`
}

func (f *universeFile) universe() (*Universe, error) {
	u := New(f.Assembly, f.Version)
	for _, tf := range f.Types {
		def, err := tf.typeDef()
		if err != nil {
			return nil, err
		}
		if err := u.Add(def); err != nil {
			return nil, err
		}
		u.SetComment(def.FullName(), tf.Comment)
	}
	return u, nil
}

func (tf *typeFile) typeDef() (*TypeDef, error) {
	def := &TypeDef{
		Name:      tf.Name,
		Namespace: tf.Namespace,
		Category:  Category(tf.Kind),
		Abstract:  tf.Abstract,
	}
	full := def.FullName()

	var err error
	if def.Base, err = optionalRef(tf.Base); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "base of %s", full)
	}

	for _, pf := range tf.Properties {
		p := Property{Name: pf.Name, Static: pf.Static, DeclaredBy: pf.DeclaredBy}
		if p.Type, err = optionalRef(pf.Type); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "property %s.%s", full, pf.Name)
		}
		if p.Getter, err = optionalAccessor(pf.Get); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "getter of %s.%s", full, pf.Name)
		}
		if p.Setter, err = optionalAccessor(pf.Set); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "setter of %s.%s", full, pf.Name)
		}
		def.Properties = append(def.Properties, p)
	}

	for _, mf := range tf.Methods {
		m := Method{
			Name:       mf.Name,
			Visibility: Public,
			Static:     mf.Static,
			Abstract:   mf.Abstract,
			Virtual:    mf.Virtual || mf.Abstract,
			Special:    mf.Special,
			DeclaredBy: mf.DeclaredBy,
		}
		if mf.Visibility != "" {
			if m.Visibility, err = ParseVisibility(mf.Visibility); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "method %s.%s", full, mf.Name)
			}
		}
		if m.Returns, err = optionalRef(mf.Returns); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "return type of %s.%s", full, mf.Name)
		}
		for _, pf := range mf.Params {
			param := Parameter{Name: pf.Name}
			if param.Type, err = optionalRef(pf.Type); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidUniverse, err, "parameter %s of %s.%s", pf.Name, full, mf.Name)
			}
			m.Params = append(m.Params, param)
		}
		def.Methods = append(def.Methods, m)
	}

	for _, vf := range tf.Values {
		def.Values = append(def.Values, EnumMember{Name: vf.Name, Value: vf.Value})
	}
	return def, nil
}

func optionalRef(s string) (*TypeRef, error) {
	if s == "" {
		return nil, nil
	}
	ref, err := ParseTypeRef(s)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func optionalAccessor(s string) (*Accessor, error) {
	if s == "" {
		return nil, nil
	}
	v, err := ParseVisibility(s)
	if err != nil {
		return nil, err
	}
	return &Accessor{Visibility: v}, nil
}
