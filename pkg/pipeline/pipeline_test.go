package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/classdiagram/pkg/cache"
	"github.com/matzehuels/classdiagram/pkg/errors"
	"github.com/matzehuels/classdiagram/pkg/observability"
	"github.com/matzehuels/classdiagram/pkg/sink"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 6, 0, time.Local)

func fixedClock() time.Time { return fixedTime }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"xml", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"XML", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"xml", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"xml", "pdf"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", opts.Namespace, DefaultNamespace)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatXML {
		t.Errorf("Formats = %v, want [xml]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if !opts.UsesBuiltin() {
		t.Error("UsesBuiltin() should be true without universe patterns")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"dotted namespace", Options{Namespace: "Farm.Animals"}, false},
		{"bad namespace", Options{Namespace: "Farm..Animals"}, true},
		{"dotted assembly", Options{AssemblyName: "Farm.Core"}, false},
		{"bad assembly", Options{AssemblyName: "Farm Core"}, true},
		{"version", Options{AssemblyVersion: "2.1.0.0"}, false},
		{"bad version", Options{AssemblyVersion: "v2"}, true},
		{"bad format", Options{Formats: []string{"xml", "gif"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if !opts.validated {
		t.Error("validated flag should be set")
	}

	opts.Formats = []string{"invalid"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true}
	got := opts.ArtifactKeyOpts(FormatSVG)
	if got.Format != FormatSVG || !got.Detailed {
		t.Errorf("ArtifactKeyOpts() = %+v", got)
	}
}

func TestExecuteBuiltin(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Formats: []string{FormatXML, FormatJSON, FormatDOT},
		Now:     fixedClock,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Document.AssemblyName != "AnimalLibrary" {
		t.Errorf("AssemblyName = %q", result.Document.AssemblyName)
	}
	if result.Stats.TypeCount != 7 {
		t.Errorf("TypeCount = %d, want 7", result.Stats.TypeCount)
	}
	if result.Stats.UniverseTypes < result.Stats.TypeCount {
		t.Errorf("UniverseTypes = %d, want at least %d", result.Stats.UniverseTypes, result.Stats.TypeCount)
	}
	if result.CacheInfo.RenderHit {
		t.Error("RenderHit should be false without cacheable formats")
	}

	xml := string(result.Artifacts[FormatXML])
	if !strings.HasPrefix(xml, sink.XMLHeader) {
		t.Errorf("xml artifact missing header:\n%s", xml)
	}
	if !strings.Contains(xml, `Generated="2024-03-09 14:05:06"`) {
		t.Errorf("xml artifact missing timestamp:\n%s", xml)
	}
	if !bytes.HasPrefix(result.Artifacts[FormatJSON], []byte("{")) {
		t.Errorf("json artifact = %q", result.Artifacts[FormatJSON])
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %q", result.Artifacts[FormatDOT])
	}
}

func TestExecuteBuiltinAnimalXML(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Now: fixedClock})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	xml := string(result.Artifacts[FormatXML])

	const open = `    <AbstractClass Name="Animal" FullName="AnimalLibrary.Animal">`
	const closing = "    </AbstractClass>\n"
	start := strings.Index(xml, open)
	if start < 0 {
		t.Fatalf("Animal element missing:\n%s", xml)
	}
	end := strings.Index(xml[start:], closing)
	if end < 0 {
		t.Fatalf("Animal element not closed:\n%s", xml)
	}
	got := xml[start : start+end+len(closing)]

	want := `    <AbstractClass Name="Animal" FullName="AnimalLibrary.Animal">
      <Comment>Abstract base class for all animals</Comment>
      <Properties>
        <Property Name="Country" Type="String" Access="public get; public set;"></Property>
        <Property Name="HideFromOtherAnimals" Type="Boolean" Access="public get; public set;"></Property>
        <Property Name="Name" Type="String" Access="public get; public set;"></Property>
        <Property Name="WhatAnimal" Type="String" Access="public get; protected set;"></Property>
      </Properties>
      <Methods>
        <Method Name="Deconstruct" ReturnType="void" IsAbstract="false" IsVirtual="false">
          <Parameters>
            <Parameter Name="country" Type="String"></Parameter>
            <Parameter Name="hideFromOtherAnimals" Type="Boolean"></Parameter>
            <Parameter Name="name" Type="String"></Parameter>
            <Parameter Name="whatAnimal" Type="String"></Parameter>
          </Parameters>
        </Method>
        <Method Name="GetClassificationAnimal" ReturnType="eClassificationAnimal" IsAbstract="true" IsVirtual="true"></Method>
        <Method Name="GetFavouriteFood" ReturnType="eFavoriteFood" IsAbstract="true" IsVirtual="true"></Method>
        <Method Name="SayHello" ReturnType="void" IsAbstract="true" IsVirtual="true"></Method>
      </Methods>
    </AbstractClass>
`
	if got != want {
		t.Errorf("Animal element =\n%s\nwant\n%s", got, want)
	}

	if !strings.Contains(xml, "  <Types>\n"+open) {
		t.Errorf("Animal should be the first type:\n%s", xml)
	}
	if n := strings.Count(xml, "<Values>"); n != 2 {
		t.Errorf("<Values> appears %d times, want 2 (one per enum)", n)
	}
}

const shopTOML = `
assembly = "Shop"

[[types]]
name = "Order"
namespace = "Shop"
kind = "class"
base = "System.Object"

  [[types.properties]]
  name = "Total"
  type = "System.Decimal"
  get = "public"

[[types]]
name = "Priority"
namespace = "Shop"
kind = "enum"

  [[types.values]]
  name = "Low"
  value = 5

  [[types.values]]
  name = "High"
  value = 10
`

func TestExecuteUniverseFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.toml")
	if err := os.WriteFile(path, []byte(shopTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Universe:  []string{filepath.Join(dir, "*.toml")},
		Namespace: "Shop",
		Now:       fixedClock,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	doc := result.Document
	if doc.AssemblyName != "Shop" || doc.AssemblyVersion != "1.0.0.0" {
		t.Errorf("assembly = %s %s, want Shop 1.0.0.0", doc.AssemblyName, doc.AssemblyVersion)
	}
	if len(doc.Types) != 2 || doc.Types[0].Name != "Order" || doc.Types[1].Name != "Priority" {
		t.Errorf("types = %+v", doc.Types)
	}
	if doc.Types[0].Properties[0].Access != "read-only" {
		t.Errorf("Total access = %q, want read-only", doc.Types[0].Properties[0].Access)
	}
}

func TestExecuteOverridesAssembly(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		AssemblyName:    "Zoo",
		AssemblyVersion: "3.0",
		Now:             fixedClock,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Document.AssemblyName != "Zoo" || result.Document.AssemblyVersion != "3.0" {
		t.Errorf("assembly = %s %s, want Zoo 3.0", result.Document.AssemblyName, result.Document.AssemblyVersion)
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"invalid format", Options{Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"invalid namespace", Options{Namespace: "1Farm"}, errors.ErrCodeInvalidInput},
		{"missing file", Options{Universe: []string{filepath.Join(t.TempDir(), "none.toml")}}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{})
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("Execute() error = %v, want context canceled", err)
	}
}

func TestBuildEmptyNamespace(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	u, err := runner.Load(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := runner.Build(context.Background(), u, Options{Namespace: "Nowhere", Now: fixedClock})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if doc.Types == nil || len(doc.Types) != 0 {
		t.Errorf("Types = %#v, want empty non-nil slice", doc.Types)
	}
}

// mapCache is an in-memory Cache for tests.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

type recordingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestRenderSVGFromCache(t *testing.T) {
	hooks := &recordingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c := newMapCache()
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	opts := Options{Formats: []string{FormatSVG, FormatXML}, Now: fixedClock}
	u, _ := runner.Load(ctx, opts)
	doc, err := runner.Build(ctx, u, opts)
	if err != nil {
		t.Fatal(err)
	}

	dot := sink.ToDOT(doc, sink.DOTOptions{})
	key := runner.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts(FormatSVG))
	c.data[key] = []byte("<svg>cached</svg>")

	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error = %v", err)
	}
	if !hit {
		t.Error("expected cache hit")
	}
	if string(artifacts[FormatSVG]) != "<svg>cached</svg>" {
		t.Errorf("svg = %q", artifacts[FormatSVG])
	}
	if len(artifacts[FormatXML]) == 0 {
		t.Error("xml artifact missing")
	}
	if hooks.hits != 1 || hooks.misses != 0 {
		t.Errorf("hooks hits=%d misses=%d, want 1/0", hooks.hits, hooks.misses)
	}
}

func TestRenderSVGCachesResult(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz rendering in short mode")
	}

	c := newMapCache()
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG}, Detailed: true, Now: fixedClock}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if !bytes.Contains(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %q", first.Artifacts[FormatSVG])
	}

	opts.Now = func() time.Time { return fixedTime.Add(time.Hour) }
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if c.sets != 1 {
		t.Errorf("cache sets = %d, want 1", c.sets)
	}
}

func TestRenderNilDocument(t *testing.T) {
	if _, err := NewRunner(nil, nil, nil).Render(context.Background(), nil, Options{}); err == nil {
		t.Error("expected error for nil document")
	}
	if _, err := RenderFormat(context.Background(), nil, FormatXML, Options{}); err == nil {
		t.Error("expected error for nil document")
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingPipelineHooks) OnLoadStart(context.Context, []string) {
	h.events = append(h.events, "load")
}

func (h *recordingPipelineHooks) OnBuildComplete(_ context.Context, ns string, n int, _ time.Duration, err error) {
	h.events = append(h.events, "build:"+ns)
}

func (h *recordingPipelineHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	h.events = append(h.events, "render:"+strings.Join(formats, ","))
}

func TestExecuteFiresHooks(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Now: fixedClock}); err != nil {
		t.Fatal(err)
	}

	want := []string{"load", "build:AnimalLibrary", "render:xml"}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestExecuteExampleUniverse(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Universe:  []string{"../../examples/universe/*"},
		Namespace: "Farm",
		Formats:   []string{FormatXML, FormatDOT},
		Detailed:  true,
		Now:       fixedClock,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	doc := result.Document
	if doc.AssemblyName != "Farm" || doc.AssemblyVersion != "2.1.0.0" {
		t.Errorf("assembly = %s %s, want Farm 2.1.0.0", doc.AssemblyName, doc.AssemblyVersion)
	}

	var names []string
	for _, td := range doc.Types {
		names = append(names, td.Name)
	}
	if got := strings.Join(names, ","); got != "Animal,Food,Goat,IFeeder" {
		t.Errorf("types = %s, want Animal,Food,Goat,IFeeder", got)
	}

	goat, ok := doc.Lookup("Farm.Goat")
	if !ok {
		t.Fatal("Farm.Goat missing")
	}
	if len(goat.Properties) != 0 {
		t.Errorf("inherited properties should be skipped, got %+v", goat.Properties)
	}
	if len(goat.Methods) != 2 || goat.Methods[1].Parameters[1].TypeName != "Dictionary<String, Int32>" {
		t.Errorf("Goat methods = %+v", goat.Methods)
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), `"Farm.Goat" -> "Farm.Animal"`) {
		t.Errorf("dot artifact missing inheritance edge:\n%s", result.Artifacts[FormatDOT])
	}
}
