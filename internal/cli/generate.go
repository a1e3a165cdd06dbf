package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classdiagram/pkg/errors"
	"github.com/matzehuels/classdiagram/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	diagramFlags
	formats  string // comma-separated output formats
	output   string // base path; the format is appended as extension
	detailed bool   // member compartments in DOT/SVG
	refresh  bool   // ignore cached SVG artifacts
	echo     bool   // print the XML document to stdout
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		output: pipeline.DefaultOutput,
		echo:   true,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the class diagram of a namespace",
		Long: `Generate the class diagram of a namespace.

Types are read from the built-in animal library unless --universe names
universe files (TOML, YAML or JSON, glob patterns allowed). Each requested
format is written to <output>.<format>; the XML document is echoed to stdout
as well unless --echo=false is given.

SVG rendering results are cached locally for faster subsequent runs.`,
		Example: `  classdiagram generate
  classdiagram generate -f xml,svg --detailed -o out/animals
  classdiagram generate -u 'metadata/**/*.toml' -n Farm.Animals`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts.merge(cmd, cfg)
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): xml (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output base path")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show members in DOT and SVG output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached artifacts")
	cmd.Flags().BoolVar(&opts.echo, "echo", opts.echo, "print the XML document to stdout")

	return cmd
}

// merge applies the config on top of the shared and generate-specific flags.
func (o *generateOpts) merge(cmd *cobra.Command, cfg *Config) {
	o.diagramFlags.merge(cmd, cfg)
	flags := cmd.Flags()
	if !flags.Changed("format") && len(cfg.Formats) > 0 {
		o.formats = strings.Join(cfg.Formats, ",")
	}
	if !flags.Changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !flags.Changed("detailed") && cfg.Detailed != nil {
		o.detailed = *cfg.Detailed
	}
	if !flags.Changed("echo") && cfg.Echo != nil {
		o.echo = *cfg.Echo
	}
}

// pipelineOptions converts the flags to pipeline options.
func (o *generateOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Universe:        o.universe,
		Namespace:       o.namespace,
		AssemblyName:    o.assembly,
		AssemblyVersion: o.version,
		Formats:         parseFormats(o.formats),
		Detailed:        o.detailed,
		Refresh:         o.refresh,
	}
}

// runGenerate executes the pipeline and writes one file per format.
func (c *CLI) runGenerate(ctx context.Context, stdout io.Writer, opts generateOpts) error {
	popts := opts.pipelineOptions()
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	popts.Logger = c.Logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Describing %s...", popts.Namespace))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Described %s", pluralize(result.Stats.TypeCount, "type")))

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Class diagram of %s", StyleHighlight.Render(popts.Namespace))
	printStats(result.Document, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}

	if xml, ok := result.Artifacts[pipeline.FormatXML]; ok && opts.echo {
		printNewline()
		if _, err := stdout.Write(xml); err != nil {
			return fmt.Errorf("echo document: %w", err)
		}
	}
	return nil
}

// writeArtifacts writes each artifact to base + "." + format in the order
// of formats and returns the written paths. Missing parent directories are
// created.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	var paths []string
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok || seen[format] {
			continue
		}
		seen[format] = true

		path := base + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
