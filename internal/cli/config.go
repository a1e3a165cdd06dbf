package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classdiagram/pkg/errors"
)

// configFileName is the name of the config file inside configDir.
const configFileName = "config.toml"

// Config holds persistent defaults for the generate, list and browse
// commands. Every field is optional; flags given on the command line win.
//
//	namespace = "AnimalLibrary"
//	universe  = ["metadata/**/*.toml"]
//	formats   = ["xml", "svg"]
//	output    = "out/AnimalClassDiagram"
//	echo      = false
type Config struct {
	Namespace string   `toml:"namespace"`
	Assembly  string   `toml:"assembly"`
	Version   string   `toml:"version"`
	Universe  []string `toml:"universe"`
	Formats   []string `toml:"formats"`
	Output    string   `toml:"output"`
	Detailed  *bool    `toml:"detailed"`
	Echo      *bool    `toml:"echo"`
	NoCache   *bool    `toml:"no_cache"`
}

// loadConfig reads the config file. An explicit path must exist; the
// default path is optional and an empty Config is returned when it is
// missing. Unknown keys are rejected so typos do not go unnoticed.
func loadConfig(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return &Config{}, "", nil
		}
		path = filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err != nil {
			return &Config{}, "", nil
		}
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, path, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, path, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, path, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, path, nil
}

// diagramFlags are the flags shared by the commands that build a document.
type diagramFlags struct {
	universe  []string
	namespace string
	assembly  string
	version   string
	noCache   bool
}

func (f *diagramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.universe, "universe", "u", nil, "universe file glob(s) (default: built-in animal library)")
	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "namespace to describe (default: AnimalLibrary)")
	cmd.Flags().StringVar(&f.assembly, "assembly", "", "assembly name reported in the document (default: from universe)")
	cmd.Flags().StringVar(&f.version, "assembly-version", "", "assembly version reported in the document (default: from universe or 1.0.0.0)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// merge fills every flag that was not given explicitly from cfg.
func (f *diagramFlags) merge(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if !flags.Changed("universe") && len(cfg.Universe) > 0 {
		f.universe = cfg.Universe
	}
	if !flags.Changed("namespace") && cfg.Namespace != "" {
		f.namespace = cfg.Namespace
	}
	if !flags.Changed("assembly") && cfg.Assembly != "" {
		f.assembly = cfg.Assembly
	}
	if !flags.Changed("assembly-version") && cfg.Version != "" {
		f.version = cfg.Version
	}
	if !flags.Changed("no-cache") && cfg.NoCache != nil {
		f.noCache = *cfg.NoCache
	}
}

// resolveConfig loads the config selected by --config and reports which
// file was used.
func (c *CLI) resolveConfig(cmd *cobra.Command) (*Config, error) {
	cfg, path, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		loggerFromContext(cmd.Context()).Debug("loaded config", "path", path)
	}
	return cfg, nil
}
