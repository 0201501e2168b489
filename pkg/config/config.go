// Package config collects the input paths and switches for a pdfsize run
// from a YAML file and the command line
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v2"
)

// Config holds the settings of one run
type Config struct {
	Paths      []string `yaml:"paths"`
	Standalone bool     `yaml:"standalone"`
	Verbose    bool     `yaml:"verbose"`
	JSON       bool     `yaml:"json"`
}

// Load reads a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return &c, nil
}

// FromArgs builds the config from command line arguments (without the
// program name). Flags given on the command line override the config file;
// positional paths are appended after the file's paths.
func FromArgs(name string, args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		out := fs.Output()
		_, _ = io.WriteString(out, "Usage: "+name+" [flags] file.pdf...\n\n")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "YAML file with `paths` and defaults for the flags below")
	standalone := fs.Bool("standalone", false, "also rebuild each page as a 1-page PDF in memory and report that size (slow, overcounts)")
	verbose := fs.Bool("v", false, "log why stream lengths fell back to decoding or zero")
	asJSON := fs.Bool("json", false, "write the reports as JSON instead of tables")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := &Config{}
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["standalone"] {
		c.Standalone = *standalone
	}
	if set["v"] {
		c.Verbose = *verbose
	}
	if set["json"] {
		c.JSON = *asJSON
	}

	c.Paths = Dedupe(append(c.Paths, fs.Args()...))
	if len(c.Paths) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	return c, nil
}

// Dedupe drops repeated paths, keeping the first occurrence of each.
// Paths are compared after NFC normalization and filepath.Clean.
func Dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(norm.NFC.String(p))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
