// Package config loads the setup configuration shared by the server and the
// CLI. Values come from defaults, then the config file, then flags and the
// environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/pkg/pdf"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "setup-config.json"

// PortEnv overrides the port of Server.Addr.
const PortEnv = "FORMDOC_PORT"

// Config is the setup configuration.
type Config struct {
	Server          Server      `json:"server" yaml:"server"`
	FormsDir        string      `json:"forms_dir" yaml:"forms_dir"`
	Languages       []string    `json:"languages" yaml:"languages"`
	DefaultLanguage string      `json:"default_language" yaml:"default_language"`
	PDFLanguage     string      `json:"pdf_language" yaml:"pdf_language"`
	PDFOptions      pdf.Options `json:"pdf_options" yaml:"pdf_options"`
	Uploads         Uploads     `json:"uploads" yaml:"uploads"`
	Log             Log         `json:"log" yaml:"log"`
	Theme           Theme       `json:"theme" yaml:"theme"`
	Watch           bool        `json:"watch" yaml:"watch"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr          string   `json:"addr" yaml:"addr"`
	ShutdownGrace Duration `json:"shutdown_grace" yaml:"shutdown_grace"`
}

// Uploads configures the transient file store.
type Uploads struct {
	Dir      string   `json:"dir" yaml:"dir"`
	MaxBytes int64    `json:"max_bytes" yaml:"max_bytes"`
	TTL      Duration `json:"ttl" yaml:"ttl"`
}

// Log configures logrus.
type Log struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// Theme points at an optional go-theme manifest.
type Theme struct {
	Manifest string `json:"manifest" yaml:"manifest"`
	Variant  string `json:"variant" yaml:"variant"`
}

// Duration accepts "90s" style strings or a number of seconds.
type Duration time.Duration

// Std returns the value as time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: duration must be a scalar", node.Line)
	}
	parsed, err := parseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Set implements flag.Value.
func (d *Duration) Set(raw string) error {
	parsed, err := parseDuration(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func parseDuration(raw string) (Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return Duration(seconds * float64(time.Second)), nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration %q", raw)
	}
	return Duration(parsed), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":8501",
			ShutdownGrace: Duration(10 * time.Second),
		},
		Languages:       []string{"de", "ar", "en"},
		DefaultLanguage: "de",
		PDFLanguage:     "de",
		Uploads: Uploads{
			MaxBytes: 10 << 20,
			TTL:      Duration(30 * time.Minute),
		},
		Log: Log{Level: "info"},
	}
}

// Parse decodes data over cfg. JSON documents are read through the YAML
// decoder.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	return nil
}

// LoadFile reads path over the defaults. A missing file is not an error when
// optional is set.
func LoadFile(path string, optional bool) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && optional {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides through lookup (os.LookupEnv in
// production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	port, ok := lookup(PortEnv)
	if !ok || strings.TrimSpace(port) == "" {
		return nil
	}
	port = strings.TrimSpace(port)
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("config: %s: invalid port %q", PortEnv, port)
	}
	host, _, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		host = ""
	}
	c.Server.Addr = net.JoinHostPort(host, port)
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Uploads.MaxBytes < 0 {
		return errors.New("config: uploads.max_bytes must not be negative")
	}
	if len(c.Languages) == 0 {
		return errors.New("config: at least one language is required")
	}
	return nil
}

// Flags holds the command line overrides registered by Bind.
type Flags struct {
	File     string
	addr     string
	formsDir string
	logLevel string
	logFile  string
	theme    string
	watch    bool
	grace    Duration
	set      map[string]bool
}

// Bind registers the shared flags on fs.
func Bind(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.File, "config", DefaultFile, "setup config file (JSON or YAML)")
	fs.StringVar(&f.addr, "addr", "", "listen address, overrides server.addr")
	fs.StringVar(&f.formsDir, "forms", "", "forms directory, empty uses the bundled forms")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "additional log file")
	fs.StringVar(&f.theme, "theme", "", "go-theme manifest (JSON or YAML)")
	fs.BoolVar(&f.watch, "watch", false, "reload forms when files change")
	fs.Var(&f.grace, "shutdown-grace", "graceful shutdown timeout")
	return f
}

// Load reads the config file named by the flags, applies the flags that were
// set explicitly on fs and then the environment. The default file is
// optional; a file named with -config is not.
func (f *Flags) Load(fs *flag.FlagSet, lookup func(string) (string, bool)) (Config, error) {
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	cfg, err := LoadFile(f.File, !f.set["config"])
	if err != nil {
		return cfg, err
	}
	if f.set["addr"] {
		cfg.Server.Addr = f.addr
	}
	if f.set["forms"] {
		cfg.FormsDir = f.formsDir
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.set["log-file"] {
		cfg.Log.File = f.logFile
	}
	if f.set["theme"] {
		cfg.Theme.Manifest = f.theme
	}
	if f.set["watch"] {
		cfg.Watch = f.watch
	}
	if f.set["shutdown-grace"] {
		cfg.Server.ShutdownGrace = f.grace
	}
	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}
