// Package config resolves go-cms settings from defaults, an optional config
// file, GOCMS_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. GOCMS_DATA_FILE.
const EnvPrefix = "GOCMS"

// Keys shared by flags, environment variables and config files
const (
	KeyConfig            = "config"
	KeyPort              = "port"
	KeyDataFile          = "data-file"
	KeySnapshotDir       = "snapshot-dir"
	KeySnapshotInterval  = "snapshot-interval"
	KeySnapshotRetention = "snapshot-retention"
	KeyAtomicWrites      = "atomic-writes"
	KeyRestore           = "restore"
	KeyShutdownTimeout   = "shutdown-timeout"
	KeyMetrics           = "metrics"
)

// Config holds application configuration
type Config struct {
	Port              string
	DataFile          string
	SnapshotDir       string
	SnapshotInterval  time.Duration
	SnapshotRetention int
	AtomicWrites      bool
	Restore           string
	ShutdownTimeout   time.Duration
	Metrics           bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDataFile, "data/db.json")
	v.SetDefault(KeySnapshotDir, "")
	v.SetDefault(KeySnapshotInterval, time.Duration(0))
	v.SetDefault(KeySnapshotRetention, 10)
	v.SetDefault(KeyAtomicWrites, true)
	v.SetDefault(KeyRestore, "")
	v.SetDefault(KeyShutdownTimeout, 30*time.Second)
	v.SetDefault(KeyMetrics, true)
}

// NewFlagSet declares the command line flags of the go-cms binary.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(KeyConfig, "", "Config file (YAML, JSON or TOML)")
	fs.String(KeyPort, "8080", "Server port")
	fs.String(KeyDataFile, "data/db.json", "JSON file holding all content")
	fs.String(KeySnapshotDir, "", "Directory for compressed snapshots. Empty disables snapshots.")
	fs.Duration(KeySnapshotInterval, 0, "Background snapshot interval (e.g., 5m, 30s). Set to 0 to disable.")
	fs.Int(KeySnapshotRetention, 10, "Number of snapshots to keep. 0 keeps all.")
	fs.Bool(KeyAtomicWrites, true, "Write the data file through a temp file and rename")
	fs.String(KeyRestore, "", "Restore the data file from this snapshot before starting")
	fs.Duration(KeyShutdownTimeout, 30*time.Second, "Deadline for outstanding requests on shutdown")
	fs.Bool(KeyMetrics, true, "Serve Prometheus metrics at /metrics")
	fs.BoolP("help", "h", false, "Show help message")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", name)
		fmt.Fprintf(os.Stderr, "\ngo-cms serves website content stored in a single JSON file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEvery option can also be set as %s_<OPTION> (e.g. %s_DATA_FILE) or in the config file.\n", EnvPrefix, EnvPrefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          # Start with defaults\n", name)
		fmt.Fprintf(os.Stderr, "  %s --port 9090 --data-file /srv/cms.json    # Custom port and data file\n", name)
		fmt.Fprintf(os.Stderr, "  %s --snapshot-dir backups --snapshot-interval 10m\n", name)
		fmt.Fprintf(os.Stderr, "  %s --snapshot-dir backups --restore backups/snapshot_1700000000000000000.gcms\n", name)
	}
	return fs
}

// Load parses args (without the program name) and resolves the final
// configuration. It returns pflag.ErrHelp when -h or --help is given.
func Load(name string, args []string) (*Config, error) {
	fs := NewFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if help, _ := fs.GetBool("help"); help {
		fs.Usage()
		return nil, pflag.ErrHelp
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:              v.GetString(KeyPort),
		DataFile:          v.GetString(KeyDataFile),
		SnapshotDir:       v.GetString(KeySnapshotDir),
		SnapshotInterval:  v.GetDuration(KeySnapshotInterval),
		SnapshotRetention: v.GetInt(KeySnapshotRetention),
		AtomicWrites:      v.GetBool(KeyAtomicWrites),
		Restore:           v.GetString(KeyRestore),
		ShutdownTimeout:   v.GetDuration(KeyShutdownTimeout),
		Metrics:           v.GetBool(KeyMetrics),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Port == "":
		return fmt.Errorf("%s must not be empty", KeyPort)
	case c.DataFile == "":
		return fmt.Errorf("%s must not be empty", KeyDataFile)
	case c.SnapshotInterval < 0:
		return fmt.Errorf("%s must not be negative", KeySnapshotInterval)
	case c.SnapshotRetention < 0:
		return fmt.Errorf("%s must not be negative", KeySnapshotRetention)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%s must be positive", KeyShutdownTimeout)
	case c.SnapshotInterval > 0 && c.SnapshotDir == "":
		return fmt.Errorf("%s requires %s", KeySnapshotInterval, KeySnapshotDir)
	}
	return nil
}
