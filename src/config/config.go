package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ak033/462lab5/src/common"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the
	// Badger database
	DefaultBadgerFile = "badger_db"
)

// Default configuration values.
const (
	DefaultLogLevel          = "debug"
	DefaultServiceAddr       = "127.0.0.1:8000"
	DefaultBroadcastInterval = 1 * time.Second
	DefaultSPFInterval       = 10 * time.Second
	DefaultTTLLimit          = 10
	DefaultStore             = false
)

// Config contains all the configuration properties of an lsrd node.
type Config struct {
	// DataDir is the top-level directory containing lsrd configuration and
	// data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// RouterID is the integer identity of this router, an index in
	// [0, totalNodes). It doubles as the index of the local row in every
	// advertisement.
	RouterID int `mapstructure:"id"`

	// BindAddr is the local address:port where this router listens for
	// link-state advertisements from its neighbors.
	BindAddr string `mapstructure:"listen"`

	// TopologyFile is the path of the static neighbor configuration file.
	TopologyFile string `mapstructure:"topology"`

	// Moniker defines the friendly name of this router.
	Moniker string `mapstructure:"moniker"`

	// NoService disables the HTTP API service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the optional HTTP service.
	ServiceAddr string `mapstructure:"service-listen"`

	// BroadcastInterval is the period of unconditional re-origination of
	// the local advertisement. Together with the unchanged-row suppression
	// on receipt, it is what makes the protocol soft-state: lost datagrams
	// are compensated by the next cycle, not by retries.
	BroadcastInterval time.Duration `mapstructure:"broadcast-interval"`

	// SPFInterval is the period of the shortest-path computation.
	SPFInterval time.Duration `mapstructure:"spf-interval"`

	// TTLLimit is the initial hop budget of originated advertisements.
	TTLLimit int `mapstructure:"ttl"`

	// Store activates persistent storage of received advertisements.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// Bootstrap determines whether to preload the topology store from an
	// existing database file. Forces Store.
	Bootstrap bool `mapstructure:"bootstrap"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:           DefaultDataDir(),
		LogLevel:          DefaultLogLevel,
		ServiceAddr:       DefaultServiceAddr,
		BroadcastInterval: DefaultBroadcastInterval,
		SPFInterval:       DefaultSPFInterval,
		TTLLimit:          DefaultTTLLimit,
		Store:             DefaultStore,
		DatabaseDir:       DefaultDatabaseDir(),
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests. Test timers are much shorter than production
// defaults.
func NewTestConfig(t testing.TB) *Config {
	config := NewDefaultConfig()
	config.BroadcastInterval = 20 * time.Millisecond
	config.SPFInterval = 50 * time.Millisecond
	config.logger = common.NewTestLogger(t)
	return config
}

// SetDataDir sets the top-level lsrd directory, and updates the database
// directory if it is currently set to the default value. If the database
// directory is not currently the default, it means the user has explicitly
// set it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Logger returns a formatted logrus Entry, with prefix set to "lsrd".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "lsrd")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir returns the default directory name for top-level lsrd
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Lsrd")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Lsrd")
		} else {
			return filepath.Join(home, ".lsrd")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a logrus level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
