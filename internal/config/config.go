package config

import (
	"flag"
	"os"

	"codeberg.org/mutker/sysmond/internal/errors"
	"github.com/spf13/viper"
)

const (
	DefaultInterval = 5
	MinInterval     = 1
	MaxInterval     = 3600

	DefaultLogFile    = "/var/log/sysmond.log"
	DefaultConfigFile = "/etc/sysmond.conf"

	// Environment variable that overrides the config file location.
	configPathEnv = "SYSMOND_CONFIG"
)

type Config struct {
	Interval  int
	UseSyslog bool
	LogFile   string
}

// Load reads configuration from the config file with command line flags
// taking precedence. The config file is plain KEY=VALUE lines with
// #-prefixed comments; recognized keys are LOG_INTERVAL and USE_SYSLOG,
// anything else is ignored. A missing file is not an error.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	errFactory := errors.New()

	config := &Config{
		Interval:  DefaultInterval,
		UseSyslog: true,
		LogFile:   DefaultLogFile,
	}

	fs := flag.NewFlagSet("sysmond", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to the configuration file")
	fs.StringVar(&config.LogFile, "log-file", config.LogFile, "Path to the log file")
	fs.IntVar(&config.Interval, "interval", config.Interval, "Seconds between sampling ticks")
	fs.BoolVar(&config.UseSyslog, "syslog", config.UseSyslog, "Mirror log lines to syslog")
	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	v := viper.New()
	v.SetDefault("log_interval", DefaultInterval)
	v.SetDefault("use_syslog", true)

	path := *configPath
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		path = DefaultConfigFile
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Explicit flags override file values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			v.Set("log_interval", f.Value.String())
		case "syslog":
			v.Set("use_syslog", f.Value.String())
		}
	})

	config.Interval = v.GetInt("log_interval")
	config.UseSyslog = v.GetBool("use_syslog")

	// Out-of-range intervals fall back to the default rather than
	// clamping, matching the daemon's historical behavior.
	if config.Interval < MinInterval || config.Interval > MaxInterval {
		config.Interval = DefaultInterval
	}

	return config, nil
}
