// Package config loads the amplifier controller settings from defaults, an
// optional YAML file, AKAI_AMP_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SimonFlower/AkaiAmp/internal/lock"
	"github.com/SimonFlower/AkaiAmp/internal/relay"
	"github.com/SimonFlower/AkaiAmp/internal/serial"
)

// ErrInvalid is returned when a loaded setting is out of range.
var ErrInvalid = errors.New("invalid configuration")

// AutoPort selects the first serial port found on the system.
const AutoPort = "auto"

// EnvPrefix is prepended to every environment override, e.g. AKAI_AMP_SERIAL_PORT.
const EnvPrefix = "AKAI_AMP"

// SerialConfig describes the line to the relay board.
type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	Baud        int           `mapstructure:"baud"`
	Parity      string        `mapstructure:"parity"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// LockConfig controls the host-wide lock.
type LockConfig struct {
	File string `mapstructure:"file"`
	Wait bool   `mapstructure:"wait"`
}

// TimingConfig holds the relay sequencing delays.
type TimingConfig struct {
	IntraCommandDelay time.Duration `mapstructure:"intra_command_delay"`
	VolumeTurnUnit    time.Duration `mapstructure:"volume_turn_unit"`
	ResetSeekUnits    int           `mapstructure:"reset_seek_units"`
}

// LogConfig selects the log level, encoding and optional rolling file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Config is the complete set of settings.
type Config struct {
	Serial SerialConfig `mapstructure:"serial"`
	Lock   LockConfig   `mapstructure:"lock"`
	Timing TimingConfig `mapstructure:"timing"`
	Log    LogConfig    `mapstructure:"log"`
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"serial_port":   "serial.port",
	"wait_for_lock": "lock.wait",
	"log_level":     "log.level",
}

// Load reads the configuration. An explicit path must exist; without one the
// per-user file is used when present. Flags in flags that were set on the
// command line take precedence over everything else; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := defaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	var err error
	if cfg.Lock.File == "" {
		cfg.Lock.File, err = lock.DefaultPath()
	} else {
		cfg.Lock.File, err = expandHome(cfg.Lock.File)
	}
	if err != nil {
		return Config{}, err
	}
	if cfg.Log.File, err = expandHome(cfg.Log.File); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in settings without consulting any file,
// environment variable or flag.
func Default() Config {
	cfg := Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyUSB0",
			Baud:        9600,
			Parity:      "none",
			ReadTimeout: 500 * time.Millisecond,
		},
		Lock: LockConfig{
			File: filepath.Join("~", lock.DefaultFileName),
		},
		Timing: TimingConfig{
			IntraCommandDelay: 100 * time.Millisecond,
			VolumeTurnUnit:    time.Second,
			ResetSeekUnits:    10,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
	cfg.Lock.File, _ = expandHome(cfg.Lock.File)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baud", 9600)
	v.SetDefault("serial.parity", "none")
	v.SetDefault("serial.read_timeout", "500ms")

	v.SetDefault("lock.file", "~/"+lock.DefaultFileName)
	v.SetDefault("lock.wait", false)

	v.SetDefault("timing.intra_command_delay", "100ms")
	v.SetDefault("timing.volume_turn_unit", "1s")
	v.SetDefault("timing.reset_seek_units", 10)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// defaultDir is $XDG_CONFIG_HOME/akai-amp, falling back to ~/.config/akai-amp.
func defaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "akai-amp"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "akai-amp"), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Validate checks every setting that would otherwise fail later, mid-run.
func (c Config) Validate() error {
	opts, err := c.SerialOptions()
	if err != nil {
		return err
	}
	probe := serial.DefaultConfig()
	for _, opt := range opts {
		if err := opt(&probe); err != nil {
			return fmt.Errorf("%w: serial: %w", ErrInvalid, err)
		}
	}

	if c.Timing.IntraCommandDelay < 0 {
		return fmt.Errorf("%w: timing.intra_command_delay must not be negative", ErrInvalid)
	}
	if c.Timing.VolumeTurnUnit < 0 {
		return fmt.Errorf("%w: timing.volume_turn_unit must not be negative", ErrInvalid)
	}
	if c.Timing.ResetSeekUnits < 0 {
		return fmt.Errorf("%w: timing.reset_seek_units must not be negative", ErrInvalid)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SerialOptions translates the serial section into port options.
func (c Config) SerialOptions() ([]serial.Option, error) {
	if c.Serial.Baud <= 0 {
		return nil, fmt.Errorf("%w: serial.baud must be positive, got %d", ErrInvalid, c.Serial.Baud)
	}
	parity, err := serial.ParseParity(c.Serial.Parity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []serial.Option{
		serial.WithBaudRate(c.Serial.Baud),
		serial.WithParity(parity),
		serial.WithReadTimeout(c.Serial.ReadTimeout),
	}, nil
}

// AutoDetect reports whether the port should be discovered rather than opened by name.
func (s SerialConfig) AutoDetect() bool {
	p := strings.TrimSpace(s.Port)
	return p == "" || strings.EqualFold(p, AutoPort)
}

// Relay converts the timing section for the relay driver.
func (t TimingConfig) Relay() relay.Timing {
	return relay.Timing{
		IntraCommandDelay: t.IntraCommandDelay,
		VolumeTurnUnit:    t.VolumeTurnUnit,
		ResetSeekUnits:    t.ResetSeekUnits,
	}
}
