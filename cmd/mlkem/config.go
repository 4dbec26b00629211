package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/KarpelesLab/mlkem/seal"
)

const (
	defaultLogLevel = "NOTICE"
	defaultSuite    = "aes-256-gcm"
)

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// Seal holds the defaults for the seal command.
type Seal struct {
	// Suite is the payload AEAD, "aes-256-gcm" or "chacha20-poly1305".
	Suite string
}

func (sCfg *Seal) validate() error {
	if sCfg.Suite == "" {
		sCfg.Suite = defaultSuite
	}
	if _, err := seal.ParseSuite(sCfg.Suite); err != nil {
		return fmt.Errorf("config: Seal: %w", err)
	}
	return nil
}

// Config is the top level command line tool configuration.
type Config struct {
	Logging *Logging
	Seal    *Seal
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration.
func (cfg *Config) FixupAndValidate() error {
	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}
	if cfg.Seal == nil {
		cfg.Seal = &Seal{}
	}
	if err := cfg.Logging.validate(); err != nil {
		return err
	}
	return cfg.Seal.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses, and validates the provided file and returns the
// Config. An empty path yields the defaults.
func LoadFile(f string) (*Config, error) {
	if f == "" {
		return Load(nil)
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
