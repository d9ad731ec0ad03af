// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config defines the emulator configuration.
type Config struct {
	// Serial/RTU settings
	Device   string `mapstructure:"device"`
	BaudRate int    `mapstructure:"baud_rate"`
	DataBits int    `mapstructure:"data_bits"`
	Parity   string `mapstructure:"parity"` // N, E, O
	StopBits int    `mapstructure:"stop_bits"`

	// RS485 direction control (DE/RE via RTS on most adapters)
	RS485              bool          `mapstructure:"rs485"`
	DelayRtsBeforeSend time.Duration `mapstructure:"delay_rts_before_send"`
	DelayRtsAfterSend  time.Duration `mapstructure:"delay_rts_after_send"`
	RtsHighDuringSend  bool          `mapstructure:"rts_high_during_send"`
	RtsHighAfterSend   bool          `mapstructure:"rts_high_after_send"`
	RxDuringTx         bool          `mapstructure:"rx_during_tx"`

	// Emulated device
	SlaveID    int           `mapstructure:"slave_id"`
	FrameGap   time.Duration `mapstructure:"frame_gap"` // RTU idle-gap delimiter
	DefaultSOC int           `mapstructure:"default_soc"`
	SOCSource  string        `mapstructure:"soc_source"` // "file" or "mmap"
	SOCPath    string        `mapstructure:"soc_path"`

	// Reporting / logging
	ReportInterval time.Duration `mapstructure:"report_interval"`
	LogLevel       string        `mapstructure:"log_level"` // debug, info, warn, error
	LogFile        string        `mapstructure:"log_file"`  // empty or "-" for stdout
}

// LoadConfig loads configuration from command line flags and an
// optional YAML config file. Flags win over the file, the file wins
// over defaults.
func LoadConfig(args []string) (*Config, error) {
	v := viper.New()

	// 1. Defaults
	v.SetDefault("device", "/dev/ttySC0")
	v.SetDefault("baud_rate", 9600)
	v.SetDefault("data_bits", 8)
	v.SetDefault("parity", "N")
	v.SetDefault("stop_bits", 1)
	v.SetDefault("slave_id", 0x01)
	v.SetDefault("frame_gap", 3*time.Millisecond)
	v.SetDefault("default_soc", 53)
	v.SetDefault("soc_source", "file")
	v.SetDefault("soc_path", "soc.txt")
	v.SetDefault("report_interval", 5*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// 2. Command line flags
	fs := pflag.NewFlagSet("bms-emulator", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "Configuration file path.")
	fs.StringP("device", "p", v.GetString("device"), "Serial port device name.")
	fs.IntP("baud_rate", "s", v.GetInt("baud_rate"), "Serial port speed.")
	fs.String("parity", v.GetString("parity"), "Serial parity (N, E, O).")
	fs.Int("stop_bits", v.GetInt("stop_bits"), "Serial stop bits (1 or 2).")
	fs.Bool("rs485", false, "Enable RS485 RTS direction control.")
	fs.Int("slave_id", v.GetInt("slave_id"), "Modbus slave id to answer for.")
	fs.Duration("frame_gap", v.GetDuration("frame_gap"), "RTU idle-gap frame delimiter.")
	fs.Int("default_soc", v.GetInt("default_soc"), "SOC percent used when the source is unreadable.")
	fs.String("soc_source", v.GetString("soc_source"), "SOC source type (file, mmap).")
	fs.String("soc_path", v.GetString("soc_path"), "Path to the SOC percent file.")
	fs.Duration("report_interval", v.GetDuration("report_interval"), "Throughput report interval.")
	fs.StringP("log_level", "v", v.GetString("log_level"), "Log verbosity level (debug, info, warn, error).")
	fs.StringP("log_file", "L", v.GetString("log_file"), "Log file name ('-' for logging to STDOUT only).")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 3. Bind flags into viper
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind pflags: %w", err)
	}

	// 4. Read the config file
	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/bmsemu/")
		v.AddConfigPath("$HOME/.bmsemu")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A file found nowhere on the search path is fine; the
		// configuration can come entirely from flags and defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Unmarshal
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Parity = strings.ToUpper(config.Parity)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("invalid parity %q (want N, E or O)", c.Parity)
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return fmt.Errorf("invalid stop_bits %d (want 1 or 2)", c.StopBits)
	}
	if c.SlaveID < 0 || c.SlaveID > 255 {
		return fmt.Errorf("slave_id %d out of range", c.SlaveID)
	}
	if c.FrameGap <= 0 {
		return fmt.Errorf("frame_gap must be positive")
	}
	switch c.SOCSource {
	case "file", "mmap":
	default:
		return fmt.Errorf("unknown soc_source %q (want file or mmap)", c.SOCSource)
	}
	return nil
}
