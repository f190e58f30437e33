// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var logger = zap.Must(zap.NewDevelopment())

// Logger returns the process logger.
func Logger() *zap.Logger {
	return logger
}

// CloseLogger silences everything below fatal.
func CloseLogger() {
	logger = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(io.Discard),
		zap.FatalLevel))
}

// Options describes where and how much to log.
type Options struct {
	Level      string
	Format     string
	Path       string
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

func AddFlags(flagSet *pflag.FlagSet) {
	flagSet.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	flagSet.String("log-format", FormatJSON, "log encoding (console, json)")
	flagSet.String("log-path", "", "also write logs to this file")
	flagSet.Int("log-max-size", 100, "maximum size in megabytes of the log file")
	flagSet.Int("log-max-age", 0, "maximum number of days to retain old log files")
	flagSet.Int("log-max-backups", 0, "maximum number of old log files to retain")
}

// OptionsFromFlags reads the flags registered by AddFlags. Debug mode forces
// debug level on a console encoder.
func OptionsFromFlags(flagSet *pflag.FlagSet, debug bool) Options {
	var opts Options
	opts.Level, _ = flagSet.GetString("log-level")
	opts.Format, _ = flagSet.GetString("log-format")
	opts.Path, _ = flagSet.GetString("log-path")
	opts.MaxSize, _ = flagSet.GetInt("log-max-size")
	opts.MaxAge, _ = flagSet.GetInt("log-max-age")
	opts.MaxBackups, _ = flagSet.GetInt("log-max-backups")
	if debug {
		opts.Level, opts.Format = "debug", FormatConsole
	}
	return opts
}

// New builds a logger writing to out and, when Path is set, to a rotated file.
func New(opts Options, out io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(opts.Level); err != nil {
			return nil, errors.NewNotValid(err, "log level")
		}
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.999999")
	var encoder zapcore.Encoder
	switch opts.Format {
	case FormatConsole:
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	case FormatJSON, "":
		encoder = zapcore.NewJSONEncoder(cfg)
	default:
		return nil, errors.NotValidf("log format %q", opts.Format)
	}
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(out)}
	if opts.Path != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSize,
			MaxAge:     opts.MaxAge,
			MaxBackups: opts.MaxBackups,
		}))
	}
	return zap.New(zapcore.NewCore(encoder, zap.CombineWriteSyncers(sinks...), level)), nil
}

// SetLogger replaces the process logger. Logs go to stderr so tables printed
// on stdout stay clean.
func SetLogger(flagSet *pflag.FlagSet, debug bool) error {
	l, err := New(OptionsFromFlags(flagSet, debug), os.Stderr)
	if err != nil {
		return errors.Trace(err)
	}
	logger = l
	return nil
}
