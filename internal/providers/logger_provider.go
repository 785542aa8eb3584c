package providers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"untisd/internal/structures"
)

type TypeEnum string

const (
	TypeApp  TypeEnum = "app"
	TypePoll TypeEnum = "poll"
	TypeGet  TypeEnum = "get"
)

// GetLogTypeByRequestType maps an HTTP method to its log channel. The
// API is read-only, so everything funnels into the GET channel.
func GetLogTypeByRequestType(method string) TypeEnum {
	return TypeGet
}

type Logger interface {
	Errorf(logType TypeEnum, format string, args ...interface{})
	Warnf(logType TypeEnum, format string, args ...interface{})
	Infof(logType TypeEnum, format string, args ...interface{})
	Debugf(logType TypeEnum, format string, args ...interface{})
	Fatalf(logType TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	log  zerolog.Logger
	file *os.File
}

// NewLogProvider builds a zerolog logger writing both to stderr and a
// log file under the configured directory. The directory must exist.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(conf.Logger.Dir, "untisd.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	multi := zerolog.MultiLevelWriter(console, file)

	logger := zerolog.New(multi).Level(level).With().Timestamp().Logger()

	return &LogProvider{log: logger, file: file}, nil
}

func (lp *LogProvider) Errorf(logType TypeEnum, format string, args ...interface{}) {
	lp.log.Error().Str("type", string(logType)).Msgf(format, args...)
}

func (lp *LogProvider) Warnf(logType TypeEnum, format string, args ...interface{}) {
	lp.log.Warn().Str("type", string(logType)).Msgf(format, args...)
}

func (lp *LogProvider) Infof(logType TypeEnum, format string, args ...interface{}) {
	lp.log.Info().Str("type", string(logType)).Msgf(format, args...)
}

func (lp *LogProvider) Debugf(logType TypeEnum, format string, args ...interface{}) {
	lp.log.Debug().Str("type", string(logType)).Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(logType TypeEnum, format string, args ...interface{}) {
	lp.log.Fatal().Str("type", string(logType)).Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	if lp.file != nil {
		_ = lp.file.Close()
	}
}
