package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

var (
	logger    *slog.Logger
	errLogger *slog.Logger
)

func init() {
	Setup(slog.LevelInfo)
}

// Setup rebuilds the package loggers at the given level
func Setup(level slog.Level) {
	logger = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
	errLogger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(logger)
}

// SetOutput sends both loggers to w without colours, for capturing logs
func SetOutput(w io.Writer, level slog.Level) {
	opts := &tint.Options{Level: level, TimeFormat: time.DateTime, NoColor: true}
	logger = slog.New(tint.NewHandler(w, opts))
	errLogger = slog.New(tint.NewHandler(w, opts))
}

// Logger returns the structured logger, optionally tagged with a component name
func Logger(name ...string) *slog.Logger {
	if len(name) > 0 {
		return logger.With("logger", name[0])
	}
	return logger
}

//Log Log all the given data
func Log(data ...string) {
	logger.Info(strings.Join(data, " "))
}

//Err Log given data to stderr
func Err(data ...string) {
	errLogger.Error(strings.Join(data, " "))
}

// ParseLevel maps a config string onto a slog level, defaulting to info
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

var discordgoLevels = map[int]slog.Level{
	discordgo.LogDebug:         slog.LevelDebug,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogError:         slog.LevelError,
}

// DiscordgoLogger routes discordgo's internal logging into slog
func DiscordgoLogger() func(msgL, caller int, format string, a ...interface{}) {
	log := Logger("discordgo")
	return func(msgL, _ int, format string, a ...interface{}) {
		level, ok := discordgoLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.Log(context.Background(), level, strings.ReplaceAll(fmt.Sprintf(format, a...), "\n", ""))
	}
}
