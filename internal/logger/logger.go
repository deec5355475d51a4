package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoColor  = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgHiYellow)
	errorColor = color.New(color.FgHiRed)
	fatalColor = color.New(color.FgHiRed, color.Bold)

	storeColor    = color.New(color.FgHiMagenta)
	wizardColor   = color.New(color.FgHiMagenta)
	electionColor = color.New(color.FgHiMagenta)
	backupColor   = color.New(color.FgHiMagenta)
	discordColor  = color.New(color.FgHiCyan)
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

func init() {
	Init(false)
}

// Init sets up the global structured logger. When toFile is true, output is
// mirrored into a size-rotated log file next to the binary.
func Init(toFile bool) {
	mu.Lock()
	defer mu.Unlock()

	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("DEBUG"), "true") {
		level = slog.LevelDebug
	}

	var writer io.Writer = os.Stdout
	if toFile {
		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   "bookshelf.log",
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	logger = slog.New(newHandler(writer, level))
	slog.SetDefault(logger)
}

func Info(format string, v ...any)  { slog.Info(fmt.Sprintf(format, v...)) }
func Warn(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func Error(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }
func Debug(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }

func Fatal(format string, v ...any) {
	slog.Log(context.Background(), slog.LevelError+4, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Component-tagged helpers, one per long-lived subsystem.

func Store(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "store"))
}

func Wizard(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "wizard"))
}

func Election(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "election"))
}

func Backup(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "backup"))
}

func Discord(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "discord"))
}

// handler prints "15:04:05 [LEVEL] [COMPONENT] message" with the level and
// component colorized for terminals.
type handler struct {
	w     io.Writer
	level slog.Level
	mu    *sync.Mutex
}

func newHandler(w io.Writer, level slog.Level) *handler {
	return &handler{w: w, level: level, mu: &sync.Mutex{}}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var levelStr string
	var levelColor *color.Color
	switch {
	case r.Level >= slog.LevelError+4:
		levelStr, levelColor = "FATAL", fatalColor
	case r.Level >= slog.LevelError:
		levelStr, levelColor = "ERROR", errorColor
	case r.Level >= slog.LevelWarn:
		levelStr, levelColor = "WARN", warnColor
	default:
		levelStr, levelColor = "INFO", infoColor
	}

	component := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = strings.ToUpper(a.Value.String())
			return false
		}
		return true
	})

	fmt.Fprintf(h.w, "%s", time.Now().Format("15:04:05"))
	if component != "" {
		if levelStr != "INFO" {
			fmt.Fprintf(h.w, " %s", levelColor.Sprintf("[%s]", levelStr))
		}
		fmt.Fprintf(h.w, " %s\n", componentColor(component).Sprintf("[%s] %s", component, r.Message))
	} else {
		fmt.Fprintf(h.w, " %s\n", levelColor.Sprintf("[%s] %s", levelStr, r.Message))
	}
	return nil
}

func (h *handler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *handler) WithGroup(string) slog.Handler      { return h }

func componentColor(name string) *color.Color {
	switch name {
	case "STORE":
		return storeColor
	case "WIZARD":
		return wizardColor
	case "ELECTION":
		return electionColor
	case "BACKUP":
		return backupColor
	case "DISCORD":
		return discordColor
	default:
		return color.New(color.FgCyan)
	}
}
