package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The loggers are usable from package load so that library code can log
// unconditionally; InitLoggers upgrades them to rotated files.
var (
	InfoLogger  = newLogger(logrus.InfoLevel, os.Stdout)
	WarnLogger  = newLogger(logrus.WarnLevel, os.Stdout)
	ErrorLogger = newLogger(logrus.ErrorLevel, os.Stderr)
)

// InitLoggers attaches rotated log files under logs/ to the application
// loggers, mirroring to stdout/stderr. Called once at process start.
func InitLoggers() {
	attachRotatedFile(InfoLogger, "logs/info.log", os.Stdout)
	attachRotatedFile(WarnLogger, "logs/warn.log", os.Stdout)
	attachRotatedFile(ErrorLogger, "logs/error.log", os.Stderr)
}

func newLogger(level logrus.Level, console io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetOutput(console)
	return l
}

func attachRotatedFile(l *logrus.Logger, filename string, console io.Writer) {
	rotated := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(console, rotated))
}
