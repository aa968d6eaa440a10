package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging points the standard logger at the configured sink. File output
// rotates through lumberjack so long-running deployments do not fill the disk.
func SetupLogging(cfg LoggingConfig) {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lmicroseconds)

	switch cfg.Output {
	case "file":
		log.SetOutput(newRotatingWriter(cfg))
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, newRotatingWriter(cfg)))
	default:
		log.SetOutput(os.Stdout)
	}
}

func newRotatingWriter(cfg LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
