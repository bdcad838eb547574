package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger tees every entry to stdout and to a rotating <app name>.log under
// the configured log directory. Debug switches to the console encoder.
func InitLogger(app AppConfig) (*zap.Logger, error) {
	if app.LogPath != "" {
		if err := os.MkdirAll(app.LogPath, 0755); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder
	level := zap.InfoLevel
	if app.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder
		level = zap.DebugLevel
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	rotation := &lumberjack.Logger{
		Filename:   LogFile(app),
		MaxSize:    app.LogMaxSizeMB,
		MaxBackups: app.LogMaxBackups,
		MaxAge:     app.LogMaxAgeDays,
		Compress:   true,
	}

	enc := encoder(encoderConfig)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(rotation), level),
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
	)

	return zap.New(core, zap.AddCaller()).With(zap.String("app", app.Name)), nil
}

// LogFile is the active log file for app.
func LogFile(app AppConfig) string {
	name := app.Name
	if name == "" {
		name = "movie-catalog"
	}
	return filepath.Join(app.LogPath, name+".log")
}
