package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger yang dipakai di seluruh aplikasi. Nilai awalnya no-op supaya package
// lain (dan test) tetap aman dipakai sebelum InitLoggers dipanggil.
var (
	ErrorLogger    = zap.NewNop()
	AuditLogger    = zap.NewNop()
	RequestLogger  = zap.NewNop()
	SecurityLogger = zap.NewNop()
	SystemLogger   = zap.NewNop()
)

func encoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderCfg
}

func newLogger(ws zapcore.WriteSyncer, name string, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		ws,
		level,
	)
	return zap.New(core).Named(name)
}

func fileSyncer(dir, name string) (zapcore.WriteSyncer, error) {
	file, err := os.OpenFile(filepath.Join(dir, name+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

// InitLoggers builds the named loggers. With an empty dir everything goes to
// stdout; otherwise each logger writes to <dir>/<name>.log.
func InitLoggers(dir string) error {
	levels := []struct {
		name   string
		level  zapcore.Level
		target **zap.Logger
	}{
		{"errors", zapcore.ErrorLevel, &ErrorLogger},
		{"audit", zapcore.InfoLevel, &AuditLogger},
		{"request", zapcore.InfoLevel, &RequestLogger},
		{"security", zapcore.WarnLevel, &SecurityLogger},
		{"system", zapcore.InfoLevel, &SystemLogger},
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	for _, l := range levels {
		ws := zapcore.Lock(os.Stdout)
		if dir != "" {
			var err error
			ws, err = fileSyncer(dir, l.name)
			if err != nil {
				return err
			}
		}
		*l.target = newLogger(ws, l.name, l.level)
	}
	return nil
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SecurityLogger.Sync()
	_ = SystemLogger.Sync()
}
