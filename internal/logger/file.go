package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLog is a debug-level zap logger writing to a single run log file,
// truncated at the start of each run.
type FileLog struct {
	*zap.Logger
	file *os.File
	path string
}

// OpenFileLog creates (or truncates) path and returns a logger writing
// human-readable lines to it.
func OpenFileLog(path string) (*FileLog, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: failed to open log file %s: %w", path, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)

	return &FileLog{
		Logger: zap.New(core),
		file:   file,
		path:   path,
	}, nil
}

// Path returns the log file location
func (f *FileLog) Path() string {
	return f.path
}

// Close flushes buffered entries and closes the file
func (f *FileLog) Close() error {
	_ = f.Logger.Sync()
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("logger: failed to close log file %s: %w", f.path, err)
	}
	return nil
}
