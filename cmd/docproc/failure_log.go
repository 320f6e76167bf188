package main

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var failureLogMu sync.Mutex

// logFailure appends one JSON line describing a failed call to path.
// An empty path disables the fail log.
func logFailure(path, traceID, target string, err error) error {
	if path == "" {
		return nil
	}

	if traceID == "" {
		traceID = "unknown"
	}

	failureLogMu.Lock()
	defer failureLogMu.Unlock()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
	}

	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer f.Close()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	log := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), zapcore.ErrorLevel))
	log.Error("call failed",
		zap.String("trace_id", traceID),
		zap.String("target", target),
		zap.Error(err),
	)

	return log.Sync()
}
