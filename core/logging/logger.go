package logging

import "go.uber.org/zap"

// Logger is the process-wide structured logger. Log output is purely
// diagnostic; consensus-observable state never depends on it.
var Logger = zap.Must(zap.NewProduction())
