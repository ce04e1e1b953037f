package logger

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Development config keeps
// console output readable; switch to zap.NewProduction for JSON logs.
func NewLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
