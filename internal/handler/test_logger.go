package handler

import (
	"fmt"
	"sync"

	"ushay-etl/internal/domain"
)

// Mock logger used by handler package tests. It records messages so tests
// can assert on what was logged.
type MockHandlerLogger struct {
	mu       sync.Mutex
	Messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) record(level, msg string, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, fmt.Sprintf("%s %s %v", level, msg, fields))
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) { l.record("INFO", msg, fields...) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.record("ERROR", msg, append([]interface{}{"error", err}, fields...)...)
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {
	l.record("DEBUG", msg, fields...)
}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})   { l.record("WARN", msg, fields...) }
func (l *MockHandlerLogger) With(fields ...interface{}) domain.Logger { return l }
