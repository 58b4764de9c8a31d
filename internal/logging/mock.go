package logging

// MockLogger is a Logger implementation that records messages for tests.
type MockLogger struct {
	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Debug records a debug-level message
func (m *MockLogger) Debug(msg string, _ ...Field) {
	m.DebugMessages = append(m.DebugMessages, msg)
}

// Info records an info-level message
func (m *MockLogger) Info(msg string, _ ...Field) {
	m.InfoMessages = append(m.InfoMessages, msg)
}

// Warn records a warning-level message
func (m *MockLogger) Warn(msg string, _ ...Field) {
	m.WarnMessages = append(m.WarnMessages, msg)
}

// Error records an error-level message
func (m *MockLogger) Error(msg string, _ ...Field) {
	m.ErrorMessages = append(m.ErrorMessages, msg)
}

// WithError returns the same logger; the error is discarded.
func (m *MockLogger) WithError(_ error) Logger {
	return m
}

// WithField returns the same logger; the field is discarded.
func (m *MockLogger) WithField(_ string, _ interface{}) Logger {
	return m
}
