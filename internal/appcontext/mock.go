package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	IdentitiesFunc   func() (*config.Identities, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	KafkaBrokersFunc func() []string
	KafkaTopicFunc   func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Identities returns identities using the mock function or nil.
func (m *Mock) Identities() (*config.Identities, error) {
	if m.IdentitiesFunc != nil {
		return m.IdentitiesFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// KafkaBrokers returns brokers using the mock function or nil.
func (m *Mock) KafkaBrokers() []string {
	if m.KafkaBrokersFunc != nil {
		return m.KafkaBrokersFunc()
	}
	return nil
}

// KafkaTopic returns the topic using the mock function or "".
func (m *Mock) KafkaTopic() string {
	if m.KafkaTopicFunc != nil {
		return m.KafkaTopicFunc()
	}
	return ""
}

// Version returns version using the mock function or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns commit using the mock function or "test".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "test"
}

// Date returns date using the mock function or "test".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "test"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}
