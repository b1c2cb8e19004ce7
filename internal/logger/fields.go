package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/interview"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldSession is the structured log field key for the interview session id.
	FieldSession = "session_id"

	FieldRole   = "role"
	FieldDomain = "domain"
	FieldType   = "interview_type"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns fields that describe the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the AI provider and model fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// InterviewFields describes an interview config. The domain is omitted when unset.
func InterviewFields(cfg interview.Config) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldRole, Value: cfg.Role},
		StringField{Key: FieldDomain, Value: cfg.Domain},
		StringField{Key: FieldType, Value: string(cfg.Type)},
	)
	return append(fields, zap.Int("question_count", cfg.QuestionCount))
}

// WithSession attaches the session id and interview config to the logger.
func WithSession(logger *zap.Logger, id string, cfg interview.Config) *zap.Logger {
	fields := StringFields(StringField{Key: FieldSession, Value: id})
	return WithFields(logger, append(fields, InterviewFields(cfg)...)...)
}
