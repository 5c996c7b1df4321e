// Package errors provides standardized error handling for the assistant
// engine and its BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Registry load errors. These are configuration bugs: the process must
	// refuse to start rather than serve requests against a corrupt taxonomy.
	ErrCodeRegistryInvariantViolation ErrorCode = "REGISTRY_INVARIANT_VIOLATION"
	ErrCodeCapabilityUnknown          ErrorCode = "CAPABILITY_UNKNOWN"
	ErrCodeCatalogSchemaInvalid       ErrorCode = "CATALOG_SCHEMA_INVALID"

	// Per-request classification outcomes. Non-fatal: the caller degrades to
	// open-ended handling or asks the user a clarification question.
	ErrCodeNoIntentMatch           ErrorCode = "NO_INTENT_MATCH"
	ErrCodeNoWorkflowMatch         ErrorCode = "NO_WORKFLOW_MATCH"
	ErrCodeMissingRequiredEntities ErrorCode = "MISSING_REQUIRED_ENTITIES"

	// Prompt building errors. Fatal for the request: an incomplete prompt
	// silently degrades downstream reasoning, so building aborts instead.
	ErrCodeMissingTemplate        ErrorCode = "MISSING_TEMPLATE"
	ErrCodeMissingRequiredContext ErrorCode = "MISSING_REQUIRED_CONTEXT"

	// External collaborator errors (resolver / tool execution layer).
	ErrCodeContextResolutionFailed ErrorCode = "CONTEXT_RESOLUTION_FAILED"
	ErrCodeResolverTimeout         ErrorCode = "RESOLVER_TIMEOUT"
	ErrCodeToolInvocationFailed    ErrorCode = "TOOL_INVOCATION_FAILED"
	ErrCodeToolNotRegistered       ErrorCode = "TOOL_NOT_REGISTERED"

	// Infrastructure errors for the worker shell.
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewRegistryInvariantViolationError creates a non-retryable load-time error.
func NewRegistryInvariantViolationError(registry, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvariantViolation,
		Message:   fmt.Sprintf("Registry '%s' violates a load-time invariant", registry),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCapabilityUnknownError creates a non-retryable load-time error for a
// workflow step naming a tool the execution layer does not expose.
func NewCapabilityUnknownError(workflowID, tool string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCapabilityUnknown,
		Message:   "Workflow step references an unknown tool capability",
		Details:   fmt.Sprintf("workflowId: %s, tool: %s", workflowID, tool),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSchemaInvalidError creates a non-retryable load-time error.
func NewCatalogSchemaInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSchemaInvalid,
		Message:   "Capability catalog failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoIntentMatchError creates a non-retryable classification miss.
func NewNoIntentMatchError(text string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoIntentMatch,
		Message:   "No intent pattern matched the utterance",
		Details:   fmt.Sprintf("text: %q", text),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoWorkflowMatchError creates a non-retryable workflow miss.
func NewNoWorkflowMatchError(text string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoWorkflowMatch,
		Message:   "No workflow pattern matched the utterance",
		Details:   fmt.Sprintf("text: %q", text),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredEntitiesError is surfaced to the user as a clarification
// question, never as a hard failure.
func NewMissingRequiredEntitiesError(intentID string, missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredEntities,
		Message:   "Utterance is missing required entities for the intent",
		Details:   fmt.Sprintf("intentId: %s, missing: %s", intentID, strings.Join(missing, ",")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingTemplateError creates a non-retryable prompt-build error.
func NewMissingTemplateError(intentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingTemplate,
		Message:   "No prompt template registered for intent",
		Details:   fmt.Sprintf("intentId: %s", intentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredContextError creates a non-retryable prompt-build error.
func NewMissingRequiredContextError(templateID string, missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredContext,
		Message:   "Required context keys absent; refusing to build a partial prompt",
		Details:   fmt.Sprintf("templateId: %s, missing: %s", templateID, strings.Join(missing, ",")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextResolutionFailedError creates a retryable resolver error.
func NewContextResolutionFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextResolutionFailed,
		Message:   "Context resolution against external data source failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResolverTimeoutError creates a retryable resolver timeout error.
func NewResolverTimeoutError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResolverTimeout,
		Message:   "Context resolver timed out",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewToolInvocationFailedError creates a retryable tool execution error.
func NewToolInvocationFailedError(tool string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolInvocationFailed,
		Message:   "Tool invocation failed",
		Details:   fmt.Sprintf("tool: %s, error: %s", tool, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewToolNotRegisteredError creates a non-retryable dispatch error.
func NewToolNotRegisteredError(tool string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolNotRegistered,
		Message:   "Tool is not registered with the dispatcher",
		Details:   fmt.Sprintf("tool: %s", tool),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(lookup string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("lookup: %s, error: %s", lookup, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query error",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (identical
// by convention so BPMN boundary events can catch engine codes directly).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeRegistryInvariantViolation: "REGISTRY_INVARIANT_VIOLATION",
	ErrCodeCapabilityUnknown:          "CAPABILITY_UNKNOWN",
	ErrCodeCatalogSchemaInvalid:       "CATALOG_SCHEMA_INVALID",
	ErrCodeNoIntentMatch:              "NO_INTENT_MATCH",
	ErrCodeNoWorkflowMatch:            "NO_WORKFLOW_MATCH",
	ErrCodeMissingRequiredEntities:    "MISSING_REQUIRED_ENTITIES",
	ErrCodeMissingTemplate:            "MISSING_TEMPLATE",
	ErrCodeMissingRequiredContext:     "MISSING_REQUIRED_CONTEXT",
	ErrCodeContextResolutionFailed:    "CONTEXT_RESOLUTION_FAILED",
	ErrCodeResolverTimeout:            "RESOLVER_TIMEOUT",
	ErrCodeToolInvocationFailed:       "TOOL_INVOCATION_FAILED",
	ErrCodeToolNotRegistered:          "TOOL_NOT_REGISTERED",
	ErrCodeDatabaseConnectionFailed:   "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:       "QUERY_EXECUTION_FAILED",
	ErrCodeSearchQueryFailed:          "SEARCH_QUERY_FAILED",
	ErrCodeNotificationSendFailed:     "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error class.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeContextResolutionFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeToolInvocationFailed:
		return 3 // Retryable technical errors

	case ErrCodeResolverTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Classification outcomes and config bugs: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// HasCode reports whether err is a StandardError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "REGISTRY") || strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "CAPABILITY"):
		return "REGISTRY"
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "WORKFLOW") || strings.Contains(codeStr, "ENTITIES"):
		return "CLASSIFICATION"
	case strings.Contains(codeStr, "TEMPLATE") || strings.Contains(codeStr, "CONTEXT"):
		return "PROMPT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "RESOLVER"):
		return "DATA"
	case strings.Contains(codeStr, "TOOL"):
		return "TOOLS"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
