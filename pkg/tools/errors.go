// Package tools provides the trip replay MCP tools implementations.
package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolError is an error reported back to the MCP client, with information to
// help the caller recover.
type ToolError struct {
	Tool        string // The tool that failed (e.g., "seek_index")
	Code        string // Stable machine-readable code
	Message     string // Error message
	Recoverable bool   // Whether retrying with other input can succeed
	Guidance    string // Guidance for the caller on how to recover
}

// Error implements the error interface and provides a formatted error message.
func (e *ToolError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s error (%s): %s. %s", e.Tool, e.Code, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Tool, e.Code, e.Message)
}

// Error codes
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeUnavailable      = "REPLAY_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// Common error guidance messages
const (
	GuidanceIndexRange    = "Call replay_status to get the total record count; valid indices are 0 to total-1."
	GuidanceFractionRange = "Use a fraction between 0 (start of the trip) and 1 (end of the trip)."
	GuidanceWholeNumber   = "The index must be a whole number."
	GuidanceUnavailable   = "The replay is shutting down or not running. Restart the server and try again."
	GuidanceGeneral       = "Please try again later or modify your request parameters."
)

// NewToolError creates a ToolError. An empty guidance is filled in from the code.
func NewToolError(tool, code, message, guidance string) *ToolError {
	if guidance == "" {
		switch code {
		case CodeOutOfRange, CodeInvalidParameter:
			guidance = "Check your parameters and try again."
		case CodeUnavailable:
			guidance = GuidanceUnavailable
		default:
			guidance = GuidanceGeneral
		}
	}
	return &ToolError{
		Tool:        tool,
		Code:        code,
		Message:     message,
		Recoverable: code != CodeUnavailable,
		Guidance:    guidance,
	}
}

// ErrorWithGuidance returns a properly formatted error response with user guidance.
func ErrorWithGuidance(err *ToolError) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error [%s]: %s\n\nGuidance: %s", err.Code, err.Message, err.Guidance)
	return mcp.NewToolResultError(errorText)
}
