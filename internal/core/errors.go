package core

// errors.go defines user-friendly error messages with codes for support
// reference. When users encounter errors they can quote the code.
//
// Error codes are grouped by category:
//
//	VAL001 - Missing columns: required spreadsheet columns are absent
//	VAL002 - Unreadable spreadsheet: the file could not be parsed
//	VAL003 - Empty spreadsheet: no data rows after the header
//	VAL004 - Missing upload: a required file was not provided
//	RUN001 - System busy: too many batch runs in progress
//	RUN002 - Run timeout: the batch run exceeded its deadline
//	REG001 - Archive not found: the download link is invalid or expired
//	ERR000 - Fallback when no pattern matches
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a download id is unknown or expired.
var ErrNotFound = errors.New("archive not found")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The spreadsheet is missing required columns",
			Action:  "Add the named columns to your spreadsheet and upload again",
			Code:    "VAL001",
		},
	},
	{
		pattern: "read spreadsheet",
		msg: UserMessage{
			Message: "Unable to read the spreadsheet file",
			Action:  "Make sure the file is a valid .xlsx workbook",
			Code:    "VAL002",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The spreadsheet has no data rows",
			Action:  "Add at least one row below the header",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing upload",
		msg: UserMessage{
			Message: "A required file upload is missing",
			Action:  "Upload both the spreadsheet and the DOCX template",
			Code:    "VAL004",
		},
	},
	{
		pattern: "too many concurrent batch runs",
		msg: UserMessage{
			Message: "Too many batch runs in progress",
			Action:  "Please wait a moment and try again",
			Code:    "RUN001",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The batch run timed out",
			Action:  "Try a smaller spreadsheet or raise the run timeout",
			Code:    "RUN002",
		},
	},
	{
		pattern: "archive not found",
		msg: UserMessage{
			Message: "Invalid or expired download link",
			Action:  "Generate the documents again to get a fresh link",
			Code:    "REG001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}
