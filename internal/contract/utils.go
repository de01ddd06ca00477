package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Color variables for console output.
var (
	LabelColor   = color.New(color.FgCyan, color.Bold) // LabelColor highlights series labels.
	ValueColor   = color.New(color.FgGreen)            // ValueColor highlights measured values.
	SuccessColor = color.New(color.FgGreen, color.Bold)
	WarnColor    = color.New(color.FgYellow)
)

// SelectOutputFile returns the appropriate file handle for output.
// It falls back to os.Stdout when no file path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	zap.L().Error(msg, zap.Error(err))
	_ = zap.L().Sync()
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	zap.L().Warn(msg, zap.Error(err))
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
