package sourcecraft

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Environment variables
const (
	EnvSourcecraftWorkspace = "SOURCECRAFT_WORKSPACE"
	EnvSourcecraftSHA       = "SOURCECRAFT_COMMIT_SHA"
)

// Output is where workflow commands and log lines are written.
var Output io.Writer = os.Stdout

// exit terminates the process after SetFailed. Replaced in tests.
var exit = os.Exit

// GetInput gets an input value from environment variables
func GetInput(name string) string {
	return os.Getenv(name)
}

// GetInputDefault gets an input value, falling back to defaultValue when unset or empty
func GetInputDefault(name, defaultValue string) string {
	value := GetInput(name)
	if value == "" {
		return defaultValue
	}

	return value
}

// GetMultilineInput gets a multiline input value from environment variables.
// Blank lines are dropped.
func GetMultilineInput(name string) []string {
	value := GetInput(name)
	if value == "" {
		return nil
	}

	var lines []string

	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, strings.TrimRight(line, "\r"))
	}

	return lines
}

// GetBooleanInput gets a boolean input value from environment variables
func GetBooleanInput(name string) bool {
	value := strings.ToLower(strings.TrimSpace(GetInput(name)))
	return value == "true" || value == "yes" || value == "1"
}

// GetIntInput gets an integer input. Unset input yields defaultValue.
func GetIntInput(name string, defaultValue int) (int, error) {
	value := strings.TrimSpace(GetInput(name))
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("input %s is not an integer: %w", name, err)
	}

	return n, nil
}

// SetOutput sets an output value
func SetOutput(name, value string) {
	fmt.Fprintf(Output, "::set-output name=%s::%s\n", name, value)
}

// SetFailed reports the error and terminates the action
func SetFailed(message string) {
	ErrorLog(message)
	exit(1)
}

// Info logs an Info message
func Info(message string) {
	fmt.Fprintln(Output, message)
}

// Debug logs a Debug message
func Debug(message string) {
	fmt.Fprintf(Output, "::debug::%s\n", message)
}

// ErrorLog logs an error message
func ErrorLog(message string) {
	fmt.Fprintf(Output, "::error::%s\n", message)
}

// StartGroup starts a log group
func StartGroup(name string) {
	fmt.Fprintf(Output, "::group::%s\n", name)
}

// EndGroup ends a log group
func EndGroup() {
	fmt.Fprintln(Output, "::endgroup::")
}

// GetSourcecraftWorkspace gets the Sourcecraft workspace directory
func GetSourcecraftWorkspace() string {
	return GetInputDefault(EnvSourcecraftWorkspace, ".")
}

// GetSourcecraftSHA gets the Sourcecraft commit SHA
func GetSourcecraftSHA() string {
	return os.Getenv(EnvSourcecraftSHA)
}
