/*
Package apperrors defines the closed set of failures sacr reports.

Every failure raised while selecting a backend, loading aliases or running
commands is one of the types below, so callers can tell bad input apart
from a failing command and from a broken environment.
*/
package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/sirupsen/logrus"
)

// Class groups error kinds by who has to act on them.
type Class int

const (
	ClassUnknown        Class = iota // Not part of the taxonomy
	ClassInput                       // The user's config or arguments are wrong
	ClassExecution                   // A command ran and failed
	ClassInfrastructure              // The OS or filesystem failed us
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input"
	case ClassExecution:
		return "execution"
	case ClassInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// UnknownBackendError is returned when the requested backend kind is not supported.
type UnknownBackendError struct {
	Requested string
	Supported []string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("backend %q requested, but only %s are supported", e.Requested, strings.Join(e.Supported, ", "))
}

func (e *UnknownBackendError) Fields() logrus.Fields {
	return logrus.Fields{"requested": e.Requested, "supported": e.Supported}
}

// UnknownCommandError is returned when an alias is not defined in its section.
type UnknownCommandError struct {
	Name    string
	Section string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q in [%s]", e.Name, e.Section)
}

func (e *UnknownCommandError) Fields() logrus.Fields {
	return logrus.Fields{"alias": e.Name, "section": e.Section}
}

// UnknownArgumentError is returned when a subcommand gets the wrong arguments.
type UnknownArgumentError struct {
	Command string
	Message string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("command %s: %s", e.Command, e.Message)
}

func (e *UnknownArgumentError) Fields() logrus.Fields {
	return logrus.Fields{"subcommand": e.Command, "message": e.Message}
}

/*
ParseError is returned when configuration content cannot be decoded.
Key is the alias whose value failed, or empty when the whole file is unreadable as its format.
Section defaults to the scripts section.
*/
type ParseError struct {
	Source  string
	Section string
	Key     string
	Raw     string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("unable to parse ")
	if e.Key != "" {
		section := e.Section
		if section == "" {
			section = alias.ScriptsSection
		}
		fmt.Fprintf(&b, "[%s] %s", section, e.Key)
		if e.Raw != "" {
			fmt.Fprintf(&b, " = %s", e.Raw)
		}
	} else {
		b.WriteString("configuration")
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Fields() logrus.Fields {
	return logrus.Fields{"source": e.Source, "section": e.Section, "key": e.Key, "raw": e.Raw}
}

// SubprocessFailureError is returned when a command exits with a non-zero status.
type SubprocessFailureError struct {
	Command  string
	ExitCode int
}

func (e *SubprocessFailureError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

func (e *SubprocessFailureError) Fields() logrus.Fields {
	return logrus.Fields{"command": e.Command, "exitCode": e.ExitCode}
}

// SubprocessTimeoutError is returned when a command outlives its timeout and is killed.
type SubprocessTimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *SubprocessTimeoutError) Error() string {
	return fmt.Sprintf("command %q exceeded timeout limit of %s", e.Command, e.Timeout)
}

func (e *SubprocessTimeoutError) Fields() logrus.Fields {
	return logrus.Fields{"command": e.Command, "timeout": e.Timeout.String()}
}

// InfrastructureError wraps failures of the environment, such as a process that cannot be started.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func (e *InfrastructureError) Fields() logrus.Fields {
	return logrus.Fields{"op": e.Op}
}

// Infrastructure wraps err as an InfrastructureError unless it already belongs to the taxonomy.
func Infrastructure(op string, err error) error {
	if err == nil {
		return nil
	}
	if ClassOf(err) != ClassUnknown {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

// ClassOf reports which class err belongs to, looking through wrapped errors.
func ClassOf(err error) Class {
	var (
		backendErr  *UnknownBackendError
		commandErr  *UnknownCommandError
		argumentErr *UnknownArgumentError
		parseErr    *ParseError
		failureErr  *SubprocessFailureError
		timeoutErr  *SubprocessTimeoutError
		infraErr    *InfrastructureError
	)
	switch {
	case err == nil:
		return ClassUnknown
	case errors.As(err, &backendErr), errors.As(err, &commandErr),
		errors.As(err, &argumentErr), errors.As(err, &parseErr):
		return ClassInput
	case errors.As(err, &failureErr), errors.As(err, &timeoutErr):
		return ClassExecution
	case errors.As(err, &infraErr):
		return ClassInfrastructure
	default:
		return ClassUnknown
	}
}

// Exit codes used by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitTimeout = 124
)

/*
ExitCode maps err to the status sacr exits with. A failing command passes
its own exit code through when it fits in a process status.
*/
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var failureErr *SubprocessFailureError
	if errors.As(err, &failureErr) {
		if failureErr.ExitCode > 0 && failureErr.ExitCode < 256 {
			return failureErr.ExitCode
		}
		return ExitFailure
	}
	var timeoutErr *SubprocessTimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitTimeout
	}
	if ClassOf(err) == ClassInput {
		return ExitUsage
	}
	return ExitFailure
}

// Fields returns structured log fields for err when it belongs to the taxonomy.
func Fields(err error) logrus.Fields {
	var f interface{ Fields() logrus.Fields }
	if errors.As(err, &f) {
		fields := f.Fields()
		fields["class"] = ClassOf(err).String()
		return fields
	}
	return logrus.Fields{"class": ClassOf(err).String()}
}
