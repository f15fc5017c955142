package runtime

import (
	"errors"
	"fmt"
)

// The four failure kinds are unrecoverable: they abort the evaluation chain
// and surface from the interpret entry point. Line 0 means "not yet known";
// evaluators stamp the call-site line with WithLine.

// TypeError reports a value used where a different kind was required.
type TypeError struct {
	Line     int
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%stype error: expected %s, got %s", linePrefix(e.Line), e.Expected, e.Actual)
}

// BindingError reports a violation of the declare/assign discipline.
type BindingError struct {
	Line          int
	Name          string
	Redeclaration bool
}

func (e *BindingError) Error() string {
	if e.Redeclaration {
		return fmt.Sprintf("%svariable '%s' already defined", linePrefix(e.Line), e.Name)
	}
	return fmt.Sprintf("%svariable '%s' not defined", linePrefix(e.Line), e.Name)
}

// ArityError reports a call with the wrong argument count.
type ArityError struct {
	Line int
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%swrong number of arguments for '%s': expected %d, got %d", linePrefix(e.Line), e.Name, e.Want, e.Got)
}

// DivisionError reports integer division or modulo by zero.
type DivisionError struct {
	Line int
	Op   string
}

func (e *DivisionError) Error() string {
	verb := "division"
	if e.Op == "%" {
		verb = "modulo"
	}
	return fmt.Sprintf("%s%s by zero", linePrefix(e.Line), verb)
}

func linePrefix(line int) string {
	if line <= 0 {
		return ""
	}
	return fmt.Sprintf("at line %d, ", line)
}

// WithLine stamps the line onto a failure that does not know its source
// position yet (builtins, the shared arity check). Failures that already
// carry a line, and non-failure errors, pass through untouched.
func WithLine(err error, line int) error {
	if err == nil || line <= 0 {
		return err
	}
	var typeErr *TypeError
	if errors.As(err, &typeErr) {
		if typeErr.Line == 0 {
			typeErr.Line = line
		}
		return err
	}
	var bindErr *BindingError
	if errors.As(err, &bindErr) {
		if bindErr.Line == 0 {
			bindErr.Line = line
		}
		return err
	}
	var arityErr *ArityError
	if errors.As(err, &arityErr) {
		if arityErr.Line == 0 {
			arityErr.Line = line
		}
		return err
	}
	var divErr *DivisionError
	if errors.As(err, &divErr) {
		if divErr.Line == 0 {
			divErr.Line = line
		}
		return err
	}
	return err
}
