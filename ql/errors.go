package ql

import "fmt"

// InvalidInputTypeError reports a value that is structurally not of the type
// an operation requires, e.g. a plain string where a detection collection is
// expected. It is always a hard failure for the current call.
type InvalidInputTypeError struct {
	// Context names the operation that rejected the value.
	Context string
	// Value is a safe string rendering of the offending value.
	Value string
	// Type is the observed runtime type.
	Type string
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("%s: invalid input type: got %s of type %s", e.Context, e.Value, e.Type)
}

// EvaluationError is the umbrella over evaluation-engine failures that are not
// structural type violations: missing operand names, unknown tags, malformed
// statement trees.
type EvaluationError struct {
	// Context names the component that failed.
	Context string
	// Message describes the failure.
	Message string
	// CompileTime is true for failures detectable before any detection is
	// processed, such as unknown comparator tags.
	CompileTime bool
	// Err is the wrapped cause, if any.
	Err error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Context, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Message)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// SafeString renders a value for an error message without ever panicking,
// even when the value's String method does.
func SafeString(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = "<unprintable value>"
		}
	}()
	return fmt.Sprintf("%v", v)
}

func invalidInputType(context string, v any) *InvalidInputTypeError {
	return &InvalidInputTypeError{
		Context: context,
		Value:   SafeString(v),
		Type:    fmt.Sprintf("%T", v),
	}
}

func compileError(context, format string, args ...any) *EvaluationError {
	return &EvaluationError{Context: context, Message: fmt.Sprintf(format, args...), CompileTime: true}
}

func evalError(context, format string, args ...any) *EvaluationError {
	return &EvaluationError{Context: context, Message: fmt.Sprintf(format, args...)}
}
