package ql

// DetectionOperand is the reserved operand name denoting the detection
// currently under test. Filter binds it fresh for every element; workflow
// definitions use it to reference per-detection properties.
const DetectionOperand = "_"

// Context maps operand names to the values the caller supplies for one
// evaluation: images, thresholds, class sets, and the bound detection.
type Context map[string]any

// Clone returns a shallow copy of the context. Values are shared read-only;
// the mapping itself is independent, so binding the detection operand in the
// clone never mutates the caller's context.
func (c Context) Clone() Context {
	out := make(Context, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Operand is a declarative recipe for deriving one comparison value: a base
// value looked up by name in the context, threaded through an operation
// pipeline. Operands are built once and evaluated once per detection.
type Operand struct {
	// Name is the context key of the base value. Use DetectionOperand for
	// the detection currently under test.
	Name string
	// Operations transform the base value left to right.
	Operations []Operation
}

// resolve produces the operand's value against a context. A name absent from
// the context is an evaluation error: required runtime parameters are never
// silently defaulted.
func (o Operand) resolve(ctx Context, execContext string) (any, error) {
	base, ok := ctx[o.Name]
	if !ok {
		return nil, evalError(execContext, "operand %q not found in evaluation context", o.Name)
	}
	return applyOperations(o.Operations, base, execContext)
}
