package ql

import "strconv"

// GroupOperator connects the children of a statement group.
type GroupOperator string

const (
	And GroupOperator = "and"
	Or  GroupOperator = "or"
)

// Statement is one node of a boolean expression tree: a comparison leaf or a
// logical group. Trees are built once from a declarative definition and
// evaluated read-only across every detection of a batch.
type Statement interface {
	eval(ctx Context, execContext string) (bool, error)
	check(execContext string) error
}

// BinaryStatement compares two resolved operand values.
type BinaryStatement struct {
	Left       Operand
	Comparator Comparator
	Right      Operand
}

func (s BinaryStatement) check(execContext string) error {
	if !knownComparator(s.Comparator) {
		return compileError(execContext, "unknown comparator tag %q", s.Comparator)
	}
	if err := checkOperand(s.Left, "left", execContext); err != nil {
		return err
	}
	return checkOperand(s.Right, "right", execContext)
}

func checkOperand(operand Operand, side, execContext string) error {
	if operand.Name == "" {
		return compileError(execContext, "%s operand has no name", side)
	}
	for i, op := range operand.Operations {
		if err := op.validate(); err != nil {
			return &EvaluationError{
				Context:     execContext,
				Message:     "invalid operation " + strconv.Itoa(i) + " on " + side + " operand",
				CompileTime: true,
				Err:         err,
			}
		}
	}
	return nil
}

func (s BinaryStatement) eval(ctx Context, execContext string) (bool, error) {
	left, err := s.Left.resolve(ctx, execContext+" | left operand")
	if err != nil {
		return false, err
	}
	right, err := s.Right.resolve(ctx, execContext+" | right operand")
	if err != nil {
		return false, err
	}
	return compare(s.Comparator, left, right, execContext)
}

// StatementGroup combines child statements with a logical operator. An empty
// "and" group is vacuously true; an empty "or" group is false.
type StatementGroup struct {
	Operator   GroupOperator
	Statements []Statement
}

func (g StatementGroup) check(execContext string) error {
	if g.Operator != And && g.Operator != Or {
		return compileError(execContext, "unknown group operator %q", g.Operator)
	}
	for i, child := range g.Statements {
		if child == nil {
			return compileError(execContext, "statement %d is nil", i)
		}
		if err := child.check(execContext + " | statement " + strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

func (g StatementGroup) eval(ctx Context, execContext string) (bool, error) {
	for i, child := range g.Statements {
		ok, err := child.eval(ctx, execContext+" | statement "+strconv.Itoa(i))
		if err != nil {
			return false, err
		}
		// Short-circuit: operands are side-effect-free, so skipping the
		// remaining children cannot change observable behavior.
		if g.Operator == And && !ok {
			return false, nil
		}
		if g.Operator == Or && ok {
			return true, nil
		}
	}
	return g.Operator == And, nil
}

// CompiledStatement is a validated statement tree ready for repeated
// evaluation. It is immutable and safe for concurrent use.
type CompiledStatement struct {
	root Statement
}

// Compile validates a statement tree: comparator tags, group operators and
// operation parameters are all checked up front, so a malformed definition
// fails before the first detection is processed.
func Compile(root Statement) (*CompiledStatement, error) {
	if root == nil {
		return nil, compileError("statement compilation", "statement tree is nil")
	}
	if err := root.check("statement compilation"); err != nil {
		return nil, err
	}
	return &CompiledStatement{root: root}, nil
}

// Eval evaluates the tree against a context and returns its boolean value.
func (c *CompiledStatement) Eval(ctx Context) (bool, error) {
	return c.root.eval(ctx, "statement evaluation")
}

