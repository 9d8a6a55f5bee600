// Package ql implements the evaluation engine of the declarative detection
// query language: a small interpreter over boolean statement trees that filter
// and transform detection collections.
//
// A workflow definition describes, as data, how each detection should be
// tested: operands name values in a parameter context (or the detection
// currently under test), operation pipelines derive values from them, and
// comparators combine both sides of each comparison into a boolean. Statement
// groups connect comparisons with "and"/"or" to arbitrary depth.
//
// # Lifecycle
//
// A Statement tree is built once from the declarative definition, validated by
// Compile, and then evaluated many times, once per detection per image. Compile
// rejects unknown comparator tags, group operators and property names up front,
// so a malformed filter fails before any data is processed.
//
// # Evaluation Context
//
// A Context maps operand names to caller-supplied values: images, scalar
// thresholds, sets of class names. One reserved name, DetectionOperand, denotes
// the detection currently under test; Filter binds it into a fresh copy of the
// caller's context for every element, so per-detection evaluations never share
// state and the element loop is safe to parallelize.
//
// # Error Handling
//
// Structural type violations surface as *InvalidInputTypeError, all other
// failures as *EvaluationError. Compile-time failures (bad tags, malformed
// trees) carry CompileTime=true; data-dependent failures (missing operand
// names, mid-pipeline type mismatches) are raised during evaluation. Errors
// are never swallowed and no partial results are returned.
package ql
