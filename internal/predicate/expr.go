package predicate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/zaremba/dq/internal/value"
)

// Expr compiles an expression-language predicate evaluated against each
// record. Object records expose their fields as variables; any other
// record is bound to a single "value" variable. A record whose evaluation
// errors or yields a non-boolean does not match.
func Expr(src string) (Predicate, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling --expr: %w", err)
	}
	return func(record *value.Value) bool {
		return runExpr(program, record)
	}, nil
}

func runExpr(program *vm.Program, record *value.Value) bool {
	var env map[string]any
	if record.Kind == value.ObjectType {
		native, ok := value.ToNative(record).(map[string]any)
		if !ok {
			return false
		}
		env = native
	} else {
		env = map[string]any{"value": value.ToNative(record)}
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}
