package interp

import (
	"context"
	"fmt"

	"github.com/shallot-lang/shallot/value"
)

func (ev *evaluator) evalExpr(ctx context.Context, e Expr) (value.Value, error) {
	switch x := e.(type) {
	case *IntLit:
		return value.Int(x.Value), nil
	case *FloatLit:
		return value.Float(x.Value), nil
	case *StringLit:
		return value.String(x.Value), nil
	case *BoolLit:
		return value.Bool(x.Value), nil
	case *NullLit:
		return value.Null(), nil

	case *Ident:
		v, ok := ev.env[x.Name]
		if !ok {
			return value.Value{}, fmt.Errorf("undefined identifier %q", x.Name)
		}
		return v, nil

	case *RangeExpr:
		lo, err := ev.evalInt(ctx, x.Lo)
		if err != nil {
			return value.Value{}, err
		}
		hi, err := ev.evalInt(ctx, x.Hi)
		if err != nil {
			return value.Value{}, err
		}
		return value.Range(lo, hi), nil

	case *PairExpr:
		k, err := ev.evalExpr(ctx, x.Key)
		if err != nil {
			return value.Value{}, err
		}
		v, err := ev.evalExpr(ctx, x.Val)
		if err != nil {
			return value.Value{}, err
		}
		return value.Pair(k, v), nil

	case *NamedExpr:
		v, err := ev.evalExpr(ctx, x.Val)
		if err != nil {
			return value.Value{}, err
		}
		return value.Named(x.Name, v), nil

	case *TupleLit:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ev.evalExpr(ctx, el)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.Tuple(elems...), nil

	case *MemberExpr:
		recv, err := ev.evalExpr(ctx, x.Recv)
		if err != nil {
			return value.Value{}, err
		}
		return ev.member(recv, x.Name)

	case *CallExpr:
		return ev.evalCall(ctx, x)

	case *UnaryExpr:
		operand, err := ev.evalExpr(ctx, x.Operand)
		if err != nil {
			return value.Value{}, err
		}
		switch {
		case operand.IsInt():
			n, _ := operand.AsInt()
			return value.Int(-n), nil
		case operand.IsFloat():
			f, _ := operand.AsFloat()
			return value.Float(-f), nil
		}
		return value.Value{}, fmt.Errorf("cannot negate %s value", operand.Kind())

	case *BinaryExpr:
		left, err := ev.evalExpr(ctx, x.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := ev.evalExpr(ctx, x.Right)
		if err != nil {
			return value.Value{}, err
		}
		return binaryOp(x.Op, left, right)
	}
	return value.Value{}, fmt.Errorf("unknown expression %T", e)
}

func (ev *evaluator) evalInt(ctx context.Context, e Expr) (int64, error) {
	v, err := ev.evalExpr(ctx, e)
	if err != nil {
		return 0, err
	}
	return v.AsInt()
}

// member resolves v.name without a call: named field lookup on tuples.
func (ev *evaluator) member(recv value.Value, name string) (value.Value, error) {
	if recv.IsTuple() {
		return recv.Field(name)
	}
	return value.Value{}, fmt.Errorf("%s value has no member %q", recv.Kind(), name)
}

func (ev *evaluator) evalCall(ctx context.Context, call *CallExpr) (value.Value, error) {
	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := ev.evalExpr(ctx, a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	argTuple := value.Tuple(args...)

	// method-style calls: recv.name(args)
	if m, ok := call.Callee.(*MemberExpr); ok {
		recv, err := ev.evalExpr(ctx, m.Recv)
		if err != nil {
			return value.Value{}, err
		}
		return ev.callMethod(ctx, recv, m.Name, args, argTuple)
	}

	callee, err := ev.evalExpr(ctx, call.Callee)
	if err != nil {
		return value.Value{}, err
	}
	return ev.invoke(ctx, callee, argTuple)
}

func (ev *evaluator) callMethod(ctx context.Context, recv value.Value, name string, args []value.Value, argTuple value.Value) (value.Value, error) {
	switch name {
	case "elements":
		if len(args) != 0 {
			return value.Value{}, fmt.Errorf("elements() takes no arguments")
		}
		return elements(recv)
	case "length":
		if len(args) != 0 {
			return value.Value{}, fmt.Errorf("length() takes no arguments")
		}
		n, err := recv.Len()
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(n)), nil
	case "key":
		if recv.IsNamed() {
			n, _ := recv.Name()
			return value.String(n), nil
		}
		return recv.Key()
	case "value":
		if recv.IsNamed() {
			return recv.Binding()
		}
		return recv.Value()
	case "at":
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("at() takes one argument")
		}
		i, err := args[0].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		return recv.At(int(i))
	}

	// A named tuple field holding a callable is invocable as a method.
	if recv.IsTuple() {
		f, err := recv.Field(name)
		if err != nil {
			return value.Value{}, err
		}
		return ev.invoke(ctx, f, argTuple)
	}
	return value.Value{}, fmt.Errorf("%s value has no method %q", recv.Kind(), name)
}

func (ev *evaluator) invoke(ctx context.Context, callee, args value.Value) (value.Value, error) {
	c, err := callee.AsCallable()
	if err != nil {
		return value.Value{}, fmt.Errorf("value is not callable: %s", callee.Kind())
	}
	if ev.cfg.Logger != nil {
		ev.cfg.Logger.Debug("invoke adapter", "name", c.Name())
	}
	return c.Invoke(ctx, value.Null(), args)
}

func elements(v value.Value) (value.Value, error) {
	switch {
	case v.IsRange():
		s, _ := v.AsRange()
		// Bounds are script-supplied; the span must pass the cardinality
		// limit before anything is allocated.
		n, err := s.Len()
		if err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, n)
		for i := 0; i < n; i++ {
			elems[i] = value.Int(s.Start + int64(i))
		}
		return value.Tuple(elems...), nil
	case v.IsTuple():
		return v, nil
	}
	return value.Value{}, fmt.Errorf("elements() not supported on %s", v.Kind())
}

func binaryOp(op string, left, right value.Value) (value.Value, error) {
	switch op {
	case "==":
		return value.Bool(left.Equal(right)), nil
	case "!=":
		return value.Bool(!left.Equal(right)), nil
	}

	if left.IsString() && right.IsString() {
		a, _ := left.AsString()
		b, _ := right.AsString()
		switch op {
		case "+":
			return value.String(a + b), nil
		case "<":
			return value.Bool(a < b), nil
		case ">":
			return value.Bool(a > b), nil
		case "<=":
			return value.Bool(a <= b), nil
		case ">=":
			return value.Bool(a >= b), nil
		}
		return value.Value{}, fmt.Errorf("operator %q not defined for strings", op)
	}

	if left.IsInt() && right.IsInt() {
		a, _ := left.AsInt()
		b, _ := right.AsInt()
		switch op {
		case "+":
			return value.Int(a + b), nil
		case "-":
			return value.Int(a - b), nil
		case "*":
			return value.Int(a * b), nil
		case "/":
			if b == 0 {
				return value.Value{}, fmt.Errorf("division by zero")
			}
			return value.Int(a / b), nil
		case "%":
			if b == 0 {
				return value.Value{}, fmt.Errorf("division by zero")
			}
			return value.Int(a % b), nil
		case "<":
			return value.Bool(a < b), nil
		case ">":
			return value.Bool(a > b), nil
		case "<=":
			return value.Bool(a <= b), nil
		case ">=":
			return value.Bool(a >= b), nil
		}
	}

	if (left.IsInt() || left.IsFloat()) && (right.IsInt() || right.IsFloat()) {
		a, _ := left.AsFloat()
		b, _ := right.AsFloat()
		switch op {
		case "+":
			return value.Float(a + b), nil
		case "-":
			return value.Float(a - b), nil
		case "*":
			return value.Float(a * b), nil
		case "/":
			if b == 0 {
				return value.Value{}, fmt.Errorf("division by zero")
			}
			return value.Float(a / b), nil
		case "<":
			return value.Bool(a < b), nil
		case ">":
			return value.Bool(a > b), nil
		case "<=":
			return value.Bool(a <= b), nil
		case ">=":
			return value.Bool(a >= b), nil
		}
	}

	return value.Value{}, fmt.Errorf("operator %q not defined for %s and %s",
		op, left.Kind(), right.Kind())
}
