package pivot

import "golang.org/x/exp/slices"

// mismatch returns the first part of source that expected does not accept,
// together with the type that part was expected to have. List and dictionary
// literals are checked element by element against the expected container.
func mismatch(expected Type, source Expression) (Type, Expression) {
	switch src := source.(type) {
	case *ListExpression:
		if lt, ok := expected.(*ListType); ok {
			for _, e := range src.Elements {
				if t, bad := mismatch(lt.Element, e); bad != nil {
					return t, bad
				}
			}
			return nil, nil
		}
	case *DictionaryExpression:
		if dt, ok := expected.(*DictType); ok {
			for _, p := range src.Pairs {
				if t, bad := mismatch(dt.Key, p.Key); bad != nil {
					return t, bad
				}
				if t, bad := mismatch(dt.Value, p.Value); bad != nil {
					return t, bad
				}
			}
			return nil, nil
		}
	}
	if !expected.IsCompatibleWith(source.ResolvedType()) {
		return expected, source
	}
	return nil, nil
}

// checkAssignable reports mismatches under the name being declared or
// assigned.
func checkAssignable(name string, expected Type, source Expression) error {
	if t, bad := mismatch(expected, source); bad != nil {
		return newNamedError(TypeMismatchError, bad.pos(), name, "type mismatch for %s: expected %s, but got %s", name, t, bad.ResolvedType())
	}
	return nil
}

func checkListHasConsistentTypes(l *ListExpression) error {
	if len(l.Elements) == 0 {
		return nil
	}
	first := l.Elements[0].ResolvedType()
	for _, e := range l.Elements[1:] {
		if !elementsCompatible(first, e.ResolvedType()) {
			return NewError(InconsistentListTypeError, e.pos(), "list elements must share one type: %s and %s", first, e.ResolvedType())
		}
	}
	return nil
}

func checkDictHasConsistentTypes(d *DictionaryExpression) error {
	if len(d.Pairs) == 0 {
		return nil
	}
	key := d.Pairs[0].Key.ResolvedType()
	value := d.Pairs[0].Value.ResolvedType()
	for _, p := range d.Pairs[1:] {
		if !elementsCompatible(key, p.Key.ResolvedType()) {
			return NewError(InconsistentDictTypeError, p.pos(), "dictionary keys must share one type: %s and %s", key, p.Key.ResolvedType())
		}
		if !elementsCompatible(value, p.Value.ResolvedType()) {
			return NewError(InconsistentDictTypeError, p.pos(), "dictionary values must share one type: %s and %s", value, p.Value.ResolvedType())
		}
	}
	return nil
}

func checkHasValue(e Expression) error {
	if e.ResolvedType() == VoidType {
		return NewError(TypeMismatchError, e.pos(), "task call used as a value")
	}
	return nil
}

func checkIsNumStringOrChar(op string, e Expression) error {
	if !isNumStringOrChar(e.ResolvedType()) {
		return NewError(OperandTypeError, e.pos(), "operator %s expects num, string or char, but got %s", op, e.ResolvedType())
	}
	return nil
}

func checkIsNum(op string, e Expression) error {
	if !isNum(e.ResolvedType()) {
		return NewError(OperandTypeError, e.pos(), "operator %s expects num, but got %s", op, e.ResolvedType())
	}
	return nil
}

func checkIsBool(op string, e Expression) error {
	if !isBool(e.ResolvedType()) {
		return NewError(OperandTypeError, e.pos(), "operator %s expects bool, but got %s", op, e.ResolvedType())
	}
	return nil
}

func checkIsNumOrBool(op string, e Expression) error {
	if t := e.ResolvedType(); !isNum(t) && !isBool(t) {
		return NewError(OperandTypeError, e.pos(), "operator %s expects num or bool, but got %s", op, t)
	}
	return nil
}

func checkComparable(op string, left, right Expression) error {
	if !left.ResolvedType().IsCompatibleWith(right.ResolvedType()) {
		return NewError(OperandTypeError, right.pos(), "operator %s cannot compare %s with %s", op, left.ResolvedType(), right.ResolvedType())
	}
	return nil
}

func checkConditionIsBoolean(e Expression) error {
	if !isBool(e.ResolvedType()) {
		return NewError(NonBooleanConditionError, e.pos(), "condition must be bool, but got %s", e.ResolvedType())
	}
	return nil
}

func checkIsCallable(call *FunctionCall, d Declaration) (Callable, error) {
	c, ok := d.(Callable)
	if !ok {
		return nil, newNamedError(NotCallableError, call.Pos, call.Name, "%s is not a function or task", call.Name)
	}
	return c, nil
}

func checkArgsMatchParameters(call *FunctionCall, params []*Parameter) error {
	if len(call.Args) != len(params) {
		return newNamedError(ArgumentCountMismatchError, call.Pos, call.Name,
			"%s expects %d arguments, but got %d", call.Name, len(params), len(call.Args))
	}
	for i, arg := range call.Args {
		if t, bad := mismatch(params[i].Type, arg); bad != nil {
			return newNamedError(ArgumentTypeMismatchError, bad.pos(), params[i].Name,
				"argument %s of %s: expected %s, but got %s", params[i].Name, call.Name, t, bad.ResolvedType())
		}
	}
	return nil
}

// checkReturnContext requires the nearest declaration boundary to be a
// function.
func checkReturnContext(scopes *Scopes, id ScopeId, r *ReturnStatement) (*FunctionDeclaration, error) {
	if f := scopes.Function(id); f != nil {
		return f, nil
	}
	if t := scopes.Task(id); t != nil {
		return nil, newNamedError(InvalidReturnContextError, r.Pos, t.Name, "return inside task %s", t.Name)
	}
	return nil, NewError(InvalidReturnContextError, r.Pos, "return outside of a function")
}

func checkReturnMatchesFunctionReturnType(value Expression, f *FunctionDeclaration) error {
	if t, bad := mismatch(f.ReturnType, value); bad != nil {
		return newNamedError(ReturnTypeMismatchError, bad.pos(), f.Name,
			"%s returns %s, but got %s", f.Name, t, bad.ResolvedType())
	}
	return nil
}

func checkBreakWithinLoop(scopes *Scopes, id ScopeId, b *BreakStatement) error {
	if !scopes.InLoop(id) {
		return NewError(InvalidBreakContextError, b.Pos, "break outside of a loop")
	}
	return nil
}

func checkStatementsAreReachable(stmts []Statement) error {
	i := slices.IndexFunc(stmts, isUnconditionalJump)
	if i >= 0 && i+1 < len(stmts) {
		return NewError(UnreachableStatementError, stmts[i+1].pos(), "unreachable statement")
	}
	return nil
}

func isUnconditionalJump(s Statement) bool {
	switch s.(type) {
	case *ReturnStatement, *BreakStatement:
		return true
	}
	return false
}

func checkBodyContainsReturn(f *FunctionDeclaration) error {
	if !containsReturn(f.Body.Statements) {
		return newNamedError(MissingReturnError, f.Pos, f.Name, "function %s has no return statement", f.Name)
	}
	return nil
}

// containsReturn does not descend into nested function or task declarations.
func containsReturn(stmts []Statement) bool {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ReturnStatement:
			return true
		case *IfStatement:
			if containsReturn(st.Body.Statements) {
				return true
			}
			if st.ElseBody != nil && containsReturn(st.ElseBody.Statements) {
				return true
			}
		case *WhileStatement:
			if containsReturn(st.Body.Statements) {
				return true
			}
		case *RepeatStatement:
			if containsReturn(st.Body.Statements) {
				return true
			}
		case *ForStatement:
			if containsReturn(st.Body.Statements) {
				return true
			}
		}
	}
	return false
}

func checkNotAuto(t Type, pos Pos, name string) error {
	if containsAuto(t) {
		return newNamedError(AutoTypeError, pos, name, "auto is not allowed here: %s", name)
	}
	return nil
}

func checkIsInferable(t Type, pos Pos, name string) error {
	if t == VoidType || containsAuto(t) {
		return newNamedError(AutoTypeError, pos, name, "cannot infer the type of %s from %s", name, t)
	}
	return nil
}
