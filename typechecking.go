package pivot

import (
	"github.com/cznic/mathutil"
	"github.com/rs/zerolog"
)

// Analyzer resolves names and types of a Program in place. One Analyzer
// must not analyze two trees at the same time.
type Analyzer struct {
	Config Config
	Logger zerolog.Logger

	scopes *Scopes
	bodies map[Declaration]ScopeId
	depth  int
}

func NewAnalyzer(cfg Config, logger zerolog.Logger) *Analyzer {
	cfg.MaxDepth = mathutil.Clamp(cfg.MaxDepth, MIN_MAX_DEPTH, MAX_MAX_DEPTH)
	return &Analyzer{
		Config: cfg,
		Logger: logger,
	}
}

// Analyze checks p with the default configuration.
func Analyze(p *Program) error {
	return NewAnalyzer(DefaultConfig(), zerolog.Nop()).Analyze(p)
}

func (a *Analyzer) Analyze(p *Program) error {
	scopes, global := NewScopes()
	a.scopes = scopes
	a.bodies = make(map[Declaration]ScopeId)
	a.depth = 0
	if err := a.analyzeBlock(p.Block, global); err != nil {
		a.Logger.Debug().Err(err).Msg("analysis failed")
		return err
	}
	a.Logger.Info().Int("scopes", scopes.Len()).Msg("analysis finished")
	return nil
}

// Scopes returns the scopes built by the last call to Analyze.
func (a *Analyzer) Scopes() *Scopes {
	return a.scopes
}

func (a *Analyzer) enter(n Node) error {
	a.depth++
	if a.depth > a.Config.MaxDepth {
		return NewError(NestingTooDeepError, n.pos(), "nesting is deeper than %d", a.Config.MaxDepth)
	}
	return nil
}

func (a *Analyzer) leave() {
	a.depth--
}

// analyzeBlock hoists every function and task signature of the block before
// analyzing its statements in order.
func (a *Analyzer) analyzeBlock(b *Block, parent ScopeId) error {
	local := a.scopes.ChildForBlock(parent)
	a.Logger.Debug().Int("scope", int(local)).Int("statements", len(b.Statements)).Msg("entered block")
	for _, s := range b.Statements {
		switch d := s.(type) {
		case *FunctionDeclaration:
			if err := a.analyzeFunctionSignature(d, local); err != nil {
				return err
			}
			if err := a.scopes.Add(local, d.Name, d); err != nil {
				return err
			}
		case *TaskDeclaration:
			if err := a.analyzeTaskSignature(d, local); err != nil {
				return err
			}
			if err := a.scopes.Add(local, d.Name, d); err != nil {
				return err
			}
		}
	}
	for _, s := range b.Statements {
		if err := a.analyzeStmt(s, local); err != nil {
			return err
		}
	}
	if e := a.Logger.Debug(); e.Enabled() {
		e.Int("scope", int(local)).Strs("names", a.scopes.Names(local)).Msg("left block")
	}
	return checkStatementsAreReachable(b.Statements)
}

func (a *Analyzer) analyzeFunctionSignature(f *FunctionDeclaration, scope ScopeId) error {
	body := a.scopes.ChildForFunctionBody(scope, f)
	for _, p := range f.Params {
		if err := a.analyzeParameter(p, body); err != nil {
			return err
		}
	}
	if err := checkNotAuto(f.ReturnType, f.Pos, f.Name); err != nil {
		return err
	}
	a.bodies[f] = body
	a.Logger.Debug().Str("kind", "function").Str("name", f.Name).Int("scope", int(body)).Msg("hoisted signature")
	return nil
}

func (a *Analyzer) analyzeTaskSignature(t *TaskDeclaration, scope ScopeId) error {
	body := a.scopes.ChildForTaskBody(scope, t)
	for _, p := range t.Params {
		if err := a.analyzeParameter(p, body); err != nil {
			return err
		}
	}
	a.bodies[t] = body
	a.Logger.Debug().Str("kind", "task").Str("name", t.Name).Int("scope", int(body)).Msg("hoisted signature")
	return nil
}

func (a *Analyzer) analyzeParameter(p *Parameter, body ScopeId) error {
	if err := checkNotAuto(p.Type, p.Pos, p.Name); err != nil {
		return err
	}
	return a.scopes.Add(body, p.Name, p)
}

func (a *Analyzer) analyzeStmt(stmt Statement, scope ScopeId) error {
	if err := a.enter(stmt); err != nil {
		return err
	}
	defer a.leave()
	switch s := stmt.(type) {
	case *VariableDeclaration:
		return a.analyzeVariableDeclaration(s, scope)
	case *AssignmentStatement:
		return a.analyzeAssignment(s, scope)
	case *IfStatement:
		if err := a.analyzeCondition(s.Condition, scope); err != nil {
			return err
		}
		if err := a.analyzeBlock(s.Body, scope); err != nil {
			return err
		}
		if s.ElseBody != nil {
			return a.analyzeBlock(s.ElseBody, scope)
		}
		return nil
	case *WhileStatement:
		if err := a.analyzeCondition(s.Condition, scope); err != nil {
			return err
		}
		return a.analyzeBlock(s.Body, a.scopes.ChildForLoop(scope))
	case *RepeatStatement:
		if err := a.analyzeBlock(s.Body, a.scopes.ChildForLoop(scope)); err != nil {
			return err
		}
		return a.analyzeCondition(s.Condition, scope)
	case *ForStatement:
		return a.analyzeFor(s, scope)
	case *FunctionDeclaration:
		body, ok := a.bodies[s]
		if !ok {
			panic("unreachable")
		}
		if err := a.analyzeBlock(s.Body, body); err != nil {
			return err
		}
		if a.Config.RequireFunctionReturn {
			return checkBodyContainsReturn(s)
		}
		return nil
	case *TaskDeclaration:
		body, ok := a.bodies[s]
		if !ok {
			panic("unreachable")
		}
		return a.analyzeBlock(s.Body, body)
	case *FunctionCall:
		return a.analyzeCall(s, scope)
	case *ReturnStatement:
		f, err := checkReturnContext(a.scopes, scope, s)
		if err != nil {
			return err
		}
		if err := a.analyzeExpr(s.Value, scope); err != nil {
			return err
		}
		return checkReturnMatchesFunctionReturnType(s.Value, f)
	case *BreakStatement:
		return checkBreakWithinLoop(a.scopes, scope, s)
	case *PrintStatement:
		if err := a.analyzeExpr(s.Item, scope); err != nil {
			return err
		}
		return checkHasValue(s.Item)
	}
	panic("unreachable")
}

func (a *Analyzer) analyzeCondition(cond Expression, scope ScopeId) error {
	if err := a.analyzeExpr(cond, scope); err != nil {
		return err
	}
	return checkConditionIsBoolean(cond)
}

// analyzeFor keeps the loop variable inside the loop scope.
func (a *Analyzer) analyzeFor(s *ForStatement, scope ScopeId) error {
	loop := a.scopes.ChildForLoop(scope)
	if s.Init != nil {
		if err := a.analyzeStmt(s.Init, loop); err != nil {
			return err
		}
	}
	if err := a.analyzeCondition(s.Condition, loop); err != nil {
		return err
	}
	if s.Update != nil {
		if err := a.analyzeStmt(s.Update, loop); err != nil {
			return err
		}
	}
	return a.analyzeBlock(s.Body, loop)
}

func (a *Analyzer) analyzeVariableDeclaration(v *VariableDeclaration, scope ScopeId) error {
	if len(v.Targets) == 0 || len(v.Targets) != len(v.Inits) {
		return NewError(InitializerCountMismatchError, v.Pos, "%d names declared, but %d values given", len(v.Targets), len(v.Inits))
	}
	for _, init := range v.Inits {
		if err := a.analyzeExpr(init, scope); err != nil {
			return err
		}
	}
	resolved := v.Type
	if v.Type == AutoType {
		for i, init := range v.Inits {
			if err := checkIsInferable(init.ResolvedType(), init.pos(), v.Targets[i].Id); err != nil {
				return err
			}
		}
		resolved = v.Inits[0].ResolvedType()
		for i, init := range v.Inits[1:] {
			if err := checkAssignable(v.Targets[i+1].Id, resolved, init); err != nil {
				return err
			}
		}
	} else {
		if err := checkNotAuto(v.Type, v.Pos, v.Targets[0].Id); err != nil {
			return err
		}
		for i, init := range v.Inits {
			if err := checkAssignable(v.Targets[i].Id, v.Type, init); err != nil {
				return err
			}
		}
	}
	v.Resolved = resolved
	for _, target := range v.Targets {
		target.Ref = v
		target.Type = resolved
		if err := a.scopes.Add(scope, target.Id, v); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeAssignment(s *AssignmentStatement, scope ScopeId) error {
	d, err := a.scopes.Lookup(scope, s.Target.Id, s.Target.Pos)
	if err != nil {
		return err
	}
	t, ok := variableType(d)
	if !ok {
		return newNamedError(InvalidAssignmentTargetError, s.Target.Pos, s.Target.Id, "cannot assign to %s", s.Target.Id)
	}
	s.Target.Ref = d
	s.Target.Type = t
	if err := a.analyzeExpr(s.Source, scope); err != nil {
		return err
	}
	return checkAssignable(s.Target.Id, t, s.Source)
}

func variableType(d Declaration) (Type, bool) {
	switch dc := d.(type) {
	case *VariableDeclaration:
		return dc.Resolved, true
	case *Parameter:
		return dc.Type, true
	}
	return nil, false
}

func (a *Analyzer) analyzeExpr(expr Expression, scope ScopeId) error {
	if err := a.enter(expr); err != nil {
		return err
	}
	defer a.leave()
	switch e := expr.(type) {
	case *IdExpression:
		d, err := a.scopes.Lookup(scope, e.Id, e.Pos)
		if err != nil {
			return err
		}
		t, ok := variableType(d)
		if !ok {
			return newNamedError(NotAValueError, e.Pos, e.Id, "%s is not a value", e.Id)
		}
		e.Ref = d
		e.Type = t
		return nil
	case *NumericLiteral:
		e.Type = NumType
		return nil
	case *StringLiteral:
		e.Type = StringType
		return nil
	case *BooleanLiteral:
		e.Type = BoolType
		return nil
	case *CharacterLiteral:
		e.Type = CharType
		return nil
	case *BinaryExpression:
		return a.analyzeBinary(e, scope)
	case *UnaryExpression:
		return a.analyzeUnary(e, scope)
	case *ListExpression:
		for _, el := range e.Elements {
			if err := a.analyzeExpr(el, scope); err != nil {
				return err
			}
			if err := checkHasValue(el); err != nil {
				return err
			}
		}
		if err := checkListHasConsistentTypes(e); err != nil {
			return err
		}
		e.Type = NewListType(AutoType)
		if len(e.Elements) > 0 {
			e.Type = NewListType(e.Elements[0].ResolvedType())
		}
		return nil
	case *DictionaryExpression:
		for _, p := range e.Pairs {
			for _, part := range []Expression{p.Key, p.Value} {
				if err := a.analyzeExpr(part, scope); err != nil {
					return err
				}
				if err := checkHasValue(part); err != nil {
					return err
				}
			}
		}
		if err := checkDictHasConsistentTypes(e); err != nil {
			return err
		}
		e.Type = NewDictType(AutoType, AutoType)
		if len(e.Pairs) > 0 {
			e.Type = NewDictType(e.Pairs[0].Key.ResolvedType(), e.Pairs[0].Value.ResolvedType())
		}
		return nil
	case *FunctionCall:
		return a.analyzeCall(e, scope)
	}
	panic("unreachable")
}

func (a *Analyzer) analyzeBinary(e *BinaryExpression, scope ScopeId) error {
	if err := a.analyzeExpr(e.Left, scope); err != nil {
		return err
	}
	if err := a.analyzeExpr(e.Right, scope); err != nil {
		return err
	}
	switch e.Op {
	case "+":
		if err := checkIsNumStringOrChar(e.Op, e.Left); err != nil {
			return err
		}
		if err := checkIsNumStringOrChar(e.Op, e.Right); err != nil {
			return err
		}
		if e.Left.ResolvedType().IsCompatibleWith(e.Right.ResolvedType()) {
			e.Type = e.Left.ResolvedType()
		} else {
			e.Type = StringType
		}
	case "-", "*", "/", "%", "**":
		if err := a.checkBothNum(e); err != nil {
			return err
		}
		e.Type = NumType
	case "<", "<=", ">", ">=":
		if err := a.checkBothNum(e); err != nil {
			return err
		}
		e.Type = BoolType
	case "==", "!=":
		if err := checkComparable(e.Op, e.Left, e.Right); err != nil {
			return err
		}
		e.Type = BoolType
	case "and", "or", "&&", "||":
		if a.Config.StrictLogicalOperands {
			if err := checkIsBool(e.Op, e.Left); err != nil {
				return err
			}
			if err := checkIsBool(e.Op, e.Right); err != nil {
				return err
			}
		}
		e.Type = BoolType
	default:
		return NewError(OperandTypeError, e.Pos, "unknown binary operator: %s", e.Op)
	}
	return nil
}

func (a *Analyzer) checkBothNum(e *BinaryExpression) error {
	if err := checkIsNum(e.Op, e.Left); err != nil {
		return err
	}
	return checkIsNum(e.Op, e.Right)
}

func (a *Analyzer) analyzeUnary(e *UnaryExpression, scope ScopeId) error {
	if err := a.analyzeExpr(e.Operand, scope); err != nil {
		return err
	}
	switch e.Op {
	case "!", "not":
		if err := checkIsBool(e.Op, e.Operand); err != nil {
			return err
		}
		e.Type = BoolType
	case "-":
		check := checkIsNum
		if a.Config.AllowBooleanNegation {
			check = checkIsNumOrBool
		}
		if err := check(e.Op, e.Operand); err != nil {
			return err
		}
		e.Type = e.Operand.ResolvedType()
	default:
		return NewError(OperandTypeError, e.Pos, "unknown unary operator: %s", e.Op)
	}
	return nil
}

func (a *Analyzer) analyzeCall(c *FunctionCall, scope ScopeId) error {
	d, err := a.scopes.Lookup(scope, c.Name, c.Pos)
	if err != nil {
		return err
	}
	callee, err := checkIsCallable(c, d)
	if err != nil {
		return err
	}
	for _, arg := range c.Args {
		if err := a.analyzeExpr(arg, scope); err != nil {
			return err
		}
	}
	if err := checkArgsMatchParameters(c, callee.Parameters()); err != nil {
		return err
	}
	c.Callee = callee
	switch cl := callee.(type) {
	case *FunctionDeclaration:
		c.Type = cl.ReturnType
	case *TaskDeclaration:
		c.Type = VoidType
	default:
		panic("unreachable")
	}
	return nil
}
