package pivot

import "fmt"

type Pos struct {
	Filename string
	Line     int
	Column   int
}

func (p Pos) String() string {
	if p.Filename == "" {
		p.Filename = "<input>"
	}
	if p.Column == 0 {
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

type Node interface {
	pos() Pos
}

type Program struct {
	Block *Block
}

type Block struct {
	Pos        Pos
	Statements []Statement
}

func (p *Program) pos() Pos {
	if p.Block == nil {
		return Pos{}
	}
	return p.Block.Pos
}
func (b *Block) pos() Pos {
	return b.Pos
}

type Statement interface {
	Node
	stmt()
}

// Declaration is anything a name can be bound to in a scope.
type Declaration interface {
	Node
	decl()
}

// Callable is a declaration that a FunctionCall may resolve to.
type Callable interface {
	Declaration
	Parameters() []*Parameter
}

// VariableDeclaration binds every target to one declared type. Resolved is
// filled by the analyzer: it equals Type unless Type is AutoType.
type VariableDeclaration struct {
	Pos      Pos
	Targets  []*IdExpression
	Type     Type
	Inits    []Expression
	Resolved Type
}

type AssignmentStatement struct {
	Pos    Pos
	Target *IdExpression
	Source Expression
}

type IfStatement struct {
	Pos       Pos
	Condition Expression
	Body      *Block
	ElseBody  *Block
}

type WhileStatement struct {
	Pos       Pos
	Condition Expression
	Body      *Block
}

type RepeatStatement struct {
	Pos       Pos
	Body      *Block
	Condition Expression
}

type ForStatement struct {
	Pos       Pos
	Init      Statement
	Condition Expression
	Update    Statement
	Body      *Block
}

type FunctionDeclaration struct {
	Pos        Pos
	Name       string
	Params     []*Parameter
	ReturnType Type
	Body       *Block
}

type TaskDeclaration struct {
	Pos    Pos
	Name   string
	Params []*Parameter
	Body   *Block
}

type Parameter struct {
	Pos  Pos
	Name string
	Type Type
}

type ReturnStatement struct {
	Pos   Pos
	Value Expression
}

type BreakStatement struct {
	Pos Pos
}

type PrintStatement struct {
	Pos  Pos
	Item Expression
}

func (v *VariableDeclaration) pos() Pos { return v.Pos }
func (a *AssignmentStatement) pos() Pos { return a.Pos }
func (i *IfStatement) pos() Pos         { return i.Pos }
func (w *WhileStatement) pos() Pos      { return w.Pos }
func (r *RepeatStatement) pos() Pos     { return r.Pos }
func (f *ForStatement) pos() Pos        { return f.Pos }
func (f *FunctionDeclaration) pos() Pos { return f.Pos }
func (t *TaskDeclaration) pos() Pos     { return t.Pos }
func (p *Parameter) pos() Pos           { return p.Pos }
func (r *ReturnStatement) pos() Pos     { return r.Pos }
func (b *BreakStatement) pos() Pos      { return b.Pos }
func (p *PrintStatement) pos() Pos      { return p.Pos }

func (v *VariableDeclaration) stmt() {}
func (a *AssignmentStatement) stmt() {}
func (i *IfStatement) stmt()         {}
func (w *WhileStatement) stmt()      {}
func (r *RepeatStatement) stmt()     {}
func (f *ForStatement) stmt()        {}
func (f *FunctionDeclaration) stmt() {}
func (t *TaskDeclaration) stmt()     {}
func (r *ReturnStatement) stmt()     {}
func (b *BreakStatement) stmt()      {}
func (p *PrintStatement) stmt()      {}
func (c *FunctionCall) stmt()        {}

func (v *VariableDeclaration) decl() {}
func (f *FunctionDeclaration) decl() {}
func (t *TaskDeclaration) decl()     {}
func (p *Parameter) decl()           {}

func (f *FunctionDeclaration) Parameters() []*Parameter { return f.Params }
func (t *TaskDeclaration) Parameters() []*Parameter     { return t.Params }

type Expression interface {
	Node
	expr()
	ResolvedType() Type
}

// IdExpression is a use of a name. Ref and Type are filled by the analyzer.
type IdExpression struct {
	Pos  Pos
	Id   string
	Ref  Declaration
	Type Type
}

type NumericLiteral struct {
	Pos   Pos
	Value float64
	Type  Type
}

type StringLiteral struct {
	Pos   Pos
	Value string
	Type  Type
}

type BooleanLiteral struct {
	Pos   Pos
	Value bool
	Type  Type
}

type CharacterLiteral struct {
	Pos   Pos
	Value rune
	Type  Type
}

type BinaryExpression struct {
	Pos   Pos
	Op    string
	Left  Expression
	Right Expression
	Type  Type
}

type UnaryExpression struct {
	Pos     Pos
	Op      string
	Operand Expression
	Type    Type
}

type ListExpression struct {
	Pos      Pos
	Elements []Expression
	Type     Type
}

type DictionaryExpression struct {
	Pos   Pos
	Pairs []*KeyValuePair
	Type  Type
}

type KeyValuePair struct {
	Pos   Pos
	Key   Expression
	Value Expression
}

// FunctionCall is both an expression and a statement. Callee and Type are
// filled by the analyzer; a call to a task has type VoidType.
type FunctionCall struct {
	Pos    Pos
	Name   string
	Args   []Expression
	Callee Callable
	Type   Type
}

func (i *IdExpression) pos() Pos         { return i.Pos }
func (n *NumericLiteral) pos() Pos       { return n.Pos }
func (s *StringLiteral) pos() Pos        { return s.Pos }
func (b *BooleanLiteral) pos() Pos       { return b.Pos }
func (c *CharacterLiteral) pos() Pos     { return c.Pos }
func (b *BinaryExpression) pos() Pos     { return b.Pos }
func (u *UnaryExpression) pos() Pos      { return u.Pos }
func (l *ListExpression) pos() Pos       { return l.Pos }
func (d *DictionaryExpression) pos() Pos { return d.Pos }
func (k *KeyValuePair) pos() Pos         { return k.Pos }
func (c *FunctionCall) pos() Pos         { return c.Pos }

func (i *IdExpression) expr()         {}
func (n *NumericLiteral) expr()       {}
func (s *StringLiteral) expr()        {}
func (b *BooleanLiteral) expr()       {}
func (c *CharacterLiteral) expr()     {}
func (b *BinaryExpression) expr()     {}
func (u *UnaryExpression) expr()      {}
func (l *ListExpression) expr()       {}
func (d *DictionaryExpression) expr() {}
func (c *FunctionCall) expr()         {}

func (i *IdExpression) ResolvedType() Type         { return i.Type }
func (n *NumericLiteral) ResolvedType() Type       { return n.Type }
func (s *StringLiteral) ResolvedType() Type        { return s.Type }
func (b *BooleanLiteral) ResolvedType() Type       { return b.Type }
func (c *CharacterLiteral) ResolvedType() Type     { return c.Type }
func (b *BinaryExpression) ResolvedType() Type     { return b.Type }
func (u *UnaryExpression) ResolvedType() Type      { return u.Type }
func (l *ListExpression) ResolvedType() Type       { return l.Type }
func (d *DictionaryExpression) ResolvedType() Type { return d.Type }
func (c *FunctionCall) ResolvedType() Type         { return c.Type }
