package pivot

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type ScopeKind int

const (
	GlobalScope ScopeKind = iota
	BlockScope
	FunctionScope
	TaskScope
	LoopScope
)

func (k ScopeKind) String() string {
	switch k {
	case GlobalScope:
		return "global"
	case BlockScope:
		return "block"
	case FunctionScope:
		return "function"
	case TaskScope:
		return "task"
	case LoopScope:
		return "loop"
	}
	panic("unreachable")
}

// ScopeId indexes Scopes. Parents always have a smaller id than their
// children.
type ScopeId int

const NoScope ScopeId = -1

type scope struct {
	parent   ScopeId
	kind     ScopeKind
	names    map[string]Declaration
	function *FunctionDeclaration
	task     *TaskDeclaration
	inLoop   bool
}

// Scopes is the arena holding every scope created during one analysis.
type Scopes struct {
	scopes []scope
}

func NewScopes() (*Scopes, ScopeId) {
	s := &Scopes{
		scopes: []scope{},
	}
	return s, s.push(NoScope, GlobalScope)
}

func (s *Scopes) push(parent ScopeId, kind ScopeKind) ScopeId {
	sc := scope{
		parent: parent,
		kind:   kind,
		names:  map[string]Declaration{},
	}
	if parent != NoScope {
		p := s.scopes[parent]
		sc.function = p.function
		sc.task = p.task
		sc.inLoop = p.inLoop
	}
	id := ScopeId(len(s.scopes))
	s.scopes = append(s.scopes, sc)
	return id
}

func (s *Scopes) ChildForBlock(parent ScopeId) ScopeId {
	return s.push(parent, BlockScope)
}

// ChildForFunctionBody starts a region where return is checked against f
// and break is illegal until a loop is entered.
func (s *Scopes) ChildForFunctionBody(parent ScopeId, f *FunctionDeclaration) ScopeId {
	id := s.push(parent, FunctionScope)
	sc := &s.scopes[id]
	sc.function = f
	sc.task = nil
	sc.inLoop = false
	return id
}

func (s *Scopes) ChildForTaskBody(parent ScopeId, t *TaskDeclaration) ScopeId {
	id := s.push(parent, TaskScope)
	sc := &s.scopes[id]
	sc.function = nil
	sc.task = t
	sc.inLoop = false
	return id
}

func (s *Scopes) ChildForLoop(parent ScopeId) ScopeId {
	id := s.push(parent, LoopScope)
	s.scopes[id].inLoop = true
	return id
}

func (s *Scopes) Lookup(id ScopeId, name string, pos Pos) (Declaration, error) {
	for cur := id; cur != NoScope; cur = s.scopes[cur].parent {
		if d, ok := s.scopes[cur].names[name]; ok {
			return d, nil
		}
	}
	return nil, newNamedError(UndefinedReferenceError, pos, name, "undefined reference: %s", name)
}

func (s *Scopes) Add(id ScopeId, name string, d Declaration) error {
	names := s.scopes[id].names
	if _, ok := names[name]; ok {
		return newNamedError(DuplicateBindingError, d.pos(), name, "name is already declared: %s", name)
	}
	names[name] = d
	return nil
}

func (s *Scopes) Parent(id ScopeId) ScopeId {
	return s.scopes[id].parent
}

func (s *Scopes) Kind(id ScopeId) ScopeKind {
	return s.scopes[id].kind
}

// Function returns the function whose body encloses id, or nil when the
// nearest declaration boundary is a task or the program itself.
func (s *Scopes) Function(id ScopeId) *FunctionDeclaration {
	return s.scopes[id].function
}

func (s *Scopes) Task(id ScopeId) *TaskDeclaration {
	return s.scopes[id].task
}

func (s *Scopes) InLoop(id ScopeId) bool {
	return s.scopes[id].inLoop
}

// Names lists the names bound directly in id, sorted.
func (s *Scopes) Names(id ScopeId) []string {
	names := maps.Keys(s.scopes[id].names)
	slices.Sort(names)
	return names
}

func (s *Scopes) Len() int {
	return len(s.scopes)
}
