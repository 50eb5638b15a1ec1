package pivot

import "fmt"

type Type interface {
	fmt.Stringer
	IsCompatibleWith(other Type) bool
	typ()
}

// PrimitiveType values are singletons; compatibility is identity.
type PrimitiveType struct {
	name string
}

type ListType struct {
	Element Type
}

type DictType struct {
	Key   Type
	Value Type
}

var (
	NumType    = &PrimitiveType{name: "num"}
	StringType = &PrimitiveType{name: "string"}
	BoolType   = &PrimitiveType{name: "bool"}
	CharType   = &PrimitiveType{name: "char"}
	AutoType   = &PrimitiveType{name: "auto"}
	// VoidType is the type of a call to a task. Nothing is compatible with it.
	VoidType = &PrimitiveType{name: "void"}
)

func NewListType(element Type) *ListType {
	return &ListType{Element: element}
}

func NewDictType(key, value Type) *DictType {
	return &DictType{Key: key, Value: value}
}

func (p *PrimitiveType) typ() {}
func (l *ListType) typ()      {}
func (d *DictType) typ()      {}

func (p *PrimitiveType) String() string {
	return p.name
}

func (l *ListType) String() string {
	return fmt.Sprintf("[%s]", l.Element)
}

func (d *DictType) String() string {
	return fmt.Sprintf("{%s:%s}", d.Key, d.Value)
}

func (p *PrimitiveType) IsCompatibleWith(other Type) bool {
	if p == VoidType {
		return false
	}
	return Type(p) == other
}

// IsCompatibleWith compares element types structurally. An AutoType element
// comes from an empty literal and matches any element type.
func (l *ListType) IsCompatibleWith(other Type) bool {
	o, ok := other.(*ListType)
	if !ok {
		return false
	}
	return elementsCompatible(l.Element, o.Element)
}

func (d *DictType) IsCompatibleWith(other Type) bool {
	o, ok := other.(*DictType)
	if !ok {
		return false
	}
	return elementsCompatible(d.Key, o.Key) && elementsCompatible(d.Value, o.Value)
}

func elementsCompatible(a, b Type) bool {
	if a == AutoType || b == AutoType {
		return true
	}
	return a.IsCompatibleWith(b)
}

func isNum(t Type) bool {
	return t == NumType
}

func isBool(t Type) bool {
	return t == BoolType
}

func isNumStringOrChar(t Type) bool {
	return t == NumType || t == StringType || t == CharType
}

// containsAuto reports whether t still needs inference.
func containsAuto(t Type) bool {
	switch tp := t.(type) {
	case *PrimitiveType:
		return tp == AutoType
	case *ListType:
		return containsAuto(tp.Element)
	case *DictType:
		return containsAuto(tp.Key) || containsAuto(tp.Value)
	}
	panic("unreachable")
}
