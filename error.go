package pivot

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	UndefinedReferenceError ErrorKind = iota
	DuplicateBindingError
	TypeMismatchError
	InconsistentListTypeError
	InconsistentDictTypeError
	ArgumentCountMismatchError
	ArgumentTypeMismatchError
	InvalidReturnContextError
	ReturnTypeMismatchError
	InvalidBreakContextError
	UnreachableStatementError
	NonBooleanConditionError
	NotCallableError
	InitializerCountMismatchError
	MissingReturnError
	NotAValueError
	InvalidAssignmentTargetError
	OperandTypeError
	AutoTypeError
	NestingTooDeepError
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedReferenceError:
		return "UndefinedReferenceError"
	case DuplicateBindingError:
		return "DuplicateBindingError"
	case TypeMismatchError:
		return "TypeMismatchError"
	case InconsistentListTypeError:
		return "InconsistentListTypeError"
	case InconsistentDictTypeError:
		return "InconsistentDictTypeError"
	case ArgumentCountMismatchError:
		return "ArgumentCountMismatchError"
	case ArgumentTypeMismatchError:
		return "ArgumentTypeMismatchError"
	case InvalidReturnContextError:
		return "InvalidReturnContextError"
	case ReturnTypeMismatchError:
		return "ReturnTypeMismatchError"
	case InvalidBreakContextError:
		return "InvalidBreakContextError"
	case UnreachableStatementError:
		return "UnreachableStatementError"
	case NonBooleanConditionError:
		return "NonBooleanConditionError"
	case NotCallableError:
		return "NotCallableError"
	case InitializerCountMismatchError:
		return "InitializerCountMismatchError"
	case MissingReturnError:
		return "MissingReturnError"
	case NotAValueError:
		return "NotAValueError"
	case InvalidAssignmentTargetError:
		return "InvalidAssignmentTargetError"
	case OperandTypeError:
		return "OperandTypeError"
	case AutoTypeError:
		return "AutoTypeError"
	case NestingTooDeepError:
		return "NestingTooDeepError"
	}
	panic("unreachable")
}

// Error is the single failure produced by an analysis. Name is the offending
// identifier when there is one.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	Name string
	msg  string
}

func NewError(kind ErrorKind, pos Pos, format string, args ...interface{}) Error {
	return Error{
		Kind: kind,
		Pos:  pos,
		msg:  fmt.Sprintf(format, args...),
	}
}

func newNamedError(kind ErrorKind, pos Pos, name string, format string, args ...interface{}) Error {
	err := NewError(kind, pos, format, args...)
	err.Name = name
	return err
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Pos, e.msg)
}

func KindOf(err error) (ErrorKind, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
