// Package symtab implements the compiler's symbol table: the process-wide
// function-name table, the scope under construction while a function body
// is being parsed, and the array of committed per-function scopes consulted
// by every later pass (frame layout, the register allocator, code
// generation).
//
// A Table is a value the parser owns exclusively while building the AST;
// later passes only read from the committed scopes (and, in frame.Layout's
// case, stamp an Offset into each Symbol in place).
package symtab

import "fmt"

// Kind distinguishes the four roles a Symbol can play. VariableLookupKey is
// never stored in a scope; it is the kind passed to Lookup when resolving
// an identifier that could be either a parameter or an auto variable.
type Kind int

const (
	Function Kind = iota
	VariableLookupKey
	Parameter
	AutoVariable
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case VariableLookupKey:
		return "variable"
	case Parameter:
		return "parameter"
	case AutoVariable:
		return "auto"
	default:
		return "unknown"
	}
}

// Type models the single data type this language front end supports.
type Type int

const (
	NoType Type = iota
	Int32
)

// Symbol is one entry in a scope (or the function table). Offset is left
// at zero until frame.Layout stamps it; ParamOrdinal is 1-based and only
// meaningful when Kind == Parameter.
type Symbol struct {
	ID           int
	Kind         Kind
	Name         string
	Type         Type
	ParamOrdinal int
	Offset       int
}

// Table is the symbol table for one compilation: a function-name table, the
// scope currently being accumulated by the parser, and the committed scopes
// of every function definition completed so far (indexed by function id,
// starting at 1; index 0 is unused so ids can double as "no function").
type Table struct {
	functions []*Symbol
	current   []*Symbol
	committed [][]*Symbol
}

// New returns an empty Table ready to accumulate a function-name table and
// a first function scope.
func New() *Table {
	return &Table{committed: [][]*Symbol{nil}} // index 0 reserved
}

// Append registers name under kind in the appropriate collection (the
// function table for Kind == Function, the scope under construction
// otherwise). It reports false, without modifying the table, if name is
// already present in that collection. internal/parser uses this to report
// "Duplicate variable declaration" / "Duplicate argument declaration"; it
// ignores the result for Kind == Function, so a duplicate function
// definition is not reported.
func (t *Table) Append(kind Kind, name string) (*Symbol, bool) {
	list := t.scopeFor(kind)

	for _, s := range *list {
		if s.Name == name {
			return nil, false
		}
	}

	sym := &Symbol{ID: len(*list) + 1, Kind: kind, Name: name, Type: Int32}
	if kind == Parameter {
		sym.ParamOrdinal = t.countKind(Parameter) + 1
	}
	*list = append(*list, sym)
	return sym, true
}

func (t *Table) countKind(kind Kind) int {
	n := 0
	for _, s := range t.current {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func (t *Table) scopeFor(kind Kind) *[]*Symbol {
	if kind == Function {
		return &t.functions
	}
	return &t.current
}

// Lookup resolves name with first-match-wins, insertion-order semantics.
// id == 0 selects the scope under construction (or the function table, for
// kind == Function); id > 0 selects the committed scope for that function
// id. kind == Function is only valid with id == 0.
func (t *Table) Lookup(id int, kind Kind, name string) *Symbol {
	var scope []*Symbol

	switch {
	case kind == Function && id != 0:
		panic("symtab: Function lookups are only valid with id == 0")
	case kind == Function:
		scope = t.functions
	case id == 0:
		scope = t.current
	case id > 0 && id < len(t.committed):
		scope = t.committed[id]
	default:
		return nil
	}

	for _, s := range scope {
		if s.Name == name && (kind != VariableLookupKey || s.Kind == Parameter || s.Kind == AutoVariable) {
			return s
		}
	}
	return nil
}

// Commit snapshots the scope under construction into the committed-scope
// array at index id, growing the array as needed, then resets the current
// scope to empty so the next function definition starts clean.
func (t *Table) Commit(id int) {
	if id <= 0 {
		panic(fmt.Sprintf("symtab: illegal function id %d", id))
	}
	for len(t.committed) <= id {
		t.committed = append(t.committed, nil)
	}
	t.committed[id] = t.current
	t.current = nil
}

// Committed returns the symbols registered for function id (nil if none).
func (t *Table) Committed(id int) []*Symbol {
	if id <= 0 || id >= len(t.committed) {
		return nil
	}
	return t.committed[id]
}

// MaxID returns the highest function id committed so far.
func (t *Table) MaxID() int { return len(t.committed) - 1 }

// Current returns the scope presently under construction (parameters and
// auto variables registered so far for the function being parsed).
func (t *Table) Current() []*Symbol { return t.current }

// Functions returns the process-wide function-name table.
func (t *Table) Functions() []*Symbol { return t.functions }
