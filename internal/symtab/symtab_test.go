package symtab_test

import (
	"testing"

	"tinycc.dev/compiler/internal/symtab"
)

func TestAppendAssignsParamOrdinal(t *testing.T) {
	table := symtab.New()
	a, ok := table.Append(symtab.Parameter, "a")
	if !ok {
		t.Fatalf("Append(a) = false, want true")
	}
	if a.ParamOrdinal != 1 {
		t.Errorf("a.ParamOrdinal = %d, want 1", a.ParamOrdinal)
	}

	b, _ := table.Append(symtab.Parameter, "b")
	if b.ParamOrdinal != 2 {
		t.Errorf("b.ParamOrdinal = %d, want 2", b.ParamOrdinal)
	}

	// An auto variable declared after the parameters gets no parameter
	// ordinal.
	v, _ := table.Append(symtab.AutoVariable, "v")
	if v.ParamOrdinal != 0 {
		t.Errorf("v.ParamOrdinal = %d, want 0 (not a parameter)", v.ParamOrdinal)
	}
}

func TestAppendRejectsDuplicateInSameScope(t *testing.T) {
	table := symtab.New()
	table.Append(symtab.Parameter, "a")
	_, ok := table.Append(symtab.AutoVariable, "a")
	if ok {
		t.Errorf("Append(a) a second time in the same scope should fail")
	}
}

func TestAppendFunctionAndVariableScopesAreIndependent(t *testing.T) {
	table := symtab.New()
	table.Append(symtab.Function, "f")
	_, ok := table.Append(symtab.Parameter, "f")
	if !ok {
		t.Errorf("a parameter named the same as a function should still be appendable")
	}
}

func TestCommitSnapshotsAndResetsCurrentScope(t *testing.T) {
	table := symtab.New()
	table.Append(symtab.Parameter, "a")
	table.Commit(1)

	if len(table.Current()) != 0 {
		t.Errorf("Current() after Commit should be empty, got %d entries", len(table.Current()))
	}
	committed := table.Committed(1)
	if len(committed) != 1 || committed[0].Name != "a" {
		t.Errorf("Committed(1) = %+v, want one symbol named a", committed)
	}

	table.Append(symtab.Parameter, "b")
	table.Commit(2)
	if table.MaxID() != 2 {
		t.Errorf("MaxID() = %d, want 2", table.MaxID())
	}
	// The second function's scope must not see the first function's "a".
	if table.Lookup(2, symtab.VariableLookupKey, "a") != nil {
		t.Errorf("Lookup should not find function 1's symbols under function 2's id")
	}
}

func TestLookupVariableKeyMatchesParameterOrAutoOnly(t *testing.T) {
	table := symtab.New()
	table.Append(symtab.Function, "f")
	table.Append(symtab.Parameter, "f") // shadows the function name in this scope

	sym := table.Lookup(0, symtab.VariableLookupKey, "f")
	if sym == nil || sym.Kind != symtab.Parameter {
		t.Errorf("Lookup(VariableLookupKey, f) should resolve the parameter, got %+v", sym)
	}

	fn := table.Lookup(0, symtab.Function, "f")
	if fn == nil || fn.Kind != symtab.Function {
		t.Errorf("Lookup(Function, f) should resolve the function entry, got %+v", fn)
	}
}

func TestLookupUnknownFunctionIDReturnsNil(t *testing.T) {
	table := symtab.New()
	if table.Lookup(99, symtab.VariableLookupKey, "a") != nil {
		t.Errorf("Lookup with an uncommitted function id should return nil")
	}
}

func TestKindString(t *testing.T) {
	cases := map[symtab.Kind]string{
		symtab.Function:          "function",
		symtab.VariableLookupKey: "variable",
		symtab.Parameter:         "parameter",
		symtab.AutoVariable:      "auto",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
