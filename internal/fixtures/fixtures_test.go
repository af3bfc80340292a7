package fixtures

import "testing"

func TestAllFixturesBuildNonEmptyPrograms(t *testing.T) {
	for _, f := range All {
		prog := f.Build()
		if prog == nil || len(prog.Decls) == 0 {
			t.Errorf("fixture %q built an empty program", f.Name)
		}
	}
}

func TestLookupFindsRegisteredFixture(t *testing.T) {
	f, ok := Lookup("identity")
	if !ok || f.Build == nil {
		t.Fatal("expected to find the identity fixture")
	}
}

func TestLookupMissesUnknownName(t *testing.T) {
	if _, ok := Lookup("does-not-exist"); ok {
		t.Error("expected lookup of an unregistered fixture to fail")
	}
}
