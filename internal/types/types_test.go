package types

import "testing"

func TestLeafUniqueness(t *testing.T) {
	ctx := NewContext()
	if ctx.Int32() != ctx.Int32() {
		t.Error("Int32() should return the same instance on repeated calls")
	}
	if ctx.Int32() == ctx.Int64() {
		t.Error("Int32 and Int64 must be distinct instances")
	}
}

func TestPointerUniqueness(t *testing.T) {
	ctx := NewContext()
	i32 := ctx.Int32()
	p1 := ctx.GetPointer(i32)
	p2 := ctx.GetPointer(i32)
	if p1 != p2 {
		t.Error("GetPointer(i32) should be uniqued per pointee identity")
	}
	if ctx.GetPointer(ctx.Int64()) == p1 {
		t.Error("pointers to distinct pointees must differ")
	}
}

func TestArrayUniqueness(t *testing.T) {
	ctx := NewContext()
	i32 := ctx.Int32()
	a1 := ctx.GetArray(i32, 4)
	a2 := ctx.GetArray(i32, 4)
	if a1 != a2 {
		t.Error("GetArray should be uniqued per (element, size)")
	}
	if ctx.GetArray(i32, 8) == a1 {
		t.Error("arrays of different size must differ")
	}
}

func TestStructForwardDeclaration(t *testing.T) {
	ctx := NewContext()
	s1 := ctx.GetStruct("Point")
	if !s1.IsOpaque() {
		t.Error("freshly looked-up struct should be opaque")
	}
	if err := AppendField(s1, Field{Name: "x", Type: ctx.Int32()}); err != nil {
		t.Fatalf("AppendField: %v", err)
	}
	s2 := ctx.GetStruct("Point")
	if s1 != s2 {
		t.Error("GetStruct must return the same instance for forward declarations")
	}
	if len(s2.Fields()) != 1 {
		t.Errorf("expected 1 field visible via s2, got %d", len(s2.Fields()))
	}
}

func TestFunctionUniqueness(t *testing.T) {
	ctx := NewContext()
	i32, f64 := ctx.Int32(), ctx.Float64()
	f1 := ctx.GetFunction(i32, []*Type{i32, f64})
	f2 := ctx.GetFunction(i32, []*Type{i32, f64})
	if f1 != f2 {
		t.Error("GetFunction should be uniqued per (return, params)")
	}
	if ctx.GetFunction(f64, []*Type{i32, f64}) == f1 {
		t.Error("functions with different return types must differ")
	}
}

func TestInvalidatedLayout(t *testing.T) {
	ctx := NewContext()
	target := X64SystemVLinux()
	s := ctx.GetStruct("S")
	_ = AppendField(s, Field{Name: "a", Type: ctx.Int8()})
	_ = target.Size(s) // triggers layout query
	if err := AppendField(s, Field{Name: "b", Type: ctx.Int32()}); err != ErrInvalidatedLayout {
		t.Errorf("expected ErrInvalidatedLayout after layout query, got %v", err)
	}
}

func TestStructLayoutExample(t *testing.T) {
	// struct S { a: i8; b: i32; c: i8 } on (x64, SystemV): field_offset(S,0)=0,
	// field_offset(S,1)=4, field_offset(S,2)=8, size(S)=12, align(S)=4 (spec §8 scenario 5).
	ctx := NewContext()
	target := X64SystemVLinux()
	s := ctx.GetStruct("S")
	_ = AppendField(s, Field{Name: "a", Type: ctx.Int8()})
	_ = AppendField(s, Field{Name: "b", Type: ctx.Int32()})
	_ = AppendField(s, Field{Name: "c", Type: ctx.Int8()})

	if got := target.FieldOffset(s, 0); got != 0 {
		t.Errorf("field_offset(S,0) = %d, want 0", got)
	}
	if got := target.FieldOffset(s, 1); got != 4 {
		t.Errorf("field_offset(S,1) = %d, want 4", got)
	}
	if got := target.FieldOffset(s, 2); got != 8 {
		t.Errorf("field_offset(S,2) = %d, want 8", got)
	}
	if got := target.Size(s); got != 12 {
		t.Errorf("size(S) = %d, want 12", got)
	}
	if got := target.Align(s); got != 4 {
		t.Errorf("align(S) = %d, want 4", got)
	}
}

func TestEmptyStructLayout(t *testing.T) {
	ctx := NewContext()
	target := X64SystemVLinux()
	s := ctx.GetStruct("Empty")
	if got := target.Size(s); got != 0 {
		t.Errorf("size(empty struct) = %d, want 0", got)
	}
	if got := target.Align(s); got != 1 {
		t.Errorf("align(empty struct) = %d, want 1", got)
	}
}

func TestArrayLayout(t *testing.T) {
	ctx := NewContext()
	target := X64SystemVLinux()
	arr := ctx.GetArray(ctx.Int32(), 4)
	if got := target.Size(arr); got != 16 {
		t.Errorf("size(i32[4]) = %d, want 16", got)
	}
	if got := target.Align(arr); got != 4 {
		t.Errorf("align(i32[4]) = %d, want 4", got)
	}
	if got := target.ElementOffset(arr, 2); got != 8 {
		t.Errorf("element_offset(arr,2) = %d, want 8", got)
	}
}
