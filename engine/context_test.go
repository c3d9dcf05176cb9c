package engine

import "testing"

func TestScriptContextScopes(t *testing.T) {
	sc := NewScriptContext()

	if b := sc.Bindings(EngineScope); b == nil {
		t.Fatal("engine scope should exist")
	}
	if b := sc.Bindings(GlobalScope); b != nil {
		t.Errorf("global scope should be unset, got %v", b)
	}

	sc.SetAttribute("shared", "global", GlobalScope)
	sc.SetAttribute("shared", "engine", EngineScope)
	sc.SetAttribute("onlyGlobal", 1, GlobalScope)

	if v, _ := sc.Attribute("shared"); v != "engine" {
		t.Errorf("engine scope should shadow global, got %v", v)
	}
	if v, ok := sc.Attribute("onlyGlobal"); !ok || v != 1 {
		t.Errorf("expected onlyGlobal=1, got %v, %v", v, ok)
	}
	if v, _ := sc.AttributeIn("shared", GlobalScope); v != "global" {
		t.Errorf("expected global value, got %v", v)
	}
	if _, ok := sc.Attribute("missing"); ok {
		t.Error("missing attribute should not be found")
	}
}

func TestScriptContextRemove(t *testing.T) {
	sc := NewScriptContext()
	sc.SetAttribute("k", "v", EngineScope)

	v, ok := sc.RemoveAttribute("k", EngineScope)
	if !ok || v != "v" {
		t.Errorf("expected removed k=v, got %v, %v", v, ok)
	}
	if _, ok := sc.RemoveAttribute("k", EngineScope); ok {
		t.Error("second remove should report missing")
	}
	if _, ok := sc.RemoveAttribute("k", GlobalScope); ok {
		t.Error("remove from unset scope should report missing")
	}
}

func TestScriptContextSetBindings(t *testing.T) {
	sc := NewScriptContext()
	b := Bindings{"a": 1}
	sc.SetBindings(GlobalScope, b)

	if v, ok := sc.Attribute("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %v, %v", v, ok)
	}

	sc.SetBindings(GlobalScope, nil)
	if sc.Bindings(GlobalScope) != nil {
		t.Error("nil bindings should remove the scope")
	}
}
