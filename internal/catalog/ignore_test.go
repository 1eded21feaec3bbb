// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"slices"
	"testing"
)

func entryNamed(name string, mutate func(*Module)) *Entry {
	m := &Module{Name: name}
	if mutate != nil {
		mutate(m)
	}
	return &Entry{Module: m, FileBase: name}
}

func TestExpandIgnoreLists(t *testing.T) {
	t.Parallel()

	a := entryNamed("A", func(m *Module) { m.IsFullBoss = true })
	b := entryNamed("B", func(m *Module) { m.IsSemiBoss = true })
	c := entryNamed("C", nil)
	subject := entryNamed("Subject", func(m *Module) {
		m.Ignore = []string{"+FullBoss", "-A", "X"}
	})

	entries := []*Entry{a, b, c, subject}
	ExpandIgnoreLists(entries)

	got := subject.Derived.ExpandedIgnore
	if slices.Contains(got, "A") {
		t.Errorf("expanded list should not contain A (removed by -A): %v", got)
	}
	if slices.Contains(got, "B") || slices.Contains(got, "C") {
		t.Errorf("expanded list should not contain B or C: %v", got)
	}
	if !slices.Contains(got, "X") {
		t.Errorf("expanded list should contain literal X: %v", got)
	}
}

func TestExpandIgnoreLists_MacrosUseDisplayNames(t *testing.T) {
	t.Parallel()

	boss := entryNamed("Forget Me Not", func(m *Module) {
		m.DisplayName = "Forget Me Not!"
		m.IsFullBoss = true
	})
	subject := entryNamed("Subject", func(m *Module) {
		m.Ignore = []string{"+FullBoss"}
	})

	ExpandIgnoreLists([]*Entry{boss, subject})

	want := []string{"Forget Me Not!"}
	if !slices.Equal(subject.Derived.ExpandedIgnore, want) {
		t.Errorf("ExpandedIgnore = %v, want %v", subject.Derived.ExpandedIgnore, want)
	}
}

func TestExpandIgnoreLists_OrderAndRemoval(t *testing.T) {
	t.Parallel()

	a := entryNamed("A", func(m *Module) { m.IsSemiBoss = true })
	b := entryNamed("B", func(m *Module) { m.IsSemiBoss = true })
	subject := entryNamed("Subject", func(m *Module) {
		m.Ignore = []string{"Lead", "+SemiBoss", "-B", "Tail"}
	})

	ExpandIgnoreLists([]*Entry{a, b, subject})

	want := []string{"Lead", "A", "Tail"}
	if !slices.Equal(subject.Derived.ExpandedIgnore, want) {
		t.Errorf("ExpandedIgnore = %v, want %v", subject.Derived.ExpandedIgnore, want)
	}
}

func TestExpandIgnoreLists_NoMacroLeftUntouched(t *testing.T) {
	t.Parallel()

	plain := entryNamed("Plain", func(m *Module) {
		m.Ignore = []string{"Wires", "-Wires"}
	})

	ExpandIgnoreLists([]*Entry{plain})

	if plain.Derived.ExpandedIgnore != nil {
		t.Errorf("list without macros should stay unexpanded, got %v", plain.Derived.ExpandedIgnore)
	}
	if !slices.Equal(plain.Module.Ignore, []string{"Wires", "-Wires"}) {
		t.Errorf("raw ignore list mutated: %v", plain.Module.Ignore)
	}
}
