// Package attr implements the take-and-check attribute bookkeeping used
// while lowering a declaration's `#[...]` attributes. It mirrors the
// take_selection / take_word / take pattern used throughout
// lib/trans/into_model.rs: the lowerer takes each attribute and item it
// understands, and whatever is left over at the end is reported as an
// unused-attribute diagnostic, rather than silently ignored.
package attr

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/diag"
)

// Set is the unconsumed attributes attached to one declaration, member,
// sub-type, or endpoint.
type Set struct {
	span  diag.Span
	byKey map[string]*ast.Attribute
	order []string
}

// NewSet indexes attrs by key. Duplicate keys are reported immediately,
// since a declaration cannot sensibly carry the same attribute twice.
func NewSet(span diag.Span, attrs []ast.Located[ast.Attribute], diags *diag.List) *Set {
	s := &Set{span: span, byKey: map[string]*ast.Attribute{}}
	for _, located := range attrs {
		a := located.Value
		if _, ok := s.byKey[a.Key]; ok {
			diags.Errorf(located.Span, "duplicate attribute `%s`", a.Key)
			continue
		}
		s.byKey[a.Key] = &a
		s.order = append(s.order, a.Key)
	}
	return s
}

// TakeWord removes a word-form attribute (`#[deprecated]`) and reports
// whether it was present. An attribute written with a parenthesized item
// list instead is left in the set, so CheckUnused reports it as an error.
func (s *Set) TakeWord(key string) bool {
	a, ok := s.byKey[key]
	if !ok || a.Kind != ast.AttrWord {
		return false
	}
	delete(s.byKey, key)
	return true
}

// TakeSelection removes and returns a list-form attribute
// (`#[http(method = "GET")]`) as a Selection the caller can further
// drain item by item.
func (s *Set) TakeSelection(key string) (*Selection, bool) {
	a, ok := s.byKey[key]
	if !ok || a.Kind != ast.AttrList {
		return nil, false
	}
	delete(s.byKey, key)
	sel := &Selection{byName: map[string]*ast.AttributeItem{}}
	for i := range a.Items {
		item := &a.Items[i]
		if item.Kind == ast.ItemWord {
			sel.words = append(sel.words, item.Word)
			continue
		}
		sel.byName[item.Name] = item
	}
	return sel, true
}

// CheckUnused reports every attribute that was never taken.
func (s *Set) CheckUnused(diags *diag.List) {
	for _, key := range s.order {
		if a, ok := s.byKey[key]; ok {
			diags.Errorf(a.Span, "unknown attribute `%s`", key)
		}
	}
}

// Selection is one list-form attribute's items, drained by name as the
// lowerer recognizes each one.
type Selection struct {
	words  []string
	byName map[string]*ast.AttributeItem
}

// Take removes and returns a `name = value` item's Value.
func (s *Selection) Take(name string) (ast.Value, bool) {
	item, ok := s.byName[name]
	if !ok {
		return ast.Value{}, false
	}
	delete(s.byName, name)
	return item.Value, true
}

// TakeWords removes and returns every bare-word item in the selection.
func (s *Selection) TakeWords() []string {
	words := s.words
	s.words = nil
	return words
}

// CheckUnused reports every item that was never taken.
func (s *Selection) CheckUnused(key string, diags *diag.List) {
	for _, w := range s.words {
		diags.Errorf(diag.Span{}, "unknown attribute item `%s` in `%s`", w, key)
	}
	for name, item := range s.byName {
		diags.Errorf(item.Span, "unknown attribute item `%s` in `%s`", name, key)
	}
}
