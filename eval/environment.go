package eval

import (
	"fmt"
	"sort"
)

type slot struct {
	typ   ValueType
	value Value
}

// Environment maps variable names to typed slots. The language has a
// single flat scope: blocks and loop bodies do not introduce new names.
type Environment struct {
	store map[string]*slot
}

func NewEnvironment() *Environment {
	return &Environment{store: map[string]*slot{}}
}

// Declare binds a new name with a fixed type.
func (e *Environment) Declare(name string, typ ValueType, v Value) error {
	if _, ok := e.store[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrRedeclared)
	}
	if v.Type() != typ {
		return fmt.Errorf("%w: cannot initialise %s %s with %s %s", ErrTypeMismatch, typ, name, v.Type(), v)
	}
	e.store[name] = &slot{typ: typ, value: v}
	return nil
}

// Assign replaces the value of an already declared name. The new value
// must have the type the name was declared with.
func (e *Environment) Assign(name string, v Value) error {
	s, ok := e.store[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUndeclared)
	}
	if v.Type() != s.typ {
		return fmt.Errorf("%w: cannot assign %s %s to %s %s", ErrTypeMismatch, v.Type(), v, s.typ, name)
	}
	s.value = v
	return nil
}

func (e *Environment) Lookup(name string) (Value, error) {
	s, ok := e.store[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUndeclared)
	}
	return s.value, nil
}

// TypeOf returns the declared type of name.
func (e *Environment) TypeOf(name string) (ValueType, bool) {
	s, ok := e.store[name]
	if !ok {
		return 0, false
	}
	return s.typ, true
}

// Names returns the declared names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Len() int { return len(e.store) }
