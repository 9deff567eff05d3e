package reflection

import (
	"fmt"
	"reflect"
)

//go:generate go tool stringer -type=InvokerKind -output=invokerkind_string.go

type InvokerKind int

const (
	_ InvokerKind = iota // skip zero value, use it as a default (invalid) value for InvokerKind

	KindMethodGet
	KindMethodSet
	KindFieldGet
	KindFieldSet
	KindAmbiguous
)

// Invoker is a uniform invocable handle to one side of a property: a 0-arg
// accessor method, a 1-arg mutator method, a direct field read or write, or
// an ambiguous placeholder that fails every invocation with a precomputed
// diagnostic. The variant is selected by kind, not by dynamic dispatch.
type Invoker struct {
	kind    InvokerKind
	prop    string
	member  string // method or field name
	typ     reflect.Type
	index   []int // receiver path (methods) or field path (fields)
	bypass  bool
	message string // ambiguity diagnostic, KindAmbiguous only
}

func newMethodGetInvoker(prop string, a *accessor, bypass bool) *Invoker {
	return &Invoker{
		kind:   KindMethodGet,
		prop:   prop,
		member: a.methodName,
		typ:    a.typ,
		index:  a.index,
		bypass: bypass,
	}
}

func newMethodSetInvoker(prop string, a *accessor, bypass bool) *Invoker {
	return &Invoker{
		kind:   KindMethodSet,
		prop:   prop,
		member: a.methodName,
		typ:    a.typ,
		index:  a.index,
		bypass: bypass,
	}
}

func newFieldGetInvoker(prop string, fd fieldDesc, bypass bool) *Invoker {
	return &Invoker{
		kind:   KindFieldGet,
		prop:   prop,
		member: fd.field.Name,
		typ:    fd.field.Type,
		index:  fd.index,
		bypass: bypass,
	}
}

func newFieldSetInvoker(prop string, fd fieldDesc, bypass bool) *Invoker {
	return &Invoker{
		kind:   KindFieldSet,
		prop:   prop,
		member: fd.field.Name,
		typ:    fd.field.Type,
		index:  fd.index,
		bypass: bypass,
	}
}

func newAmbiguousInvoker(prop string, typ reflect.Type, message string) *Invoker {
	return &Invoker{
		kind:    KindAmbiguous,
		prop:    prop,
		member:  prop,
		typ:     typ,
		message: message,
	}
}

// Kind reports the invoker variant.
func (i *Invoker) Kind() InvokerKind { return i.kind }

// Property returns the canonical property name this invoker serves.
func (i *Invoker) Property() string { return i.prop }

// Member returns the underlying method or field name.
func (i *Invoker) Member() string { return i.member }

// Type returns the declared value type of this side of the property.
func (i *Invoker) Type() reflect.Type { return i.typ }

// Invoke performs the underlying read or write against target. Read variants
// ignore args and return the value; write variants require exactly one arg
// and return nil. An ambiguous invoker fails unconditionally, whatever the
// arguments. Faults raised by the underlying call wrap ErrInvocation.
func (i *Invoker) Invoke(target any, args ...any) (any, error) {
	switch i.kind {
	default:
		return nil, fmt.Errorf("%w: invoker for property %q has invalid kind", ErrInvocation, i.prop)
	case KindAmbiguous:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousAccessor, i.message)
	case KindMethodGet:
		return i.invokeMethodGet(target)
	case KindMethodSet:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: setter for property %q expects 1 argument, got %d", ErrInvocation, i.prop, len(args))
		}
		return nil, i.invokeMethodSet(target, args[0])
	case KindFieldGet:
		return i.invokeFieldGet(target)
	case KindFieldSet:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: setter for property %q expects 1 argument, got %d", ErrInvocation, i.prop, len(args))
		}
		return nil, i.invokeFieldSet(target, args[0])
	}
}

func (i *Invoker) invokeMethodGet(target any) (result any, err error) {
	recv, err := i.receiver(target, false)
	if err != nil {
		return nil, err
	}

	mv, err := methodOn(recv, i.member, false)
	if err != nil {
		return nil, fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	defer recoverInvocation(i.prop, &err)
	out := mv.Call(nil)

	return out[0].Interface(), nil
}

func (i *Invoker) invokeMethodSet(target, arg any) (err error) {
	recv, err := i.receiver(target, true)
	if err != nil {
		return err
	}

	mv, err := methodOn(recv, i.member, true)
	if err != nil {
		return fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	av, err := valueForType(i.prop, arg, i.typ)
	if err != nil {
		return err
	}

	defer recoverInvocation(i.prop, &err)
	mv.Call([]reflect.Value{av}) // fluent setter results are discarded

	return nil
}

func (i *Invoker) invokeFieldGet(target any) (result any, err error) {
	base, err := derefTarget(target, false)
	if err != nil {
		return nil, fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	fv, err := fieldByIndex(base, i.index, false, i.bypass)
	if err != nil {
		return nil, fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	return readValue(i.prop, fv, i.bypass)
}

func (i *Invoker) invokeFieldSet(target, arg any) (err error) {
	base, err := derefTarget(target, true)
	if err != nil {
		return fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	fv, err := fieldByIndex(base, i.index, true, i.bypass)
	if err != nil {
		return fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	w, err := writableValue(fv, i.bypass)
	if err != nil {
		return fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	av, err := valueForType(i.prop, arg, i.typ)
	if err != nil {
		return err
	}

	defer recoverInvocation(i.prop, &err)
	w.Set(av)

	return nil
}

// receiver navigates target to the value the method is declared on: the
// target itself for the root level, or the embedded field at the stored
// index path.
func (i *Invoker) receiver(target any, forWrite bool) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: property %q: nil target", ErrInvocation, i.prop)
	}
	if len(i.index) == 0 {
		return v, nil
	}

	base, err := derefTarget(target, forWrite)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	fv, err := fieldByIndex(base, i.index, forWrite, i.bypass)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: property %q: %v", ErrInvocation, i.prop, err)
	}

	return fv, nil
}

func recoverInvocation(prop string, err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%w: property %q: %v", ErrInvocation, prop, p)
	}
}
