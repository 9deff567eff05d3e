package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	errNilTarget      = errors.New("nil target")
	errNotAddressable = errors.New("target is not addressable, pass a pointer")
	errNoBypass       = errors.New("visibility bypass is disabled")
)

// derefTarget unwraps pointers down to the base value the field index paths
// are relative to. Reads on a plain value target work against an addressable
// copy; writes require the caller to pass a pointer.
func derefTarget(target any, forWrite bool) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() {
		return reflect.Value{}, errNilTarget
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errNilTarget
		}
		v = v.Elem()
	}

	if v.CanAddr() {
		return v, nil
	}
	if forWrite {
		return reflect.Value{}, errNotAddressable
	}

	tmp := reflect.New(v.Type())
	tmp.Elem().Set(v)

	return tmp.Elem(), nil
}

// fieldByIndex walks an index path, dereferencing intermediate pointers.
// On the write path nil embedded pointers are allocated in place.
func fieldByIndex(v reflect.Value, index []int, alloc, bypass bool) (reflect.Value, error) {
	for n, x := range index {
		if n > 0 {
			for v.Kind() == reflect.Pointer {
				if v.IsNil() {
					if !alloc {
						return reflect.Value{}, fmt.Errorf("nil embedded pointer %s", v.Type())
					}
					w, err := writableValue(v, bypass)
					if err != nil {
						return reflect.Value{}, fmt.Errorf("nil embedded pointer %s: %w", v.Type(), err)
					}
					w.Set(reflect.New(v.Type().Elem()))
					v = w
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}

	return v, nil
}

// methodOn resolves a named method on v, widening to the pointer method set
// when v is addressable. Read-only lookups fall back to an addressable copy
// so pointer-receiver getters work on plain value targets.
func methodOn(v reflect.Value, name string, forWrite bool) (reflect.Value, error) {
	if mv := v.MethodByName(name); mv.IsValid() {
		return mv, nil
	}
	if v.CanAddr() {
		if mv := v.Addr().MethodByName(name); mv.IsValid() {
			return mv, nil
		}
	}
	if !forWrite && v.CanInterface() {
		tmp := reflect.New(v.Type())
		tmp.Elem().Set(v)
		if mv := tmp.MethodByName(name); mv.IsValid() {
			return mv, nil
		}
	}
	if forWrite && !v.CanAddr() {
		return reflect.Value{}, errNotAddressable
	}

	return reflect.Value{}, fmt.Errorf("method %s is not reachable on %s", name, v.Type())
}

// readValue extracts a field value, going through the unsafe view for
// unexported fields when the bypass capability is on.
func readValue(prop string, v reflect.Value, bypass bool) (any, error) {
	if v.CanInterface() {
		return v.Interface(), nil
	}
	if !bypass {
		return nil, fmt.Errorf("%w: property %q: %v", ErrInvocation, prop, errNoBypass)
	}
	if !v.CanAddr() {
		return nil, fmt.Errorf("%w: property %q: %v", ErrInvocation, prop, errNotAddressable)
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface(), nil
}

// writableValue returns a settable view of v, using the unsafe view for
// unexported fields when the bypass capability is on.
func writableValue(v reflect.Value, bypass bool) (reflect.Value, error) {
	if v.CanSet() {
		return v, nil
	}
	if !bypass {
		return reflect.Value{}, errNoBypass
	}
	if !v.CanAddr() {
		return reflect.Value{}, errNotAddressable
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), nil
}

// valueForType adapts an invocation argument to the declared type. No value
// coercion: the argument must be directly assignable, nil maps to the zero
// value.
func valueForType(prop string, arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}

	av := reflect.ValueOf(arg)
	if !av.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: property %q: cannot assign %s to %s", ErrInvocation, prop, av.Type(), t)
	}

	return av, nil
}
