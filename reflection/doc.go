// Package reflection builds a canonical property model of an arbitrary Go
// type: the named, typed read/write surface implied by its accessor methods
// (GetX/IsX/SetX) and struct fields, across the whole embedding hierarchy.
//
// Key types:
//   - Reflector: the immutable per-type model, built once by New
//   - Invoker: a uniform invocable handle to a property's method or field
//   - InvokerKind: tagged variant selector for Invoker behavior
//
// Competing accessor candidates for the same property name are reduced to a
// single deterministic winner, or to an ambiguous invoker that stays
// discoverable and typed but fails every invocation.
package reflection
