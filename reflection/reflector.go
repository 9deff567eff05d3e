package reflection

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

const (
	getterAmbiguityFormat = "Illegal overloaded getter method with ambiguous type for property '%s' in type '%s'. " +
		"This breaks the expected accessor specification and can cause unpredictable results."
	setterAmbiguityFormat = "Ambiguous setters defined for property '%s' in type '%s' with types '%s' and '%s'."
)

// Option configures a Reflector at construction time.
type Option func(*settings)

type settings struct {
	bypass bool
}

// WithVisibilityBypass controls whether invokers may reach unexported
// members through the unsafe view. It replaces any ambient permission query:
// the capability is decided once, at construction. Enabled by default.
func WithVisibilityBypass(enabled bool) Option {
	return func(s *settings) { s.bypass = enabled }
}

// accessor is a single getter or setter candidate: typ is the return type
// for getters and the sole parameter type for setters.
type accessor struct {
	methodName string
	typ        reflect.Type
	declaring  reflect.Type
	index      []int
}

// Reflector is the immutable property model of one subject type. It is built
// in a single synchronous pass and is safe for unsynchronized concurrent
// reads afterwards. Construction never fails for ambiguity: ambiguous
// properties stay in the model behind invokers that fail on use.
type Reflector struct {
	subject reflect.Type
	base    reflect.Type
	bypass  bool
	hasCtor bool

	getInvokers map[string]*Invoker
	setInvokers map[string]*Invoker
	getTypes    map[string]reflect.Type
	setTypes    map[string]reflect.Type

	readable []string
	writable []string
	caseFold map[string]string // UPPER -> canonical
}

// New builds the property model for t. Pointer subjects are modeled through
// their element type; the pointer identity is kept for Type and Instantiate.
func New(t reflect.Type, opts ...Option) (*Reflector, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidSubject)
	}

	cfg := settings{bypass: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	r := &Reflector{
		subject:     t,
		base:        base,
		bypass:      cfg.bypass,
		hasCtor:     hasDefaultConstructor(base),
		getInvokers: map[string]*Invoker{},
		setInvokers: map[string]*Invoker{},
		getTypes:    map[string]reflect.Type{},
		setTypes:    map[string]reflect.Type{},
	}

	members := enumerateMembers(base)
	r.addGetters(members)
	r.addSetters(members)
	r.addFields(members)

	r.readable = sortedKeys(r.getInvokers)
	r.writable = sortedKeys(r.setInvokers)

	r.caseFold = make(map[string]string, len(r.readable)+len(r.writable))
	for _, name := range r.readable {
		r.caseFold[strings.ToUpper(name)] = name
	}
	for _, name := range r.writable {
		r.caseFold[strings.ToUpper(name)] = name
	}

	return r, nil
}

// For is a convenience wrapper over New for a statically known subject type.
func For[T any](opts ...Option) *Reflector {
	r, _ := New(reflect.TypeFor[T](), opts...)
	return r
}

func hasDefaultConstructor(base reflect.Type) bool {
	switch base.Kind() {
	default:
		return true
	case reflect.Invalid, reflect.Interface, reflect.Func, reflect.Chan:
		return false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// addGetters classifies getter-shaped methods and resolves per-property
// conflicts: zero parameters, one result, Get or Is prefix. GetClass is the
// identity accessor and never a property.
func (r *Reflector) addGetters(members memberSet) {
	conflicting := map[string][]accessor{}

	for _, m := range members.methods {
		if len(m.params) != 0 || len(m.results) != 1 {
			continue
		}
		if !isGetterName(m.name) || m.name == "GetClass" {
			continue
		}
		addMethodConflict(conflicting, m, m.results[0])
	}

	r.resolveGetterConflicts(conflicting)
}

// addSetters classifies setter-shaped methods: exactly one parameter, Set
// prefix. Results are not constrained, fluent setters qualify.
func (r *Reflector) addSetters(members memberSet) {
	conflicting := map[string][]accessor{}

	for _, m := range members.methods {
		if len(m.params) != 1 || !isSetterName(m.name) {
			continue
		}
		addMethodConflict(conflicting, m, m.params[0])
	}

	r.resolveSetterConflicts(conflicting)
}

func addMethodConflict(conflicting map[string][]accessor, m methodDesc, typ reflect.Type) {
	prop := methodToProperty(m.name)
	if !isValidPropertyName(prop) {
		return
	}

	conflicting[prop] = append(conflicting[prop], accessor{
		methodName: m.name,
		typ:        typ,
		declaring:  m.declaring,
		index:      m.index,
	})
}

func (r *Reflector) resolveGetterConflicts(conflicting map[string][]accessor) {
	for prop, candidates := range conflicting {
		var winner *accessor
		ambiguous := false

	scan:
		for i := range candidates {
			candidate := &candidates[i]
			if winner == nil {
				winner = candidate
				continue
			}

			switch {
			case candidate.typ == winner.typ:
				if candidate.typ.Kind() != reflect.Bool {
					ambiguous = true
					break scan
				}
				// The one sanctioned duplicate: an IsX/GetX boolean pair,
				// the Is variant wins.
				if strings.HasPrefix(candidate.methodName, "Is") {
					winner = candidate
				}
			case winner.typ.AssignableTo(candidate.typ):
				// candidate is broader, winner stays
			case candidate.typ.AssignableTo(winner.typ):
				winner = candidate
			default:
				ambiguous = true
				break scan
			}
		}

		r.addGetter(prop, winner, ambiguous)
	}
}

func (r *Reflector) addGetter(prop string, a *accessor, ambiguous bool) {
	if ambiguous {
		msg := fmt.Sprintf(getterAmbiguityFormat, prop, a.declaring)
		r.getInvokers[prop] = newAmbiguousInvoker(prop, a.typ, msg)
	} else {
		r.getInvokers[prop] = newMethodGetInvoker(prop, a, r.bypass)
	}
	r.getTypes[prop] = a.typ
}

// resolveSetterConflicts runs after getters: a setter whose parameter type
// exactly matches a non-ambiguous getter's type wins unconditionally.
// Otherwise candidates reduce pairwise; unrelated parameter types make the
// property ambiguous and no later candidate can undo that.
func (r *Reflector) resolveSetterConflicts(conflicting map[string][]accessor) {
	for prop, candidates := range conflicting {
		getterType := r.getTypes[prop]
		getterAmbiguous := r.getInvokers[prop] != nil && r.getInvokers[prop].kind == KindAmbiguous

		var match *accessor
		ambiguous := false

		for i := range candidates {
			candidate := &candidates[i]
			if !getterAmbiguous && getterType != nil && candidate.typ == getterType {
				match = candidate
				break
			}
			if !ambiguous {
				match = r.pickBetterSetter(match, candidate, prop)
				ambiguous = match == nil
			}
		}

		if match != nil {
			r.setInvokers[prop] = newMethodSetInvoker(prop, match, r.bypass)
			r.setTypes[prop] = match.typ
		}
	}
}

// pickBetterSetter keeps the narrower of two candidates. Unrelated types
// register the ambiguous invoker immediately and return nil so the caller
// knows the property is spent.
func (r *Reflector) pickBetterSetter(current, candidate *accessor, prop string) *accessor {
	if current == nil {
		return candidate
	}
	if candidate.typ.AssignableTo(current.typ) {
		return candidate
	}
	if current.typ.AssignableTo(candidate.typ) {
		return current
	}

	msg := fmt.Sprintf(setterAmbiguityFormat, prop, candidate.declaring, current.typ, candidate.typ)
	r.setInvokers[prop] = newAmbiguousInvoker(prop, current.typ, msg)
	r.setTypes[prop] = current.typ

	return nil
}

// addFields binds direct field invokers for properties the method passes
// left uncovered, outer declaration levels first.
func (r *Reflector) addFields(members memberSet) {
	for _, fd := range members.fields {
		prop := fieldToProperty(fd.field.Name)
		if !isValidPropertyName(prop) {
			continue
		}

		if _, covered := r.setInvokers[prop]; !covered {
			r.setInvokers[prop] = newFieldSetInvoker(prop, fd, r.bypass)
			r.setTypes[prop] = fd.field.Type
		}
		if _, covered := r.getInvokers[prop]; !covered {
			r.getInvokers[prop] = newFieldGetInvoker(prop, fd, r.bypass)
			r.getTypes[prop] = fd.field.Type
		}
	}
}

// Type returns the subject type identity the model was built for.
func (r *Reflector) Type() reflect.Type { return r.subject }

// ReadableNames returns the properties with a resolved read side.
func (r *Reflector) ReadableNames() []string {
	return append([]string(nil), r.readable...)
}

// WritableNames returns the properties with a resolved write side.
func (r *Reflector) WritableNames() []string {
	return append([]string(nil), r.writable...)
}

func (r *Reflector) HasGetter(name string) bool {
	_, ok := r.getInvokers[name]
	return ok
}

func (r *Reflector) HasSetter(name string) bool {
	_, ok := r.setInvokers[name]
	return ok
}

// GetterType returns the declared read type of a property.
func (r *Reflector) GetterType(name string) (reflect.Type, error) {
	t, ok := r.getTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: no getter for property %q in type %s", ErrNoSuchProperty, name, r.subject)
	}
	return t, nil
}

// SetterType returns the declared write type of a property.
func (r *Reflector) SetterType(name string) (reflect.Type, error) {
	t, ok := r.setTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: no setter for property %q in type %s", ErrNoSuchProperty, name, r.subject)
	}
	return t, nil
}

func (r *Reflector) GetInvoker(name string) (*Invoker, error) {
	inv, ok := r.getInvokers[name]
	if !ok {
		return nil, fmt.Errorf("%w: no getter for property %q in type %s", ErrNoSuchProperty, name, r.subject)
	}
	return inv, nil
}

func (r *Reflector) SetInvoker(name string) (*Invoker, error) {
	inv, ok := r.setInvokers[name]
	if !ok {
		return nil, fmt.Errorf("%w: no setter for property %q in type %s", ErrNoSuchProperty, name, r.subject)
	}
	return inv, nil
}

// FindProperty resolves any-case input to the canonical property name.
func (r *Reflector) FindProperty(name string) (string, bool) {
	canonical, ok := r.caseFold[strings.ToUpper(name)]
	return canonical, ok
}

// HasDefaultConstructor reports whether the subject supports default
// construction. It never fails.
func (r *Reflector) HasDefaultConstructor() bool { return r.hasCtor }

// Instantiate default-constructs a fresh subject value: a new allocation for
// pointer subjects, a zero value otherwise.
func (r *Reflector) Instantiate() (any, error) {
	if !r.hasCtor {
		return nil, fmt.Errorf("%w: type %s", ErrNoDefaultConstructor, r.subject)
	}
	if r.subject.Kind() == reflect.Pointer {
		return reflect.New(r.base).Interface(), nil
	}
	return reflect.New(r.subject).Elem().Interface(), nil
}

// CanBypassVisibility reports whether invokers of this model may access
// unexported members. Purely informational.
func (r *Reflector) CanBypassVisibility() bool { return r.bypass }
