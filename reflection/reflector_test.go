package reflection_test

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"propkit/reflection"
)

type entity[T any] interface {
	GetID() T
	SetID(T)
}

type abstractEntity struct {
	id int64
}

func (e *abstractEntity) GetID() int64   { return e.id }
func (e *abstractEntity) SetID(id int64) { e.id = id }

type section struct {
	abstractEntity
}

var _ entity[int64] = (*section)(nil)

func TestAccessorPair(t *testing.T) {
	t.Parallel()

	r := reflection.For[section]()
	assert.Equal(t, reflect.TypeFor[section](), r.Type())

	getType, err := r.GetterType("ID")
	require.NoError(t, err)
	setType, err := r.SetterType("ID")
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[int64](), getType)
	assert.Equal(t, getType, setType)

	s := &section{}
	set, err := r.SetInvoker("ID")
	require.NoError(t, err)
	_, err = set.Invoke(s, int64(7))
	require.NoError(t, err)

	get, err := r.GetInvoker("ID")
	require.NoError(t, err)
	v, err := get.Invoke(s)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

type parent[T any] struct {
	id     T
	list   []T
	array  [2]T
	fld    T
	PubFld T
}

func (p *parent[T]) GetID() T         { return p.id }
func (p *parent[T]) SetID(id T)       { p.id = id }
func (p *parent[T]) GetList() []T     { return p.list }
func (p *parent[T]) SetList(list []T) { p.list = list }
func (p *parent[T]) GetArray() [2]T   { return p.array }
func (p *parent[T]) SetArray(a [2]T)  { p.array = a }
func (p *parent[T]) GetFld() T        { return p.fld }

type child struct {
	parent[string]
}

func TestResolveInstantiatedAccessorTypes(t *testing.T) {
	t.Parallel()

	r := reflection.For[child]()

	idType, err := r.SetterType("ID")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), idType)

	listType, err := r.SetterType("list")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[[]string](), listType)

	arrayType, err := r.SetterType("array")
	require.NoError(t, err)
	assert.Equal(t, reflect.Array, arrayType.Kind())
	assert.Equal(t, reflect.TypeFor[string](), arrayType.Elem())

	getType, err := r.GetterType("ID")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), getType)
}

func TestFieldFallback(t *testing.T) {
	t.Parallel()

	r := reflection.For[child]()

	// fld has a getter but no setter, the write side falls back to the field
	get, err := r.GetInvoker("fld")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindMethodGet, get.Kind())

	set, err := r.SetInvoker("fld")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindFieldSet, set.Kind())

	fldType, err := r.SetterType("fld")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), fldType)

	c := &child{}
	_, err = set.Invoke(c, "direct")
	require.NoError(t, err)
	v, err := get.Invoke(c)
	require.NoError(t, err)
	assert.Equal(t, "direct", v)

	// public field without accessors reads through the field
	pubType, err := r.GetterType("pubFld")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), pubType)
}

type SetterStr struct{}

func (SetterStr) SetProp2(string) {}

type SetterInt struct{}

func (SetterInt) SetProp2(int) {}

type SetterBool struct{}

func (SetterBool) SetProp2(bool) {}

type overloadedBean struct {
	SetterStr
	SetterInt
	SetterBool
}

func (overloadedBean) SetProp1(string) {}

func TestSettersWithUnrelatedArgTypes(t *testing.T) {
	t.Parallel()

	r := reflection.For[overloadedBean]()

	assert.Contains(t, r.WritableNames(), "prop1")
	assert.Contains(t, r.WritableNames(), "prop2")

	canonical, ok := r.FindProperty("PROP1")
	require.True(t, ok)
	assert.Equal(t, "prop1", canonical)
	canonical, ok = r.FindProperty("PROP2")
	require.True(t, ok)
	assert.Equal(t, "prop2", canonical)

	prop1Type, err := r.SetterType("prop1")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), prop1Type)

	// the recorded type is the first of the conflicting pair
	prop2Type, err := r.SetterType("prop2")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), prop2Type)

	inv, err := r.SetInvoker("prop2")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindAmbiguous, inv.Kind())

	_, err = inv.Invoke(&overloadedBean{}, "x")
	require.ErrorIs(t, err, reflection.ErrAmbiguousAccessor)
	assert.Contains(t, err.Error(), "Ambiguous setters defined for property 'prop2'")
	assert.Contains(t, err.Error(), "with types 'string' and 'int'")
	assert.Contains(t, err.Error(), "reflection_test.SetterInt")
}

type twoGetters struct{}

func (twoGetters) GetProp1() int { return 1 }
func (twoGetters) GetProp2() int { return 0 }
func (twoGetters) IsProp2() int  { return 0 }

func TestTwoGettersOfEqualNonBooleanType(t *testing.T) {
	t.Parallel()

	r := reflection.For[twoGetters]()

	assert.Contains(t, r.ReadableNames(), "prop1")
	assert.Contains(t, r.ReadableNames(), "prop2")

	prop1, err := r.GetInvoker("prop1")
	require.NoError(t, err)
	v, err := prop1.Invoke(twoGetters{})
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// the type stays queryable even though invocation fails
	prop2Type, err := r.GetterType("prop2")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[int](), prop2Type)

	inv, err := r.GetInvoker("prop2")
	require.NoError(t, err)
	_, err = inv.Invoke(twoGetters{})
	require.ErrorIs(t, err, reflection.ErrAmbiguousAccessor)
	assert.Contains(t, err.Error(), "Illegal overloaded getter method with ambiguous type for property 'prop2'")
}

type GetterStr struct{}

func (GetterStr) GetValue() string { return "s" }

type GetterInt struct{}

func (GetterInt) GetValue() int { return 1 }

type mixedGetters struct {
	GetterStr
	GetterInt
}

func TestTwoGettersOfUnrelatedTypes(t *testing.T) {
	t.Parallel()

	r := reflection.For[mixedGetters]()

	valueType, err := r.GetterType("value")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), valueType)

	inv, err := r.GetInvoker("value")
	require.NoError(t, err)
	_, err = inv.Invoke(mixedGetters{})
	require.ErrorIs(t, err, reflection.ErrAmbiguousAccessor)
}

type flagBean struct {
	b bool
}

func (flagBean) GetBool() bool     { return false }
func (flagBean) IsBool() bool      { return true }
func (f *flagBean) SetBool(b bool) { f.b = b }

func TestBooleanGetterPairPrefersIs(t *testing.T) {
	t.Parallel()

	r := reflection.For[flagBean]()

	inv, err := r.GetInvoker("bool")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindMethodGet, inv.Kind())
	assert.Equal(t, "IsBool", inv.Member())

	v, err := inv.Invoke(flagBean{})
	require.NoError(t, err)
	assert.Equal(t, true, v)

	getType, err := r.GetterType("bool")
	require.NoError(t, err)
	setType, err := r.SetterType("bool")
	require.NoError(t, err)
	assert.Equal(t, getType, setType)
}

type BoolSetter struct{}

func (BoolSetter) SetBool(bool) {}

type IntSetter struct{}

func (IntSetter) SetBool(int) {}

type confusedBean struct {
	BoolSetter
	IntSetter
}

func (confusedBean) GetBool() int { return 1 }
func (confusedBean) IsBool() int  { return 2 }

func TestAmbiguousGetterDisablesSetterShortcut(t *testing.T) {
	t.Parallel()

	r := reflection.For[confusedBean]()

	get, err := r.GetInvoker("bool")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindAmbiguous, get.Kind())

	set, err := r.SetInvoker("bool")
	require.NoError(t, err)
	assert.Equal(t, reflection.KindAmbiguous, set.Kind())

	_, err = set.Invoke(&confusedBean{}, 1)
	require.ErrorIs(t, err, reflection.ErrAmbiguousAccessor)
	assert.Contains(t, err.Error(), "Ambiguous setters defined for property 'bool'")
}

type BufSetter struct{}

func (BufSetter) SetVal(*bytes.Buffer) {}

type ReaderSetter struct{}

func (ReaderSetter) SetVal(io.Reader) {}

type narrowingBean struct {
	BufSetter
	ReaderSetter
}

type shortcutBean struct {
	BufSetter
	ReaderSetter
}

func (shortcutBean) GetVal() io.Reader { return nil }

func TestSetterNarrowingAndGetterShortcut(t *testing.T) {
	t.Parallel()

	// without a getter the narrower parameter type wins
	r := reflection.For[narrowingBean]()
	valType, err := r.SetterType("val")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*bytes.Buffer](), valType)

	// exact agreement with the resolved getter type beats the pairwise pick
	r = reflection.For[shortcutBean]()
	valType, err = r.SetterType("val")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[io.Reader](), valType)
}

type ReaderGetter struct{}

func (ReaderGetter) GetVal() io.Reader { return nil }

type BufGetter struct{}

func (BufGetter) GetVal() *bytes.Buffer { return bytes.NewBufferString("narrow") }

type covariantBean struct {
	ReaderGetter
	BufGetter
}

func TestCovariantGetterPrefersNarrowerType(t *testing.T) {
	t.Parallel()

	r := reflection.For[covariantBean]()

	valType, err := r.GetterType("val")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*bytes.Buffer](), valType)

	inv, err := r.GetInvoker("val")
	require.NoError(t, err)
	v, err := inv.Invoke(covariantBean{})
	require.NoError(t, err)
	assert.Equal(t, "narrow", v.(*bytes.Buffer).String())
}

type secretBean struct {
	hidden string
}

func TestPrivateFieldRoundTrip(t *testing.T) {
	t.Parallel()

	r := reflection.For[secretBean]()

	assert.True(t, r.HasGetter("hidden"))
	assert.True(t, r.HasSetter("hidden"))
	assert.True(t, r.CanBypassVisibility())

	s := &secretBean{}
	set, err := r.SetInvoker("hidden")
	require.NoError(t, err)
	_, err = set.Invoke(s, "covert")
	require.NoError(t, err)

	get, err := r.GetInvoker("hidden")
	require.NoError(t, err)
	v, err := get.Invoke(s)
	require.NoError(t, err)
	assert.Equal(t, "covert", v)
}

func TestVisibilityBypassDisabled(t *testing.T) {
	t.Parallel()

	r := reflection.For[secretBean](reflection.WithVisibilityBypass(false))

	assert.False(t, r.CanBypassVisibility())
	// the property is still modeled, only invocation is blocked
	assert.True(t, r.HasSetter("hidden"))

	set, err := r.SetInvoker("hidden")
	require.NoError(t, err)
	_, err = set.Invoke(&secretBean{}, "covert")
	require.ErrorIs(t, err, reflection.ErrInvocation)

	get, err := r.GetInvoker("hidden")
	require.NoError(t, err)
	_, err = get.Invoke(&secretBean{})
	require.ErrorIs(t, err, reflection.ErrInvocation)
}

type classyBean struct {
	Value string
}

func (classyBean) GetClass() string { return "classy" }

func TestIdentityAccessorIsNotAProperty(t *testing.T) {
	t.Parallel()

	r := reflection.For[classyBean]()

	assert.False(t, r.HasGetter("class"))
	assert.True(t, r.HasGetter("value"))
}

type markedBean struct {
	XMLName struct{}
	_hidden byte
	Kept    int
}

func TestReservedNamesAreFiltered(t *testing.T) {
	t.Parallel()

	r := reflection.For[markedBean]()

	assert.False(t, r.HasGetter("XMLName"))
	assert.False(t, r.HasGetter("_hidden"))
	assert.True(t, r.HasGetter("kept"))
	assert.True(t, r.HasSetter("kept"))
}

func TestFindProperty(t *testing.T) {
	t.Parallel()

	r := reflection.For[secretBean]()

	canonical, ok := r.FindProperty("HIDDEN")
	require.True(t, ok)
	assert.Equal(t, "hidden", canonical)

	_, ok = r.FindProperty("nope")
	assert.False(t, ok)
}

func TestDefaultConstructor(t *testing.T) {
	t.Parallel()

	r := reflection.For[secretBean]()
	assert.True(t, r.HasDefaultConstructor())
	v, err := r.Instantiate()
	require.NoError(t, err)
	assert.IsType(t, secretBean{}, v)

	rp, err := reflection.New(reflect.TypeFor[*secretBean]())
	require.NoError(t, err)
	assert.True(t, rp.HasDefaultConstructor())
	pv, err := rp.Instantiate()
	require.NoError(t, err)
	require.IsType(t, &secretBean{}, pv)
	assert.NotNil(t, pv)

	ri := reflection.For[io.Reader]()
	assert.False(t, ri.HasDefaultConstructor())
	_, err = ri.Instantiate()
	require.ErrorIs(t, err, reflection.ErrNoDefaultConstructor)
}

func TestNoSuchProperty(t *testing.T) {
	t.Parallel()

	r := reflection.For[secretBean]()

	_, err := r.GetterType("nope")
	require.ErrorIs(t, err, reflection.ErrNoSuchProperty)
	_, err = r.SetterType("nope")
	require.ErrorIs(t, err, reflection.ErrNoSuchProperty)
	_, err = r.GetInvoker("nope")
	require.ErrorIs(t, err, reflection.ErrNoSuchProperty)
	_, err = r.SetInvoker("nope")
	require.ErrorIs(t, err, reflection.ErrNoSuchProperty)
}

func TestNilSubject(t *testing.T) {
	t.Parallel()

	_, err := reflection.New(nil)
	require.ErrorIs(t, err, reflection.ErrInvalidSubject)
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	r := reflection.For[child]()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				c := &child{}
				set, err := r.SetInvoker("ID")
				if err != nil {
					return err
				}
				if _, err := set.Invoke(c, "concurrent"); err != nil {
					return err
				}
				get, err := r.GetInvoker("ID")
				if err != nil {
					return err
				}
				v, err := get.Invoke(c)
				if err != nil {
					return err
				}
				if v != "concurrent" {
					return fmt.Errorf("unexpected read: %v", v)
				}
				if _, ok := r.FindProperty("LIST"); !ok {
					return fmt.Errorf("case index lost a name")
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func ExampleFor() {
	type point struct {
		X, Y int
	}

	r := reflection.For[point]()
	fmt.Println(r.ReadableNames())
	fmt.Println(r.WritableNames())
	fmt.Println(r.HasDefaultConstructor())

	// Output:
	// [x y]
	// [x y]
	// true
}
