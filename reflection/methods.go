package reflection

import (
	"reflect"
	"strings"
)

// methodDesc is a flattened view of one declared method: receiver stripped,
// parameter and result types spelled out, plus the field index path from the
// subject's base type to the level that declares it.
type methodDesc struct {
	name      string
	params    []reflect.Type
	results   []reflect.Type
	declaring reflect.Type
	index     []int
}

// fieldDesc is one declared non-anonymous field with its absolute index path
// from the base type.
type fieldDesc struct {
	field reflect.StructField
	index []int
}

// memberSet holds everything the resolution passes consume: accessor-shaped
// method candidates in discovery order and declared fields, outer levels
// first.
type memberSet struct {
	methods []methodDesc
	fields  []fieldDesc
}

type level struct {
	typ   reflect.Type
	index []int
}

// enumerateMembers walks the embedding hierarchy of base breadth-first, most
// derived level first: the base type itself, then every anonymous struct or
// interface field type, transitively. Methods are deduplicated by structural
// signature so that a promoted wrapper on an outer level and its declaration
// on an inner level collapse to the single outer entry, and an outer
// declaration shadows a same-signature inner one. Purely a scan, no side
// effects.
func enumerateMembers(base reflect.Type) memberSet {
	var (
		members memberSet
		seen    = map[string]struct{}{}
		visited = map[reflect.Type]struct{}{}
		queue   = []level{{typ: base}}
	)

	for len(queue) > 0 {
		lvl := queue[0]
		queue = queue[1:]

		if _, ok := visited[lvl.typ]; ok {
			continue
		}
		visited[lvl.typ] = struct{}{}

		if lvl.typ.Kind() == reflect.Interface {
			collectInterfaceMethods(&members, seen, lvl)
			continue
		}

		collectMethods(&members, seen, lvl)

		if lvl.typ.Kind() != reflect.Struct {
			continue
		}

		for i := 0; i < lvl.typ.NumField(); i++ {
			f := lvl.typ.Field(i)
			abs := append(append([]int{}, lvl.index...), i)

			if f.Anonymous {
				et := f.Type
				if et.Kind() == reflect.Pointer {
					et = et.Elem()
				}
				queue = append(queue, level{typ: et, index: abs})
				continue
			}

			members.fields = append(members.fields, fieldDesc{field: f, index: abs})
		}
	}

	return members
}

// collectMethods gathers the pointer method set of a non-interface level.
// The pointer method set is the widest one Go reflection exposes: it covers
// value and pointer receivers plus promoted methods of embedded types.
func collectMethods(members *memberSet, seen map[string]struct{}, lvl level) {
	pm := reflect.PointerTo(lvl.typ)
	for i := 0; i < pm.NumMethod(); i++ {
		m := pm.Method(i)
		mt := m.Func.Type()

		params := make([]reflect.Type, 0, mt.NumIn()-1)
		for in := 1; in < mt.NumIn(); in++ {
			params = append(params, mt.In(in))
		}
		results := make([]reflect.Type, 0, mt.NumOut())
		for out := 0; out < mt.NumOut(); out++ {
			results = append(results, mt.Out(out))
		}

		addUniqueMethod(members, seen, methodDesc{
			name:      m.Name,
			params:    params,
			results:   results,
			declaring: lvl.typ,
			index:     lvl.index,
		})
	}
}

func collectInterfaceMethods(members *memberSet, seen map[string]struct{}, lvl level) {
	for i := 0; i < lvl.typ.NumMethod(); i++ {
		m := lvl.typ.Method(i)
		mt := m.Type

		params := make([]reflect.Type, 0, mt.NumIn())
		for in := 0; in < mt.NumIn(); in++ {
			params = append(params, mt.In(in))
		}
		results := make([]reflect.Type, 0, mt.NumOut())
		for out := 0; out < mt.NumOut(); out++ {
			results = append(results, mt.Out(out))
		}

		addUniqueMethod(members, seen, methodDesc{
			name:      m.Name,
			params:    params,
			results:   results,
			declaring: lvl.typ,
			index:     lvl.index,
		})
	}
}

func addUniqueMethod(members *memberSet, seen map[string]struct{}, m methodDesc) {
	sig := signature(m)
	if _, known := seen[sig]; known {
		return
	}
	seen[sig] = struct{}{}
	members.methods = append(members.methods, m)
}

// signature is the structural dedup key: results # name : params.
func signature(m methodDesc) string {
	var sb strings.Builder
	for _, r := range m.results {
		sb.WriteString(r.String())
		sb.WriteByte('#')
	}
	sb.WriteString(m.name)
	for i, p := range m.params {
		if i == 0 {
			sb.WriteByte(':')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}

	return sb.String()
}
