// Package subtract computes the difference between two counter snapshots.
package subtract

import (
	"reflect"

	"github.com/pkg/math"
)

// Sub returns curr minus prev, without modifying either argument.
//
// If T has a `func (T) Sub(T) T` method, it is used.
// Otherwise, numeric fields are subtracted one by one, see SubFields.
func Sub[T any](curr, prev T) (diff T) {
	return sub(reflect.ValueOf(curr), reflect.ValueOf(prev)).Interface().(T)
}

// SubFields subtracts numeric fields of prev from curr, and writes the result to *diffPtr.
//
// Recognized field kinds are signed and unsigned integers, nested structs, arrays,
// slices (the result has the length of the shorter one), and non-nil pointers.
// A field tagged `subtract:"-"` is a gauge: its value is copied from curr.
// Other fields and unexported fields are left as zero.
func SubFields[T any](curr, prev T, diffPtr *T) {
	subFields(reflect.ValueOf(curr), reflect.ValueOf(prev), reflect.ValueOf(diffPtr).Elem())
}

func hasSubMethod(typ reflect.Type) (reflect.Method, bool) {
	method, ok := typ.MethodByName("Sub")
	if !ok {
		return method, false
	}
	mt := method.Type
	return method, mt.NumIn() == 2 && mt.NumOut() == 1 && mt.In(1) == typ && mt.Out(0) == typ
}

func sub(curr, prev reflect.Value) reflect.Value {
	if method, ok := hasSubMethod(curr.Type()); ok {
		return method.Func.Call([]reflect.Value{curr, prev})[0]
	}

	diff := reflect.New(curr.Type()).Elem()
	subFields(curr, prev, diff)
	return diff
}

func subFields(curr, prev, diff reflect.Value) {
	for _, field := range reflect.VisibleFields(curr.Type()) {
		if !field.IsExported() {
			continue
		}
		currF, diffF := curr.FieldByIndex(field.Index), diff.FieldByIndex(field.Index)
		if field.Tag.Get("subtract") == "-" {
			diffF.Set(currF)
			continue
		}
		subValue(currF, prev.FieldByIndex(field.Index), diffF)
	}
}

func subValue(curr, prev, diff reflect.Value) {
	switch curr.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		diff.SetUint(curr.Uint() - prev.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		diff.SetInt(curr.Int() - prev.Int())
	case reflect.Struct:
		diff.Set(sub(curr, prev))
	case reflect.Slice:
		n := math.MinInt(curr.Len(), prev.Len())
		diff.Set(reflect.MakeSlice(curr.Type(), n, n))
		subElements(curr, prev, diff)
	case reflect.Array:
		subElements(curr, prev, diff)
	case reflect.Ptr:
		if curr.IsNil() || prev.IsNil() {
			return
		}
		diff.Set(reflect.New(curr.Type().Elem()))
		subValue(curr.Elem(), prev.Elem(), diff.Elem())
	}
}

func subElements(curr, prev, diff reflect.Value) {
	for i, n := 0, diff.Len(); i < n; i++ {
		subValue(curr.Index(i), prev.Index(i), diff.Index(i))
	}
}
