package minml

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Marshaller handles conversion between Go values and the language's
// 64-bit integers.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to an integer argument. Any integer kind is
// accepted, as are decimal strings. Unsigned values above MaxInt64 are
// rejected rather than wrapped.
func (m *Marshaller) ToValue(val interface{}) (int64, error) {
	if val == nil {
		return 0, fmt.Errorf("cannot pass nil as an argument")
	}

	v := reflect.ValueOf(val)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, fmt.Errorf("cannot pass nil %s as an argument", v.Type())
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("argument %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.String:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not an integer: %w", v.String(), err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("unsupported argument type %s", v.Type())
}

// ToValues converts each of args with ToValue.
func (m *Marshaller) ToValues(args []interface{}) ([]int64, error) {
	out := make([]int64, len(args))
	for i, arg := range args {
		n, err := m.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d conversion failed: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// FromValue converts a result into targetType. A nil targetType yields
// the int64 unchanged. Narrowing conversions fail when the value does not
// fit.
func (m *Marshaller) FromValue(n int64, targetType reflect.Type) (interface{}, error) {
	if targetType == nil {
		return n, nil
	}

	out := reflect.New(targetType).Elem()
	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(n) {
			return nil, fmt.Errorf("result %d overflows %s", n, targetType)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n < 0 || out.OverflowUint(uint64(n)) {
			return nil, fmt.Errorf("result %d overflows %s", n, targetType)
		}
		out.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		out.SetFloat(float64(n))
	case reflect.String:
		out.SetString(strconv.FormatInt(n, 10))
	case reflect.Interface:
		if !reflect.TypeOf(n).Implements(targetType) {
			return nil, fmt.Errorf("cannot convert result to %s", targetType)
		}
		out.Set(reflect.ValueOf(n))
	default:
		return nil, fmt.Errorf("cannot convert result to %s", targetType)
	}
	return out.Interface(), nil
}
