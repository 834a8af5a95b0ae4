package minml

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshallerToValue(t *testing.T) {
	m := NewMarshaller()
	n := 7

	for _, in := range []interface{}{7, int8(7), int64(7), uint(7), uint64(7), "7", &n} {
		got, err := m.ToValue(in)
		require.NoError(t, err, "%T", in)
		assert.Equal(t, int64(7), got, "%T", in)
	}

	for _, in := range []interface{}{nil, 1.0, true, "x", uint64(math.MaxUint64), (*int)(nil)} {
		_, err := m.ToValue(in)
		assert.Error(t, err, "%T", in)
	}
}

func TestMarshallerFromValue(t *testing.T) {
	m := NewMarshaller()

	v, err := m.FromValue(42, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = m.FromValue(42, reflect.TypeOf(uint16(0)))
	require.NoError(t, err)
	assert.Equal(t, uint16(42), v)

	v, err = m.FromValue(-3, reflect.TypeOf(float64(0)))
	require.NoError(t, err)
	assert.Equal(t, float64(-3), v)

	_, err = m.FromValue(-1, reflect.TypeOf(uint(0)))
	assert.Error(t, err)
	_, err = m.FromValue(300, reflect.TypeOf(int8(0)))
	assert.Error(t, err)
	_, err = m.FromValue(1, reflect.TypeOf([]int{}))
	assert.Error(t, err)
}
