package params_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/params"
)

func TestParse(t *testing.T) {
	t.Run("empty attribute yields no params", func(t *testing.T) {
		assert.Empty(t, params.Parse(""))
		assert.Empty(t, params.Parse(" , ,"))
	})

	t.Run("coerces booleans numbers and strings", func(t *testing.T) {
		list := params.Parse("5,10,true, false ,abc")
		require.Len(t, list, 5)

		assert.Equal(t, params.KindNumber, list[0].Kind())
		assert.Equal(t, params.KindNumber, list[1].Kind())
		assert.Equal(t, params.KindBool, list[2].Kind())
		assert.Equal(t, params.KindBool, list[3].Kind())
		assert.Equal(t, params.KindString, list[4].Kind())

		assert.Equal(t, []string{"5", "10", "true", "false", "abc"}, list.Strings())
	})

	t.Run("drops empties and trims", func(t *testing.T) {
		list := params.Parse(" 5 , ,10 ")
		assert.Equal(t, []string{"5", "10"}, list.Strings())
	})

	t.Run("number spellings", func(t *testing.T) {
		tests := []struct {
			in   string
			want float64
		}{
			{"1e3", 1000},
			{"0x10", 16},
			{"0b101", 5},
			{"-2.5", -2.5},
			{".5", 0.5},
			{"+7", 7},
		}
		for _, tt := range tests {
			list := params.Parse(tt.in)
			require.Len(t, list, 1, tt.in)
			f, ok := list[0].Float()
			assert.True(t, ok, tt.in)
			assert.Equal(t, tt.want, f, tt.in)
			assert.Equal(t, params.KindNumber, list[0].Kind(), tt.in)
		}
	})

	t.Run("non numeric spellings stay strings", func(t *testing.T) {
		for _, in := range []string{"NaN", "inf", "12px", "2021-01-01", "a:b"} {
			list := params.Parse(in)
			require.Len(t, list, 1, in)
			assert.Equal(t, params.KindString, list[0].Kind(), in)
			assert.Equal(t, in, list[0].String())
		}
	})

	t.Run("numbers render canonically", func(t *testing.T) {
		list := params.Parse("007,1.50")
		assert.Equal(t, []string{"7", "1.5"}, list.Strings())
		assert.Equal(t, "007", list[0].Raw())
	})
}

func TestParamAccessors(t *testing.T) {
	t.Run("int truncates", func(t *testing.T) {
		n, ok := params.Number(3.9).Int()
		assert.True(t, ok)
		assert.Equal(t, 3, n)
	})

	t.Run("infinity has no int", func(t *testing.T) {
		_, ok := params.Parse("Infinity")[0].Int()
		assert.False(t, ok)
	})

	t.Run("bool only for bool kind", func(t *testing.T) {
		v, ok := params.Bool(true).Bool()
		assert.True(t, ok)
		assert.True(t, v)

		_, ok = params.String("true!").Bool()
		assert.False(t, ok)
	})

	t.Run("string float conversion", func(t *testing.T) {
		f, ok := params.String("12").Float()
		assert.True(t, ok)
		assert.Equal(t, 12.0, f)

		_, ok = params.String("twelve").Float()
		assert.False(t, ok)
	})

	t.Run("list helpers", func(t *testing.T) {
		list := params.Parse("red,green")
		assert.True(t, list.Contains("green"))
		assert.False(t, list.Contains("blue"))
		assert.Equal(t, "", list.StringAt(5))
		_, ok := list.At(-1)
		assert.False(t, ok)
	})
}

func TestParseNumber(t *testing.T) {
	f, ok := params.ParseNumber("")
	assert.True(t, ok)
	assert.Equal(t, 0.0, f)

	f, ok = params.ParseNumber("-Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, -1))

	_, ok = params.ParseNumber("0xZZ")
	assert.False(t, ok)

	assert.Equal(t, "Infinity", params.FormatNumber(math.Inf(1)))
	assert.Equal(t, "4", params.FormatNumber(4))
}
