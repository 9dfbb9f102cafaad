package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 5, ToInt(int64(5)))
	assert.Equal(t, 5, ToInt(5.9))
	assert.Equal(t, 42, ToInt(" 42 "))
	assert.Equal(t, 7, ToInt([]byte("7")))
	assert.Equal(t, 0, ToInt("abc"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "x", ToString([]byte("x")))
	assert.Equal(t, "12", ToString(12))
}

func TestToBool(t *testing.T) {
	for _, v := range []any{true, 1, "1", "true", "TRUE", " yes ", "on", []byte("true")} {
		assert.True(t, ToBool(v), "%v", v)
	}
	for _, v := range []any{false, 0, 2, "", "no", "off", "false", 1.0} {
		assert.False(t, ToBool(v), "%v", v)
	}
}

func TestBoolOr(t *testing.T) {
	assert.True(t, BoolOr("", true))
	assert.False(t, BoolOr("  ", false))
	assert.False(t, BoolOr("false", true))
	assert.True(t, BoolOr("on", false))
}
