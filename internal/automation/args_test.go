package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs_Builders(t *testing.T) {
	a := NewArgs("Setup1").Prop("Enabled", true).Props("Freq", "1GHz", "Count", 3)

	assert.Equal(t, Args{"NAME:Setup1", "Enabled:=", true, "Freq:=", "1GHz", "Count:=", 3}, a)
	assert.Equal(t, "Setup1", a.Name())
	assert.Equal(t, map[string]any{"Enabled": true, "Freq": "1GHz", "Count": 3}, a.Map())

	v, ok := a.Get("Freq")
	assert.True(t, ok)
	assert.Equal(t, "1GHz", v)
}

func TestArgs_NameIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Sweep", Args{"Name:Sweep"}.Name())
	assert.Equal(t, "", Args{"Sweep"}.Name())
	assert.Equal(t, "", Args{}.Name())
	assert.Equal(t, "", Args{42}.Name())
}

func TestArgs_MapSkipsDanglingKey(t *testing.T) {
	a := Args{"NAME:x", "A:=", 1, "B:="}
	assert.Equal(t, map[string]any{"A": 1}, a.Map())
}

func TestArgs_PropsPanicsOnOddPairs(t *testing.T) {
	assert.Panics(t, func() { NewArgs("x").Props("A") })
}

func TestArgs_String(t *testing.T) {
	assert.Equal(t, `["NAME:s", "Count:=", 451]`, NewArgs("s").Prop("Count", 451).String())
}
