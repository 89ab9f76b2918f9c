package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame
	assert.False(t, f.Has(ActionBoost), "zero frame should hold nothing")

	f.Set(ActionBoost)
	assert.True(t, f.Has(ActionBoost))
	assert.False(t, f.Has(ActionUp))
}

func TestNewInputFrame(t *testing.T) {
	f := NewInputFrame(ActionUp, ActionBoost)
	assert.True(t, f.Has(ActionUp))
	assert.True(t, f.Has(ActionBoost))
	assert.Len(t, f.Actions, 2)

	assert.Empty(t, NewInputFrame().Actions)
}

func TestInputFrameDirection(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    Vec2
	}{
		{"none", nil, Vec2{}},
		{"up", []Action{ActionUp}, Vec2{X: 0, Y: -1}},
		{"down right", []Action{ActionDown, ActionRight}, Vec2{X: 1, Y: 1}},
		{"opposites cancel", []Action{ActionLeft, ActionRight, ActionUp}, Vec2{X: 0, Y: -1}},
		{"boost alone", []Action{ActionBoost}, Vec2{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewInputFrame(tc.actions...).Direction())
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Boost", ActionBoost.String())
	assert.Equal(t, "Left", ActionLeft.String())
	assert.Equal(t, "Unknown", Action(99).String())
}
