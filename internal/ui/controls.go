package ui

import (
	"image"
	"strconv"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
)

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlSet tracks the HUD controls of one simulation.
type controlSet struct {
	states []hudControlState
	setter core.IntParameterSetter
}

func newControlSet(sim core.Sim) controlSet {
	var cs controlSet
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		cs.states = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			cs.states[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		cs.setter = setter
	}
	return cs
}

func (cs *controlSet) refresh(snapshot core.ParameterSnapshot) {
	paramMap := map[string]core.Parameter{}
	for _, group := range snapshot.Groups {
		for _, param := range group.Params {
			paramMap[param.Key] = param
		}
	}
	for i := range cs.states {
		state := &cs.states[i]
		state.hasValue = false
		state.value = "--"
		param, ok := paramMap[state.control.Key]
		if !ok || param.Type != core.ParamTypeInt {
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			continue
		}
		state.intValue = parsed
		state.value = strconv.Itoa(parsed)
		state.hasValue = true
	}
}

func (cs *controlSet) target(state *hudControlState, direction int) int {
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	return state.control.Clamp(state.intValue + direction*step)
}

func (cs *controlSet) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || cs.setter == nil || !state.hasValue {
		return false
	}
	return cs.target(state, direction) != state.intValue
}

func (cs *controlSet) adjust(state *hudControlState, direction int) bool {
	if !cs.canAdjust(state, direction) {
		return false
	}
	target := cs.target(state, direction)
	if !cs.setter.SetIntParameter(state.control.Key, target) {
		return false
	}
	state.intValue = target
	state.value = strconv.Itoa(target)
	return true
}

// click applies the button under (x, y), in panel coordinates.
func (cs *controlSet) click(x, y int) bool {
	for i := range cs.states {
		state := &cs.states[i]
		if pointInRect(x, y, state.minusRect) {
			return cs.adjust(state, -1)
		}
		if pointInRect(x, y, state.plusRect) {
			return cs.adjust(state, 1)
		}
	}
	return false
}

func (cs *controlSet) layout(width int) {
	for i := range cs.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		cs.states[i].top = top
		cs.states[i].minusRect = minusRect
		cs.states[i].plusRect = plusRect
	}
}

// infoLines formats the snapshot parameters that have no control.
func infoLines(snapshot core.ParameterSnapshot, controls []hudControlState) []string {
	skip := map[string]bool{}
	for _, c := range controls {
		skip[c.control.Key] = true
	}
	var lines []string
	for _, group := range snapshot.Groups {
		var groupLines []string
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			groupLines = append(groupLines, "  "+p.Label+": "+p.Value)
		}
		if len(groupLines) == 0 {
			continue
		}
		lines = append(lines, group.Name)
		lines = append(lines, groupLines...)
	}
	return lines
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	infoHeight     = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
