package spiral

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem())
}

func TestApp_addResourcesRejectsValues(t *testing.T) {
	app := newApp()
	assert.Panics(t, func() {
		app.addResources(MockResource1{name: "value"})
	})
}

func TestResource(t *testing.T) {
	app := newApp()
	_, ok := Resource[MockResource1](app)
	assert.False(t, ok)

	app.addResources(NewMockResource1("r"))
	res, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "r", res.name)
}

func TestApp_callSystemResolvesResources(t *testing.T) {
	app := newApp()
	app.addResources(NewMockResource1("one"), NewMockResource2("two"))

	var got []string
	app.callSystem(func(r1 *MockResource1, cmd *Commands, r2 *MockResource2) {
		require.NotNil(t, cmd)
		got = append(got, r1.name, r2.name)
	})
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestApp_callSystemPanicsOnMissingResource(t *testing.T) {
	app := newApp()
	assert.Panics(t, func() {
		app.callSystem(func(r *MockResource1) {})
	})
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := NewAppBuilder().Build()

	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("post-update")).InStage(PostUpdate))
	app.UseSystem(System(record("update")).InStage(Update))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("pre-update")).InStage(PreUpdate))

	app.Step()
	assert.Equal(t, []string{"prelude", "pre-update", "update", "post-update", "render"}, order)
	assert.Equal(t, uint64(1), app.Frame())
	assert.True(t, app.Running())
}

func TestApp_QuitStopsAfterFrame(t *testing.T) {
	app := NewAppBuilder().Build()

	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Quit()
		}
	}))
	app.UseSystem(System(func() { frames += 100 }).InStage(Finale))

	app.Run()
	assert.False(t, app.Running())
	assert.Equal(t, uint64(3), app.Frame())
	assert.Equal(t, 303, frames, "the quitting frame still completes")

	app.Step()
	assert.Equal(t, uint64(3), app.Frame(), "a stopped app does not restart")
}

func TestApp_StatefulRunReachesFinalState(t *testing.T) {
	const (
		stateIntro State = iota
		stateMain
		stateDone
	)
	app := NewAppBuilder().UseStates(stateIntro, stateDone).Build()

	var trace []string
	app.UseSystem(System(func() { trace = append(trace, "enter intro") }).InState(OnEnter(stateIntro)))
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "intro")
		cmd.ChangeState(stateMain)
	}).InState(OnExecute(stateIntro)))
	app.UseSystem(System(func() { trace = append(trace, "exit intro") }).InState(OnExit(stateIntro)))
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "main")
		cmd.ChangeState(stateDone)
	}).InState(OnExecute(stateMain)))
	app.UseSystem(System(func() { trace = append(trace, "exit done") }).InState(OnExit(stateDone)))

	app.Run()
	assert.Equal(t, []string{"enter intro", "intro", "exit intro", "main", "exit done"}, trace)
	assert.Equal(t, uint64(2), app.Frame())
}
