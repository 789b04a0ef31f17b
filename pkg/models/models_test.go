package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValue(t *testing.T) {
	assert.Equal(t, "activitiTeam", StringValue("activitiTeam"))
	assert.Equal(t, "false", StringValue(false))
	assert.Equal(t, "true", StringValue(true))
	assert.Equal(t, "5", StringValue(float64(5)))
	assert.Equal(t, "2.5", StringValue(2.5))
	assert.Equal(t, "", StringValue(nil))
}

func TestProcessInstance_Variables(t *testing.T) {
	instance := &ProcessInstance{}

	instance.SetVariable("name", "My First File")
	instance.SetVariable("close_file", false)
	instance.SetVariable("name", "Renamed")

	value, ok := instance.Variable("name")
	require.True(t, ok)
	assert.Equal(t, "Renamed", value)

	// Overwriting must not disturb insertion order or grow the scope.
	require.Len(t, instance.Variables, 2)
	assert.Equal(t, "name", instance.Variables[0].Name)
	assert.Equal(t, "close_file", instance.Variables[1].Name)

	_, ok = instance.Variable("missing")
	assert.False(t, ok)
}

func TestProcessInstance_Clone(t *testing.T) {
	instance := &ProcessInstance{ID: "i-1", Status: ProcessInstanceStatusRunning}
	instance.SetVariable("file", "v1")

	clone := instance.Clone()
	clone.SetVariable("file", "v2")

	value, _ := instance.Variable("file")
	assert.Equal(t, "v1", value)
}

func TestVariablesFromMap(t *testing.T) {
	vars := VariablesFromMap(map[string]any{
		"name":            "My First File",
		"initiator_group": "activitiTeam",
	})

	require.Len(t, vars, 2)
	assert.Equal(t, "initiator_group", vars[0].Name)
	assert.Equal(t, "name", vars[1].Name)

	assert.Nil(t, VariablesFromMap(nil))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, PageOf(0, 2))
	assert.Equal(t, []int{1, 2}, page.Content)
	assert.Equal(t, 5, page.TotalItems)

	page = Paginate(items, PageOf(4, 10))
	assert.Equal(t, []int{5}, page.Content)
	assert.Equal(t, 5, page.TotalItems)

	page = Paginate(items, PageOf(10, 10))
	assert.Empty(t, page.Content)
	assert.Equal(t, 5, page.TotalItems)

	// Zero limit returns everything past the offset.
	page = Paginate(items, PageOf(1, 0))
	assert.Equal(t, []int{2, 3, 4, 5}, page.Content)
}

func TestVariableProjection_Target(t *testing.T) {
	assert.Equal(t, "name", VariableProjection{From: "creation_name", As: "name"}.Target())
	assert.Equal(t, "initiator_group", VariableProjection{From: "initiator_group"}.Target())
}

func TestProcessDefinition_Templates(t *testing.T) {
	definition := &ProcessDefinition{
		Key:  "Process_t1-1M1g1T",
		Name: "file-model",
		Tasks: []*TaskTemplate{
			{Name: "Изменить", Initial: true, Successors: []string{"Изменить"}},
		},
	}

	require.Len(t, definition.InitialTemplates(), 1)
	assert.Equal(t, "Изменить", definition.InitialTemplates()[0].Name)

	assert.NotNil(t, definition.TemplateByName("Изменить"))
	assert.Nil(t, definition.TemplateByName("missing"))
}
