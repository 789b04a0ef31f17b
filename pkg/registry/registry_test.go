package registry

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(slog.Default())
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := newTestRegistry()

	definition := &models.ProcessDefinition{Key: "Process_t1-1M1g1T", Name: "file-model"}
	require.NoError(t, r.Register(definition))

	fetched, err := r.Get("Process_t1-1M1g1T")
	require.NoError(t, err)
	assert.Equal(t, "file-model", fetched.Name)

	err = r.Register(&models.ProcessDefinition{Key: "Process_t1-1M1g1T", Name: "duplicate"})
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrDefinitionAlreadyExists)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Get("unknown")
	require.Error(t, err)
	assert.True(t, persistence.IsDefinitionNotFound(err))
}

func TestRegistry_List(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Register(&models.ProcessDefinition{Key: "Process_BKx8PFXad", Name: "project-model"}))
	require.NoError(t, r.Register(&models.ProcessDefinition{Key: "Process_i5ugxdvpu", Name: "subproject-model"}))
	require.NoError(t, r.Register(&models.ProcessDefinition{Key: "Process_t1-1M1g1T", Name: "file-model"}))

	page := r.List(models.PageOf(0, 10))
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, "project-model", page.Content[0].Name)

	page = r.List(models.PageOf(1, 1))
	assert.Equal(t, 3, page.TotalItems)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "subproject-model", page.Content[0].Name)
}

func TestParseDefinition(t *testing.T) {
	document := []byte(`{
		"key": "Process_t1-1M1g1T",
		"name": "file-model",
		"default_variables": {"close_file": false},
		"tasks": [
			{
				"name": "Изменить",
				"initial": true,
				"group": {"from_variable": "initiator_group"},
				"successors": ["Изменить"],
				"stop_when": {"variable": "close_file", "equals": "true"}
			}
		]
	}`)

	definition, err := ParseDefinition(document)
	require.NoError(t, err)
	assert.Equal(t, "file-model", definition.Name)
	require.Len(t, definition.Tasks, 1)
	assert.Equal(t, "initiator_group", definition.Tasks[0].Group.FromVariable)
	assert.Equal(t, "close_file", definition.Tasks[0].StopWhen.Variable)
	assert.Equal(t, false, definition.DefaultVariables["close_file"])
}

func TestParseDefinition_Invalid(t *testing.T) {
	_, err := ParseDefinition([]byte(`{"name": "missing key and tasks"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestRegistry_LoadDir(t *testing.T) {
	dir := t.TempDir()

	document := []byte(`{
		"key": "Process_i5ugxdvpu",
		"name": "subproject-model",
		"tasks": [{"name": "Создать", "initial": true}]
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subproject.json"), document, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r := newTestRegistry()
	require.NoError(t, r.LoadDir(dir))

	definition, err := r.Get("Process_i5ugxdvpu")
	require.NoError(t, err)
	assert.Equal(t, "subproject-model", definition.Name)
}

func TestRegistry_LoadDir_InvalidDocument(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"name": "no key"}`), 0o644))

	r := newTestRegistry()
	err := r.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}
