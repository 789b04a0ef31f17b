package memory

import (
	"testing"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceRepository_CreateAndGet(t *testing.T) {
	repo := NewInstanceRepository()

	instance := &models.ProcessInstance{
		ID:            "instance-1",
		DefinitionKey: "file-model",
		Status:        models.ProcessInstanceStatusRunning,
	}
	instance.SetVariable("close_file", false)

	require.NoError(t, repo.Create(t.Context(), instance))

	fetched, err := repo.GetByID(t.Context(), "instance-1")
	require.NoError(t, err)
	assert.Equal(t, "file-model", fetched.DefinitionKey)

	// The stored record must not alias the caller's copy.
	fetched.SetVariable("close_file", true)

	again, err := repo.GetByID(t.Context(), "instance-1")
	require.NoError(t, err)
	value, _ := again.Variable("close_file")
	assert.Equal(t, false, value)
}

func TestInstanceRepository_GetByID_NotFound(t *testing.T) {
	repo := NewInstanceRepository()

	_, err := repo.GetByID(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, persistence.IsInstanceNotFound(err))
}

func TestInstanceRepository_Remove(t *testing.T) {
	repo := NewInstanceRepository()

	require.NoError(t, repo.Create(t.Context(), &models.ProcessInstance{ID: "instance-1"}))
	require.NoError(t, repo.Remove(t.Context(), "instance-1"))

	_, err := repo.GetByID(t.Context(), "instance-1")
	assert.True(t, persistence.IsInstanceNotFound(err))

	err = repo.Remove(t.Context(), "instance-1")
	assert.True(t, persistence.IsInstanceNotFound(err))
}

func TestInstanceRepository_List_Filters(t *testing.T) {
	repo := NewInstanceRepository()

	require.NoError(t, repo.Create(t.Context(), &models.ProcessInstance{ID: "parent", DefinitionKey: "subproject-model"}))
	require.NoError(t, repo.Create(t.Context(), &models.ProcessInstance{ID: "child-1", DefinitionKey: "file-model", ParentInstanceID: "parent"}))
	require.NoError(t, repo.Create(t.Context(), &models.ProcessInstance{ID: "child-2", DefinitionKey: "file-model", ParentInstanceID: "parent"}))
	require.NoError(t, repo.Create(t.Context(), &models.ProcessInstance{ID: "other", DefinitionKey: "file-model"}))

	page, err := repo.List(t.Context(), persistence.InstanceFilter{ParentInstanceID: "parent"}, models.PageOf(0, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, "child-1", page.Content[0].ID)
	assert.Equal(t, "child-2", page.Content[1].ID)

	page, err = repo.List(t.Context(), persistence.InstanceFilter{DefinitionKey: "file-model"}, models.PageOf(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	assert.Len(t, page.Content, 1)
}

func TestTaskRepository_Lifecycle(t *testing.T) {
	repo := NewTaskRepository()

	task := &models.Task{
		ID:                "task-1",
		ProcessInstanceID: "instance-1",
		Name:              "Изменить",
		Status:            models.TaskStatusCreated,
		CandidateGroups:   []string{"activitiTeam"},
	}
	require.NoError(t, repo.Create(t.Context(), task))

	fetched, err := repo.GetByID(t.Context(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCreated, fetched.Status)

	fetched.Status = models.TaskStatusAssigned
	fetched.Assignee = "bob"
	require.NoError(t, repo.Update(t.Context(), fetched))

	updated, err := repo.GetByID(t.Context(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusAssigned, updated.Status)
	assert.Equal(t, "bob", updated.Assignee)

	count, err := repo.OpenCount(t.Context(), "instance-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Remove(t.Context(), "task-1"))

	_, err = repo.GetByID(t.Context(), "task-1")
	assert.True(t, persistence.IsTaskNotFound(err))

	count, err = repo.OpenCount(t.Context(), "instance-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTaskRepository_List_CreationOrder(t *testing.T) {
	repo := NewTaskRepository()

	require.NoError(t, repo.Create(t.Context(), &models.Task{ID: "task-1", ProcessInstanceID: "instance-1"}))
	require.NoError(t, repo.Create(t.Context(), &models.Task{ID: "task-2", ProcessInstanceID: "instance-2"}))
	require.NoError(t, repo.Create(t.Context(), &models.Task{ID: "task-3", ProcessInstanceID: "instance-1"}))

	page, err := repo.List(t.Context(), persistence.TaskFilter{ProcessInstanceID: "instance-1"}, models.PageOf(0, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, "task-1", page.Content[0].ID)
	assert.Equal(t, "task-3", page.Content[1].ID)
}

func TestPersistence_HealthCheck(t *testing.T) {
	p := NewPersistence()

	assert.NoError(t, p.HealthCheck(t.Context()))
	assert.NoError(t, p.Close(t.Context()))
	assert.NotNil(t, p.Instances())
	assert.NotNil(t, p.Tasks())
}
