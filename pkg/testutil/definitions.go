// Package testutil provides the process definitions and users shared by
// tests across packages: a project/subproject/file hierarchy in which each
// level loops on a single user task and spawns the next level down.
package testutil

import (
	"github.com/goflowd/flowd/pkg/identity"
	"github.com/goflowd/flowd/pkg/models"
)

const (
	ProjectDefinitionKey    = "Process_BKx8PFXad"
	SubprojectDefinitionKey = "Process_i5ugxdvpu"
	FileDefinitionKey       = "Process_t1-1M1g1T"
)

// FileDefinition models a file that accumulates versions: its single task
// loops until close_file is set.
func FileDefinition() *models.ProcessDefinition {
	return &models.ProcessDefinition{
		Key:  FileDefinitionKey,
		Name: "file-model",
		DefaultVariables: map[string]any{
			"close_file": false,
		},
		Tasks: []*models.TaskTemplate{
			{
				Name:       "Изменить",
				Initial:    true,
				Group:      models.GroupExpression{FromVariable: "initiator_group"},
				Successors: []string{"Изменить"},
				StopWhen:   &models.VariableCondition{Variable: "close_file", Equals: "true"},
			},
		},
	}
}

// SubprojectDefinition models a container whose looping task creates file
// children named after the creation_name variable.
func SubprojectDefinition() *models.ProcessDefinition {
	return &models.ProcessDefinition{
		Key:  SubprojectDefinitionKey,
		Name: "subproject-model",
		DefaultVariables: map[string]any{
			"close_subproject": false,
			"creation_name":    "<Безымянный>",
		},
		Tasks: []*models.TaskTemplate{
			{
				Name:       "Создать",
				Initial:    true,
				Group:      models.GroupExpression{FromVariable: "initiator_group"},
				Successors: []string{"Создать"},
				StopWhen:   &models.VariableCondition{Variable: "close_subproject", Equals: "true"},
				Spawn: &models.SpawnRule{
					DefinitionKey: FileDefinitionKey,
					Variables: []models.VariableProjection{
						{From: "creation_name", As: "name"},
						{From: "initiator_group"},
					},
				},
			},
		},
	}
}

// ProjectDefinition models the top level: its looping task creates
// subproject children.
func ProjectDefinition() *models.ProcessDefinition {
	return &models.ProcessDefinition{
		Key:  ProjectDefinitionKey,
		Name: "project-model",
		DefaultVariables: map[string]any{
			"close_project": false,
			"creation_name": "<Безымянный>",
		},
		Tasks: []*models.TaskTemplate{
			{
				Name:       "Создать",
				Initial:    true,
				Group:      models.GroupExpression{FromVariable: "initiator_group"},
				Successors: []string{"Создать"},
				StopWhen:   &models.VariableCondition{Variable: "close_project", Equals: "true"},
				Spawn: &models.SpawnRule{
					DefinitionKey: SubprojectDefinitionKey,
					Variables: []models.VariableProjection{
						{From: "creation_name", As: "name"},
						{From: "initiator_group"},
					},
				},
			},
		},
	}
}

// Definitions returns the full model set in registration order.
func Definitions() []*models.ProcessDefinition {
	return []*models.ProcessDefinition{
		ProjectDefinition(),
		SubprojectDefinition(),
		FileDefinition(),
	}
}

// Users returns the identity fixture: an activitiTeam of three, one outsider
// and two group-less accounts.
func Users() *identity.InMemoryManager {
	manager := identity.NewInMemoryManager()
	manager.AddUser("bob", "password", "activitiTeam")
	manager.AddUser("john", "password", "activitiTeam")
	manager.AddUser("hannah", "password", "activitiTeam")
	manager.AddUser("other", "password", "otherTeam")
	manager.AddUser("system", "password")
	manager.AddUser("admin", "password")

	return manager
}
