package engine

import (
	"testing"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveCandidateGroups_Literal(t *testing.T) {
	template := &models.TaskTemplate{
		Name:  "review",
		Group: models.GroupExpression{Literal: "reviewers"},
	}

	groups := ResolveCandidateGroups(template, &models.ProcessInstance{})
	assert.Equal(t, []string{"reviewers"}, groups)
}

func TestResolveCandidateGroups_FromVariable(t *testing.T) {
	template := &models.TaskTemplate{
		Name:  "Изменить",
		Group: models.GroupExpression{FromVariable: "initiator_group"},
	}

	instance := &models.ProcessInstance{}
	instance.SetVariable("initiator_group", "activitiTeam")

	groups := ResolveCandidateGroups(template, instance)
	assert.Equal(t, []string{"activitiTeam"}, groups)
}

func TestResolveCandidateGroups_MissingVariable(t *testing.T) {
	template := &models.TaskTemplate{
		Group: models.GroupExpression{FromVariable: "initiator_group"},
	}

	groups := ResolveCandidateGroups(template, &models.ProcessInstance{})
	assert.Nil(t, groups)
}

func TestResolveCandidateGroups_LiteralAndVariable(t *testing.T) {
	template := &models.TaskTemplate{
		Group: models.GroupExpression{Literal: "admins", FromVariable: "initiator_group"},
	}

	instance := &models.ProcessInstance{}
	instance.SetVariable("initiator_group", "activitiTeam")

	groups := ResolveCandidateGroups(template, instance)
	assert.Equal(t, []string{"admins", "activitiTeam"}, groups)
}

func TestResolveCandidateGroups_NonStringVariable(t *testing.T) {
	template := &models.TaskTemplate{
		Group: models.GroupExpression{FromVariable: "team_number"},
	}

	instance := &models.ProcessInstance{}
	instance.SetVariable("team_number", float64(7))

	groups := ResolveCandidateGroups(template, instance)
	assert.Equal(t, []string{"7"}, groups)
}
