package engine

import (
	"github.com/goflowd/flowd/pkg/models"
)

// ResolveCandidateGroups evaluates a template's group expression against an
// instance's variable scope. Pure and evaluated exactly once, at task
// creation; the result is stored on the task and never re-derived.
//
// A variable reference reads the variable's string form at resolution time,
// which is how "the initiator's group becomes the sole candidate group"
// works: the starter passes its own group as a start variable and the first
// task binds to it.
func ResolveCandidateGroups(template *models.TaskTemplate, instance *models.ProcessInstance) []string {
	groups := make([]string, 0, 2)

	if template.Group.Literal != "" {
		groups = append(groups, template.Group.Literal)
	}

	if template.Group.FromVariable != "" {
		if value, ok := instance.Variable(template.Group.FromVariable); ok {
			if group := models.StringValue(value); group != "" {
				groups = append(groups, group)
			}
		}
	}

	if len(groups) == 0 {
		return nil
	}

	return groups
}
