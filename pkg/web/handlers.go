package web

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/goflowd/flowd/pkg/engine"
	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

type APIHandlers struct {
	processRuntime engine.ProcessRuntime
	taskRuntime    engine.TaskRuntime
	validator      *validator.Validate
}

func NewAPIHandlers(
	processRuntime engine.ProcessRuntime,
	taskRuntime engine.TaskRuntime,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		processRuntime: processRuntime,
		taskRuntime:    taskRuntime,
		validator:      validate,
	}
}

func (h *APIHandlers) GetDefinitions(c fiber.Ctx) error {
	pageable, err := parsePageable(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters: "+err.Error())
	}

	return c.JSON(h.processRuntime.Definitions(pageable))
}

func (h *APIHandlers) StartProcess(c fiber.Ctx) error {
	var req StartProcessRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	instance, err := h.processRuntime.Start(c.Context(), req.DefinitionKey, req.Variables)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(instance)
}

func (h *APIHandlers) GetProcessInstances(c fiber.Ctx) error {
	pageable, err := parsePageable(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters: "+err.Error())
	}

	filter := persistence.InstanceFilter{
		DefinitionKey:    c.Query("definition_key"),
		ParentInstanceID: c.Query("parent_instance_id"),
	}

	page, err := h.processRuntime.List(c.Context(), filter, pageable)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(page)
}

func (h *APIHandlers) GetProcessInstance(c fiber.Ctx) error {
	instance, err := h.processRuntime.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(instance)
}

func (h *APIHandlers) GetVariables(c fiber.Ctx) error {
	variables, err := h.processRuntime.Variables(c.Context(), c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	if variables == nil {
		variables = []models.VariableInstance{}
	}

	return c.JSON(variables)
}

func (h *APIHandlers) SetVariables(c fiber.Ctx) error {
	var req SetVariablesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.processRuntime.SetVariables(c.Context(), c.Params("id"), req.Variables); err != nil {
		return handleEngineError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetTasks(c fiber.Ctx) error {
	pageable, err := parsePageable(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters: "+err.Error())
	}

	filter := persistence.TaskFilter{
		ProcessInstanceID: c.Query("process_instance_id"),
	}

	page, err := h.taskRuntime.Tasks(c.Context(), filter, pageable)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(page)
}

func (h *APIHandlers) ClaimTask(c fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return unauthorized(c, "no authenticated principal")
	}

	task, err := h.taskRuntime.Claim(c.Context(), c.Params("id"), principal)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(task)
}

func (h *APIHandlers) CompleteTask(c fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return unauthorized(c, "no authenticated principal")
	}

	var req CompleteTaskRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
	}

	task, err := h.taskRuntime.Complete(c.Context(), c.Params("id"), principal, req.Variables)
	if err != nil {
		return handleEngineError(c, err)
	}

	return c.JSON(task)
}

func (h *APIHandlers) GetCandidateGroups(c fiber.Ctx) error {
	groups, err := h.taskRuntime.CandidateGroups(c.Context(), c.Params("id"))
	if err != nil {
		return handleEngineError(c, err)
	}

	if groups == nil {
		groups = []string{}
	}

	return c.JSON(groups)
}

func parsePageable(c fiber.Ctx) (models.Pageable, error) {
	pageable := models.Pageable{}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return pageable, err
		}

		pageable.Offset = offset
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return pageable, err
		}

		pageable.Limit = limit
	}

	return pageable, nil
}
