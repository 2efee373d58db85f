package mapper

import (
	"testing"

	"workhub/internal/api/handler/request"
	"workhub/internal/api/models"
	"workhub/pkg"

	"github.com/stretchr/testify/assert"
)

func TestTaskMapper_DtoToEntity_Defaults(t *testing.T) {
	m := TaskMapper{}

	task := m.DtoToEntity(request.CreateTaskDTO{
		Title:      "Inspect scaffolding",
		AssignedTo: []uint{3, 9},
	}, 1, 5)

	assert.Equal(t, "Inspect scaffolding", task.Title)
	assert.Equal(t, models.UserIDList{3, 9}, task.AssignedTo)
	assert.Equal(t, uint(1), task.AssignedBy)
	assert.Equal(t, uint(5), task.TeamID)
	assert.Equal(t, "upcoming", task.Status)
	assert.Equal(t, "normal", task.Priority)
}

func TestTaskMapper_DtoToUpdate_PartialFields(t *testing.T) {
	m := TaskMapper{}
	task := models.Task{
		Title:    "Old title",
		Priority: "low",
		Location: "Depot A",
	}

	m.DtoToUpdate(request.UpdateTaskDTO{
		Title:    pkg.ToPtr("New title"),
		Priority: pkg.ToPtr("urgent"),
	}, &task)

	assert.Equal(t, "New title", task.Title)
	assert.Equal(t, "urgent", task.Priority)
	assert.Equal(t, "Depot A", task.Location, "unset fields must not be touched")
}

func TestTaskMapper_EntityToResponseRoundTrip(t *testing.T) {
	m := TaskMapper{}
	task := models.Task{
		ID:                 12,
		Title:              "Replace filters",
		AssignedTo:         models.UserIDList{4},
		AssignedBy:         2,
		TeamID:             7,
		Status:             "ongoing",
		Priority:           "high",
		IsUrgent:           true,
		ProgressPercentage: 40,
	}

	dto := m.EntityToResponse(task)

	assert.Equal(t, uint(12), dto.ID)
	assert.Equal(t, []uint{4}, dto.AssignedTo)
	assert.Equal(t, uint(7), dto.TeamID)
	assert.Equal(t, "ongoing", dto.Status)
	assert.True(t, dto.IsUrgent)
	assert.Equal(t, 40, dto.ProgressPercentage)
}
