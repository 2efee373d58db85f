package service

import (
	"testing"
	"time"

	"workhub/internal/api/models"

	"github.com/stretchr/testify/assert"
)

func TestIncidentAlertBody(t *testing.T) {
	incident := models.Incident{
		Description: "Forklift hydraulic leak in bay 3",
		Severity:    "high",
		ImageURL:    "https://cdn.example.com/leak.jpg",
		CreatedAt:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	reporter := models.User{FullName: "Jordan Velez", Email: "jordan@example.com"}

	body := IncidentAlertBody(incident, reporter)

	assert.Contains(t, body, "Forklift hydraulic leak in bay 3")
	assert.Contains(t, body, "high")
	assert.Contains(t, body, "Jordan Velez")
	assert.Contains(t, body, "jordan@example.com")
	assert.Contains(t, body, "https://cdn.example.com/leak.jpg")
	assert.Contains(t, body, "2025-03-14 09:30")
}

func TestIncidentAlertBody_NoImage(t *testing.T) {
	incident := models.Incident{Description: "Broken pallet", Severity: "low"}
	reporter := models.User{FullName: "Sam", Email: "sam@example.com"}

	body := IncidentAlertBody(incident, reporter)

	assert.NotContains(t, body, "Attached photo")
}

func TestRegistrationBody(t *testing.T) {
	worker := models.User{FullName: "Ana Silva", Email: "ana@example.com"}

	body := RegistrationBody(worker, "a1b2c3d4e5f6a7b8")

	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "a1b2c3d4e5f6a7b8")
	assert.Contains(t, body, "new password on first login")
}
