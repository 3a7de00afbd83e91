package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/services"
	"github.com/taskboard-dev/taskboard/internal/utils"
	"gorm.io/gorm"
)

var capacityGuard = services.CapacityGuard{Config: services.CapacityConfigFromEnv()}

type CreateTaskRequest struct {
	ProjectID     uint   `json:"project_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DueDate       string `json:"due_date"`
	Status        string `json:"status"`
	AssignedUsers []uint `json:"assigned_users"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TaskResponse struct {
	ID            uint          `json:"id"`
	ProjectID     uint          `json:"project_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	DueDate       string        `json:"due_date"`
	Status        string        `json:"status"`
	AssignedUsers []UserSummary `json:"assigned_users"`
}

func toTaskResponse(task models.Task) TaskResponse {
	assigned := make([]UserSummary, 0, len(task.Assignments))

	for _, assignment := range task.Assignments {
		assigned = append(assigned, UserSummary{
			ID:   assignment.User.ID,
			Name: assignment.User.Name,
		})
	}

	return TaskResponse{
		ID:            task.ID,
		ProjectID:     task.ProjectID,
		Name:          task.Name,
		Description:   task.Description,
		DueDate:       task.DueDate,
		Status:        task.Status,
		AssignedUsers: assigned,
	}
}

func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var missing []string

	if body.ProjectID == 0 {
		missing = append(missing, "project_id")
	}

	if body.Name == "" {
		missing = append(missing, "name")
	}

	if body.Status == "" {
		missing = append(missing, "status")
	}

	if len(body.AssignedUsers) == 0 {
		missing = append(missing, "assigned_users")
	}

	if len(missing) > 0 {
		respondError(ctx, services.NewMissingFieldsError(missing...))
		return
	}

	if !models.IsValidTaskStatus(body.Status) {
		respondError(ctx, &services.ValidationError{Message: fmt.Sprintf("invalid task status: %q", body.Status)})
		return
	}

	task, err := services.CreateTask(db.DB, capacityGuard, services.CreateTaskInput{
		ProjectID:     body.ProjectID,
		Name:          body.Name,
		Description:   body.Description,
		DueDate:       body.DueDate,
		Status:        body.Status,
		AssignedUsers: body.AssignedUsers,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":        "Task created successfully",
		"task_id":        task.ID,
		"project_id":     task.ProjectID,
		"name":           task.Name,
		"description":    task.Description,
		"due_date":       task.DueDate,
		"status":         task.Status,
		"assigned_users": body.AssignedUsers,
	})
}

func ListTasks(ctx *gin.Context) {
	filter := listFilterFromQuery(ctx)

	var tasks []models.Task

	result, err := services.Paginate(db.DB.Preload("Assignments.User"), &models.Task{}, &tasks, filter)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, toTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"tasks":      response,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"totalTasks": result.TotalCount,
	})
}

func GetTask(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.Preload("Assignments.User").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, &services.NotFoundError{Entity: "task", ID: id})
		} else {
			respondError(ctx, services.NewDataAccessError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status != nil && !models.IsValidTaskStatus(*body.Status) {
		respondError(ctx, &services.ValidationError{Message: fmt.Sprintf("invalid task status: %q", *body.Status)})
		return
	}

	task, projectCompleted, err := services.UpdateTask(db.DB, id, services.TaskUpdate{
		Name:        body.Name,
		Description: body.Description,
		DueDate:     body.DueDate,
		Status:      body.Status,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Task updated successfully."

	if projectCompleted {
		message = "Task updated and project marked as completed successfully."
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     message,
		"id":          task.ID,
		"project_id":  task.ProjectID,
		"name":        task.Name,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      task.Status,
	})
}

func DeleteTask(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteTask(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
