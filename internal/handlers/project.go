package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/services"
	"github.com/taskboard-dev/taskboard/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      string  `json:"status"`
}

type TaskSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ProjectResponse struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Status      string        `json:"status"`
	Tasks       []TaskSummary `json:"tasks"`
}

func toProjectResponse(project models.Project) ProjectResponse {
	tasks := make([]TaskSummary, 0, len(project.Tasks))

	for _, task := range project.Tasks {
		tasks = append(tasks, TaskSummary{
			ID:     task.ID,
			Name:   task.Name,
			Status: task.Status,
		})
	}

	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Status:      project.Status,
		Tasks:       tasks,
	}
}

func listFilterFromQuery(ctx *gin.Context) services.ListFilter {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	return services.ListFilter{
		Page:   page,
		Status: ctx.Query("status"),
		Name:   ctx.Query("name"),
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var missing []string

	if body.Name == "" {
		missing = append(missing, "name")
	}

	if body.StartDate == "" {
		missing = append(missing, "start_date")
	}

	if body.Status == "" {
		missing = append(missing, "status")
	}

	if len(missing) > 0 {
		respondError(ctx, services.NewMissingFieldsError(missing...))
		return
	}

	if !models.IsValidProjectStatus(body.Status) {
		respondError(ctx, &services.ValidationError{Message: fmt.Sprintf("invalid project status: %q", body.Status)})
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Status:      body.Status,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	filter := listFilterFromQuery(ctx)

	var projects []models.Project

	result, err := services.Paginate(db.DB.Preload("Tasks"), &models.Project{}, &projects, filter)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"projects":      response,
		"page":          result.Page,
		"totalPages":    result.TotalPages,
		"totalProjects": result.TotalCount,
	})
}

func GetProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Preload("Tasks").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, &services.NotFoundError{Entity: "project", ID: id})
		} else {
			respondError(ctx, services.NewDataAccessError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var missing []string

	if body.Name == "" {
		missing = append(missing, "name")
	}

	if body.Status == "" {
		missing = append(missing, "status")
	}

	if len(missing) > 0 {
		respondError(ctx, services.NewMissingFieldsError(missing...))
		return
	}

	if !models.IsValidProjectStatus(body.Status) {
		respondError(ctx, &services.ValidationError{Message: fmt.Sprintf("invalid project status: %q", body.Status)})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, &services.NotFoundError{Entity: "project", ID: id})
		} else {
			respondError(ctx, services.NewDataAccessError(err))
		}
		return
	}

	project.Name = body.Name
	project.Status = body.Status

	if body.Description != nil {
		project.Description = *body.Description
	}

	if body.StartDate != nil {
		project.StartDate = *body.StartDate
	}

	if body.EndDate != nil {
		project.EndDate = *body.EndDate
	}

	if err := db.DB.Save(&project).Error; err != nil {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteProject(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Project with ID %d was deleted successfully.", id),
	})
}
