package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/services"
	"github.com/taskboard-dev/taskboard/internal/utils"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UserResponse struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Tasks []TaskSummary `json:"tasks"`
}

func toUserResponse(user models.User) UserResponse {
	tasks := make([]TaskSummary, 0, len(user.Assignments))

	for _, assignment := range user.Assignments {
		tasks = append(tasks, TaskSummary{
			ID:     assignment.Task.ID,
			Name:   assignment.Task.Name,
			Status: assignment.Task.Status,
		})
	}

	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Tasks: tasks,
	}
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var missing []string

	if body.Name == "" {
		missing = append(missing, "name")
	}

	if body.Email == "" {
		missing = append(missing, "email")
	}

	if len(missing) > 0 {
		respondError(ctx, services.NewMissingFieldsError(missing...))
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", email).First(&existingUser).Error

	if err == nil {
		respondError(ctx, &services.UniqueConstraintError{Field: "email", Value: email})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	user := models.User{
		Name:  body.Name,
		Email: email,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"message": "User created successfully",
	})
}

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Preload("Assignments.Task").Find(&users).Error; err != nil {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	response := make([]UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, toUserResponse(user))
	}

	ctx.JSON(http.StatusOK, gin.H{"users": response})
}

func GetUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.Preload("Assignments.Task").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, &services.NotFoundError{Entity: "user", ID: id})
		} else {
			respondError(ctx, services.NewDataAccessError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

func UpdateUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Name == nil && body.Email == nil {
		respondError(ctx, &services.ValidationError{Message: "please provide name or email to update"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, &services.NotFoundError{Entity: "user", ID: id})
		} else {
			respondError(ctx, services.NewDataAccessError(err))
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))

		if email != user.Email {
			var existingUser models.User

			err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existingUser).Error

			if err == nil {
				respondError(ctx, &services.UniqueConstraintError{Field: "email", Value: email})
				return
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(ctx, services.NewDataAccessError(err))
				return
			}
		}

		updates["email"] = email
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		respondError(ctx, services.NewDataAccessError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
	})
}

func DeleteUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteUser(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User with ID %d was deleted successfully.", id),
	})
}
