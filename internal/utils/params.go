package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetIDParam(ctx *gin.Context) (uint, error) {
	var err error

	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid ID")
	}

	return uint(id), nil
}
