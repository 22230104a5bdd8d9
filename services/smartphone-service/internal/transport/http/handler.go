package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"smartphones/services/smartphone-service/internal/application"
	"smartphones/services/smartphone-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const DeleteCodeHeader = "x-delete-code"

type SmartphoneHandler struct {
	useCase *application.SmartphoneUseCase
	env     string
}

func NewSmartphoneHandler(uc *application.SmartphoneUseCase, env string) *SmartphoneHandler {
	return &SmartphoneHandler{useCase: uc, env: env}
}

// GET /api/smartphones
func (h *SmartphoneHandler) List(c *gin.Context) {
	phones, err := h.useCase.List(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, phones)
}

// GET /api/smartphones/:id
func (h *SmartphoneHandler) GetOne(c *gin.Context) {
	phone, err := h.useCase.Get(c, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

// POST /api/smartphones
func (h *SmartphoneHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badBody(c, err)
		return
	}

	phone, err := h.useCase.Create(c, payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, phone)
}

// PUT /api/smartphones/:id
func (h *SmartphoneHandler) Update(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badBody(c, err)
		return
	}

	phone, err := h.useCase.Update(c, c.Param("id"), payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

// DELETE /api/smartphones/:id
func (h *SmartphoneHandler) Delete(c *gin.Context) {
	err := h.useCase.Delete(c, c.Param("id"), c.GetHeader(DeleteCodeHeader))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Smartphone deleted"})
}

func (h *SmartphoneHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSmartphoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Smartphone not found"})
	case errors.Is(err, domain.ErrInvalidDeleteCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid delete code"})
	case errors.Is(err, domain.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		internalError(c, h.env, err)
	}
}

// badBody reports a body that could not be bound. Decoder detail is only
// shown outside production.
func (h *SmartphoneHandler) badBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
		return
	}
	msg := domain.ErrInvalidPayload.Error()
	if h.env != "production" {
		msg = err.Error()
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// internalError hides the fault text in production.
func internalError(c *gin.Context, env string, err error) {
	msg := "Something went wrong"
	if env != "production" {
		msg = fmt.Sprint(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": msg,
	})
}
