package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// MasterHandler handles master registration.
type MasterHandler struct {
	masterService *service.MasterService
}

// NewMasterHandler constructs a MasterHandler.
func NewMasterHandler(masterService *service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// Register creates a master and returns it with the submission token that
// authorizes the follow-up listing submission.
func (h *MasterHandler) Register(c *gin.Context) {
	var in service.RegistrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Некорректное тело запроса")
		return
	}

	result, err := h.masterService.Register(c.Request.Context(), &in)
	if err != nil {
		var ve *utils.ValidationError
		switch {
		case errors.As(err, &ve):
			utils.FieldError(c, 400, "VALIDATION_ERROR", ve.Field, ve.Message)
		case errors.Is(err, utils.ErrDuplicateTelegram):
			utils.Error(c, 409, "DUPLICATE_TELEGRAM", "Мастерица с таким Telegram уже зарегистрирована")
		default:
			utils.Error(c, 500, "STORE_ERROR", err.Error())
		}
		return
	}

	utils.Success(c, 201, "Регистрация успешна", result)
}
