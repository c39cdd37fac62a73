package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/qoloner/qoloner-api/internal/middleware"
	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// maxImageBytes caps accepted image uploads at 10 MiB.
const maxImageBytes = 10 << 20

// ListingHandler handles listing submission.
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler constructs a ListingHandler.
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// Create accepts the multipart listing form (title, description, price,
// category, image) and creates the product for the authenticated master.
func (h *ListingHandler) Create(c *gin.Context) {
	in := &service.ListingInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
	}

	// A missing file is reported by the service in validation order, after
	// the text fields.
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > maxImageBytes {
			utils.FieldError(c, 400, "VALIDATION_ERROR", "image", "Файл слишком большой (максимум 10 МБ)")
			return
		}
		f, err := fh.Open()
		if err != nil {
			utils.Error(c, 400, "INVALID_BODY", "Не удалось прочитать файл")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.Error(c, 400, "INVALID_BODY", "Не удалось прочитать файл")
			return
		}
		in.Image = &service.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	product, err := h.listingService.CreateListing(c.Request.Context(), middleware.MasterID(c), in)
	if err != nil {
		var ve *utils.ValidationError
		if errors.As(err, &ve) {
			utils.FieldError(c, 400, "VALIDATION_ERROR", ve.Field, ve.Message)
			return
		}
		utils.Error(c, 500, "STORE_ERROR", err.Error())
		return
	}

	utils.Success(c, 201, "Товар добавлен", gin.H{
		"product": product,
	})
}
