package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/LisandroRios/GestionDeVentas/internal/apierror"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeDomainError maps service-layer errors onto HTTP status codes.
// Conflict-class failures (no open session, not enough stock) get 409,
// lock contention gets 503 so the client knows a retry may succeed.
func writeDomainError(c *gin.Context, err error) {
	var (
		notFound     *service.VariantNotFoundError
		insufficient *service.InsufficientStockError
		wouldGoNeg   *service.StockWouldGoNegativeError
		txErr        *service.TransactionError
	)

	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNoOpenCashSession),
		errors.Is(err, service.ErrCashSessionAlreadyOpen):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &insufficient), errors.As(err, &wouldGoNeg):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
	case errors.As(err, &txErr):
		c.JSON(http.StatusInternalServerError, apierror.New("transaction failed"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
