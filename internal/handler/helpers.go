package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/Ayax911/ClothingStore/internal/apierror"
	"github.com/Ayax911/ClothingStore/internal/apperr"

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
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
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

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// respondError traduce el kind del error de dominio a un status HTTP.
// Esta es la unica capa que conoce el transporte; los servicios solo
// devuelven kinds.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.MissingData:
		status = http.StatusBadRequest
	case apperr.InvalidValue, apperr.ReferenceNotFound:
		status = http.StatusUnprocessableEntity
	case apperr.AlreadyPersisted, apperr.DuplicateCode, apperr.ConcurrencyConflict, apperr.HasDependents:
		status = http.StatusConflict
	case apperr.NotExistent:
		status = http.StatusNotFound
	case apperr.StorageFailure:
		status = http.StatusInternalServerError
	}
	c.JSON(status, apierror.NewWithCode(err.Error(), kind.String()))
}
