package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
)

// RequestValidator valida los DTO de entrada con las etiquetas `validate`.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator registra decimal.Decimal como número para gt/gte/lt.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Struct devuelve nil o un mensaje con el primer campo inválido.
func (v *RequestValidator) Struct(in any) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("campo %s no cumple la regla %s", fe.Namespace(), fe.Tag())
	}
	return err
}

// bind parsea el body y lo valida; responde 400 si falla y devuelve false.
func (v *RequestValidator) bind(c *fiber.Ctx, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, invalidBody(c)
	}
	if err := v.Struct(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// page lee limit/offset de la query y aplica los límites de PageRequest.
func (v *RequestValidator) page(c *fiber.Ctx) (dto.PageRequest, bool) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, false
	}
	if v.Struct(p) != nil {
		return p, false
	}
	p.DefaultPage()
	return p, true
}

func invalidPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "limit debe estar entre 0 y 100 y offset no puede ser negativo"})
}
