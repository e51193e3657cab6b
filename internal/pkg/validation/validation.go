package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "auditstock/internal/errors"
)

// validate é a instância única do validador de structs. A instância cacheia
// os metadados de tags, então deve ser reutilizada em todo o serviço.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida as tags `validate:` de um payload de entrada e traduz a
// primeira falha para um apperror.ValidationError legível, que o handler
// mapeia para 400.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		// Erro de uso da API do validador (payload não-struct, etc.)
		return apperror.NewInternalError("Falha inesperada na validação do payload.", err)
	}

	messages := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		messages = append(messages, describe(fieldErr))
	}
	return apperror.NewValidationError(strings.Join(messages, "; "))
}

// describe monta a mensagem de um campo inválido.
func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("O campo '%s' é obrigatório.", fieldErr.Field())
	case "email":
		return fmt.Sprintf("O campo '%s' deve ser um e-mail válido.", fieldErr.Field())
	case "min":
		return fmt.Sprintf("O campo '%s' deve ter pelo menos %s caracteres.", fieldErr.Field(), fieldErr.Param())
	case "gte":
		return fmt.Sprintf("O campo '%s' deve ser maior ou igual a %s.", fieldErr.Field(), fieldErr.Param())
	case "lte":
		return fmt.Sprintf("O campo '%s' deve ser menor ou igual a %s.", fieldErr.Field(), fieldErr.Param())
	}
	return fmt.Sprintf("O campo '%s' é inválido (regra: %s).", fieldErr.Field(), fieldErr.Tag())
}
