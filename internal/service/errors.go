package service

import (
	"errors"
	"fmt"
	"strings"
)

// Erros do webhook.
var (
	ErrAuthentication = errors.New("assinatura do webhook inválida")
	ErrInvalidPayload = errors.New("payload do webhook inválido")
)

// ValidationError indica campos ausentes ou inválidos na requisição. Sempre é erro do cliente.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// CollaboratorError embrulha a falha de um colaborador externo.
// Nunca chega à resposta HTTP de um evento autenticado.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
