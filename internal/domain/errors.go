package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrMissingCredential  = errors.New("credencial de proveedor no configurada")
	ErrUnsupportedChannel = errors.New("canal de envío no soportado")
)

// DeliveryError indica que un proveedor externo rechazó el envío.
// Conserva el status HTTP y el mensaje del proveedor para el reporte por canal.
type DeliveryError struct {
	Provider   string // "resend", "twilio", "openai"
	StatusCode int
	Message    string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
}

// MissingCredentialError identifica qué credencial falta; envuelve ErrMissingCredential
// para que el caller pueda clasificarlo con errors.Is.
type MissingCredentialError struct {
	Credential string // ej. "resend_api_key"
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingCredential.Error(), e.Credential)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }
