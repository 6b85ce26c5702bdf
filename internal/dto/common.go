package dto

import (
	"github.com/udlperu/repositorio_mid/models/requestresponse"
)

// APIResponseDTO reutiliza el DTO estándar expuesto por requestresponse.
// Alias para mantener compatibilidad con consumidores existentes.
type APIResponseDTO = requestresponse.APIResponseDTO

// PageDTO representa una colección paginada.
type PageDTO[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}
