package http

import (
	"context"

	"emcli/internal/catalog"
	"emcli/internal/services"
	"emcli/pkg/contracts/domain"
)

// ConvertServiceInterface is the contract the conversion handlers depend
// on. Satisfied by services.ConvertService; tests substitute mocks.
type ConvertServiceInterface interface {
	Convert(ctx context.Context, req services.ConvertRequest) (*services.ConvertResult, error)
	DocumentByID(ctx context.Context, id string) (*domain.Document, error)
	Conversions(ctx context.Context) ([]catalog.Conversion, error)
}
