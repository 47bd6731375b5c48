package application

import (
	"errors"
	"fmt"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyProductName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeQty) ||
		errors.Is(err, domain.ErrEmptyCategory) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
