package billing

import (
	"errors"
	"fmt"
	"testing"

	"cardaloom/internal/model"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError(t *testing.T) {
	t.Run("Provider message is surfaced as upstream error", func(t *testing.T) {
		err := providerError(fmt.Errorf("request failed: %w", &stripe.Error{Msg: "No such price: price_123"}))

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeUpstream, domainErr.Code)
		assert.Equal(t, "No such price: price_123", domainErr.Message)
	})

	t.Run("Transport failure is still an upstream error", func(t *testing.T) {
		err := providerError(errors.New("connection reset by peer"))

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeUpstream, domainErr.Code)
		assert.Contains(t, domainErr.Message, "connection reset by peer")
	})

	t.Run("Provider error without a message", func(t *testing.T) {
		err := providerError(&stripe.Error{})

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeUpstream, domainErr.Code)
		assert.NotEmpty(t, domainErr.Message)
	})
}
