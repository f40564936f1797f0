package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewShowDeployment(localhostConfig(), storeWithFundMe(t, "localhost"), &recordingSink{})

	t.Run("by name", func(t *testing.T) {
		d, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: bindings.FundMeName})
		require.NoError(t, err)
		assert.Equal(t, fundMeAddr.Hex(), d.Address)
	})

	t.Run("by address ignores case", func(t *testing.T) {
		d, err := uc.Run(ctx, usecase.ShowDeploymentParams{Address: strings.ToLower(fundMeAddr.Hex())})
		require.NoError(t, err)
		assert.Equal(t, bindings.FundMeName, d.Name)
	})

	t.Run("unknown address", func(t *testing.T) {
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Address: userAddr.Hex()})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("nothing to look up", func(t *testing.T) {
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{})
		assert.Error(t, err)
	})
}
