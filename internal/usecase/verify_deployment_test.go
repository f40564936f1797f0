package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

func TestVerifyDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies and records outcome", func(t *testing.T) {
		store := storeWithFundMe(t, "sepolia")
		verifier := &MockVerifier{}
		verifier.On("Verify", mock.Anything, mock.MatchedBy(func(req usecase.VerifyRequest) bool {
			return req.Address == fundMeAddr
		})).Return(&models.VerificationInfo{
			Status: models.VerificationStatusVerified,
			Reason: "Contract source code already verified",
		}, nil).Once()

		uc := usecase.NewVerifyDeployment(sepoliaConfig("key"), store, staticArtifacts{}, verifier, nil, &recordingSink{})
		result, err := uc.Run(ctx, usecase.VerifyOptions{})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.False(t, result.Skipped)
		assert.Equal(t, "Contract source code already verified", result.Message)

		stored, err := store.Get(ctx, "sepolia", bindings.FundMeName)
		require.NoError(t, err)
		assert.True(t, stored.IsVerified())
		verifier.AssertExpectations(t)
	})

	t.Run("skips verified deployments unless forced", func(t *testing.T) {
		store := storeWithFundMe(t, "sepolia")
		d, _ := store.Get(ctx, "sepolia", bindings.FundMeName)
		d.Verification.Status = models.VerificationStatusVerified
		verifier := &MockVerifier{}

		uc := usecase.NewVerifyDeployment(sepoliaConfig("key"), store, staticArtifacts{}, verifier, nil, &recordingSink{})
		result, err := uc.Run(ctx, usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("failure is reported in the result", func(t *testing.T) {
		store := storeWithFundMe(t, "sepolia")
		verifier := &MockVerifier{}
		verifier.On("Verify", mock.Anything, mock.Anything).
			Return(nil, domain.ErrVerificationFailed).Once()

		uc := usecase.NewVerifyDeployment(sepoliaConfig("key"), store, staticArtifacts{}, verifier, nil, &recordingSink{})
		result, err := uc.Run(ctx, usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, result.Success)

		stored, _ := store.Get(ctx, "sepolia", bindings.FundMeName)
		assert.Equal(t, models.VerificationStatusFailed, stored.Verification.Status)
	})

	t.Run("requires an api key", func(t *testing.T) {
		uc := usecase.NewVerifyDeployment(sepoliaConfig(""), storeWithFundMe(t, "sepolia"), staticArtifacts{}, &MockVerifier{}, nil, &recordingSink{})
		_, err := uc.Run(ctx, usecase.VerifyOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ETHERSCAN_API_KEY")
	})

	t.Run("refuses development chains", func(t *testing.T) {
		uc := usecase.NewVerifyDeployment(localhostConfig(), storeWithFundMe(t, "localhost"), staticArtifacts{}, &MockVerifier{}, nil, &recordingSink{})
		_, err := uc.Run(ctx, usecase.VerifyOptions{})
		assert.True(t, errors.Is(err, domain.ErrNotDevelopmentChain))
	})

	t.Run("interactive selection", func(t *testing.T) {
		store := storeWithFundMe(t, "sepolia")
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: bindings.MockV3AggregatorName, Network: "sepolia", Address: feedAddr.Hex()}))

		selector := &MockSelector{}
		selector.On("SelectDeployment", mock.Anything, mock.Anything, mock.AnythingOfType("string")).
			Return(func(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
				for _, d := range deployments {
					if d.Name == bindings.MockV3AggregatorName {
						return d, nil
					}
				}
				return nil, errors.New("not offered")
			}).Once()

		verifier := &MockVerifier{}
		verifier.On("Verify", mock.Anything, mock.MatchedBy(func(req usecase.VerifyRequest) bool {
			return req.Address == feedAddr
		})).Return(&models.VerificationInfo{Status: models.VerificationStatusVerified}, nil).Once()

		uc := usecase.NewVerifyDeployment(sepoliaConfig("key"), store, staticArtifacts{}, verifier, selector, &recordingSink{})
		result, err := uc.Run(ctx, usecase.VerifyOptions{Select: true})
		require.NoError(t, err)
		assert.Equal(t, bindings.MockV3AggregatorName, result.Deployment.Name)
		selector.AssertExpectations(t)
		verifier.AssertExpectations(t)
	})

	t.Run("selection needs a terminal", func(t *testing.T) {
		cfg := sepoliaConfig("key")
		cfg.NonInteractive = true
		uc := usecase.NewVerifyDeployment(cfg, storeWithFundMe(t, "sepolia"), staticArtifacts{}, &MockVerifier{}, &MockSelector{}, &recordingSink{})
		_, err := uc.Run(ctx, usecase.VerifyOptions{Select: true})
		assert.Error(t, err)
	})
}

type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if fn, ok := args.Get(0).(func(context.Context, []*models.Deployment, string) (*models.Deployment, error)); ok {
		return fn(ctx, deployments, prompt)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}
