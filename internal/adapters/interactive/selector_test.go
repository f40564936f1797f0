package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

func TestFormatDeploymentOptions(t *testing.T) {
	color.NoColor = true

	options := formatDeploymentOptions([]*models.Deployment{
		{Name: "FundMe", Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			Verification: models.VerificationInfo{Status: models.VerificationStatusVerified}},
		{Name: "MockV3Aggregator", Address: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"},
	})

	assert.Equal(t, []string{
		"FundMe 0x5FbDB2315678afecb367f032d93F642f64180aa3 [verified]",
		"MockV3Aggregator 0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512 [unverified]",
	}, options)
}

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"FundMe 0x5FbD [verified]", "MockV3Aggregator 0xe7f1 [unverified]"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("fund", 0))
	assert.True(t, search("mv3", 1))
	assert.False(t, search("zzz", 0))
}

func TestPrompter_NonInteractive(t *testing.T) {
	p := NewPrompter(&config.RuntimeConfig{NonInteractive: true})
	ctx := context.Background()

	ok, err := p.Confirm(ctx, "Send 1 ETH?")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.SelectDeployment(ctx, []*models.Deployment{{Name: "FundMe"}}, "pick")
	assert.Error(t, err)
}

func TestPrompter_SingleDeployment(t *testing.T) {
	p := NewPrompter(&config.RuntimeConfig{})
	only := &models.Deployment{Name: "FundMe"}

	selected, err := p.SelectDeployment(context.Background(), []*models.Deployment{only}, "pick")
	require.NoError(t, err)
	assert.Same(t, only, selected)

	_, err = p.SelectDeployment(context.Background(), nil, "pick")
	assert.Error(t, err)
}
