package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nampas/decisiontree/dataset"
)

const votesMetadata = `
features:
  - handicapped-infants
  - water-project-cost-sharing
  - adoption-of-the-budget-resolution
  - physician-fee-freeze
labels: DR
values: yn
`

func TestReadMetadata(t *testing.T) {
	metadata, err := ReadMetadata([]byte(votesMetadata))
	require.NoError(t, err)
	assert.Len(t, metadata.Features, 4)
	assert.Equal(t, "DR", metadata.Labels)
	assert.Equal(t, "yn", metadata.Values)
	assert.Equal(t, "physician-fee-freeze", metadata.FeatureName(3))
	assert.Equal(t, "F7", metadata.FeatureName(7))
}

func TestReadMetadataRejectsBadLabels(t *testing.T) {
	_, err := ReadMetadata([]byte("labels: DRI\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 2 bytes")
}

func TestValidate(t *testing.T) {
	metadata, err := ReadMetadata([]byte(votesMetadata))
	require.NoError(t, err)

	b := dataset.NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "ynny"))
	require.NoError(t, b.Add("v1", 'R', "nyyn"))
	ds, err := b.Build()
	require.NoError(t, err)
	assert.NoError(t, metadata.Validate(ds))

	b = dataset.NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "yn"))
	require.NoError(t, b.Add("v1", 'R', "ny"))
	short, err := b.Build()
	require.NoError(t, err)
	err = metadata.Validate(short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names 4 features")

	b = dataset.NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "ynnu"))
	require.NoError(t, b.Add("v1", 'R', "nyyn"))
	unknown, err := b.Build()
	require.NoError(t, err)
	err = metadata.Validate(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among declared values")
}
