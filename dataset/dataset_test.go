package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropy(t *testing.T) {
	uniform := []Record{
		NewRecord("r0", 'D', "yn"),
		NewRecord("r1", 'D', "ny"),
	}
	balanced := []Record{
		NewRecord("r0", 'D', "yn"),
		NewRecord("r1", 'R', "ny"),
		NewRecord("r2", 'D', "yy"),
		NewRecord("r3", 'R', "nn"),
	}
	skewed := []Record{
		NewRecord("r0", 'D', "yn"),
		NewRecord("r1", 'D', "ny"),
		NewRecord("r2", 'D', "yy"),
		NewRecord("r3", 'R', "nn"),
	}
	assert.Equal(t, 0.0, Entropy(nil, 'D'))
	assert.Equal(t, 0.0, Entropy(uniform, 'D'))
	assert.Equal(t, 0.0, Entropy(uniform, 'R'))
	assert.InDelta(t, 1.0, Entropy(balanced, 'D'), 1e-9)
	expected := -0.75*math.Log2(0.75) - 0.25*math.Log2(0.25)
	assert.InDelta(t, expected, Entropy(skewed, 'D'), 1e-9)
	assert.InDelta(t, Entropy(skewed, 'D'), Entropy(skewed, 'R'), 1e-9)
}

func TestBuilderBuild(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "ynny"))
	require.NoError(t, b.Add("v1", 'R', "nyyn"))
	require.NoError(t, b.Add("v2", 'D', "yyyy"))
	ds, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Count())
	assert.Equal(t, 4, ds.NumFeatures())
	assert.Equal(t, [2]byte{'D', 'R'}, ds.Labels())
	assert.Equal(t, []byte{'y', 'n'}, ds.FeatureValues())
	assert.Equal(t, "v1", ds.Records()[1].ID())
	assert.Equal(t, byte('y'), ds.Records()[1].Feature(2))
}

func TestBuilderRejectsFeatureLengthMismatch(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "yn"))
	err := b.Add("v1", 'R', "yny")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"v1"`)
}

func TestBuilderRejectsThirdLabel(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "yn"))
	require.NoError(t, b.Add("v1", 'R', "ny"))
	err := b.Add("v2", 'I', "yy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"v2"`)
	// The failed Add must not have touched the builder.
	ds, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Count())
}

func TestBuilderBuildErrors(t *testing.T) {
	_, err := NewBuilder().Build()
	require.Error(t, err)

	b := NewBuilder()
	require.NoError(t, b.Add("v0", 'D', "yn"))
	require.NoError(t, b.Add("v1", 'D', "ny"))
	_, err = b.Build()
	assert.Equal(t, ErrSingleLabel, err)
}

func TestFeatureValuesKeepFirstAppearanceOrder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("v0", 'a', "210"))
	require.NoError(t, b.Add("v1", 'b', "012"))
	ds, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []byte{'2', '1', '0'}, ds.FeatureValues())
}
