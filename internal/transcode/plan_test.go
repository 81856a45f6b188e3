package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanng/mediahost/internal/domain/media"
)

func TestPlan_Image(t *testing.T) {
	plan := Plan(media.KindImage)
	require.Len(t, plan, 3)

	assert.Equal(t, VariantSpec{Name: "640", MaxDimension: 640}, plan[0])
	assert.Equal(t, VariantSpec{Name: "960", MaxDimension: 960}, plan[1])
	assert.Equal(t, VariantSpec{Name: "original", MaxDimension: 0}, plan[2])
}

func TestPlan_PassThroughKinds(t *testing.T) {
	for _, kind := range []media.Kind{media.KindAudio, media.KindVideo, media.KindArchive} {
		plan := Plan(kind)
		require.Len(t, plan, 1, kind)
		assert.Equal(t, "original", plan[0].Name)
		assert.Zero(t, plan[0].MaxDimension)
	}
}

func TestPlan_Unknown(t *testing.T) {
	assert.Empty(t, Plan(media.KindPending))
	assert.Empty(t, Plan(media.Kind("bogus")))
}
