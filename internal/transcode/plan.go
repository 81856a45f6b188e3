package transcode

import (
	"github.com/tuanng/mediahost/internal/domain/media"
)

// VariantSpec names one rendition to produce. MaxDimension 0 means
// pass-through: no resize, original variant.
type VariantSpec struct {
	Name         string
	MaxDimension int
}

// Plan returns the fixed, ordered variant set for a media kind. The set is
// part of the wire contract: clients build variant URLs from it without
// asking the server, so it must stay stable.
//
// Images get two bounded renditions plus a re-encoded original. Audio is
// re-encoded to a single normalized original. Video and archives are stored
// as-is.
func Plan(kind media.Kind) []VariantSpec {
	switch kind {
	case media.KindImage:
		return []VariantSpec{
			{Name: "640", MaxDimension: 640},
			{Name: "960", MaxDimension: 960},
			{Name: "original"},
		}
	case media.KindAudio, media.KindVideo, media.KindArchive:
		return []VariantSpec{{Name: "original"}}
	}
	return nil
}
