package media

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindImage   Kind = "image"
	KindAudio   Kind = "audio"
	KindVideo   Kind = "video"
	KindArchive Kind = "archive"
	// KindPending marks an upload that was accepted but never produced
	// usable variants. Rows with this kind carry zero assets.
	KindPending Kind = "pending"
)

type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
	StatusDeleted    Status = "deleted"
)

type AssetStatus string

const (
	AssetStatusReady  AssetStatus = "ready"
	AssetStatusFailed AssetStatus = "failed"
)

type Media struct {
	ID               int64     `json:"id"`
	PublicID         string    `json:"public_id"`
	OwnerUserID      uuid.UUID `json:"owner_user_id"`
	Kind             Kind      `json:"type"`
	OriginalFilename string    `json:"original_filename"`
	OriginalExt      *string   `json:"original_ext"`
	MimeType         string    `json:"mime_type"`
	Bytes            int64     `json:"bytes"`
	SHA256           []byte    `json:"-"`
	Width            *int      `json:"width"`
	Height           *int      `json:"height"`
	DurationMs       *int64    `json:"duration_ms"`
	Title            *string   `json:"title"`
	Caption          *string   `json:"caption"`
	AltText          *string   `json:"alt_text"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Assets []*Asset `json:"assets,omitempty"`
}

type Asset struct {
	ID         int64       `json:"id"`
	MediaID    int64       `json:"media_id"`
	Variant    string      `json:"variant"`
	Format     string      `json:"format"`
	Path       string      `json:"path"`
	Bytes      int64       `json:"bytes"`
	SHA256     []byte      `json:"-"`
	Width      *int        `json:"width"`
	Height     *int        `json:"height"`
	DurationMs *int64      `json:"duration_ms"`
	Status     AssetStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AssetRecord is one produced variant handed to the recorder. The bytes are
// already durable in the blob store under Path by the time this is recorded.
type AssetRecord struct {
	Variant    string
	Format     string
	Path       string
	Bytes      int64
	SHA256     []byte
	Width      *int
	Height     *int
	DurationMs *int64
}

// IngestionRecord is everything the metadata recorder persists in one
// transaction: the media row, its asset rows, and the collection link.
type IngestionRecord struct {
	PublicID         string
	OwnerUserID      uuid.UUID
	Kind             Kind
	OriginalFilename string
	MimeType         string
	Bytes            int64
	SHA256           []byte
	Width            *int
	Height           *int
	DurationMs       *int64
	Title            *string
	Caption          *string
	// CollectionID, when nil, resolves to the owner's default collection
	// (created lazily).
	CollectionID *int64
	Assets       []AssetRecord
}

// Recorder persists an ingestion atomically. Either the media row, every
// asset row, and the collection item all commit, or none of them do.
type Recorder interface {
	RecordIngestion(ctx context.Context, rec IngestionRecord) (*Media, error)
}

type Repository interface {
	FindByID(ctx context.Context, id int64, ownerID uuid.UUID) (*Media, error)
	FindByPublicID(ctx context.Context, publicID string) (*Media, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Media, error)
	UpdateMeta(ctx context.Context, id int64, ownerID uuid.UUID, title, caption, altText *string) error
	// Delete removes the media row; asset and collection item rows go with
	// it via cascading foreign keys. Returns the deleted row so the caller
	// can purge the storage prefix afterwards.
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) (*Media, error)
}
