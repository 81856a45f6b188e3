package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tuanng/mediahost/adapters/blob_storage"
	mediaUC "github.com/tuanng/mediahost/internal/application/usecase/media"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/internal/transcode"
	"github.com/tuanng/mediahost/pkg/auth"
	"github.com/tuanng/mediahost/pkg/logger"
)

type memRecorder struct {
	records []media.IngestionRecord
}

func (r *memRecorder) RecordIngestion(_ context.Context, rec media.IngestionRecord) (*media.Media, error) {
	r.records = append(r.records, rec)
	return &media.Media{ID: int64(len(r.records)), PublicID: rec.PublicID, Kind: rec.Kind, Status: media.StatusReady}, nil
}

type memMediaRepo struct {
	media.Repository
	byOwner map[uuid.UUID][]*media.Media
}

func (r *memMediaRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*media.Media, error) {
	items := r.byOwner[ownerID]
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

type MediaHandlerTestSuite struct {
	suite.Suite
	Router      *gin.Engine
	recorder    *memRecorder
	mediaRepo   *memMediaRepo
	ownerID     uuid.UUID
	accessToken string
}

func (s *MediaHandlerTestSuite) SetupSuite() {
	appLogger := logger.NewNop()
	store := blob_storage.NewMemStore("https://media.example.com")
	s.recorder = &memRecorder{}
	s.mediaRepo = &memMediaRepo{byOwner: map[uuid.UUID][]*media.Media{}}
	s.ownerID = uuid.New()

	ingestUC := mediaUC.NewIngestMediaUseCase(
		s.recorder, store, transcode.NewImageTranscoder(), nil, nil, appLogger)
	listUC := mediaUC.NewListMediaUseCase(s.mediaRepo)

	jwtSvc := auth.NewJWTService("handler-test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken(s.ownerID)
	s.Require().NoError(err)
	s.accessToken = token

	handler := NewMediaHandler(ingestUC, nil, listUC, nil, nil, store, appLogger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		private := api.Group("/")
		private.Use(AuthMiddleware(jwtSvc))
		{
			private.POST("/media", handler.UploadMedia)
			private.GET("/media", handler.ListMedia)
		}
	}
	router.GET("/m/*key", handler.RedirectBlob)

	s.Router = router
}

func TestMediaHandler(t *testing.T) {
	suite.Run(t, new(MediaHandlerTestSuite))
}

func (s *MediaHandlerTestSuite) multipartUpload(field, filename, contentType string, payload []byte, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	s.Require().NoError(err)
	_, err = part.Write(payload)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *MediaHandlerTestSuite) jpegPayload(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	s.Require().NoError(jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func (s *MediaHandlerTestSuite) Test_Upload_Image() {
	rr := s.multipartUpload("file", "shot.jpg", "image/jpeg", s.jpegPayload(1200, 800), s.accessToken)

	assert.Equal(s.T(), http.StatusCreated, rr.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(s.T(), "image", resp["kind"])
	publicID, _ := resp["public_id"].(string)
	assert.Len(s.T(), publicID, 24)
	assert.Equal(s.T(), "https://media.example.com/i/"+publicID+"/960.webp", resp["url"])

	s.Require().NotEmpty(s.recorder.records)
	last := s.recorder.records[len(s.recorder.records)-1]
	assert.Equal(s.T(), "shot.jpg", last.OriginalFilename)
	assert.Len(s.T(), last.Assets, 3)
}

func (s *MediaHandlerTestSuite) Test_Upload_RequiresAuth() {
	rr := s.multipartUpload("file", "shot.jpg", "image/jpeg", s.jpegPayload(100, 100), "")
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *MediaHandlerTestSuite) Test_Upload_RejectsUnsupportedType() {
	rr := s.multipartUpload("file", "notes.pdf", "application/pdf", []byte("%PDF-1.4"), s.accessToken)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *MediaHandlerTestSuite) Test_Upload_MissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/api/media", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *MediaHandlerTestSuite) Test_List_Media() {
	publicID := "ab12cd34ef56gh78ij90kl12"
	w, h := 960, 480
	s.mediaRepo.byOwner[s.ownerID] = []*media.Media{
		{
			ID:               1,
			PublicID:         publicID,
			OwnerUserID:      s.ownerID,
			Kind:             media.KindImage,
			OriginalFilename: "holiday.jpg",
			MimeType:         "image/jpeg",
			Status:           media.StatusReady,
			Assets: []*media.Asset{
				{MediaID: 1, Variant: "960", Format: "webp", Path: "i/" + publicID + "/960.webp", Width: &w, Height: &h, Status: media.AssetStatusReady},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	assert.Equal(s.T(), http.StatusOK, rr.Code)

	var resp struct {
		Media []MediaDTO `json:"media"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp.Media, 1)
	assert.Equal(s.T(), publicID, resp.Media[0].PublicID)
	s.Require().Len(resp.Media[0].Assets, 1)
	assert.Equal(s.T(), "https://media.example.com/i/"+publicID+"/960.webp", resp.Media[0].Assets[0].URL)
}

func (s *MediaHandlerTestSuite) Test_List_RequiresAuth() {
	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *MediaHandlerTestSuite) Test_Blob_Redirect() {
	req := httptest.NewRequest(http.MethodGet, "/m/i/ab12cd34ef56gh78ij90kl12/960.webp", nil)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	assert.Equal(s.T(), http.StatusFound, rr.Code)
	assert.Equal(s.T(), "https://media.example.com/i/ab12cd34ef56gh78ij90kl12/960.webp", rr.Header().Get("Location"))
}
