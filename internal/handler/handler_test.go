package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

type failingUploads struct{ *storage.MemoryStore }

func (failingUploads) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	return io.ErrUnexpectedEOF
}

type testServer struct {
	router  *gin.Engine
	store   *memory.Store
	objects *storage.MemoryStore
	jwt     *auth.JWTManager
	ownerID uuid.UUID
	token   string
}

type serverOption func(*serverConfig)

type serverConfig struct {
	opts   WorkflowOptions
	policy application.AccessPolicy
	upload storage.ObjectStore
}

func surfaceErrors() serverOption {
	return func(c *serverConfig) { c.opts.SurfaceErrors = true }
}

func enforceOwnership() serverOption {
	return func(c *serverConfig) { c.policy.EnforceOwnership = true }
}

func withObjectStore(s storage.ObjectStore) serverOption {
	return func(c *serverConfig) { c.upload = s }
}

func newTestServer(t *testing.T, options ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	objects := storage.NewMemoryStore()
	cfg := serverConfig{upload: objects}
	for _, o := range options {
		o(&cfg)
	}

	log := zap.NewNop()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	photoCfg := application.PhotoStoreConfig{BaseURL: "https://s3.us-east-2.amazonaws.com/", Bucket: "pets"}

	repos := application.Repositories{
		Pets:     store.Pets(),
		ToyLinks: store.Pets(),
		Toys:     store.Toys(),
		Feedings: store.Feedings(),
		Photos:   store.Photos(),
	}

	router := gin.New()
	petService := application.NewPetService(repos, cfg.policy, log)
	NewPetHandler(petService).
		RegisterRoutes(&router.RouterGroup, jwtManager)
	NewAdminPetHandler(petService).
		RegisterRoutes(&router.RouterGroup, jwtManager)
	NewToyHandler(application.NewToyService(store.Toys(), log)).
		RegisterRoutes(&router.RouterGroup, jwtManager)
	NewAssociationHandler(application.NewAssociationService(store.Pets(), store.Pets(), store.Toys(), cfg.policy, nil, log), cfg.opts, log).
		RegisterRoutes(&router.RouterGroup, jwtManager)
	NewFeedingHandler(application.NewFeedingService(store.Pets(), store.Feedings(), cfg.policy, nil, log), cfg.opts, log).
		RegisterRoutes(&router.RouterGroup, jwtManager)
	NewPhotoHandler(application.NewPhotoService(store.Pets(), store.Photos(), cfg.upload, photoCfg, cfg.policy, nil, log), cfg.opts, log).
		RegisterRoutes(&router.RouterGroup, jwtManager)

	ownerID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(ownerID, auth.RoleOwner)
	require.NoError(t, err)

	return &testServer{router: router, store: store, objects: objects, jwt: jwtManager, ownerID: ownerID, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedPet(t *testing.T) *petDomain.Pet {
	t.Helper()
	p, err := petDomain.NewPet(s.ownerID, "Milo", "Tabby", "", 2)
	require.NoError(t, err)
	require.NoError(t, s.store.Pets().Save(context.Background(), p))
	return p
}

func (s *testServer) seedToy(t *testing.T, name string) *toyDomain.Toy {
	t.Helper()
	toy, err := toyDomain.NewToy(name, "red")
	require.NoError(t, err)
	require.NoError(t, s.store.Toys().Save(context.Background(), toy))
	return toy
}

func multipartPhoto(t *testing.T, field, filename, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("caption", "ignored"))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/v1/pets", "/api/v1/toys"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAttachToy_RedirectsAndIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	pet := s.seedPet(t)
	toy := s.seedToy(t, "Ball")
	path := "/api/v1/pets/" + pet.ID().String() + "/toys/" + toy.ID().String()

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, path, nil, "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, PetDetailPath(pet.ID()), w.Header().Get("Location"))
	}

	ids, err := s.store.Pets().ToyIDs(context.Background(), pet.ID())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{toy.ID()}, ids)
}

func TestAttachToy_UnknownPetIsHardFailure(t *testing.T) {
	s := newTestServer(t)
	toy := s.seedToy(t, "Ball")
	w := s.do(t, http.MethodPost, "/api/v1/pets/"+uuid.NewString()+"/toys/"+toy.ID().String(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddFeeding_PathPetIDWins(t *testing.T) {
	s := newTestServer(t)
	pet := s.seedPet(t)
	other := s.seedPet(t)

	form := url.Values{
		"meal":   {"B"},
		"fed_at": {"2024-03-01T08:00:00Z"},
		"pet_id": {other.ID().String()},
	}
	w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/feedings",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code)

	mine, err := s.store.Feedings().FindByPetID(context.Background(), pet.ID())
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := s.store.Feedings().FindByPetID(context.Background(), other.ID())
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestAddFeeding_InvalidForm(t *testing.T) {
	body := `{"meal":"X","fed_at":"2024-03-01T08:00:00Z"}`

	t.Run("redirects by default", func(t *testing.T) {
		s := newTestServer(t)
		pet := s.seedPet(t)
		w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/feedings",
			strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusSeeOther, w.Code)

		feedings, _ := s.store.Feedings().FindByPetID(context.Background(), pet.ID())
		assert.Empty(t, feedings)
	})

	t.Run("surfaced when configured", func(t *testing.T) {
		s := newTestServer(t, surfaceErrors())
		pet := s.seedPet(t)
		w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/feedings",
			strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestUploadPhoto(t *testing.T) {
	s := newTestServer(t)
	pet := s.seedPet(t)
	path := "/api/v1/pets/" + pet.ID().String() + "/photo"

	body, ct := multipartPhoto(t, PhotoFormField, "milo.png", "first")
	w := s.do(t, http.MethodPost, path, body, ct)
	require.Equal(t, http.StatusSeeOther, w.Code)

	first, err := s.store.Photos().FindByPetID(context.Background(), pet.ID())
	require.NoError(t, err)
	assert.Regexp(t, `^https://s3\.us-east-2\.amazonaws\.com/pets/[0-9a-f]{32}\.png$`, first.URL())

	body, ct = multipartPhoto(t, "", "", "")
	w = s.do(t, http.MethodPost, path, body, ct)
	require.Equal(t, http.StatusSeeOther, w.Code)
	unchanged, err := s.store.Photos().FindByPetID(context.Background(), pet.ID())
	require.NoError(t, err)
	assert.Equal(t, first.URL(), unchanged.URL())

	body, ct = multipartPhoto(t, PhotoFormField, "milo2.jpg", "second")
	w = s.do(t, http.MethodPost, path, body, ct)
	require.Equal(t, http.StatusSeeOther, w.Code)
	replaced, err := s.store.Photos().FindByPetID(context.Background(), pet.ID())
	require.NoError(t, err)
	assert.NotEqual(t, first.URL(), replaced.URL())
	assert.True(t, strings.HasSuffix(replaced.URL(), ".jpg"))

	w = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data application.PhotoDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, replaced.URL(), env.Data.URL)
}

func TestUploadPhoto_StoreFailure(t *testing.T) {
	broken := failingUploads{storage.NewMemoryStore()}

	t.Run("redirects by default", func(t *testing.T) {
		s := newTestServer(t, withObjectStore(broken))
		pet := s.seedPet(t)
		body, ct := multipartPhoto(t, PhotoFormField, "milo.png", "x")
		w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/photo", body, ct)
		assert.Equal(t, http.StatusSeeOther, w.Code)

		_, err := s.store.Photos().FindByPetID(context.Background(), pet.ID())
		assert.Error(t, err)
	})

	t.Run("surfaced when configured", func(t *testing.T) {
		s := newTestServer(t, withObjectStore(broken), surfaceErrors())
		pet := s.seedPet(t)
		body, ct := multipartPhoto(t, PhotoFormField, "milo.png", "x")
		w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/photo", body, ct)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestPetCRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/pets",
		strings.NewReader(`{"name":"Luna","breed":"Siamese","age":1}`), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data application.PetDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID.String()

	w = s.do(t, http.MethodPut, "/api/v1/pets/"+id, strings.NewReader(`{"age":2}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/pets/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Data application.PetDetailDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, 2, detail.Data.Pet.Age)
	assert.Equal(t, "Siamese", detail.Data.Pet.Breed)

	w = s.do(t, http.MethodGet, "/api/v1/pets/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/pets/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/pets/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToyList_Paginated(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"Ball", "Mouse", "Yarn"} {
		s.seedToy(t, name)
	}

	w := s.do(t, http.MethodGet, "/api/v1/toys?page=2&limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []application.ToyDTO `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Yarn", env.Data[0].Name)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	s.seedPet(t)
	s.seedPet(t)
	s.seedToy(t, "Ball")

	w := s.do(t, http.MethodGet, "/api/v1/admin/pets", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := s.jwt.GenerateAccessToken(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)
	s.token = adminToken

	w = s.do(t, http.MethodGet, "/api/v1/admin/pets?limit=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []application.PetDTO `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, int64(2), list.Meta.Total)

	w = s.do(t, http.MethodGet, "/api/v1/admin/stats/pets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Data application.PetStatsDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.Data.TotalPets)
	assert.Equal(t, int64(1), stats.Data.TotalToys)
}

func TestPetToyLists_UnknownPet(t *testing.T) {
	s := newTestServer(t)
	s.seedToy(t, "Ball")

	for _, suffix := range []string{"/toys", "/available-toys"} {
		w := s.do(t, http.MethodGet, "/api/v1/pets/"+uuid.NewString()+suffix, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, suffix)
	}
}

func TestPetToyLists_EnforcedOwnership(t *testing.T) {
	s := newTestServer(t, enforceOwnership())
	pet := s.seedPet(t)
	s.seedToy(t, "Ball")
	base := "/api/v1/pets/" + pet.ID().String()

	w := s.do(t, http.MethodGet, base+"/available-toys", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	strangerToken, err := s.jwt.GenerateAccessToken(uuid.New(), auth.RoleOwner)
	require.NoError(t, err)
	s.token = strangerToken

	for _, path := range []string{base, base + "/toys", base + "/available-toys"} {
		w := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestAddFeeding_DateOnly(t *testing.T) {
	s := newTestServer(t)
	pet := s.seedPet(t)

	form := url.Values{"meal": {"D"}, "fed_at": {"2024-03-01"}}
	w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/feedings",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code)

	feedings, err := s.store.Feedings().FindByPetID(context.Background(), pet.ID())
	require.NoError(t, err)
	require.Len(t, feedings, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), feedings[0].FedAt().UTC())
}

func TestAddFeeding_UnparseableDate(t *testing.T) {
	s := newTestServer(t, surfaceErrors())
	pet := s.seedPet(t)

	form := url.Values{"meal": {"D"}, "fed_at": {"March 1st"}}
	w := s.do(t, http.MethodPost, "/api/v1/pets/"+pet.ID().String()+"/feedings",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	feedings, _ := s.store.Feedings().FindByPetID(context.Background(), pet.ID())
	assert.Empty(t, feedings)
}
