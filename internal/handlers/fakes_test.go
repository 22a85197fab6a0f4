package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/internal/services"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

var errStoreDown = errors.New("connection refused")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type memAdmins struct {
	rows []models.Admin
	err  error
}

func (m *memAdmins) List(context.Context) ([]models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Admin{}, m.rows...), nil
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.rows {
		if m.rows[i].Email == email {
			return &m.rows[i], nil
		}
	}
	return nil, nil
}

type memDistributors struct {
	mu        sync.Mutex
	rows      []models.Distributor
	documents map[int64][]string
}

func (m *memDistributors) List(context.Context) ([]models.Distributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Distributor{}, m.rows...), nil
}

func (m *memDistributors) GetByEmail(_ context.Context, email string) (*models.Distributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].Email == email {
			d := m.rows[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memDistributors) ExistsByEmailOrMobile(_ context.Context, email, mobile string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.Email == email || d.MobileNumber == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDistributors) Create(_ context.Context, d *models.Distributor) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *d)
	return d.ID, nil
}

func (m *memDistributors) AddDocument(_ context.Context, id int64, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents == nil {
		m.documents = map[int64][]string{}
	}
	m.documents[id] = append(m.documents[id], path)
	return nil
}

type memBureaus struct {
	mu        sync.Mutex
	rows      []models.Bureau
	documents map[int64][]string
}

func (m *memBureaus) filter(keep func(models.Bureau) bool) []models.Bureau {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Bureau{}
	for _, b := range m.rows {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m *memBureaus) List(context.Context) ([]models.Bureau, error) {
	return m.filter(func(models.Bureau) bool { return true }), nil
}

func (m *memBureaus) ListByDistributor(_ context.Context, id string) ([]models.Bureau, error) {
	return m.filter(func(b models.Bureau) bool { return b.DistributorID == id }), nil
}

func (m *memBureaus) ListByBureauID(_ context.Context, id string) ([]models.Bureau, error) {
	return m.filter(func(b models.Bureau) bool { return b.BureauID == id }), nil
}

func (m *memBureaus) GetByEmail(_ context.Context, email string) (*models.Bureau, error) {
	matches := m.filter(func(b models.Bureau) bool { return b.Email == email })
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (m *memBureaus) ExistsByEmailOrMobile(_ context.Context, email, mobile string) (bool, error) {
	matches := m.filter(func(b models.Bureau) bool { return b.Email == email || b.MobileNumber == mobile })
	return len(matches) > 0, nil
}

func (m *memBureaus) Create(_ context.Context, b *models.Bureau) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *b)
	return b.ID, nil
}

func (m *memBureaus) AddDocument(_ context.Context, key int64, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents == nil {
		m.documents = map[int64][]string{}
	}
	m.documents[key] = append(m.documents[key], path)
	return nil
}

func (m *memBureaus) Update(_ context.Context, id string, u models.BureauUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := false
	for i := range m.rows {
		if m.rows[i].BureauID != id {
			continue
		}
		matched = true
		if u.BureauName != nil {
			m.rows[i].BureauName = *u.BureauName
		}
		if u.MobileNumber != nil {
			m.rows[i].MobileNumber = *u.MobileNumber
		}
		if u.About != nil {
			m.rows[i].About = *u.About
		}
		if u.Location != nil {
			m.rows[i].Location = *u.Location
		}
	}
	if !matched {
		return database.ErrNotFound
	}
	return nil
}

func (m *memBureaus) UpdateWelcomeBanner(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].BureauID == id {
			banner := url
			m.rows[i].WelcomeImageBanner = &banner
			return nil
		}
	}
	return database.ErrNotFound
}

type memImages struct {
	mu     sync.Mutex
	table  string
	nextID int64
	rows   []models.Image
	// bureaus that exist for the foreign key check
	bureaus map[string]bool
}

func (m *memImages) Table() string { return m.table }

func (m *memImages) Add(_ context.Context, bureauID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.bureaus[bureauID] {
		return database.ErrNotFound
	}
	m.nextID++
	m.rows = append(m.rows, models.Image{ID: m.nextID, BureauID: bureauID, ImageURL: url})
	return nil
}

func (m *memImages) ListByBureau(_ context.Context, bureauID string) ([]models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Image{}
	for _, img := range m.rows {
		if img.BureauID == bureauID {
			out = append(out, models.Image{ID: img.ID, ImageURL: img.ImageURL})
		}
	}
	return out, nil
}

func (m *memImages) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, img := range m.rows {
		if img.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

// testEnv wires the handlers over in-memory stores and a temporary upload root
type testEnv struct {
	router       *gin.Engine
	store        *storage.LocalStore
	admins       *memAdmins
	distributors *memDistributors
	bureaus      *memBureaus
	sliders      *memImages
	gallery      *memImages
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		store:        store,
		admins:       &memAdmins{},
		distributors: &memDistributors{},
		bureaus:      &memBureaus{},
		sliders:      &memImages{table: database.SliderImagesTable, bureaus: map[string]bool{}},
		gallery:      &memImages{table: database.GalleryImagesTable, bureaus: map[string]bool{}},
	}

	logger := quietLogger()
	hasher := services.NewPasswordHasher(bcrypt.MinCost)
	uploader := NewUploader(store, logger)

	auth := NewAuthHandler(services.NewAuthService(env.admins, env.distributors, env.bureaus, hasher, nil, logger), logger)
	profile := NewProfileHandler(services.NewProfileService(env.admins, env.distributors, env.bureaus, logger), logger)
	registration := NewRegistrationHandler(services.NewRegistrationService(
		env.distributors, env.bureaus, hasher, services.NewBureauIDGenerator(), nil, logger,
	), uploader, logger)
	image := NewImageHandler(services.NewImageService(env.bureaus, env.sliders, env.gallery, logger), uploader, logger)
	files := NewFileHandler(store, logger)

	router := gin.New()
	router.POST("/api/admin/login", auth.AdminLogin)
	router.POST("/api/distributor/login", auth.DistributorLogin)
	router.POST("/api/bureaulogin", auth.BureauLogin)
	router.GET("/api/admin", profile.ListAdmins)
	router.GET("/api/distributors", profile.ListDistributors)
	router.GET("/api/bureau_profiles", profile.ListBureaus)
	router.GET("/api/bureau_profiles_distributer", profile.ListBureausByDistributor)
	router.GET("/api/bureau_profiles_bureauId", profile.ListBureausByBureauID)
	router.PUT("/api/bureau/update", profile.UpdateBureau)
	router.POST("/api/distributor/create", registration.CreateDistributor)
	router.POST("/api/bureau/create", registration.CreateBureau)
	router.PUT("/api/bureau/uploadBanner", image.UploadBanner)
	router.POST("/api/bureau/slider", image.AddSliderImage)
	router.GET("/api/bureau/getBannerImages", image.ListSliderImages)
	router.DELETE("/api/deleteBannerImage/:imageId", image.DeleteSliderImage)
	router.POST("/api/gallery/upload", image.AddGalleryImage)
	router.GET("/api/gallery/getImages", image.ListGalleryImages)
	router.DELETE("/api/deleteGalleryImage/:imageId", image.DeleteGalleryImage)
	for _, category := range storage.Categories {
		router.GET("/"+string(category)+"/*filepath", files.Serve(category))
	}

	env.router = router
	return env
}

func (e *testEnv) addBureau(b models.Bureau) {
	e.bureaus.rows = append(e.bureaus.rows, b)
	e.sliders.bureaus[b.BureauID] = true
	e.gallery.bureaus[b.BureauID] = true
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type upload struct {
	field, name, content string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files []upload) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
