package services

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type memAdminStore struct {
	admins []models.Admin
	err    error
}

func (s *memAdminStore) List(context.Context) ([]models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Admin{}, s.admins...), nil
}

func (s *memAdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.admins {
		if s.admins[i].Email == email {
			a := s.admins[i]
			return &a, nil
		}
	}
	return nil, nil
}

type memDistributorStore struct {
	mu            sync.Mutex
	rows          []models.Distributor
	documents     []models.DistributorDocument
	existsErr     error
	createErr     error
	addDocErr     error
	existsBarrier *sync.WaitGroup
}

func (s *memDistributorStore) List(context.Context) ([]models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Distributor{}, s.rows...), nil
}

func (s *memDistributorStore) GetByEmail(_ context.Context, email string) (*models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].Email == email {
			d := s.rows[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (s *memDistributorStore) ExistsByEmailOrMobile(_ context.Context, email, mobileNumber string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}

	s.mu.Lock()
	exists := false
	for _, d := range s.rows {
		if d.Email == email || d.MobileNumber == mobileNumber {
			exists = true
			break
		}
	}
	s.mu.Unlock()

	if s.existsBarrier != nil {
		s.existsBarrier.Done()
		s.existsBarrier.Wait()
	}

	return exists, nil
}

func (s *memDistributorStore) Create(_ context.Context, d *models.Distributor) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, *d)
	return d.ID, nil
}

func (s *memDistributorStore) AddDocument(_ context.Context, distributorID int64, filePath string) error {
	if s.addDocErr != nil {
		return s.addDocErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, models.DistributorDocument{
		ID:            int64(len(s.documents) + 1),
		DistributorID: distributorID,
		FilePath:      filePath,
	})
	return nil
}

func (s *memDistributorStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type memBureauStore struct {
	mu        sync.Mutex
	rows      []models.Bureau
	documents []models.BureauDocument
	existsErr error
	createErr error
	addDocErr error
	updateErr error
}

func (s *memBureauStore) filter(keep func(models.Bureau) bool) []models.Bureau {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Bureau{}
	for _, b := range s.rows {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *memBureauStore) List(context.Context) ([]models.Bureau, error) {
	return s.filter(func(models.Bureau) bool { return true }), nil
}

func (s *memBureauStore) ListByDistributor(_ context.Context, distributorID string) ([]models.Bureau, error) {
	return s.filter(func(b models.Bureau) bool { return b.DistributorID == distributorID }), nil
}

func (s *memBureauStore) ListByBureauID(_ context.Context, bureauID string) ([]models.Bureau, error) {
	return s.filter(func(b models.Bureau) bool { return b.BureauID == bureauID }), nil
}

func (s *memBureauStore) GetByEmail(_ context.Context, email string) (*models.Bureau, error) {
	matches := s.filter(func(b models.Bureau) bool { return b.Email == email })
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (s *memBureauStore) ExistsByEmailOrMobile(_ context.Context, email, mobileNumber string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	matches := s.filter(func(b models.Bureau) bool { return b.Email == email || b.MobileNumber == mobileNumber })
	return len(matches) > 0, nil
}

func (s *memBureauStore) Create(_ context.Context, b *models.Bureau) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = int64(len(s.rows) + 100)
	s.rows = append(s.rows, *b)
	return b.ID, nil
}

func (s *memBureauStore) AddDocument(_ context.Context, bureauKey int64, filePath string) error {
	if s.addDocErr != nil {
		return s.addDocErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, models.BureauDocument{
		ID:       int64(len(s.documents) + 1),
		BureauID: bureauKey,
		FilePath: filePath,
	})
	return nil
}

func (s *memBureauStore) Update(_ context.Context, bureauID string, update models.BureauUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := false
	for i := range s.rows {
		if s.rows[i].BureauID != bureauID {
			continue
		}
		matched = true
		if update.BureauName != nil {
			s.rows[i].BureauName = *update.BureauName
		}
		if update.MobileNumber != nil {
			s.rows[i].MobileNumber = *update.MobileNumber
		}
		if update.About != nil {
			s.rows[i].About = *update.About
		}
		if update.Location != nil {
			s.rows[i].Location = *update.Location
		}
	}
	if !matched {
		return database.ErrNotFound
	}
	return nil
}

func (s *memBureauStore) UpdateWelcomeBanner(_ context.Context, bureauID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := false
	for i := range s.rows {
		if s.rows[i].BureauID == bureauID {
			url := imageURL
			s.rows[i].WelcomeImageBanner = &url
			matched = true
		}
	}
	if !matched {
		return database.ErrNotFound
	}
	return nil
}

type memImageStore struct {
	mu     sync.Mutex
	table  string
	rows   []models.Image
	nextID int64
	err    error
}

func (s *memImageStore) Table() string { return s.table }

func (s *memImageStore) Add(_ context.Context, bureauID, imageURL string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows = append(s.rows, models.Image{ID: s.nextID, BureauID: bureauID, ImageURL: imageURL})
	return nil
}

func (s *memImageStore) ListByBureau(_ context.Context, bureauID string) ([]models.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Image{}
	for _, img := range s.rows {
		if img.BureauID == bureauID {
			out = append(out, models.Image{ID: img.ID, ImageURL: img.ImageURL})
		}
	}
	return out, nil
}

func (s *memImageStore) Delete(_ context.Context, imageID int64) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, img := range s.rows {
		if img.ID == imageID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}
