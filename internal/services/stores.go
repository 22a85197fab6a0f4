package services

import (
	"context"

	"github.com/bureaunet/directory-backend/internal/models"
)

// ClientInfo identifies the caller of a request for audit entries
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// AdminStore is the admin table as seen by the services
type AdminStore interface {
	List(ctx context.Context) ([]models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// DistributorStore is the distributor tables as seen by the services
type DistributorStore interface {
	List(ctx context.Context) ([]models.Distributor, error)
	GetByEmail(ctx context.Context, email string) (*models.Distributor, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobileNumber string) (bool, error)
	Create(ctx context.Context, d *models.Distributor) (int64, error)
	AddDocument(ctx context.Context, distributorID int64, filePath string) error
}

// BureauStore is the bureau tables as seen by the services
type BureauStore interface {
	List(ctx context.Context) ([]models.Bureau, error)
	ListByDistributor(ctx context.Context, distributorID string) ([]models.Bureau, error)
	ListByBureauID(ctx context.Context, bureauID string) ([]models.Bureau, error)
	GetByEmail(ctx context.Context, email string) (*models.Bureau, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobileNumber string) (bool, error)
	Create(ctx context.Context, b *models.Bureau) (int64, error)
	AddDocument(ctx context.Context, bureauKey int64, filePath string) error
	Update(ctx context.Context, bureauID string, update models.BureauUpdate) error
	UpdateWelcomeBanner(ctx context.Context, bureauID, imageURL string) error
}

// ImageStore is one per-bureau image table
type ImageStore interface {
	Table() string
	Add(ctx context.Context, bureauID, imageURL string) error
	ListByBureau(ctx context.Context, bureauID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID int64) error
}
