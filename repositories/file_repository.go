package repositories

import (
	"github.com/KMuszynski/Cloud-Computing/models"

	"gorm.io/gorm"
)

// FileRepository handles file metadata operations. It enforces no ownership
// rules; callers compare the record's UserID against the acting user.
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create registers a file after its bytes have been written to storage.
func (r *FileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// CreateTx registers a file inside an existing transaction.
func (r *FileRepository) CreateTx(tx *gorm.DB, file *models.File) error {
	return tx.Create(file).Error
}

// GetByID retrieves a file record by id
func (r *FileRepository) GetByID(id uint) (*models.File, error) {
	var file models.File
	err := r.db.First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByUser retrieves all files owned by a user in insertion order.
func (r *FileRepository) ListByUser(userID uint) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("user_id = ?", userID).Find(&files).Error
	return files, err
}

// Delete removes a file record. The caller is responsible for removing the
// bytes on disk.
func (r *FileRepository) Delete(id uint) error {
	return r.db.Delete(&models.File{}, id).Error
}

// DeleteTx removes a file record inside an existing transaction.
func (r *FileRepository) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&models.File{}, id).Error
}
