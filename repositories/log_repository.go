package repositories

import (
	"time"

	"github.com/KMuszynski/Cloud-Computing/models"

	"gorm.io/gorm"
)

// AuditRow is one action-log entry joined with the acting user's identity,
// as served by the logs report.
type AuditRow struct {
	ID          uint          `json:"id"`
	Action      models.Action `json:"action"`
	CreatedAt   time.Time     `json:"timestamp"`
	UserID      uint          `json:"user_id"`
	FileID      *uint         `json:"file_id,omitempty"`
	FileVersion *int          `json:"file_version,omitempty"`
	FileSize    *int64        `json:"file_size,omitempty"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
}

// LogRepository appends and reads action-log entries. Entries are immutable:
// there is no update or delete path.
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Append inserts one entry with a creation timestamp assigned by gorm. The
// action string and any file reference are stored as given; no verification
// is done against the file registry.
func (r *LogRepository) Append(entry *models.LogEntry) error {
	return r.db.Create(entry).Error
}

// AppendTx inserts one entry inside an existing transaction.
func (r *LogRepository) AppendTx(tx *gorm.DB, entry *models.LogEntry) error {
	return tx.Create(entry).Error
}

// ListAll retrieves every log entry joined with the referenced user's
// username and email, in insertion order.
func (r *LogRepository) ListAll() ([]AuditRow, error) {
	rows := make([]AuditRow, 0)
	err := r.db.Model(&models.LogEntry{}).
		Select("log_entries.id, log_entries.action, log_entries.created_at, log_entries.user_id, log_entries.file_id, log_entries.file_version, log_entries.file_size, users.username, users.email").
		Joins("JOIN users ON users.id = log_entries.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
