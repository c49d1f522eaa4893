package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KMuszynski/Cloud-Computing/middleware"
	"github.com/KMuszynski/Cloud-Computing/models"
	"github.com/KMuszynski/Cloud-Computing/repositories"
	"github.com/KMuszynski/Cloud-Computing/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FileHandlers struct {
	db        *gorm.DB
	allocator *storage.Allocator
	userRepo  *repositories.UserRepository
	fileRepo  *repositories.FileRepository
	logRepo   *repositories.LogRepository
}

func NewFileHandlers(db *gorm.DB, allocator *storage.Allocator, userRepo *repositories.UserRepository, fileRepo *repositories.FileRepository, logRepo *repositories.LogRepository) *FileHandlers {
	return &FileHandlers{
		db:        db,
		allocator: allocator,
		userRepo:  userRepo,
		fileRepo:  fileRepo,
		logRepo:   logRepo,
	}
}

// Upload handles POST /upload. The bytes are written first through the
// allocator's exclusive-create slot; the registry insert and the log append
// then run in one transaction, and the file on disk is removed again if that
// transaction fails.
func (h *FileHandlers) Upload(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if _, err := h.userRepo.GetByID(userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}

	src, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read upload"})
	}
	defer src.Close()

	dst, placement, err := h.allocator.Allocate(userID, header.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFilename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty filename"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	size, err := io.Copy(dst, src)
	dst.Close()
	if err != nil {
		os.Remove(placement.Path)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write file"})
	}

	file := models.File{
		Filename:    placement.Filename,
		StoragePath: placement.Path,
		Size:        size,
		UserID:      userID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.fileRepo.CreateTx(tx, &file); err != nil {
			return err
		}
		version := placement.Version
		entry := models.LogEntry{
			Action:      models.ActionFileUploaded,
			UserID:      userID,
			FileID:      &file.ID,
			FileVersion: &version,
			FileSize:    &size,
		}
		return h.logRepo.AppendTx(tx, &entry)
	})
	if err != nil {
		os.Remove(placement.Path)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("File '%s' uploaded successfully!", placement.Filename),
	})
}

// Delete handles DELETE /delete_file/:file_id
func (h *FileHandlers) Delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	fileID, err := strconv.ParseUint(c.Params("file_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	file, err := h.fileRepo.GetByID(uint(fileID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	if file.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this file"})
	}

	if _, err := os.Stat(file.StoragePath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found on disk"})
	}

	if err := os.Remove(file.StoragePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete file"})
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.fileRepo.DeleteTx(tx, file.ID); err != nil {
			return err
		}
		fileID := file.ID
		entry := models.LogEntry{
			Action: models.ActionFileDeleted,
			UserID: userID,
			FileID: &fileID,
		}
		return h.logRepo.AppendTx(tx, &entry)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete file record"})
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("File '%s' deleted successfully!", file.Filename)})
}

// GetFiles handles GET /get_files
func (h *FileHandlers) GetFiles(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	files, err := h.fileRepo.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list files"})
	}

	result := make([]fiber.Map, 0, len(files))
	for _, f := range files {
		result = append(result, fiber.Map{
			"id":       f.ID,
			"filename": f.Filename,
			"filepath": f.StoragePath,
		})
	}

	return c.JSON(result)
}

// Download handles GET /download_file/:file_id
func (h *FileHandlers) Download(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	fileID, err := strconv.ParseUint(c.Params("file_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	file, err := h.fileRepo.GetByID(uint(fileID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	if _, err := os.Stat(file.StoragePath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found on disk"})
	}

	id := file.ID
	entry := models.LogEntry{Action: models.ActionFileDownloaded, UserID: userID, FileID: &id}
	if err := h.logRepo.Append(&entry); err != nil {
		log.Printf("Failed to append download log entry for file %d: %v", file.ID, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	c.Set("Content-Type", getContentType(ext))
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Set("X-Filename", file.Filename)
	// Disable caching for sensitive files
	c.Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")

	return c.SendFile(file.StoragePath)
}

func getContentType(ext string) string {
	types := map[string]string{
		"txt":  "text/plain; charset=utf-8",
		"html": "text/html; charset=utf-8",
		"css":  "text/css",
		"js":   "application/javascript",
		"json": "application/json",
		"xml":  "application/xml",
		"pdf":  "application/pdf",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"svg":  "image/svg+xml",
		"mp3":  "audio/mpeg",
		"mp4":  "video/mp4",
		"zip":  "application/zip",
		"tar":  "application/x-tar",
		"gz":   "application/gzip",
	}

	if ct, ok := types[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
