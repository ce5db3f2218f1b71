package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentbase/certscan/internal/database"
	"github.com/talentbase/certscan/internal/middleware"
	"github.com/talentbase/certscan/internal/models"
	"github.com/talentbase/certscan/internal/services"
)

// maxScanSize limits uploaded scans to 25MB
const maxScanSize = 25 * 1024 * 1024

// ExtractCertificate accepts a certificate scan, runs it through the
// extraction pipeline and persists the resulting certificate record.
// Employees submit their own certificates; admins may submit on behalf of
// any employee via the employee_id form field.
func (h *Handler) ExtractCertificate(c *fiber.Ctx) error {
	employeeID := c.FormValue("employee_id")
	if employeeID == "" {
		employeeID = c.FormValue("user_id")
	}
	if employeeID == "" {
		employeeID = middleware.GetEmployeeID(c)
	}
	if middleware.GetRole(c) != models.RoleAdmin && employeeID != middleware.GetEmployeeID(c) {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	employeeOID, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid employee_id")
	}
	if _, err := h.db.GetEmployeeByID(c.Context(), employeeID); err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxScanSize {
		return Error(c, fiber.StatusRequestEntityTooLarge, "file exceeds 25MB limit")
	}

	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if extension == "" {
		return Error(c, fiber.StatusBadRequest, "file has no extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Store the original scan before running OCR so the source document
	// survives even if extraction needs to be retried later
	scanKey := services.ScanKey(employeeID, fileHeader.Filename)
	upload, err := h.storage.Upload(c.Context(), scanKey, bytes.NewReader(payload), fileHeader.Size, contentType)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store scan")
	}

	result, err := h.pipeline.Process(c.Context(), payload, extension)
	if err != nil {
		// Nothing to keep for a document we couldn't read
		_ = h.storage.Delete(c.Context(), scanKey)

		switch {
		case errors.Is(err, services.ErrUnsupportedFormat):
			return Error(c, fiber.StatusBadRequest, "unsupported file format: "+extension)
		case errors.Is(err, services.ErrDecode):
			return Error(c, fiber.StatusBadRequest, "file could not be decoded")
		case errors.Is(err, services.ErrOCREngine):
			log.Printf("OCR failed for %s: %v", fileHeader.Filename, err)
			return Error(c, fiber.StatusInternalServerError, "text recognition failed")
		default:
			log.Printf("extraction failed for %s: %v", fileHeader.Filename, err)
			return Error(c, fiber.StatusInternalServerError, "extraction failed")
		}
	}

	filename := fileHeader.Filename
	size := fileHeader.Size
	cert := &models.Certificate{
		EmployeeID:       employeeOID,
		CourseName:       result.CourseName,
		Date:             result.Date,
		Duration:         result.Duration,
		ExtractedText:    result.Text,
		ScanBucket:       upload.Bucket,
		ScanKey:          scanKey,
		OriginalFilename: &filename,
		ContentType:      &contentType,
		FileSizeBytes:    &size,
		LowQualityPages:  result.LowQualityPages,
	}

	created, err := h.db.InsertCertificate(c.Context(), cert)
	if err != nil {
		_ = h.storage.Delete(c.Context(), scanKey)
		return Error(c, fiber.StatusInternalServerError, "failed to save certificate")
	}

	resp := models.ExtractResponse{
		Certificate: created,
		Words:       result.Words,
	}
	if url, err := h.storage.GetPresignedURL(c.Context(), scanKey, scanURLExpiry); err == nil {
		resp.ScanURL = &url
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    resp,
	})
}
