package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	repairSvc "wrenchworks/services/repair"
	"wrenchworks/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves repair photo upload and download endpoints.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Repairs    repairSvc.RepairService
}

// UploadRepairPhotoHandler handles POST /api/repairs/:id/photos. The uploaded
// image lands in media storage and its public ID is attached to the repair.
func (h *StorageHandler) UploadRepairPhotoHandler(c *gin.Context) {
	logger := getLogger(c)
	repairID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Failed to save upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, storage.FolderRepairPhotos)
	if err != nil {
		logger.Error("Failed to upload photo", zap.String("repair", repairID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	repair, err := h.Repairs.AttachPhoto(repairID, publicID)
	if err != nil {
		// The upload succeeded but the repair link failed; clean up the orphan.
		if delErr := h.StorageSvc.DeleteFile(c, publicID); delErr != nil {
			logger.Warn("Failed to delete orphaned upload", zap.String("publicID", publicID), zap.Error(delErr))
		}
		logger.Error("Failed to attach photo", zap.String("repair", repairID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"repair": repair, "photoId": publicID})
}

// GetPhotoURLHandler handles GET /api/media/*publicId. Returns a signed URL
// so repair photos are not world-readable.
func (h *StorageHandler) GetPhotoURLHandler(c *gin.Context) {
	logger := getLogger(c)

	publicID := c.Param("publicId")
	if len(publicID) > 0 && publicID[0] == '/' {
		publicID = publicID[1:]
	}
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing public ID"})
		return
	}

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.StorageSvc.GetSecureDownloadURL(c, "image", publicID, expiry)
	if err != nil {
		logger.Error("Failed to sign download URL", zap.String("publicID", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate download URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadURL": url})
}
