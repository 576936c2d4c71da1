package controllers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/xufanglin/rimmich/api/models"
	"github.com/xufanglin/rimmich/batch"
	"github.com/xufanglin/rimmich/i18n"
	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// UserStartUpload schedules a batch in the background and returns its id.
// POST /api/self/v1/upload
func UserStartUpload(c *gin.Context) {
	var request types.UserStartUploadRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}

	cfg := tool.GetCurrentConfig()
	text := i18n.New(cfg.Language)
	if len(request.Files) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError(text.NoFilesSelected()))
		return
	}
	user, apiKey, ok := tool.LookupAPIKey(request.User)
	if !ok {
		tool.DefaultLogger.Warnf("[UserStartUpload] %v", batch.MissingCredentials(user))
		c.JSON(http.StatusBadRequest, tool.FastReturnError(text.UserAPIKeyNotFound()))
		return
	}

	concurrency := cfg.Concurrency
	if request.Concurrency != nil {
		concurrency = *request.Concurrency
	}
	files := make([]types.FileEntry, 0, len(request.Files))
	for _, p := range request.Files {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		files = append(files, types.FileEntry{Path: p, DisplayName: filepath.Base(p)})
	}
	job := types.BatchJob{
		Files:       files,
		Concurrency: concurrency,
		ServerURL:   cfg.ServerURL,
		APIKey:      apiKey,
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := models.NewBatchSession(user, len(files), cancel)
	// status line first so a finished snapshot already carries the closing line
	reporter := batch.Reporters(i18n.StatusReporter{Text: text, Emit: session.Notify}, session)
	coordinator, err := batch.New(job, models.GetUploadWorker(cfg.SpeedLimit), reporter)
	if err != nil {
		cancel()
		msg := err.Error()
		if errors.Is(err, batch.ErrInvalidConcurrency) {
			msg = text.InvalidConcurrency()
		}
		c.JSON(http.StatusBadRequest, tool.FastReturnError(msg))
		return
	}

	models.StoreBatchSession(session)
	go session.Run(ctx, coordinator)

	tool.DefaultLogger.Infof("[UserStartUpload] Batch %s scheduled: %d files for user %s", session.ID(), len(files), user)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(types.UserStartUploadResponse{
		BatchId: session.ID(),
		Total:   len(files),
	}))
}

// UserGetBatch returns the progress of a batch.
// GET /api/self/v1/batches/:id
func UserGetBatch(c *gin.Context) {
	session, ok := models.GetBatchSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Batch not found"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(session.Snapshot()))
}

// UserCancelBatch stops a running batch. In-flight uploads are aborted.
// POST /api/self/v1/cancel?batchId=
func UserCancelBatch(c *gin.Context) {
	batchId := c.Query("batchId")
	if batchId == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing batchId"))
		return
	}
	session, ok := models.GetBatchSession(batchId)
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Batch not found"))
		return
	}
	session.Cancel()
	tool.DefaultLogger.Infof("[UserCancelBatch] Batch %s cancelled", batchId)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
