package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xufanglin/rimmich/api/models"
	"github.com/xufanglin/rimmich/i18n"
	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// UserStatus returns server status for local clients.
// GET /api/self/v1/status
func UserStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":           true,
		"batches":           models.RunningBatches(),
		"notify_ws_enabled": models.GetNotifyHub() != nil,
	})
}

// UserConfigGet returns the current settings with api keys masked.
// GET /api/self/v1/config
func UserConfigGet(c *gin.Context) {
	cfg := tool.GetCurrentConfig()
	users := make(map[string]string, len(cfg.Users))
	for name, u := range cfg.Users {
		users[name] = tool.MaskAPIKey(u.APIKey)
	}
	c.JSON(http.StatusOK, types.ConfigResponse{
		CurrentUser:   cfg.CurrentUser,
		ServerURL:     cfg.ServerURL,
		Concurrency:   cfg.Concurrency,
		Language:      cfg.Language,
		LogLevel:      cfg.LogLevel,
		SpeedLimit:    cfg.SpeedLimit,
		SkipTLSVerify: cfg.SkipTLSVerify,
		Users:         users,
	})
}

// UserConfigPatch accepts a partial config and persists it to config.yaml.
// PATCH /api/self/v1/config
func UserConfigPatch(c *gin.Context) {
	var body types.ConfigPatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if body.Concurrency != nil {
		if err := tool.ValidateConcurrency(*body.Concurrency); err != nil {
			text := i18n.New(tool.GetCurrentConfig().Language)
			c.JSON(http.StatusBadRequest, tool.FastReturnError(text.InvalidConcurrency()))
			return
		}
	}
	if err := tool.PatchConfig(body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError(err.Error()))
		return
	}

	cfg := tool.GetCurrentConfig()
	if body.LogLevel != nil {
		tool.SetLogLevel(cfg.LogLevel)
	}
	if body.SkipTLSVerify != nil {
		tool.InitHTTPClients(cfg.SkipTLSVerify)
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
