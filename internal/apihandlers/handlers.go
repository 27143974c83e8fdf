// Package apihandlers exposes the content-intelligence services over HTTP.
// Handlers stay thin: parse, delegate, map errors.
package apihandlers

import (
	"net/http"
	"strconv"

	"plume/internal/app"
	"plume/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	App *app.App
}

// RegisterRoutes attaches all API routes to the router.
func RegisterRoutes(r *gin.Engine, application *app.App) {
	h := &APIHandler{App: application}

	r.GET("/health", h.HealthHandler)

	ai := r.Group("/api/ai")
	{
		ai.POST("/category/recommend", h.RecommendCategoriesHandler)
		ai.POST("/category/auto-tag", h.ApplyAutoTagsHandler)
		ai.POST("/category/auto-tag/async", h.EnqueueAutoTagHandler)
		ai.POST("/seo/recommend", h.RecommendSeoHandler)
		ai.POST("/seo/validate", h.ValidateSeoHandler)
		ai.GET("/usage", h.UsageSummaryHandler)
	}

	posts := r.Group("/api/posts")
	{
		posts.GET("/:postId/categories", h.ListPostCategoriesHandler)
		posts.GET("/:postId/categories/stats", h.PostCategoryStatsHandler)
		posts.DELETE("/:postId/categories", h.RemovePostCategoriesHandler)
	}
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) RecommendCategoriesHandler(c *gin.Context) {
	var req services.RecommendCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.App.CategoryService.RecommendCategories(c.Request.Context(), req)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *APIHandler) ApplyAutoTagsHandler(c *gin.Context) {
	var req services.ApplyAutoTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.App.AutoTagService.ApplyAutoTags(c.Request.Context(), req)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// EnqueueAutoTagHandler queues a recommend-and-apply run for background
// processing instead of blocking on the model call.
func (h *APIHandler) EnqueueAutoTagHandler(c *gin.Context) {
	var req struct {
		PostID    string `json:"postId"`
		AutoApply bool   `json:"autoApply"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.PostID == "" {
		BadRequest(c, "postId is required")
		return
	}

	taskID, err := h.App.JobClient.EnqueueAutoTagJob(c.Request.Context(), req.PostID, req.AutoApply)
	if err != nil {
		Internal(c, "Failed to enqueue auto-tag job: "+err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"taskId": taskID}})
}

func (h *APIHandler) RecommendSeoHandler(c *gin.Context) {
	var req services.SeoRecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.App.SeoService.RecommendMetadata(c.Request.Context(), req)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *APIHandler) ValidateSeoHandler(c *gin.Context) {
	var req services.SeoValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.App.SeoValidationService.ValidateSEO(c.Request.Context(), req)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *APIHandler) ListPostCategoriesHandler(c *gin.Context) {
	rows, err := h.App.PostCategoryStore.ListForPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		Internal(c, "Failed to list post categories: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *APIHandler) PostCategoryStatsHandler(c *gin.Context) {
	stats, err := h.App.AutoTagService.GetPostCategoryStats(c.Request.Context(), c.Param("postId"))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *APIHandler) RemovePostCategoriesHandler(c *gin.Context) {
	postID := c.Param("postId")
	categoryIDs := c.QueryArray("categoryId")
	onlyAISuggested, _ := strconv.ParseBool(c.DefaultQuery("onlyAiSuggested", "false"))

	removed, err := h.App.AutoTagService.RemovePostCategories(c.Request.Context(), postID, categoryIDs, onlyAISuggested)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removedCategories": removed}})
}

func (h *APIHandler) UsageSummaryHandler(c *gin.Context) {
	total, failed, avgDuration, err := h.App.UsageStore.GetUsageSummary(c.Request.Context())
	if err != nil {
		Internal(c, "Failed to aggregate AI usage: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"totalCalls":    total,
		"failedCalls":   failed,
		"avgDurationMs": avgDuration,
	}})
}
