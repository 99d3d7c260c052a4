package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/application/billable"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/generation"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

type ThumbnailRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style,omitempty"`
}

type VideoIdeasRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count,omitempty" binding:"min=0"`
}

type BrandingKitRequest struct {
	ChannelName     string `json:"channel_name,omitempty"`
	Niche           string `json:"niche,omitempty"`
	BrandProfileSID string `json:"brand_profile_sid,omitempty"`
}

type NicheAnalysisRequest struct {
	Niche string `json:"niche" binding:"required"`
}

type ChatRequest struct {
	Messages []generation.Message `json:"messages" binding:"required,min=1,dive"`
}

// BillableResponse is the data of every successful billable call.
type BillableResponse struct {
	Result          any                    `json:"result"`
	ContentSID      string                 `json:"content_sid,omitempty"`
	TokensUsed      int                    `json:"tokens_used"`
	TokensRemaining int                    `json:"tokens_remaining"`
	AccessTier      entitlement.AccessTier `json:"access_tier"`
}

// FeatureHandler exposes the token-gated features. Request bodies are
// validated before the gateway runs, so a bad request never costs tokens.
type FeatureHandler struct {
	gateway      billableExecutor
	capabilities *billable.Capabilities
	profiles     brandProfileFinder
	logger       logger.Interface
}

func NewFeatureHandler(gateway billableExecutor, capabilities *billable.Capabilities, profiles brandProfileFinder, logger logger.Interface) *FeatureHandler {
	return &FeatureHandler{
		gateway:      gateway,
		capabilities: capabilities,
		profiles:     profiles,
		logger:       logger,
	}
}

// GenerateThumbnail handles POST /api/features/thumbnails
// @Summary Generate thumbnails
// @Description Debits the feature cost, then renders one image on LIMITED access and three on FULL
// @Tags Features
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ThumbnailRequest true "Thumbnail prompt"
// @Success 200 {object} utils.APIResponse{data=BillableResponse}
// @Failure 402 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /api/features/thumbnails [post]
func (h *FeatureHandler) GenerateThumbnail(c *gin.Context) {
	var req ThumbnailRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, entitlement.FeatureThumbnail, func() (billable.Capability, error) {
		return h.capabilities.Thumbnail(req.Prompt, req.Style)
	})
}

// GenerateVideoIdeas handles POST /api/features/video-ideas
func (h *FeatureHandler) GenerateVideoIdeas(c *gin.Context) {
	var req VideoIdeasRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, entitlement.FeatureVideoIdeas, func() (billable.Capability, error) {
		return h.capabilities.VideoIdeas(req.Topic, req.Count)
	})
}

// GenerateBrandingKit handles POST /api/features/branding-kit
func (h *FeatureHandler) GenerateBrandingKit(c *gin.Context) {
	var req BrandingKitRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, entitlement.FeatureBrandingKit, func() (billable.Capability, error) {
		var profile *brand.BrandProfile
		if req.BrandProfileSID != "" {
			p, err := h.profiles.GetBySID(c.Request.Context(), middleware.CurrentUserID(c), req.BrandProfileSID)
			if errors.Is(err, brand.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("brand profile not found", req.BrandProfileSID)
			}
			if err != nil {
				return nil, err
			}
			profile = p
		}
		return h.capabilities.BrandingKit(req.ChannelName, req.Niche, profile)
	})
}

// AnalyzeNiche handles POST /api/features/niche-analysis
func (h *FeatureHandler) AnalyzeNiche(c *gin.Context) {
	var req NicheAnalysisRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, entitlement.FeatureNicheAnalysis, func() (billable.Capability, error) {
		return h.capabilities.NicheAnalysis(req.Niche)
	})
}

// Chat handles POST /api/features/chat
func (h *FeatureHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, entitlement.FeatureChatAssistant, func() (billable.Capability, error) {
		return h.capabilities.Chat(req.Messages)
	})
}

// ChannelAnalytics handles GET /api/features/channel-analytics
func (h *FeatureHandler) ChannelAnalytics(c *gin.Context) {
	h.run(c, entitlement.FeatureChannelAnalytics, func() (billable.Capability, error) {
		return h.capabilities.ChannelAnalytics(), nil
	})
}

func (h *FeatureHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid billable request body", "error", err, "path", c.FullPath())
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}

func (h *FeatureHandler) run(c *gin.Context, feature entitlement.FeatureID, build func() (billable.Capability, error)) {
	capability, err := build()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out, err := h.gateway.Execute(c.Request.Context(), billable.Command{
		UserID:  middleware.CurrentUserID(c),
		Feature: feature,
	}, capability)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", BillableResponse{
		Result:          out.Result,
		ContentSID:      out.ContentSID,
		TokensUsed:      out.TokensUsed,
		TokensRemaining: out.TokensRemaining,
		AccessTier:      out.AccessTier,
	})
}
