package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/response"
)

// PricingHandler HTTP 处理器
// 负责处理与定价相关的 HTTP 请求
type PricingHandler struct {
	cmd   *application.PricingCommandService
	query *application.PricingQueryService
}

// NewPricingHandler 创建 HTTP 处理器实例
func NewPricingHandler(cmd *application.PricingCommandService, query *application.PricingQueryService) *PricingHandler {
	return &PricingHandler{cmd: cmd, query: query}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/option/price", h.PriceOption)
		api.POST("/option/greeks", h.GetGreeks)
		api.POST("/option/batch", h.BatchPriceOptions)
		api.GET("/option/result/:symbol", h.GetLatestResult)
		api.GET("/option/history/:symbol", h.GetResultHistory)
	}
}

// PriceOption 期权定价
func (h *PricingHandler) PriceOption(c *gin.Context) {
	var cmd application.PriceOptionCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.PriceOption(c.Request.Context(), cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to price option", "symbol", cmd.Symbol, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}

	response.Success(c, result)
}

// GetGreeks 计算希腊字母
func (h *PricingHandler) GetGreeks(c *gin.Context) {
	var query application.GreeksQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	greeks, err := h.query.GetGreeks(c.Request.Context(), query)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to calculate greeks", "symbol", query.Symbol, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}

	response.Success(c, greeks)
}

// BatchPriceOptions 批量定价
func (h *PricingHandler) BatchPriceOptions(c *gin.Context) {
	var cmd application.BatchPriceOptionsCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.BatchPriceOptions(c.Request.Context(), cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to batch price options", "batch_id", cmd.BatchID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, result)
}

// GetLatestResult 查询最新定价结果
func (h *PricingHandler) GetLatestResult(c *gin.Context) {
	symbol := c.Param("symbol")

	result, err := h.query.GetLatestResult(c.Request.Context(), symbol)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get latest pricing result", "symbol", symbol, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if result == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "no pricing result for symbol", symbol)
		return
	}

	response.Success(c, result)
}

// GetResultHistory 查询定价历史
func (h *PricingHandler) GetResultHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	results, err := h.query.GetResultHistory(c.Request.Context(), symbol, limit)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get pricing history", "symbol", symbol, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, results)
}

// statusOf 按错误类型映射 HTTP 状态码
func statusOf(err error) int {
	var shapeErr *domain.ShapeError
	var degenerateErr *domain.DegenerateRegressionError
	switch {
	case errors.As(err, &shapeErr),
		errors.Is(err, domain.ErrInvalidOptionType),
		errors.Is(err, application.ErrOptionExpired):
		return http.StatusBadRequest
	case errors.As(err, &degenerateErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
