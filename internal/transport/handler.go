package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-image-processing/internal/config"
	apperrors "go-image-processing/internal/errors"
	"go-image-processing/internal/logger"
	"go-image-processing/internal/service"
	"go-image-processing/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewHandler(processing service.ProcessingService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.POST("/filter", filterImage(processing, cfg))
	r.POST("/segment", segmentImage(processing, cfg))
	r.GET("/nasa/epic", fetchEPIC(processing, cfg))

	return r
}

func filterImage(processing service.ProcessingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ProcessingTimeout)
		defer cancel()

		logRequest(c, "Processing filter request")

		var req models.FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := processing.FilterImage(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "filtering failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"filter":             req.Filter,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Filter request completed successfully")

		c.JSON(http.StatusOK, resp)
	}
}

func segmentImage(processing service.ProcessingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ProcessingTimeout)
		defer cancel()

		logRequest(c, "Processing segmentation request")

		var req models.SegmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := processing.SegmentImage(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "segmentation failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"algorithm":          req.Algorithm,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Segmentation request completed successfully")

		c.JSON(http.StatusOK, resp)
	}
}

func fetchEPIC(processing service.ProcessingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "Processing EPIC fetch request")

		count := cfg.EPICImageCount
		if countQuery := c.Query("count"); countQuery != "" {
			parsed, err := strconv.Atoi(countQuery)
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"count":   countQuery,
					"default": cfg.EPICImageCount,
				}).Error("Invalid count parameter, resetting to default")
			} else {
				count = parsed
			}
		}

		resp, err := processing.FetchEPICImages(ctx, count)
		if err != nil {
			respondError(c, determineStatusCode(err), "EPIC fetch failed", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func logRequest(c *gin.Context, message string) {
	logger.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"ip":         c.ClientIP(),
	}).Info(message)
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
