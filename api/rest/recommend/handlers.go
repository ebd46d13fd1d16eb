package recommend

import (
	"errors"
	"net/http"
	"strings"

	apierrors "codeberg.org/talentmatch/server/internal/errors"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/recommender"
	"github.com/gin-gonic/gin"
)

// creates a handler that recommends assessments for a query
func Handler(svc Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Query) == "" {
			apierrors.BadRequest(c, "query must be a non-empty string", nil)
			return
		}

		if req.MaxDuration != nil && *req.MaxDuration < 0 {
			apierrors.BadRequest(c, "max_duration must not be negative", nil)
			return
		}

		result, err := svc.Recommend(c.Request.Context(), recommender.Request{
			Query:         req.Query,
			MaxDuration:   req.MaxDuration,
			PreferredType: req.PreferredType,
		})

		switch {
		case err == nil:
		case errors.Is(err, recommender.ErrInvalidQuery):
			apierrors.BadRequest(c, "query must be a non-empty string", err)
			return
		case errors.Is(err, recommender.ErrNotReady):
			apierrors.ServiceUnavailable(c, "recommendation resources are not initialized")
			return
		case errors.Is(err, recommender.ErrEmptyCatalogue):
			apierrors.NoResults(c, "catalogue is empty", err)
			return
		case errors.Is(err, recommender.ErrNoResults):
			apierrors.NoResults(c, "no assessments available", err)
			return
		default:
			apierrors.InternalError(c, "failed to generate recommendations", err)
			return
		}

		logger.FromContext(c.Request.Context()).Debug("recommend request served",
			"results", len(result.Recommendations),
			"needed", result.Needed,
		)

		c.JSON(http.StatusOK, NewResponse(result.Recommendations))
	}
}

// maps recommendations to the public response shape
func NewResponse(recs []recommender.Recommendation) Response {
	out := Response{RecommendedAssessments: make([]Assessment, len(recs))}

	for i, rec := range recs {
		testType := rec.Item.Categories
		if testType == nil {
			testType = []string{}
		}

		out.RecommendedAssessments[i] = Assessment{
			URL:             rec.Item.URL,
			Name:            rec.Item.Name,
			AdaptiveSupport: rec.Item.AdaptiveSupport,
			Description:     rec.Item.Description,
			Duration:        rec.Item.DurationMinutes,
			RemoteSupport:   rec.Item.RemoteSupport,
			TestType:        testType,
		}
	}

	return out
}
