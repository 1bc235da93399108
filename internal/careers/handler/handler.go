package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/globalsolutions/website/backend/internal/careers"
	"github.com/globalsolutions/website/backend/internal/careers/service"
	"github.com/globalsolutions/website/backend/internal/validation"
	"github.com/globalsolutions/website/backend/pkg/logger"
)

// Routes groups the middleware the careers endpoints need.
type Routes struct {
	// Admin guards job management and the application listing.
	Admin []gin.HandlerFunc
	// ApplyLimit throttles the public apply endpoint. Optional.
	ApplyLimit gin.HandlerFunc
}

func RegisterCareersRoutes(r gin.IRouter, svc *service.Service, rt Routes) {
	g := r.Group("/api/careers")

	g.GET("/jobs", func(c *gin.Context) {
		jobs, err := svc.ListJobs(c.Request.Context(), true)
		if err != nil {
			internalError(c, "Failed to load jobs", err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	})

	g.GET("/jobs/:id", func(c *gin.Context) {
		j, err := svc.GetJob(c.Request.Context(), c.Param("id"))
		if err == nil && !j.Active {
			err = careers.ErrNotFound
		}
		if err != nil {
			respond(c, err, "Failed to load job")
			return
		}
		c.JSON(http.StatusOK, j)
	})

	apply := []gin.HandlerFunc{}
	if rt.ApplyLimit != nil {
		apply = append(apply, rt.ApplyLimit)
	}
	apply = append(apply, func(c *gin.Context) {
		var in careers.ApplicationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		a, err := svc.Apply(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respond(c, err, "Failed to submit application")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "id": a.ID})
	})
	g.POST("/jobs/:id/apply", apply...)

	admin := g.Group("/admin", rt.Admin...)

	admin.GET("/jobs", func(c *gin.Context) {
		jobs, err := svc.ListJobs(c.Request.Context(), false)
		if err != nil {
			internalError(c, "Failed to load jobs", err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	})

	admin.POST("/jobs", func(c *gin.Context) {
		var in careers.JobInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		j, err := svc.CreateJob(c.Request.Context(), in)
		if err != nil {
			respond(c, err, "Failed to create job")
			return
		}
		c.JSON(http.StatusCreated, j)
	})

	admin.PUT("/jobs/:id", func(c *gin.Context) {
		var in careers.JobInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		j, err := svc.UpdateJob(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respond(c, err, "Failed to update job")
			return
		}
		c.JSON(http.StatusOK, j)
	})

	admin.DELETE("/jobs/:id", func(c *gin.Context) {
		if err := svc.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
			respond(c, err, "Failed to delete job")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
	})

	admin.GET("/applications", func(c *gin.Context) {
		apps, err := svc.ListApplications(c.Request.Context(), c.Query("jobId"))
		if err != nil {
			internalError(c, "Failed to load applications", err)
			return
		}
		c.JSON(http.StatusOK, apps)
	})
}

func respond(c *gin.Context, err error, msg string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Details})
	case errors.Is(err, careers.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, careers.ErrJobClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "This position is no longer accepting applications"})
	default:
		internalError(c, msg, err)
	}
}

func internalError(c *gin.Context, msg string, err error) {
	logger.Errorf("careers: %s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
