package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - only published jobs are ever returned
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("/public", handler.PublicList)
		publicJobs.GET("/public/:id", handler.PublicGetDetails)
	}

	// PROTECTED routes - authentication required
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.GET("", handler.List)
		protectedJobs.POST("", handler.Create)
		protectedJobs.GET("/stats", handler.Stats)
		protectedJobs.GET("/:id", handler.GetDetails)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
		protectedJobs.GET("/:id/history", handler.History)
		protectedJobs.POST("/:id/publish", handler.transition(domain.JobStatusPublished))
		protectedJobs.POST("/:id/pause", handler.transition(domain.JobStatusPaused))
		protectedJobs.POST("/:id/close", handler.transition(domain.JobStatusClosed))
		protectedJobs.POST("/:id/archive", handler.transition(domain.JobStatusArchived))
		protectedJobs.POST("/:id/duplicate", handler.Duplicate)
		protectedJobs.POST("/:id/save-as-template", handler.SaveAsTemplate)
	}
}

type CreateJobRequest struct {
	Title               string   `json:"title" binding:"required,max=200,no_emoji"`
	Type                string   `json:"type" binding:"omitempty,job_type"`
	SalaryMin           string   `json:"salaryMin" binding:"max=50"`
	SalaryMax           string   `json:"salaryMax" binding:"max=50"`
	Location            string   `json:"location" binding:"max=200"`
	Color               string   `json:"color" binding:"omitempty,hex_color"`
	Description         string   `json:"description"`
	Requirements        []string `json:"requirements"`
	Responsibilities    []string `json:"responsibilities"`
	Benefits            []string `json:"benefits"`
	Status              string   `json:"status" binding:"omitempty,job_status"`
	ClosureReason       string   `json:"closureReason" binding:"omitempty,closure_reason"`
	ApplicationDeadline string   `json:"applicationDeadline"`
	Category            string   `json:"category" binding:"max=100"`
	MetaTitle           string   `json:"metaTitle" binding:"max=200"`
	MetaDescription     string   `json:"metaDescription" binding:"max=300"`
}

// UpdateJobRequest is a partial update; absent fields are left unchanged.
// An empty applicationDeadline clears the deadline.
type UpdateJobRequest struct {
	Title               *string   `json:"title" binding:"omitempty,max=200,no_emoji"`
	Type                *string   `json:"type" binding:"omitempty,job_type"`
	SalaryMin           *string   `json:"salaryMin" binding:"omitempty,max=50"`
	SalaryMax           *string   `json:"salaryMax" binding:"omitempty,max=50"`
	Location            *string   `json:"location" binding:"omitempty,max=200"`
	Color               *string   `json:"color" binding:"omitempty,hex_color"`
	Description         *string   `json:"description"`
	Requirements        *[]string `json:"requirements"`
	Responsibilities    *[]string `json:"responsibilities"`
	Benefits            *[]string `json:"benefits"`
	Status              *string   `json:"status" binding:"omitempty,job_status"`
	ClosureReason       *string   `json:"closureReason" binding:"omitempty,closure_reason"`
	ApplicationDeadline *string   `json:"applicationDeadline"`
	Category            *string   `json:"category" binding:"omitempty,max=100"`
	MetaTitle           *string   `json:"metaTitle" binding:"omitempty,max=200"`
	MetaDescription     *string   `json:"metaDescription" binding:"omitempty,max=300"`
}

type CloseJobRequest struct {
	Reason string `json:"reason" binding:"omitempty,closure_reason"`
}

type SaveAsTemplateRequest struct {
	Name string `json:"name" binding:"max=200"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r CreateJobRequest) toJob() (*domain.Job, error) {
	job := &domain.Job{
		Title:            strings.TrimSpace(r.Title),
		Type:             domain.JobType(r.Type),
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		Location:         r.Location,
		Color:            r.Color,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Benefits:         r.Benefits,
		Status:           domain.JobStatus(r.Status),
		Category:         optionalString(strings.TrimSpace(r.Category)),
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
	}
	if r.ClosureReason != "" {
		reason := domain.ClosureReason(r.ClosureReason)
		job.ClosureReason = &reason
	}
	if r.ApplicationDeadline != "" {
		deadline, err := parseDate(r.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		job.ApplicationDeadline = &deadline
	}
	return job, nil
}

func (r UpdateJobRequest) toPatch() (domain.JobPatch, error) {
	patch := domain.JobPatch{
		Title:            r.Title,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		Location:         r.Location,
		Color:            r.Color,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Benefits:         r.Benefits,
		Category:         r.Category,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
	}
	if r.Type != nil {
		t := domain.JobType(*r.Type)
		patch.Type = &t
	}
	if r.Status != nil {
		s := domain.JobStatus(*r.Status)
		patch.Status = &s
	}
	if r.ClosureReason != nil {
		reason := domain.ClosureReason(*r.ClosureReason)
		patch.ClosureReason = &reason
	}
	if r.ApplicationDeadline != nil {
		if *r.ApplicationDeadline == "" {
			patch.ClearDeadline = true
		} else {
			deadline, err := parseDate(*r.ApplicationDeadline)
			if err != nil {
				return patch, err
			}
			patch.ApplicationDeadline = &deadline
		}
	}
	return patch, nil
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting. Status defaults to draft.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := req.toJob()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), actorLabel(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// PublicListJobs godoc
// @Summary      List published jobs (public)
// @Description  Published jobs for the careers page, newest first
// @Tags         jobs
// @Produce      json
// @Param        search  query     string  false  "Matches title, location or category"
// @Success      200     {object}  response.Response{data=[]domain.Job}
// @Router       /jobs/public [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	jobs, err := h.jobUC.ListPublicJobs(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Public job list", jobs)
}

// PublicGetDetails godoc
// @Summary      Get published job details (public)
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/public/{id} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	job, err := h.jobUC.GetPublicJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Archived jobs are excluded unless includeArchived is set or status=archived
// @Tags         jobs
// @Produce      json
// @Param        status           query     string  false  "draft|published|paused|closed|archived|all"
// @Param        includeArchived  query     bool    false  "Include archived jobs"
// @Param        search           query     string  false  "Matches title, location or category"
// @Param        category         query     string  false  "Exact category"
// @Success      200              {object}  response.Response{data=[]domain.Job}
// @Failure      400              {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Status:          c.Query("status"),
		IncludeArchived: queryBool(c, "includeArchived"),
		Search:          c.Query("search"),
		Category:        c.Query("category"),
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

// JobStats godoc
// @Summary      Job counts per status
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/stats [get]
// @Security     BearerAuth
func (h *JobHandler) Stats(c *gin.Context) {
	counts, err := h.jobUC.StatusCounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job counts", counts)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partial update. A status change goes through the same rules as the transition endpoints. A status equal to the current one is not a transition: statusChangedAt and the history stay as they are.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), actorLabel(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Removes the job with its applications and history
// @Tags         jobs
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// JobHistory godoc
// @Summary      Status history of a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.JobStatusHistory}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/history [get]
// @Security     BearerAuth
func (h *JobHandler) History(c *gin.Context) {
	history, err := h.jobUC.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job history", history)
}

// transition godoc
// @Summary      Change job status
// @Description  publish, pause, close (reason required) or archive
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      string           true   "Job ID"
// @Param        action  path      string           true   "publish|pause|close|archive"
// @Param        body    body      CloseJobRequest  false  "Closure reason, close only"
// @Success      200     {object}  response.Response{data=domain.Job}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /jobs/{id}/{action} [post]
// @Security     BearerAuth
func (h *JobHandler) transition(target domain.JobStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		actor := actorLabel(c)

		var (
			job *domain.Job
			err error
		)
		switch target {
		case domain.JobStatusPublished:
			job, err = h.jobUC.Publish(ctx, actor, id)
		case domain.JobStatusPaused:
			job, err = h.jobUC.Pause(ctx, actor, id)
		case domain.JobStatusArchived:
			job, err = h.jobUC.Archive(ctx, actor, id)
		case domain.JobStatusClosed:
			var req CloseJobRequest
			// Body is optional; a missing reason is reported by the lifecycle rules
			if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
				return
			}
			var reason *domain.ClosureReason
			if req.Reason != "" {
				r := domain.ClosureReason(req.Reason)
				reason = &r
			}
			job, err = h.jobUC.Close(ctx, actor, id, reason)
		}
		if err != nil {
			c.Error(err)
			return
		}

		response.Success(c, http.StatusOK, "Job "+string(target), job)
	}
}

// DuplicateJob godoc
// @Summary      Duplicate a job as a new draft
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/duplicate [post]
// @Security     BearerAuth
func (h *JobHandler) Duplicate(c *gin.Context) {
	job, err := h.jobUC.Duplicate(c.Request.Context(), actorLabel(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job duplicated", job)
}

// SaveAsTemplate godoc
// @Summary      Save a job as a reusable template
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "Job ID"
// @Param        body  body      SaveAsTemplateRequest  false  "Template name, defaults to the job title"
// @Success      201   {object}  response.Response{data=domain.JobTemplate}
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id}/save-as-template [post]
// @Security     BearerAuth
func (h *JobHandler) SaveAsTemplate(c *gin.Context) {
	var req SaveAsTemplateRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	tpl, err := h.jobUC.SaveAsTemplate(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Template saved", tpl)
}
