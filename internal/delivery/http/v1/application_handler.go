package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/middleware"
	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(public *gin.RouterGroup, protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	// Candidates submit without an account
	public.POST("/applications", handler.Submit)

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.List)
		applications.GET("/:id", handler.Get)
		applications.DELETE("/:id", handler.Delete)
		applications.PATCH("/:id/stage", handler.UpdateStage)
		applications.POST("/:id/notes", handler.AddNote)
		applications.POST("/:id/ratings", handler.AddRating)
	}
}

type SubmitApplicationRequest struct {
	JobID       string `json:"jobId" binding:"required"`
	Name        string `json:"name" binding:"required,min=2,max=100,valid_name"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Phone       string `json:"phone" binding:"omitempty,valid_phone"`
	ResumeURL   string `json:"resumeUrl" binding:"omitempty,url,max=500"`
	LinkedIn    string `json:"linkedIn" binding:"omitempty,url,max=500"`
	Portfolio   string `json:"portfolio" binding:"omitempty,url,max=500"`
	CoverLetter string `json:"coverLetter" binding:"max=5000"`
	Experience  string `json:"experience" binding:"max=100"`
}

// UpdateStageRequest leaves stage unchecked so an unknown value reports INVALID_STAGE
type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type AddNoteRequest struct {
	NoteType   string `json:"noteType" binding:"omitempty,note_type"`
	Content    string `json:"content" binding:"required,max=5000"`
	IsPinned   bool   `json:"isPinned"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=private team"`
}

type AddRatingRequest struct {
	Category string  `json:"category" binding:"required,max=100"`
	Score    float64 `json:"score" binding:"gte=0"`
	MaxScore float64 `json:"maxScore" binding:"gte=0"`
	Comment  string  `json:"comment" binding:"max=2000"`
}

// SubmitApplication godoc
// @Summary      Apply to a job (public)
// @Description  The job must be published and before its application deadline
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      SubmitApplicationRequest  true  "Application JSON"
// @Success      201          {object}  response.Response{data=domain.Application}
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.Submit(c.Request.Context(), domain.SubmitApplicationInput{
		JobID:       req.JobID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ResumeURL:   req.ResumeURL,
		LinkedIn:    req.LinkedIn,
		Portfolio:   req.Portfolio,
		CoverLetter: req.CoverLetter,
		Experience:  req.Experience,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListApplications godoc
// @Summary      List applications
// @Description  Newest first. Archived applications are excluded unless includeArchived is set.
// @Tags         applications
// @Produce      json
// @Param        jobId            query     string  false  "Job ID"
// @Param        status           query     string  false  "Pipeline stage or all"
// @Param        stage            query     string  false  "Pipeline stage or all"
// @Param        includeArchived  query     bool    false  "Include archived applications"
// @Success      200              {object}  response.Response{data=[]domain.Application}
// @Failure      400              {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUC.List(c.Request.Context(), domain.ApplicationFilter{
		JobID:           c.Query("jobId"),
		Status:          c.Query("status"),
		Stage:           c.Query("stage"),
		IncludeArchived: queryBool(c, "includeArchived"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

// GetApplication godoc
// @Summary      Get an application with notes and ratings
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.appUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application details", app)
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Description  Removes notes and ratings and decrements the job's application count
// @Tags         applications
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.appUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application deleted", nil)
}

// UpdateApplicationStage godoc
// @Summary      Move an application to a pipeline stage
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      UpdateStageRequest  true  "Target stage"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/stage [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStage(c *gin.Context) {
	var req UpdateStageRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.UpdateStage(c.Request.Context(), c.Param("id"), domain.PipelineStage(req.Stage))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stage updated", app)
}

// AddApplicationNote godoc
// @Summary      Add a reviewer note
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Application ID"
// @Param        note  body      AddNoteRequest  true  "Note JSON"
// @Success      201   {object}  response.Response{data=domain.Note}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/notes [post]
// @Security     BearerAuth
func (h *ApplicationHandler) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.appUC.AddNote(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), domain.NoteInput{
		NoteType:   domain.NoteType(req.NoteType),
		Content:    req.Content,
		IsPinned:   req.IsPinned,
		Visibility: domain.NoteVisibility(req.Visibility),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Note added", note)
}

// AddApplicationRating godoc
// @Summary      Add a reviewer rating
// @Description  maxScore defaults to 5; the application rating becomes the average on a 5 point scale
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      string            true  "Application ID"
// @Param        rating  body      AddRatingRequest  true  "Rating JSON"
// @Success      201     {object}  response.Response{data=domain.Rating}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/{id}/ratings [post]
// @Security     BearerAuth
func (h *ApplicationHandler) AddRating(c *gin.Context) {
	var req AddRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	rating, err := h.appUC.AddRating(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), domain.RatingInput{
		Category: req.Category,
		Score:    req.Score,
		MaxScore: req.MaxScore,
		Comment:  req.Comment,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Rating added", rating)
}
