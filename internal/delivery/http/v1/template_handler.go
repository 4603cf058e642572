package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
)

type TemplateHandler struct {
	templateUC domain.TemplateUsecase
	jobUC      domain.JobUsecase
}

func NewTemplateHandler(protected *gin.RouterGroup, templateUC domain.TemplateUsecase, jobUC domain.JobUsecase) {
	handler := &TemplateHandler{templateUC: templateUC, jobUC: jobUC}

	templates := protected.Group("/templates")
	{
		templates.GET("", handler.List)
		templates.POST("", handler.Create)
		templates.GET("/:id", handler.Get)
		templates.DELETE("/:id", handler.Delete)
		templates.POST("/:id/jobs", handler.CreateJob)
	}
}

type CreateTemplateRequest struct {
	Name             string   `json:"name" binding:"max=200"`
	Category         string   `json:"category" binding:"max=100"`
	Title            string   `json:"title" binding:"required,max=200,no_emoji"`
	Type             string   `json:"type" binding:"omitempty,job_type"`
	SalaryMin        string   `json:"salaryMin" binding:"max=50"`
	SalaryMax        string   `json:"salaryMax" binding:"max=50"`
	Location         string   `json:"location" binding:"max=200"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
}

// ListTemplates godoc
// @Summary      List job templates
// @Tags         templates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobTemplate}
// @Router       /templates [get]
// @Security     BearerAuth
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template list", templates)
}

// GetTemplate godoc
// @Summary      Get a job template
// @Tags         templates
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response{data=domain.JobTemplate}
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [get]
// @Security     BearerAuth
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.templateUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template details", tpl)
}

// CreateTemplate godoc
// @Summary      Create a job template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        template  body      CreateTemplateRequest  true  "Template JSON"
// @Success      201       {object}  response.Response{data=domain.JobTemplate}
// @Failure      400       {object}  response.Response
// @Router       /templates [post]
// @Security     BearerAuth
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tpl := &domain.JobTemplate{
		Name:             req.Name,
		Category:         req.Category,
		Title:            req.Title,
		Type:             domain.JobType(req.Type),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Location:         req.Location,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
	}
	if err := h.templateUC.Create(c.Request.Context(), tpl); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Template created", tpl)
}

// DeleteTemplate godoc
// @Summary      Delete a job template
// @Description  Jobs created from the template keep their data
// @Tags         templates
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [delete]
// @Security     BearerAuth
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template deleted", nil)
}

// CreateJobFromTemplate godoc
// @Summary      Create a draft job from a template
// @Tags         templates
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /templates/{id}/jobs [post]
// @Security     BearerAuth
func (h *TemplateHandler) CreateJob(c *gin.Context) {
	job, err := h.jobUC.CreateFromTemplate(c.Request.Context(), actorLabel(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created from template", job)
}
