package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/content"
)

type Handler struct {
	service *content.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *content.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	blog := r.Group("/blog")
	{
		blog.POST("", h.authMW.RequireRoles(model.RoleAdmin, model.RoleTherapist), h.CreateArticle)
		blog.GET("", h.ListArticles)
		blog.GET("/:id", h.GetArticle)
		blog.GET("/slug/:slug", h.GetArticleBySlug)
		blog.PUT("/:id", h.authMW.RequireRoles(model.RoleAdmin, model.RoleTherapist), h.UpdateArticle)
		blog.POST("/:id/publish", h.authMW.RequireRoles(model.RoleAdmin, model.RoleTherapist), h.PublishArticle)
		blog.DELETE("/:id", h.authMW.RequireRoles(model.RoleAdmin), h.DeleteArticle)
	}

	faqs := r.Group("/faqs")
	{
		faqs.POST("", h.authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff), h.CreateFAQ)
		faqs.GET("", h.ListFAQs)
		faqs.DELETE("/:id", h.authMW.RequireRoles(model.RoleAdmin), h.DeleteFAQ)
	}

	branches := r.Group("/branches")
	{
		branches.POST("", h.authMW.RequireRoles(model.RoleAdmin), h.CreateBranch)
		branches.GET("", h.ListBranches)
		branches.GET("/:id", h.GetBranch)
		branches.PUT("/:id", h.authMW.RequireRoles(model.RoleAdmin), h.UpdateBranch)
	}
}

func (h *Handler) CreateArticle(c *gin.Context) {
	authorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateBlogArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	article, err := h.service.CreateArticle(c.Request.Context(), authorID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(article))
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid article ID"))
		return
	}

	article, err := h.service.GetArticle(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(article))
}

func (h *Handler) GetArticleBySlug(c *gin.Context) {
	article, err := h.service.GetArticleBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(article))
}

// ListArticles returns published articles only, unless staff ask for drafts.
func (h *Handler) ListArticles(c *gin.Context) {
	publishedOnly := true
	role := middleware.Role(c)
	if (role == model.RoleAdmin || role == model.RoleTherapist) && c.Query("all") == "true" {
		publishedOnly = false
	}

	articles, err := h.service.ListArticles(c.Request.Context(), publishedOnly)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(articles))
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid article ID"))
		return
	}

	var req model.CreateBlogArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	article, err := h.service.GetArticle(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	if middleware.Role(c) != model.RoleAdmin && article.AuthorID != userID {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("only the author may edit this article"))
		return
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Category = req.Category
	article.Tags = req.Tags
	if req.Slug != "" {
		article.Slug = req.Slug
	}

	if err := h.service.UpdateArticle(c.Request.Context(), article); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(article))
}

func (h *Handler) PublishArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid article ID"))
		return
	}

	article, err := h.service.PublishArticle(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(article))
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid article ID"))
		return
	}

	if err := h.service.DeleteArticle(c.Request.Context(), id); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateFAQ(c *gin.Context) {
	var req model.CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	faq, err := h.service.CreateFAQ(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(faq))
}

func (h *Handler) ListFAQs(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	faqs, err := h.service.ListFAQs(c.Request.Context(), activeOnly)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(faqs))
}

func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid FAQ ID"))
		return
	}

	if err := h.service.DeleteFAQ(c.Request.Context(), id); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateBranch(c *gin.Context) {
	var req model.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	branch, err := h.service.CreateBranch(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(branch))
}

func (h *Handler) GetBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid branch ID"))
		return
	}

	branch, err := h.service.GetBranch(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(branch))
}

func (h *Handler) UpdateBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid branch ID"))
		return
	}

	var req model.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	branch, err := h.service.GetBranch(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.ContactNumber = req.ContactNumber
	branch.Location = req.Location
	branch.OpeningHours = req.OpeningHours

	if err := h.service.UpdateBranch(c.Request.Context(), branch); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(branch))
}

func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.service.ListBranches(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(branches))
}
