package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
)

type Service struct {
	repo repository.ContentRepository
}

func NewService(repo repository.ContentRepository) *Service {
	return &Service{repo: repo}
}

// CreateArticle slugs the title when no slug was given and stamps
// published_at on articles born published.
func (s *Service) CreateArticle(ctx context.Context, authorID uuid.UUID, req *model.CreateBlogArticleRequest) (*model.BlogArticle, error) {
	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Title)
	}

	article := &model.BlogArticle{
		AuthorID:    authorID,
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.repo.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return article, nil
}

func (s *Service) GetArticle(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error) {
	return s.repo.GetArticle(ctx, id)
}

func (s *Service) GetArticleBySlug(ctx context.Context, slug string) (*model.BlogArticle, error) {
	return s.repo.GetArticleBySlug(ctx, slug)
}

// PublishArticle is idempotent; the original published_at survives
// repeat calls.
func (s *Service) PublishArticle(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error) {
	article, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.IsPublished {
		return article, nil
	}

	now := time.Now()
	article.IsPublished = true
	article.PublishedAt = &now
	if err := s.repo.UpdateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *Service) UpdateArticle(ctx context.Context, article *model.BlogArticle) error {
	return s.repo.UpdateArticle(ctx, article)
}

func (s *Service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteArticle(ctx, id)
}

func (s *Service) ListArticles(ctx context.Context, publishedOnly bool) ([]*model.BlogArticle, error) {
	return s.repo.ListArticles(ctx, publishedOnly)
}

func (s *Service) CreateFAQ(ctx context.Context, req *model.CreateFAQRequest) (*model.FAQ, error) {
	faq := &model.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	if err := s.repo.CreateFAQ(ctx, faq); err != nil {
		return nil, fmt.Errorf("failed to create FAQ: %w", err)
	}
	return faq, nil
}

func (s *Service) ListFAQs(ctx context.Context, activeOnly bool) ([]*model.FAQ, error) {
	return s.repo.ListFAQs(ctx, activeOnly)
}

func (s *Service) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFAQ(ctx, id)
}

func (s *Service) CreateBranch(ctx context.Context, req *model.CreateBranchRequest) (*model.ClinicBranch, error) {
	branch := &model.ClinicBranch{
		Name:          req.Name,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		OpeningHours:  req.OpeningHours,
	}
	if err := s.repo.CreateBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return branch, nil
}

func (s *Service) GetBranch(ctx context.Context, id uuid.UUID) (*model.ClinicBranch, error) {
	return s.repo.GetBranch(ctx, id)
}

func (s *Service) UpdateBranch(ctx context.Context, branch *model.ClinicBranch) error {
	return s.repo.UpdateBranch(ctx, branch)
}

func (s *Service) ListBranches(ctx context.Context) ([]*model.ClinicBranch, error) {
	return s.repo.ListBranches(ctx)
}
