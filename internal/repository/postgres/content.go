package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

func (r *contentRepository) CreateArticle(ctx context.Context, article *model.BlogArticle) error {
	query := `
		INSERT INTO blog_articles (
			id, author_id, title, slug, content, category, cover_image,
			tags, published_at, is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	article.ID = uuid.New()
	article.CreatedAt = time.Now()
	article.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.AuthorID,
		article.Title,
		article.Slug,
		article.Content,
		article.Category,
		article.CoverImage,
		article.Tags,
		article.PublishedAt,
		article.IsPublished,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *contentRepository) GetArticle(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error) {
	query := `
		SELECT id, author_id, title, slug, content, category, cover_image,
			   tags, published_at, is_published, created_at, updated_at
		FROM blog_articles
		WHERE id = $1
	`
	var article model.BlogArticle
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (r *contentRepository) GetArticleBySlug(ctx context.Context, slug string) (*model.BlogArticle, error) {
	query := `
		SELECT id, author_id, title, slug, content, category, cover_image,
			   tags, published_at, is_published, created_at, updated_at
		FROM blog_articles
		WHERE slug = $1
	`
	var article model.BlogArticle
	err := r.db.GetContext(ctx, &article, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %q: %w", slug, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &article, nil
}

func (r *contentRepository) UpdateArticle(ctx context.Context, article *model.BlogArticle) error {
	query := `
		UPDATE blog_articles
		SET title = $1, slug = $2, content = $3, category = $4, cover_image = $5,
			tags = $6, published_at = $7, is_published = $8, updated_at = $9
		WHERE id = $10
	`
	article.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.Category,
		article.CoverImage,
		article.Tags,
		article.PublishedAt,
		article.IsPublished,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("article %s: %w", article.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *contentRepository) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *contentRepository) ListArticles(ctx context.Context, publishedOnly bool) ([]*model.BlogArticle, error) {
	query := `
		SELECT id, author_id, title, slug, content, category, cover_image,
			   tags, published_at, is_published, created_at, updated_at
		FROM blog_articles
	`
	if publishedOnly {
		query += ` WHERE is_published = true`
	}
	query += ` ORDER BY created_at DESC`

	var articles []*model.BlogArticle
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

func (r *contentRepository) CreateFAQ(ctx context.Context, faq *model.FAQ) error {
	query := `
		INSERT INTO faqs (
			id, question, answer, category, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	faq.ID = uuid.New()
	faq.CreatedAt = time.Now()
	faq.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		faq.ID,
		faq.Question,
		faq.Answer,
		faq.Category,
		faq.IsActive,
		faq.CreatedAt,
		faq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create FAQ: %w", err)
	}
	return nil
}

func (r *contentRepository) ListFAQs(ctx context.Context, activeOnly bool) ([]*model.FAQ, error) {
	query := `
		SELECT id, question, answer, category, is_active, created_at, updated_at
		FROM faqs
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY category, created_at`

	var faqs []*model.FAQ
	if err := r.db.SelectContext(ctx, &faqs, query); err != nil {
		return nil, fmt.Errorf("failed to list FAQs: %w", err)
	}
	return faqs, nil
}

func (r *contentRepository) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("FAQ %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *contentRepository) CreateBranch(ctx context.Context, branch *model.ClinicBranch) error {
	query := `
		INSERT INTO clinic_branches (
			id, name, address, contact_number, location, opening_hours,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	branch.ID = uuid.New()
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		branch.ID,
		branch.Name,
		branch.Address,
		branch.ContactNumber,
		branch.Location,
		branch.OpeningHours,
		branch.CreatedAt,
		branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func (r *contentRepository) GetBranch(ctx context.Context, id uuid.UUID) (*model.ClinicBranch, error) {
	query := `
		SELECT id, name, address, contact_number, location, opening_hours,
			   created_at, updated_at
		FROM clinic_branches
		WHERE id = $1
	`
	var branch model.ClinicBranch
	err := r.db.GetContext(ctx, &branch, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("branch %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return &branch, nil
}

func (r *contentRepository) UpdateBranch(ctx context.Context, branch *model.ClinicBranch) error {
	query := `
		UPDATE clinic_branches
		SET name = $1, address = $2, contact_number = $3, location = $4,
			opening_hours = $5, updated_at = $6
		WHERE id = $7
	`
	branch.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		branch.Name,
		branch.Address,
		branch.ContactNumber,
		branch.Location,
		branch.OpeningHours,
		branch.UpdatedAt,
		branch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("branch %s: %w", branch.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *contentRepository) ListBranches(ctx context.Context) ([]*model.ClinicBranch, error) {
	query := `
		SELECT id, name, address, contact_number, location, opening_hours,
			   created_at, updated_at
		FROM clinic_branches
		ORDER BY name
	`
	var branches []*model.ClinicBranch
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}
