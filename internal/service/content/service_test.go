package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
)

type mockContentRepo struct {
	createArticleFn func(ctx context.Context, article *model.BlogArticle) error
	getArticleFn    func(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error)
	updateArticleFn func(ctx context.Context, article *model.BlogArticle) error
	createFAQFn     func(ctx context.Context, faq *model.FAQ) error
}

var _ repository.ContentRepository = (*mockContentRepo)(nil)

func (m *mockContentRepo) CreateArticle(ctx context.Context, article *model.BlogArticle) error {
	return m.createArticleFn(ctx, article)
}

func (m *mockContentRepo) GetArticle(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error) {
	return m.getArticleFn(ctx, id)
}

func (m *mockContentRepo) GetArticleBySlug(ctx context.Context, slug string) (*model.BlogArticle, error) {
	panic("unexpected call")
}

func (m *mockContentRepo) UpdateArticle(ctx context.Context, article *model.BlogArticle) error {
	return m.updateArticleFn(ctx, article)
}

func (m *mockContentRepo) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockContentRepo) ListArticles(ctx context.Context, publishedOnly bool) ([]*model.BlogArticle, error) {
	panic("unexpected call")
}

func (m *mockContentRepo) CreateFAQ(ctx context.Context, faq *model.FAQ) error {
	return m.createFAQFn(ctx, faq)
}

func (m *mockContentRepo) ListFAQs(ctx context.Context, activeOnly bool) ([]*model.FAQ, error) {
	panic("unexpected call")
}

func (m *mockContentRepo) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockContentRepo) CreateBranch(ctx context.Context, branch *model.ClinicBranch) error {
	panic("unexpected call")
}

func (m *mockContentRepo) GetBranch(ctx context.Context, id uuid.UUID) (*model.ClinicBranch, error) {
	panic("unexpected call")
}

func (m *mockContentRepo) UpdateBranch(ctx context.Context, branch *model.ClinicBranch) error {
	panic("unexpected call")
}

func (m *mockContentRepo) ListBranches(ctx context.Context) ([]*model.ClinicBranch, error) {
	panic("unexpected call")
}

func TestCreateArticleDerivesSlug(t *testing.T) {
	repo := &mockContentRepo{
		createArticleFn: func(_ context.Context, a *model.BlogArticle) error {
			a.ID = uuid.New()
			return nil
		},
	}

	svc := NewService(repo)
	article, err := svc.CreateArticle(context.Background(), uuid.New(), &model.CreateBlogArticleRequest{
		Title:    "Recovering From ACL Surgery",
		Content:  "...",
		Category: "Rehab",
	})
	require.NoError(t, err)
	assert.Equal(t, "recovering-from-acl-surgery", article.Slug)
	assert.False(t, article.IsPublished)
	assert.Nil(t, article.PublishedAt)
}

func TestCreateArticleBornPublished(t *testing.T) {
	repo := &mockContentRepo{
		createArticleFn: func(_ context.Context, a *model.BlogArticle) error { return nil },
	}

	svc := NewService(repo)
	article, err := svc.CreateArticle(context.Background(), uuid.New(), &model.CreateBlogArticleRequest{
		Title:       "Clinic News",
		Slug:        "clinic-news-aug",
		Content:     "...",
		Category:    "News",
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "clinic-news-aug", article.Slug)
	require.NotNil(t, article.PublishedAt)
	assert.WithinDuration(t, time.Now(), *article.PublishedAt, time.Second)
}

func TestPublishArticleIdempotent(t *testing.T) {
	firstPublished := time.Now().Add(-24 * time.Hour)
	stored := &model.BlogArticle{
		Base:        model.Base{ID: uuid.New()},
		IsPublished: true,
		PublishedAt: &firstPublished,
	}
	repo := &mockContentRepo{
		getArticleFn: func(_ context.Context, _ uuid.UUID) (*model.BlogArticle, error) {
			return stored, nil
		},
		updateArticleFn: func(_ context.Context, _ *model.BlogArticle) error {
			t.Fatal("an already published article must not be written again")
			return nil
		},
	}

	svc := NewService(repo)
	article, err := svc.PublishArticle(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, &firstPublished, article.PublishedAt)
}

func TestPublishArticleStampsTime(t *testing.T) {
	stored := &model.BlogArticle{Base: model.Base{ID: uuid.New()}}
	updated := false
	repo := &mockContentRepo{
		getArticleFn: func(_ context.Context, _ uuid.UUID) (*model.BlogArticle, error) {
			return stored, nil
		},
		updateArticleFn: func(_ context.Context, _ *model.BlogArticle) error {
			updated = true
			return nil
		},
	}

	svc := NewService(repo)
	article, err := svc.PublishArticle(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, article.IsPublished)
	require.NotNil(t, article.PublishedAt)
}
