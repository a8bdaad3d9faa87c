package v1_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/blog-service/internal/core/domain"
	"github.com/duynhne/blog-service/internal/core/repository"
	logicv1 "github.com/duynhne/blog-service/internal/logic/v1"
)

type blogFixture struct {
	users   *repository.InMemoryUserRepository
	blogs   *repository.InMemoryBlogRepository
	service *logicv1.BlogService
}

func newBlogFixture(t *testing.T) *blogFixture {
	t.Helper()

	users := repository.NewInMemoryUserRepository()
	blogs := repository.NewInMemoryBlogRepository(users)
	return &blogFixture{
		users:   users,
		blogs:   blogs,
		service: logicv1.NewBlogService(blogs),
	}
}

func (f *blogFixture) createUser(t *testing.T, name, email string) *domain.UserRow {
	t.Helper()

	row, err := f.users.Create(context.Background(), uuid.NewString(), name, email, "hash")
	require.NoError(t, err)
	return row
}

func TestCreateAndGetBlog(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")

	blog, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{
		Title:   "First Post",
		Content: "Hello world",
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, blog.Author.ID)
	require.Equal(t, "Alice Smith", blog.Author.Name)

	got, err := f.service.Get(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Equal(t, blog.ID, got.ID)
	require.Equal(t, "First Post", got.Title)
}

func TestCreateBlogValidation(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")

	_, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{Title: "No body"})
	require.ErrorIs(t, err, logicv1.ErrInvalidInput)

	_, err = f.service.Create(context.Background(), alice.ID, domain.BlogRequest{Content: "No title"})
	require.ErrorIs(t, err, logicv1.ErrInvalidInput)
}

func TestGetMissingBlog(t *testing.T) {
	f := newBlogFixture(t)

	_, err := f.service.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, logicv1.ErrBlogNotFound)
}

func TestUpdateByOwner(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")

	blog, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{Title: "Draft", Content: "v1"})
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), alice.ID, blog.ID, domain.BlogRequest{Title: "Final", Content: "v2"})
	require.NoError(t, err)
	require.Equal(t, "Final", updated.Title)
	require.Equal(t, "v2", updated.Content)
	// The author reference never changes.
	require.Equal(t, alice.ID, updated.Author.ID)
}

func TestOwnershipIsolation(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")
	bob := f.createUser(t, "Bob Jones", "bob@x.com")

	blog, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{Title: "Alice's", Content: "mine"})
	require.NoError(t, err)

	_, err = f.service.Update(context.Background(), bob.ID, blog.ID, domain.BlogRequest{Title: "Bob's now", Content: "taken"})
	require.ErrorIs(t, err, logicv1.ErrForbidden)

	err = f.service.Delete(context.Background(), bob.ID, blog.ID)
	require.ErrorIs(t, err, logicv1.ErrForbidden)

	// The post is untouched.
	got, err := f.service.Get(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice's", got.Title)
	require.Equal(t, "mine", got.Content)
}

func TestDeleteHidesBlog(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")

	blog, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{Title: "Gone soon", Content: "bye"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), alice.ID, blog.ID))

	_, err = f.service.Get(context.Background(), blog.ID)
	require.ErrorIs(t, err, logicv1.ErrBlogNotFound)

	// Mutating a soft-deleted post reports not-found, not forbidden.
	_, err = f.service.Update(context.Background(), alice.ID, blog.ID, domain.BlogRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, logicv1.ErrBlogNotFound)
}

func TestListPagination(t *testing.T) {
	f := newBlogFixture(t)
	alice := f.createUser(t, "Alice Smith", "alice@x.com")
	bob := f.createUser(t, "Bob Jones", "bob@x.com")

	for i := 0; i < 12; i++ {
		_, err := f.service.Create(context.Background(), alice.ID, domain.BlogRequest{
			Title:   fmt.Sprintf("Post %d", i),
			Content: "content",
		})
		require.NoError(t, err)
	}
	_, err := f.service.Create(context.Background(), bob.ID, domain.BlogRequest{Title: "Bob's", Content: "content"})
	require.NoError(t, err)

	page1, err := f.service.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, page1.Blogs, 10)
	require.Equal(t, int64(13), page1.Pagination.Total)
	require.True(t, page1.Pagination.HasNext)

	page2, err := f.service.List(context.Background(), "", 2, 10)
	require.NoError(t, err)
	require.Len(t, page2.Blogs, 3)
	require.False(t, page2.Pagination.HasNext)

	// Author filter only sees the author's own posts.
	mine, err := f.service.List(context.Background(), bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine.Blogs, 1)
	require.Equal(t, int64(1), mine.Pagination.Total)
}

func TestListDefaults(t *testing.T) {
	f := newBlogFixture(t)

	list, err := f.service.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, list.Pagination.Page)
	require.Empty(t, list.Blogs)
}
