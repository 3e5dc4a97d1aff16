package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sutanlim/blogify/internal/common"
)

var (
	ErrNotPermitted = errors.New("not permitted")
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body"`
	AuthorID    int64    `json:"-"`
}

// CreateBlog creates a draft blog owned by the author, with the reading time derived
// from the body.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateBody(v, req.Body)
	validateID(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	b := &Blog{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Tags:        tags,
		Author:      Author{ID: req.AuthorID},
		State:       StateDraft,
		ReadingTime: estimateReadingTime(req.Body),
	}

	err := s.m.insert(ctx, b)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, b.ID)
}

// GetBlog fetches a single blog. A missing record is reported before any permission
// check. A successful fetch bumps and persists the read counter, owner reads included.
func (s *BlogService) GetBlog(ctx context.Context, id int64, viewerID *int64) (*Blog, error) {
	b, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanView(viewerID, b) {
		return nil, ErrNotPermitted
	}

	count, err := s.m.incrementReadCount(ctx, id)
	if err != nil {
		return nil, err
	}
	b.ReadCount = count

	return b, nil
}

type UpdateBlogRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Body        *string   `json:"body"`
	State       *State    `json:"state"`
}

// UpdateBlog applies the allow-listed fields to an owned blog. Absent fields are left
// untouched and the reading time is recomputed when the body changes. The existence
// check runs before the ownership check.
func (s *BlogService) UpdateBlog(ctx context.Context, id, userID int64, req *UpdateBlogRequest) (*Blog, error) {
	b, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutate(&userID, b) {
		return nil, ErrNotPermitted
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Tags != nil {
		b.Tags = *req.Tags
	}
	if req.Body != nil {
		b.Body = *req.Body
		b.ReadingTime = estimateReadingTime(b.Body)
	}
	if req.State != nil {
		b.State = *req.State
	}

	v := common.NewValidator()
	validateTitle(v, b.Title)
	validateBody(v, b.Body)
	validateState(v, b.State)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// PublishBlog flips an owned blog to published. Publishing an already published blog
// is a no-op that still succeeds.
func (s *BlogService) PublishBlog(ctx context.Context, id, userID int64) (*Blog, error) {
	b, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutate(&userID, b) {
		return nil, ErrNotPermitted
	}

	b.State = StatePublished

	err = s.m.update(ctx, b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBlog removes an owned blog.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID int64) error {
	b, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanMutate(&userID, b) {
		return ErrNotPermitted
	}

	return s.m.delete(ctx, b.ID)
}

// ListBlogs runs the list query. Callers with no identity only ever see published
// blogs: any requested state filter is overridden. The author-name filter is applied
// to the fetched page after the query, so Total may overcount relative to the items
// returned; Total always reflects the match count before pagination.
func (s *BlogService) ListBlogs(ctx context.Context, f ListFilters, viewerID *int64) (*BlogList, error) {
	if viewerID == nil {
		f.State = string(StatePublished)
	}

	f.normalize()

	total, err := s.m.countBlogs(ctx, f, 0)
	if err != nil {
		return nil, err
	}

	items, err := s.m.listBlogs(ctx, f, 0)
	if err != nil {
		return nil, err
	}

	if f.Author != "" {
		filtered := []Blog{}
		for i := range items {
			if matchAuthorName(&items[i], f.Author) {
				filtered = append(filtered, items[i])
			}
		}
		items = filtered
	}

	return &BlogList{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Items: items,
	}, nil
}

// ListOwnBlogs lists the caller's own blogs, drafts included. The state filter is
// optional and nothing forces published-only here.
func (s *BlogService) ListOwnBlogs(ctx context.Context, ownerID int64, f ListFilters) (*BlogList, error) {
	v := common.NewValidator()
	validateID(v, ownerID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	f.normalize()

	total, err := s.m.countBlogs(ctx, f, ownerID)
	if err != nil {
		return nil, err
	}

	items, err := s.m.listBlogs(ctx, f, ownerID)
	if err != nil {
		return nil, err
	}

	return &BlogList{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Items: items,
	}, nil
}
