package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64ptr(i int64) *int64 {
	return &i
}

func TestCanView(t *testing.T) {
	published := &Blog{State: StatePublished, Author: Author{ID: 1}}
	draft := &Blog{State: StateDraft, Author: Author{ID: 1}}

	testCases := []struct {
		name     string
		viewerID *int64
		blog     *Blog
		expected bool
	}{
		{
			name:     "anonymous can view published",
			viewerID: nil,
			blog:     published,
			expected: true,
		},
		{
			name:     "anonymous cannot view draft",
			viewerID: nil,
			blog:     draft,
			expected: false,
		},
		{
			name:     "author can view own draft",
			viewerID: int64ptr(1),
			blog:     draft,
			expected: true,
		},
		{
			name:     "other user cannot view draft",
			viewerID: int64ptr(2),
			blog:     draft,
			expected: false,
		},
		{
			name:     "other user can view published",
			viewerID: int64ptr(2),
			blog:     published,
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanView(tc.viewerID, tc.blog))
		})
	}
}

func TestCanMutate(t *testing.T) {
	blog := &Blog{State: StatePublished, Author: Author{ID: 1}}

	assert.False(t, CanMutate(nil, blog))
	assert.False(t, CanMutate(int64ptr(2), blog))
	assert.True(t, CanMutate(int64ptr(1), blog))
}
