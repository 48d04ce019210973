package store

import (
	"context"
	"testing"

	"newsboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentMaintainsCounters(t *testing.T) {
	f := setupStore(t)
	alice := f.user(t, "alice")
	postID := f.post(t, alice.ID, "a post")

	c1 := f.comment(t, postID, nil, alice.ID)
	c2 := f.comment(t, postID, &c1.ID, alice.ID)

	assert.Equal(t, 0, c1.Depth)
	assert.Nil(t, c1.ParentCommentID)
	assert.Equal(t, 1, c2.Depth)
	require.NotNil(t, c2.ParentCommentID)
	assert.Equal(t, c1.ID, *c2.ParentCommentID)
	assert.Equal(t, "alice", c2.Author.Username)

	var post models.Post
	f.reload(t, &post, postID)
	assert.Equal(t, 2, post.CommentCount)

	var stored1, stored2 models.Comment
	f.reload(t, &stored1, c1.ID)
	f.reload(t, &stored2, c2.ID)
	assert.Equal(t, 1, stored1.CommentCount)
	assert.Equal(t, 0, stored2.CommentCount)
}

func TestCommentCountsMatchRowsAfterManyInserts(t *testing.T) {
	f := setupStore(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	postID := f.post(t, alice.ID, "a thread")

	roots := []*models.CommentView{f.comment(t, postID, nil, alice.ID), f.comment(t, postID, nil, bob.ID)}
	var all []*models.CommentView
	all = append(all, roots...)
	for i := 0; i < 5; i++ {
		parent := all[i%len(all)]
		all = append(all, f.comment(t, 0, &parent.ID, bob.ID))
	}

	var post models.Post
	f.reload(t, &post, postID)
	var rows int64
	f.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&rows)
	assert.EqualValues(t, rows, post.CommentCount)

	for _, c := range all {
		var stored models.Comment
		f.reload(t, &stored, c.ID)
		var children int64
		f.db.Model(&models.Comment{}).Where("parent_comment_id = ?", c.ID).Count(&children)
		assert.EqualValues(t, children, stored.CommentCount, "comment %d", c.ID)
		assert.Equal(t, postID, stored.PostID)
	}
}

func TestCreateCommentFailuresRollBack(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	postA := f.post(t, alice.ID, "post A")
	postB := f.post(t, alice.ID, "post B")
	root := f.comment(t, postA, nil, alice.ID)

	_, err := f.comments.CreateComment(ctx, NewComment{PostID: 999, AuthorID: alice.ID, Content: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.CreateComment(ctx, NewComment{ParentCommentID: ptr(999), AuthorID: alice.ID, Content: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.CreateComment(ctx, NewComment{PostID: postB, ParentCommentID: &root.ID, AuthorID: alice.ID, Content: "hello"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.comments.CreateComment(ctx, NewComment{PostID: postA, AuthorID: alice.ID, Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	var a, b models.Post
	f.reload(t, &a, postA)
	f.reload(t, &b, postB)
	assert.Equal(t, 1, a.CommentCount)
	assert.Equal(t, 0, b.CommentCount)

	var stored models.Comment
	f.reload(t, &stored, root.ID)
	assert.Equal(t, 0, stored.CommentCount)
}

func TestListPostCommentsRootsOnly(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	postID := f.post(t, alice.ID, "a post")

	var roots []*models.CommentView
	for i := 0; i < 3; i++ {
		roots = append(roots, f.comment(t, postID, nil, alice.ID))
	}
	for i := 0; i < 3; i++ {
		f.comment(t, postID, &roots[0].ID, alice.ID)
	}

	page, err := f.comments.ListPostComments(ctx, postID, CommentQuery{
		PageRequest: PageRequest{Page: 1, Limit: 2, SortBy: SortRecent, Order: OrderAsc},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Nil(t, item.ParentCommentID)
		assert.Empty(t, item.ChildComments)
	}

	page2, err := f.comments.ListPostComments(ctx, postID, CommentQuery{
		PageRequest: PageRequest{Page: 2, Limit: 2, SortBy: SortRecent, Order: OrderAsc},
	})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.NotContains(t, []uint{page.Items[0].ID, page.Items[1].ID}, page2.Items[0].ID)
}

func TestListPostCommentsIncludeChildren(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	postID := f.post(t, alice.ID, "a post")

	root := f.comment(t, postID, nil, alice.ID)
	var replies []*models.CommentView
	for i := 0; i < 4; i++ {
		replies = append(replies, f.comment(t, postID, &root.ID, bob.ID))
	}
	_, err := f.ledger.ToggleCommentUpvote(ctx, replies[3].ID, alice.ID)
	require.NoError(t, err)
	_, err = f.ledger.ToggleCommentUpvote(ctx, root.ID, alice.ID)
	require.NoError(t, err)

	page, err := f.comments.ListPostComments(ctx, postID, CommentQuery{
		PageRequest:     PageRequest{Page: 1, Limit: 10, SortBy: SortPoints, Order: OrderDesc},
		IncludeChildren: true,
		ViewerID:        &alice.ID,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.True(t, item.IsUpvoted)
	assert.Equal(t, []models.UpvoteRef{{UserID: alice.ID}}, item.CommentUpvotes)
	require.Len(t, item.ChildComments, ChildPreviewLimit)
	assert.Equal(t, replies[3].ID, item.ChildComments[0].ID, "highest-scored reply comes first")
	assert.True(t, item.ChildComments[0].IsUpvoted)
	assert.False(t, item.ChildComments[1].IsUpvoted)
	assert.Equal(t, 1, item.ChildComments[0].Depth)

	anon, err := f.comments.ListPostComments(ctx, postID, CommentQuery{IncludeChildren: true})
	require.NoError(t, err)
	assert.False(t, anon.Items[0].IsUpvoted)
	assert.Empty(t, anon.Items[0].CommentUpvotes)
}

func TestListCommentReplies(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	postID := f.post(t, alice.ID, "a post")

	root := f.comment(t, postID, nil, alice.ID)
	child := f.comment(t, postID, &root.ID, alice.ID)
	f.comment(t, postID, &child.ID, alice.ID)
	f.comment(t, postID, nil, alice.ID)

	page, err := f.comments.ListCommentReplies(ctx, root.ID, CommentQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "only direct children are returned")
	assert.Equal(t, child.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	empty, err := f.comments.ListCommentReplies(ctx, page.Items[0].ID+1, CommentQuery{})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	_, err = f.comments.ListCommentReplies(ctx, 999, CommentQuery{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.ListPostComments(ctx, 999, CommentQuery{})
	assert.ErrorIs(t, err, ErrNotFound)
}
