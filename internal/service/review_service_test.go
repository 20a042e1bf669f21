package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewRatingBounds(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	for _, bad := range []int{0, -1, 6} {
		_, err := svc.CreateReview(ctx, strangerID, fx.release.ID, ReviewInput{Rating: bad})
		assert.ErrorIs(t, err, ErrBadRating)
	}
	_, err := svc.CreateReview(ctx, strangerID, fx.release.ID, ReviewInput{Rating: 3, Feedback: "还行"})
	assert.NoError(t, err)
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	rv, err := svc.CreateReview(ctx, strangerID, fx.release.ID, ReviewInput{Rating: 2})
	require.NoError(t, err)

	// 不是作者改不动
	assert.ErrorIs(t, svc.UpdateReview(ownerID, rv.ID, ReviewInput{Rating: 5}), ErrReviewNotFound)
	require.NoError(t, svc.UpdateReview(strangerID, rv.ID, ReviewInput{Rating: 4, Feedback: "用久了真香"}))

	var got model.Review
	require.NoError(t, db.First(&got, rv.ID).Error)
	assert.Equal(t, 4, got.Rating)
}

func TestDeleteReviewCleansVotes(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	voteSvc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	rv, err := svc.CreateReview(ctx, strangerID, fx.release.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)
	_, _, err = voteSvc.Cast(ctx, ownerID, model.TargetReview, rv.ID, model.VoteUp)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, strangerID, rv.ID))

	var cnt int64
	db.Model(&model.Vote{}).Where("target = ? AND target_id = ?", model.TargetReview, rv.ID).Count(&cnt)
	assert.EqualValues(t, 0, cnt)
}

func TestReviewSummary(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	// fixture 自带一条5分评价
	_, err := svc.CreateReview(ctx, strangerID, fx.release.ID, ReviewInput{Rating: 3})
	require.NoError(t, err)

	s, err := svc.Summary(ctx, fx.release.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.Count)
	assert.InDelta(t, 4.0, s.AverageRating, 0.001)
}

func TestReviewSummaryEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)

	require.NoError(t, db.Where("release_id = ?", fx.release.ID).Delete(&model.Review{}).Error)

	s, err := svc.Summary(context.Background(), fx.release.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, s.Count)
	assert.EqualValues(t, 0, s.AverageRating)
}

func TestListReviewsPrivateHidden(t *testing.T) {
	db := openTestDB(t)
	svc := NewReviewService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPrivate)

	_, err := svc.ListByRelease(context.Background(), fx.release.ID, strangerID, pkg.PageQuery{})
	assert.ErrorIs(t, err, ErrReleaseNotVisible)
}
