package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"go.uber.org/zap"
)

const (
	MinFeedbackScore = 1
	MaxFeedbackScore = 5

	recentCommentLimit = 50
)

var ErrInvalidFeedback = errors.New("invalid feedback")

type FeedbackUsecase struct {
	repo repository.FeedbackRepositoryInterface
	log  *zap.Logger
	now  func() time.Time
}

func NewFeedbackUsecase(repo repository.FeedbackRepositoryInterface, log *zap.Logger) *FeedbackUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedbackUsecase{repo: repo, log: log.Named("feedback"), now: time.Now}
}

func (uc *FeedbackUsecase) Submit(ctx context.Context, req dto.FeedbackRequest) (*model.Feedback, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	errs := map[string]string{}
	if name == "" {
		errs["name"] = "name is required"
	}
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "email is not valid"
	}
	if req.Score < MinFeedbackScore || req.Score > MaxFeedbackScore {
		errs["score"] = fmt.Sprintf("score must be between %d and %d", MinFeedbackScore, MaxFeedbackScore)
	}
	if len(errs) > 0 {
		return nil, util.NewFormError("invalid feedback", errs, ErrInvalidFeedback)
	}

	feedback := &model.Feedback{
		FeedName:  truncate(name),
		FeedEmail: truncate(email),
		FeedScore: req.Score,
		Comments:  truncate(strings.TrimSpace(req.Comments)),
		Timestamp: uc.now().Format(TimestampLayout),
	}
	if err := uc.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	uc.log.Info("feedback received", zap.Int("score", feedback.FeedScore))
	return feedback, nil
}

// Summary returns the rating distribution and the most recent comments.
// Empty comments are left out of the comment list.
func (uc *FeedbackUsecase) Summary(ctx context.Context) (dto.FeedbackSummaryDTO, error) {
	counts, err := uc.repo.CountByScore(ctx)
	if err != nil {
		return dto.FeedbackSummaryDTO{}, fmt.Errorf("count feedback: %w", err)
	}
	recent, err := uc.repo.Recent(ctx, recentCommentLimit)
	if err != nil {
		return dto.FeedbackSummaryDTO{}, fmt.Errorf("list feedback: %w", err)
	}

	summary := dto.FeedbackSummaryDTO{
		RatingDistribution: toCountDTOs(counts),
		RecentComments:     make([]dto.CommentDTO, 0, len(recent)),
	}
	for _, f := range recent {
		if f.Comments == "" {
			continue
		}
		summary.RecentComments = append(summary.RecentComments, dto.CommentDTO{
			User:    f.FeedName,
			Comment: f.Comments,
			Date:    f.CreatedAt,
		})
	}
	return summary, nil
}

func toCountDTOs(rows []repository.LabelCount) []dto.CountDTO {
	out := make([]dto.CountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CountDTO{Label: r.Label, Count: r.Count})
	}
	return out
}
