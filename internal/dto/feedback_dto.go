package dto

import "time"

type FeedbackRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Score    int    `json:"score" form:"score"`
	Comments string `json:"comments" form:"comments"`
}

type CommentDTO struct {
	User    string    `json:"user"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

type FeedbackSummaryDTO struct {
	RatingDistribution []CountDTO   `json:"rating_distribution"`
	RecentComments     []CommentDTO `json:"recent_comments"`
}
