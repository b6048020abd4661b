// Package types holds the StackExchange API response envelope and model types.
package types

import (
	"encoding/json"
	"html"
	"time"
)

// Wrapper is the common envelope every StackExchange API response is returned in.
// Items holds the raw payload so callers can decode it into the model of their endpoint.
type Wrapper struct {
	Items          json.RawMessage `json:"items"`
	HasMore        bool            `json:"has_more"`
	QuotaMax       int             `json:"quota_max"`
	QuotaRemaining int             `json:"quota_remaining"`

	// Backoff is the number of seconds the caller should wait before hitting
	// the same method again. Zero when absent.
	Backoff  int    `json:"backoff,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Total    int    `json:"total,omitempty"`
	Type     string `json:"type,omitempty"`

	ErrorID      int    `json:"error_id,omitempty"`
	ErrorName    string `json:"error_name,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// IsError reports whether the envelope carries an API error instead of items.
func (w *Wrapper) IsError() bool {
	return w.ErrorID != 0 || w.ErrorName != ""
}

// Timestamp is a unix epoch in seconds, as used for every date field of the API.
type Timestamp int64

// Time converts the timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// ShallowUser is the abbreviated user embedded in most other objects.
type ShallowUser struct {
	UserID       int    `json:"user_id"`
	DisplayName  string `json:"display_name"`
	Reputation   int    `json:"reputation"`
	UserType     string `json:"user_type"`
	ProfileImage string `json:"profile_image,omitempty"`
	Link         string `json:"link,omitempty"`
	AcceptRate   int    `json:"accept_rate,omitempty"`
}

// Name returns the display name with HTML entities unescaped.
// The API escapes names unless the filter asks for unsafe output.
func (u ShallowUser) Name() string {
	return html.UnescapeString(u.DisplayName)
}

// Comment is returned by /comments.
type Comment struct {
	CommentID    int          `json:"comment_id"`
	PostID       int          `json:"post_id"`
	Owner        ShallowUser  `json:"owner"`
	ReplyToUser  *ShallowUser `json:"reply_to_user,omitempty"`
	Score        int          `json:"score"`
	Edited       bool         `json:"edited"`
	CreationDate Timestamp    `json:"creation_date"`
	Body         string       `json:"body,omitempty"`
	Link         string       `json:"link,omitempty"`
}

// Badge is returned by /badges and its sub-routes.
type Badge struct {
	BadgeID    int          `json:"badge_id"`
	Name       string       `json:"name"`
	Rank       string       `json:"rank"`
	BadgeType  string       `json:"badge_type"`
	AwardCount int          `json:"award_count"`
	Link       string       `json:"link,omitempty"`
	User       *ShallowUser `json:"user,omitempty"`
}

// Question is returned by /questions.
type Question struct {
	QuestionID       int         `json:"question_id"`
	Title            string      `json:"title"`
	Tags             []string    `json:"tags"`
	Owner            ShallowUser `json:"owner"`
	IsAnswered       bool        `json:"is_answered"`
	ViewCount        int         `json:"view_count"`
	AnswerCount      int         `json:"answer_count"`
	Score            int         `json:"score"`
	AcceptedAnswerID int         `json:"accepted_answer_id,omitempty"`
	CreationDate     Timestamp   `json:"creation_date"`
	LastActivityDate Timestamp   `json:"last_activity_date"`
	ContentLicense   string      `json:"content_license,omitempty"`
	Link             string      `json:"link"`
	ClosedReason     string      `json:"closed_reason,omitempty"`
	Body             string      `json:"body,omitempty"`
}

// Answer is returned by /questions/{ids}/answers.
type Answer struct {
	AnswerID         int         `json:"answer_id"`
	QuestionID       int         `json:"question_id"`
	Owner            ShallowUser `json:"owner"`
	IsAccepted       bool        `json:"is_accepted"`
	Score            int         `json:"score"`
	CreationDate     Timestamp   `json:"creation_date"`
	LastActivityDate Timestamp   `json:"last_activity_date"`
	ContentLicense   string      `json:"content_license,omitempty"`
	Body             string      `json:"body,omitempty"`
}
