// Package validation checks StackExchange ids, query parameters and decoded
// response objects.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jamesprial/go-stackexchange-api-wrapper/pkg/types"
)

// Regular expressions for validating StackExchange data formats
var (
	// idRegex matches positive decimal ids
	idRegex = regexp.MustCompile(`^[1-9][0-9]{0,18}$`)

	// siteRegex matches api_site_parameter values and site domains
	siteRegex = regexp.MustCompile(`^[A-Za-z0-9.-]{1,64}$`)

	// linkRegex matches the absolute links the API returns
	linkRegex = regexp.MustCompile(`^https?://[^\s/]+(/\S*)?$`)
)

// MaxPageSize is the largest pagesize the API accepts.
const MaxPageSize = 100

// Valid values of enumerated fields.
var (
	validOrders     = map[string]bool{"asc": true, "desc": true}
	validRanks      = map[string]bool{"gold": true, "silver": true, "bronze": true}
	validBadgeTypes = map[string]bool{"named": true, "tag_based": true}
)

// earliestPost is the creation time of the oldest StackExchange content.
var earliestPost = time.Date(2008, 7, 31, 0, 0, 0, 0, time.UTC)

// IsValidID checks if a string is a positive decimal id
func IsValidID(s string) bool {
	return idRegex.MatchString(s)
}

// IsValidSite checks if a string can be used as the site parameter
func IsValidSite(s string) bool {
	return siteRegex.MatchString(s)
}

// IsValidLink checks if a string is an absolute http(s) link
func IsValidLink(s string) bool {
	return linkRegex.MatchString(s)
}

// ValidateIDs checks every id, reporting all invalid ones at once
func ValidateIDs(ids []string) error {
	var errs []error
	for i, id := range ids {
		if !IsValidID(id) {
			errs = append(errs, fmt.Errorf("id %d has invalid format: %q", i, id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("id validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

// ValidateParams checks the values of the common query parameters. Unknown
// parameters are accepted unchanged.
func ValidateParams(params url.Values) error {
	var errs []error

	for key, values := range params {
		for _, v := range values {
			if err := validateParam(key, v); err != nil {
				errs = append(errs, err)
			}
		}
	}

	from, fromOK := dateParam(params, "fromdate")
	to, toOK := dateParam(params, "todate")
	if fromOK && toOK && from > to {
		errs = append(errs, fmt.Errorf("fromdate (%d) is after todate (%d)", from, to))
	}

	if len(errs) > 0 {
		return fmt.Errorf("parameter validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

func validateParam(key, value string) error {
	switch key {
	case "site":
		if !IsValidSite(value) {
			return fmt.Errorf("site has invalid format: %q", value)
		}
	case "page":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("page must be a positive integer, got %q", value)
		}
	case "pagesize":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > MaxPageSize {
			return fmt.Errorf("pagesize must be between 0 and %d, got %q", MaxPageSize, value)
		}
	case "order":
		if !validOrders[value] {
			return fmt.Errorf("order must be asc or desc, got %q", value)
		}
	case "fromdate", "todate":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a unix timestamp, got %q", key, value)
		}
	}
	return nil
}

func dateParam(params url.Values, key string) (int64, bool) {
	v := params.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

// ValidateTimestamp checks that a creation time is neither before the first
// StackExchange post nor in the future (with 1 hour grace for clock skew)
func ValidateTimestamp(field string, ts types.Timestamp) error {
	t := ts.Time()
	if t.Before(earliestPost) {
		return fmt.Errorf("%s is before StackExchange existed: %d", field, ts)
	}
	if t.After(time.Now().Add(time.Hour)) {
		return fmt.Errorf("%s is in the future: %d", field, ts)
	}
	return nil
}

// ValidateComment validates a Comment struct's fields
func ValidateComment(c *types.Comment) error {
	if c == nil {
		return fmt.Errorf("comment is nil")
	}

	var errs []error

	if c.CommentID <= 0 {
		errs = append(errs, fmt.Errorf("CommentID must be positive, got %d", c.CommentID))
	}
	if c.PostID <= 0 {
		errs = append(errs, fmt.Errorf("PostID must be positive, got %d", c.PostID))
	}
	if err := ValidateTimestamp("CreationDate", c.CreationDate); err != nil {
		errs = append(errs, err)
	}
	if c.Link != "" && !IsValidLink(c.Link) {
		errs = append(errs, fmt.Errorf("Link has invalid format: %s", c.Link))
	}

	if len(errs) > 0 {
		return fmt.Errorf("comment validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

// ValidateBadge validates a Badge struct's fields
func ValidateBadge(b *types.Badge) error {
	if b == nil {
		return fmt.Errorf("badge is nil")
	}

	var errs []error

	if b.BadgeID <= 0 {
		errs = append(errs, fmt.Errorf("BadgeID must be positive, got %d", b.BadgeID))
	}
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, fmt.Errorf("Name is required"))
	}
	if !validRanks[b.Rank] {
		errs = append(errs, fmt.Errorf("Rank must be gold, silver or bronze, got %q", b.Rank))
	}
	if !validBadgeTypes[b.BadgeType] {
		errs = append(errs, fmt.Errorf("BadgeType must be named or tag_based, got %q", b.BadgeType))
	}
	if b.AwardCount < 0 {
		errs = append(errs, fmt.Errorf("AwardCount cannot be negative, got %d", b.AwardCount))
	}

	if len(errs) > 0 {
		return fmt.Errorf("badge validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

// ValidateQuestion validates a Question struct's fields
func ValidateQuestion(q *types.Question) error {
	if q == nil {
		return fmt.Errorf("question is nil")
	}

	var errs []error

	if q.QuestionID <= 0 {
		errs = append(errs, fmt.Errorf("QuestionID must be positive, got %d", q.QuestionID))
	}
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, fmt.Errorf("Title is required"))
	}
	if q.AnswerCount < 0 {
		errs = append(errs, fmt.Errorf("AnswerCount cannot be negative, got %d", q.AnswerCount))
	}
	if q.ViewCount < 0 {
		errs = append(errs, fmt.Errorf("ViewCount cannot be negative, got %d", q.ViewCount))
	}
	if q.AcceptedAnswerID != 0 && !q.IsAnswered {
		errs = append(errs, fmt.Errorf("question has an accepted answer but is not answered"))
	}
	if err := ValidateTimestamp("CreationDate", q.CreationDate); err != nil {
		errs = append(errs, err)
	}
	if q.LastActivityDate != 0 && q.LastActivityDate < q.CreationDate {
		errs = append(errs, fmt.Errorf("LastActivityDate (%d) is before CreationDate (%d)", q.LastActivityDate, q.CreationDate))
	}
	if q.Link != "" && !IsValidLink(q.Link) {
		errs = append(errs, fmt.Errorf("Link has invalid format: %s", q.Link))
	}

	if len(errs) > 0 {
		return fmt.Errorf("question validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

// ValidateAnswer validates an Answer struct's fields
func ValidateAnswer(a *types.Answer) error {
	if a == nil {
		return fmt.Errorf("answer is nil")
	}

	var errs []error

	if a.AnswerID <= 0 {
		errs = append(errs, fmt.Errorf("AnswerID must be positive, got %d", a.AnswerID))
	}
	if a.QuestionID <= 0 {
		errs = append(errs, fmt.Errorf("QuestionID must be positive, got %d", a.QuestionID))
	}
	if err := ValidateTimestamp("CreationDate", a.CreationDate); err != nil {
		errs = append(errs, err)
	}
	if a.LastActivityDate != 0 && a.LastActivityDate < a.CreationDate {
		errs = append(errs, fmt.Errorf("LastActivityDate (%d) is before CreationDate (%d)", a.LastActivityDate, a.CreationDate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("answer validation failed: %w", joinValidationErrors(errs))
	}
	return nil
}

// joinValidationErrors combines multiple errors into a single error message
func joinValidationErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
