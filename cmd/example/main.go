package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	stackexchange "github.com/jamesprial/go-stackexchange-api-wrapper"
	"github.com/jamesprial/go-stackexchange-api-wrapper/pkg/types"
)

func main() {
	// Site is optional; the API defaults to stackoverflow.
	site := os.Getenv("STACKEXCHANGE_SITE")

	// Route structured logs to stdout; adjust the level as needed.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Create API configuration
	config := &stackexchange.Config{
		Site:      site,
		UserAgent: "example-bot/1.0",
		Logger:    logger,
		RateLimit: &stackexchange.RateLimitConfig{RequestsPerSecond: 5, Burst: 5},
	}

	api, err := stackexchange.NewFromConfig(config)
	if err != nil {
		log.Fatalf("Failed to create API: %v", err)
	}
	fmt.Printf("Querying %s\n", api)

	ctx := context.Background()

	// Fetch a single comment
	commentReq, err := api.Comment().Call(1)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	fmt.Printf("\n%s\n", commentReq)

	comments, err := stackexchange.DecodeItems[types.Comment](ctx, commentReq)
	if err != nil {
		var apiErr *stackexchange.APIError
		if errors.As(err, &apiErr) {
			log.Printf("API rejected the request: %s (%d)", apiErr.ErrorName, apiErr.ErrorID)
		} else {
			log.Printf("Failed to fetch comment: %v", err)
		}
	}
	for _, c := range comments {
		fmt.Printf("Comment %d on post %d by %s (score %d)\n", c.CommentID, c.PostID, c.Owner.Name(), c.Score)
	}

	// Fetch two questions, then their answers through the same request
	questionsReq, err := api.Questions().Call(11227809, 927358)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}

	questions, err := stackexchange.DecodeItems[types.Question](ctx, questionsReq)
	if err != nil {
		log.Printf("Failed to fetch questions: %v", err)
	} else {
		fmt.Println("\nQuestions:")
		for i, q := range questions {
			fmt.Printf("%d. %s (score: %d, answers: %d)\n", i+1, q.Title, q.Score, q.AnswerCount)
		}
	}

	answers, err := questionsReq.Child("answers")
	if err != nil {
		log.Fatalf("Failed to resolve answers: %v", err)
	}
	answersReq, err := answers.Call()
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}

	answerItems, err := stackexchange.DecodeItems[types.Answer](ctx, answersReq)
	if err != nil {
		log.Printf("Failed to fetch answers: %v", err)
	} else {
		fmt.Printf("\nFetched %d answers from %s\n", len(answerItems), answersReq.Path())
	}

	// Inspect the response envelope for quota information
	w, err := answersReq.Wrapper(ctx)
	if err == nil {
		fmt.Printf("Quota: %d of %d remaining (has more: %v)\n", w.QuotaRemaining, w.QuotaMax, w.HasMore)
	}

	// Badge recipients hang off the badges endpoint
	recipients, err := api.Badges().Child("recipients")
	if err != nil {
		log.Fatalf("Failed to resolve recipients: %v", err)
	}
	path, err := recipients.Path()
	if err != nil {
		log.Fatalf("Failed to resolve path: %v", err)
	}
	fmt.Printf("\nBadge recipients live at %s\n", path)
}
