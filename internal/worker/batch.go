package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/finshare/finx/internal/model"
)

// Message is one SMS line from an export file
type Message struct {
	SourceID string
	Body     string
}

// Scanner runs the extraction pipeline for a single message
type Scanner interface {
	ScanMessage(ctx context.Context, sourceID, body string) (*model.ScanReport, error)
}

// MessageJob extracts one message through the pipeline
type MessageJob struct {
	Message Message
	Scanner Scanner
}

// Execute runs the job
func (j *MessageJob) Execute(ctx context.Context) Result {
	report, err := j.Scanner.ScanMessage(ctx, j.Message.SourceID, j.Message.Body)
	return &MessageResult{
		Message: j.Message,
		Report:  report,
		Error:   err,
	}
}

// MessageResult is the outcome of extracting one message
type MessageResult struct {
	Message Message
	Report  *model.ScanReport
	Error   error
}

// GetError returns the job error, if any
func (r *MessageResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many messages concurrently
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(scanner Scanner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
	}
}

// ProcessMessages extracts the given messages concurrently. Results are
// drained while submission is still in progress, so batches of any size fit
// through the pool's small channel buffers. Cancelling ctx stops the run;
// messages not yet extracted are simply absent from the results.
func (b *BatchProcessor) ProcessMessages(ctx context.Context, messages []Message) []*MessageResult {
	if len(messages) == 0 {
		return []*MessageResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	collected := make(chan []*MessageResult, 1)
	go func() {
		results := make([]*MessageResult, 0, len(messages))
		for result := range pool.Results() {
			results = append(results, result.(*MessageResult))
		}
		collected <- results
	}()

	for _, msg := range messages {
		pool.Submit(&MessageJob{
			Message: msg,
			Scanner: b.scanner,
		})
	}

	pool.Wait()
	return <-collected
}

// ProcessFile reads an SMS export file and extracts its messages concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*MessageResult, error) {
	messages, err := ReadMessagesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	return b.ProcessMessages(ctx, messages), nil
}

// ReadMessagesFromFile reads an SMS export file: one message per line as
// "sender<TAB>body". Empty lines and # comments are skipped, exact duplicate
// lines are dropped (repeated broadcasts of the same SMS).
func ReadMessagesFromFile(filePath string) ([]Message, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var messages []Message
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	// Bank SMS bodies run long; allow generous lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sender, body, ok := strings.Cut(line, "\t")
		if !ok {
			// A line without a sender column is treated as a bare body.
			sender, body = "", line
		}

		if !seen[line] {
			seen[line] = true
			messages = append(messages, Message{
				SourceID: strings.TrimSpace(sender),
				Body:     strings.TrimSpace(body),
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return messages, nil
}
