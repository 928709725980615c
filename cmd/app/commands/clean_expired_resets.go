package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	resetUsecase "github.com/addislabs/placement/internal/passwordreset/usecase"
)

// RunCleanExpiredResets deletes password resets that expired more than the
// specified number of days ago. Supports dry-run mode to preview the deletion
// count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredResets(
	ctx context.Context,
	resetUseCase resetUsecase.PasswordResetUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired password resets",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	count, err := resetUseCase.CleanExpired(ctx, cutoff, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean expired password resets: %w", err)
	}

	if format == "json" {
		outputCleanResetsJSON(writer, count, days, dryRun)
	} else {
		outputCleanResetsText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanResetsText outputs the result in human-readable text format.
func outputCleanResetsText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(writer, "Dry-run mode: Would delete %d password reset(s) expired for more than %d day(s)\n", count, days)
	} else {
		fmt.Fprintf(writer, "Successfully deleted %d password reset(s) expired for more than %d day(s)\n", count, days)
	}
}

// outputCleanResetsJSON outputs the result in JSON format for machine consumption.
func outputCleanResetsJSON(writer io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
