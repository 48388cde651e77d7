package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/view"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var csvHeader = []string{"ID", "Title", "Description", "Status", "Completed", "Due Date", "Created At", "Updated At"}

// ExportCommand handles the export command
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute writes the derived view in the given format
func (c *ExportCommand) Execute(ctx context.Context, format string, filter view.Filter, key view.SortKey) error {
	if format != FormatCSV && format != FormatJSON {
		return errors.NewInvalidInputError("format", format, "supported formats are csv and json")
	}

	svc := c.app.service
	if err := svc.Load(ctx); err != nil {
		return NewErrorHandler().Handle("export tasks", err)
	}
	tasks := svc.View(filter, key).Tasks

	if format == FormatJSON {
		return c.outputJSON(tasks)
	}
	return c.outputCSV(tasks)
}

// outputCSV writes one row per task; times are RFC 3339 in UTC
func (c *ExportCommand) outputCSV(tasks []domain.Task) error {
	writer := csv.NewWriter(c.app.out)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		var due string
		if task.DueDate != nil {
			due = task.DueDate.UTC().Format(time.RFC3339)
		}
		row := []string{
			task.ID,
			task.Title,
			task.Description,
			task.Status.String(),
			strconv.FormatBool(task.Completed()),
			due,
			task.CreatedAt.UTC().Format(time.RFC3339),
			task.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// outputJSON writes the tasks in their wire representation
func (c *ExportCommand) outputJSON(tasks []domain.Task) error {
	payloads := make([]api.TaskPayload, len(tasks))
	for i, task := range tasks {
		payloads[i] = api.PayloadFromTask(task)
	}

	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payloads); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
