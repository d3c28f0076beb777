package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vagacerta/career-agent/internal/validation"
)

var extractURL string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract job posting details from a URL",
	Long:  "Scrape a job posting URL (with model fallback) and print the extracted title, company and description as JSON.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Job posting URL (required)")
	_ = extractCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, a.settings.RequestTimeout)
	defer cancel()

	content, err := a.extractor.ExtractContent(ctx, extractURL)
	if err != nil {
		return err
	}
	details, err := a.extractor.ExtractDetails(ctx, content.Content, extractURL)
	if err != nil {
		return err
	}

	out := struct {
		JobTitle       string `json:"job_title"`
		Company        string `json:"company"`
		JobDescription string `json:"job_description"`
		Validation     struct {
			Content validation.Result `json:"content"`
			Details validation.Result `json:"details"`
		} `json:"validation"`
		Source string `json:"source"`
	}{
		JobTitle:       details.JobTitle,
		Company:        details.Company,
		JobDescription: content.Content,
		Source:         content.Source + " + " + details.Source,
	}
	out.Validation.Content = content.Validation
	out.Validation.Details = details.Validation

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(encoded))

	return nil
}
