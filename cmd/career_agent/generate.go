package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vagacerta/career-agent/internal/generation"
)

var (
	generateCVFile      string
	generateURL         string
	generateTitle       string
	generateCompany     string
	generateDescription string
	generateTone        string
	generateLanguage    string
	generateContext     string
	generateThinking    bool
	generateOutDir      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate personalized career materials",
	Long: "Generate an optimized CV, cover letter, networking message and interview tips " +
		"from a CV file and either a job posting URL or explicit job details.",
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateCVFile, "cv", "", "Path to the CV file (required)")
	generateCmd.Flags().StringVar(&generateURL, "url", "", "Job posting URL (extracts details automatically)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "Job title (alternative to --url)")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "Company name (alternative to --url)")
	generateCmd.Flags().StringVar(&generateDescription, "description", "", "Path to a job description file (alternative to --url)")
	generateCmd.Flags().StringVar(&generateTone, "tone", "", "Desired tone for the materials")
	generateCmd.Flags().StringVar(&generateLanguage, "language", "", "Target language for the materials")
	generateCmd.Flags().StringVar(&generateContext, "context", "", "Additional instructions for the model")
	generateCmd.Flags().BoolVar(&generateThinking, "thinking", false, "Use the advanced model tier (slower, more precise)")
	generateCmd.Flags().StringVar(&generateOutDir, "out", "", "Directory to write the materials as markdown files (default: print JSON)")
	_ = generateCmd.MarkFlagRequired("cv")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	useURL := generateURL != ""
	useDetails := generateTitle != "" || generateCompany != "" || generateDescription != ""
	if useURL && useDetails {
		return fmt.Errorf("cannot use --url with --title/--company/--description")
	}
	if !useURL && !useDetails {
		return fmt.Errorf("must provide either --url or --title, --company and --description")
	}

	cv, err := os.ReadFile(generateCVFile)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	ctx := context.Background()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, a.settings.RequestTimeout)
	defer cancel()

	req := &generation.Request{
		CV:            string(cv),
		Tone:          generateTone,
		Language:      generateLanguage,
		CustomContext: generateContext,
		ThinkingMode:  generateThinking,
	}

	if useURL {
		content, err := a.extractor.ExtractContent(ctx, generateURL)
		if err != nil {
			return err
		}
		details, err := a.extractor.ExtractDetails(ctx, content.Content, generateURL)
		if err != nil {
			return err
		}
		req.JobTitle = details.JobTitle
		req.Company = details.Company
		req.JobDescription = content.Content
	} else {
		description, err := os.ReadFile(generateDescription)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		req.JobTitle = generateTitle
		req.Company = generateCompany
		req.JobDescription = string(description)
	}

	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		return err
	}

	if generateOutDir != "" {
		return writeMaterials(generateOutDir, result)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}

func writeMaterials(dir string, result *generation.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := map[string]string{
		"optimized_cv.md":       result.OptimizedCV,
		"cover_letter.md":       result.CoverLetter,
		"networking_message.md": result.NetworkingMessage,
		"interview_tips.md":     result.InterviewTips,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Materials written to %s (compatibility: %d/100, %s)\n",
		dir, result.Compatibility.Score, result.Compatibility.Label)
	return nil
}
