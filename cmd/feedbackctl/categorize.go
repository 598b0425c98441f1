package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"medfeedback/internal/catalog"
	"medfeedback/internal/categorizer"
	"medfeedback/internal/model"
)

// feedbackFile is one submission to categorize. Questions may be given
// inline or picked from the built-in catalog by department.
type feedbackFile struct {
	Departments []string         `json:"departments,omitempty"`
	Questions   []model.Question `json:"questions,omitempty"`
	Answers     model.Answers    `json:"answers"`
	Comment     string           `json:"comment,omitempty"`
	CommentType string           `json:"commentType,omitempty"`
}

type fileResult struct {
	File         string                            `json:"file"`
	Category     model.FeedbackCategory            `json:"category"`
	ByDepartment map[string]model.FeedbackCategory `json:"byDepartment,omitempty"`
	Summary      string                            `json:"summary"`
}

func newCategorizeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "categorize FILE...",
		Short: "Categorize feedback JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := resolvePolicy(cmd)
			if err != nil {
				return err
			}
			results, err := categorizeFiles(categorizer.New(policy), args)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func categorizeFiles(engine *categorizer.Engine, paths []string) ([]fileResult, error) {
	results := make([]fileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			in, err := readFeedbackFile(path)
			if err != nil {
				return err
			}
			cat := engine.Categorize(in.Questions, in.Answers, in.Comment, in.CommentType)
			results[i] = fileResult{
				File:         path,
				Category:     cat,
				ByDepartment: engine.CategorizeByUnit(in.Questions, in.Answers),
				Summary:      categorizer.Summarize(cat),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readFeedbackFile(path string) (*feedbackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in feedbackFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(in.Questions) == 0 && len(in.Departments) > 0 {
		in.Questions = catalogQuestions(in.Departments)
	}
	for _, q := range in.Questions {
		if !q.Kind.Valid() {
			return nil, fmt.Errorf("%s: question %s: unknown kind %q", path, q.ID, q.Kind)
		}
	}
	return &in, nil
}

func catalogQuestions(departments []string) []model.Question {
	want := make(map[string]bool, len(departments))
	for _, d := range departments {
		want[d] = true
	}
	var out []model.Question
	for _, q := range catalog.Questions() {
		if want[q.DepartmentID] {
			out = append(out, q)
		}
	}
	return out
}

func printResults(w io.Writer, results []fileResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%s: %s\n", r.File, r.Summary)
		for _, reason := range r.Category.Reasoning {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}
}
