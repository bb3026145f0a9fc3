package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mkotula/petscope/internal/oracle"
	"github.com/mkotula/petscope/internal/questions"
	"github.com/mkotula/petscope/internal/wizard"
	"github.com/mkotula/petscope/pkg/models"
)

var (
	diagnoseModel string
	jsonOutput    bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run the interactive health questionnaire",
	Long: `Walks through the intake questions one at a time, then asks the
reasoning service for a diagnosis and veterinary detail.

Requires OPENROUTER_API_KEY to be set.`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseModel, "model", "m", "", "Override the reasoning model")
	diagnoseCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	client := oracle.NewClient(oracle.Config{
		APIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:  diagnoseModel,
	})
	if !client.Configured() {
		return fmt.Errorf("OPENROUTER_API_KEY is not set")
	}

	session := wizard.NewSession()
	if err := collectAnswers(session, os.Stdin, os.Stderr); err != nil {
		return err
	}

	ctx := context.Background()
	responses := session.Responses()

	stop := startSpinner("Consulting the diagnostic service...")
	result, err := client.Diagnose(ctx, responses)
	if err != nil {
		stop()
		return diagnoseError(err)
	}

	var detail *models.VeterinaryDetail
	if top := result.TopConditionName(); top != "" {
		detail, err = client.VeterinaryDetails(ctx, top,
			responses[questions.FieldSpecies], responses[questions.FieldBreed])
		if err != nil {
			stop()
			return diagnoseError(err)
		}
	}
	stop()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"result":             result,
			"severity":           result.Severity(),
			"veterinary_details": detail,
		})
	}

	printResult(os.Stdout, result, detail)
	return nil
}

// collectAnswers walks the question sequence on the terminal. Select
// questions accept either the option number or the option text.
func collectAnswers(session *wizard.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	bold := color.New(color.Bold)

	for {
		q, ok := session.Current()
		if !ok {
			return nil
		}

		fmt.Fprintf(out, "\n[%d/%d] ", session.Index()+1, session.Total())
		_, _ = bold.Fprintln(out, q.Prompt)

		if q.Input.Kind == questions.InputSelect {
			for i, option := range q.Input.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, option)
			}
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return fmt.Errorf("input closed before the questionnaire was complete")
		}

		value := strings.TrimSpace(scanner.Text())
		if q.Input.Kind == questions.InputSelect {
			if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(q.Input.Options) {
				value = q.Input.Options[n-1]
			}
		}

		if err := session.Answer(value); err != nil {
			var verr *wizard.ValidationError
			if errors.As(err, &verr) {
				yellow := color.New(color.FgYellow)
				_, _ = yellow.Fprintf(out, "  %s\n", verr.Error())
				continue
			}
			return err
		}
	}
}

// startSpinner shows a spinner on stderr while the oracle calls run. It is a
// no-op when stderr is not a terminal.
func startSpinner(message string) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, message)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

func diagnoseError(err error) error {
	switch {
	case errors.Is(err, oracle.ErrModelUnavailable):
		return fmt.Errorf("the AI model is currently unavailable due to high demand, please try again later")
	case errors.Is(err, oracle.ErrBadResponse):
		return fmt.Errorf("failed to parse the AI response, please try again")
	default:
		return fmt.Errorf("diagnosis failed: %w", err)
	}
}

func severityColor(severity models.Severity) *color.Color {
	switch severity {
	case models.SeverityRed:
		return color.New(color.FgRed, color.Bold)
	case models.SeverityYellow:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printResult(w io.Writer, result *models.DiagnosisResult, detail *models.VeterinaryDetail) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w)
	_, _ = severityColor(result.Severity()).Fprintln(w, result.Summary)
	if result.Urgent {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "Urgent: seek veterinary care as soon as possible.")
	}
	fmt.Fprintln(w)

	for _, c := range result.TopConditions() {
		_, _ = bold.Fprintf(w, "%s", c.Name)
		_, _ = dim.Fprintf(w, " (%d%%)\n", c.Likelihood)
		if c.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", c.Explanation)
		}
	}

	if result.Consult != "" {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "WHEN TO CONSULT A VET")
		fmt.Fprintln(w, result.Consult)
	}
	if result.Homecare != "" {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "HOME CARE")
		fmt.Fprintln(w, result.Homecare)
	}

	if detail != nil {
		printDetail(w, detail)
	}

	fmt.Fprintln(w)
	_, _ = dim.Fprintln(w, result.Disclaimer)
}

func printDetail(w io.Writer, detail *models.VeterinaryDetail) {
	bold := color.New(color.Bold)

	sections := []struct {
		title string
		text  string
		items []string
	}{
		{title: "OVERVIEW", text: detail.Overview},
		{title: "COMMON SYMPTOMS", items: detail.Symptoms},
		{title: "WHEN TO SEE A VETERINARIAN", text: detail.WhenToSeeVet},
		{title: "CAUSES", text: detail.Causes},
		{title: "RISK FACTORS", items: detail.RiskFactors},
		{title: "COMPLICATIONS", text: detail.Complications},
		{title: "PREVENTION", text: detail.Prevention},
		{title: "TREATMENT OPTIONS", text: detail.Treatment},
	}

	for _, section := range sections {
		if section.text == "" && len(section.items) == 0 {
			continue
		}
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, section.title)
		if section.text != "" {
			fmt.Fprintln(w, section.text)
		}
		for _, item := range section.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}
