package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/geosick-health/geosick/internal/client/activity"
	"github.com/geosick-health/geosick/internal/client/shell"
)

// Feature pages collect the user's input and hand the completed result to
// the shell's activity callback. The generative-AI analysis itself is an
// external collaborator behind analyzeFn; the payload stays opaque to the
// activity subsystem either way.

// analyzeFn produces the analysis payload for a feature page. The default
// wraps the raw input; a remote analysis backend can be swapped in here.
var analyzeFn = func(ctx context.Context, kind activity.Type, input string) (json.RawMessage, error) {
	payload, err := json.Marshal(struct {
		Summary string `json:"summary"`
	}{Summary: input})
	return payload, err
}

func (a *App) runFeaturePage(ctx context.Context, page shell.Page, kind activity.Type, title, prompt string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}

	a.shell.GoTo(page)

	input, err := GetMultiline(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if input == "" {
		fmt.Println("Cancelled.")
		return nil
	}

	data, err := analyzeFn(ctx, kind, input)
	if err != nil {
		fmt.Println("Analysis service unavailable. Please try again later.")
		return nil
	}

	a.shell.AppendActivity(ctx, activity.NewEntry{Type: kind, Title: title, Data: data})
	fmt.Println("Done. The result was added to your activity history.")
	return nil
}

func (a *App) runImageAnalysis(ctx context.Context) error {
	return a.runFeaturePage(ctx, shell.PageImageAnalysis, activity.TypeImageAnalysis,
		"Image Analysis", "Describe the photo you want analyzed")
}

func (a *App) runPrescriptionAnalysis(ctx context.Context) error {
	return a.runFeaturePage(ctx, shell.PagePrescriptionAnalysis, activity.TypePrescriptionAnalysis,
		"Prescription Analysis", "Enter the prescription text")
}

func (a *App) runMentalHealthCheck(ctx context.Context) error {
	return a.runFeaturePage(ctx, shell.PageMentalHealth, activity.TypeMentalHealth,
		"Mental Health Check-in", "How have you been feeling lately?")
}

func (a *App) runSymptomChecker(ctx context.Context) error {
	return a.runFeaturePage(ctx, shell.PageSymptomChecker, activity.TypeSymptomChecker,
		"Symptom Check", "Describe your symptoms")
}

func (a *App) showProfile() {
	user := a.shell.User()
	if user == nil {
		fmt.Println("Please log in first.")
		return
	}
	a.shell.GoTo(shell.PageProfile)
	fmt.Printf("Name:          %s\n", user.Name)
	fmt.Printf("Phone:         %s\n", user.Phone)
	fmt.Printf("Date of birth: %s\n", user.DateOfBirth)
	fmt.Printf("Member since:  %s\n", user.CreatedAt.Format("2006-01-02"))
}
