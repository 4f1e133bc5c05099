package wizard

import "fmt"

// Step of the wizard
type Step int

const (
	StepInputs Step = iota
	StepFrameworks
	StepReview
	StepRecommendations
	StepExport
)

// StepCount is the number of wizard steps.
const StepCount = 5

var stepNames = [StepCount]string{"inputs", "frameworks", "review", "recommendations", "export"}

var stepTitles = [StepCount]string{"Inputs", "Select frameworks", "Analysis", "Recommendations", "Export"}

func (s Step) String() string {
	if s.Valid() {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Title is the heading shown for the step.
func (s Step) Title() string {
	if s.Valid() {
		return stepTitles[s]
	}
	return s.String()
}

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool { return s >= StepInputs && s <= StepExport }

// Progress returns the completed fraction, (step+1)/5.
func (s Step) Progress() float64 { return float64(s+1) / StepCount }

// ProgressText renders "Step n of 5".
func (s Step) ProgressText() string { return fmt.Sprintf("Step %d of %d", int(s)+1, StepCount) }
