package dto

import (
	"roadmap-checkup/internal/domain"
	"time"
)

// ProfileRequest is step one of the quiz.
// @Description Gender and age of the person to be examined
type ProfileRequest struct {
	Gender string `json:"gender" example:"female"`
	Age    int    `json:"age" example:"35"`
}

// ExamChoiceRequest is step two of the quiz.
// @Description One of full, regular or individual
type ExamChoiceRequest struct {
	ExamType string `json:"exam_type" example:"full"`
}

// ContactRequest updates the contact form on the results step. Only the
// fields present in the body are changed.
type ContactRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	PreferredClinic *string `json:"preferred_clinic,omitempty"`
	PreferredDate1  *string `json:"preferred_date1,omitempty"`
	PreferredDate2  *string `json:"preferred_date2,omitempty"`
	Comments        *string `json:"comments,omitempty"`
	RequestType     *string `json:"request_type,omitempty"`
	SpecialistType  *string `json:"specialist_type,omitempty"`
}

// StepIndicator is one dot of the progress indicator.
type StepIndicator struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Done   bool   `json:"done"`
}

// QuizStateResponse is the view of a session on its current step. Exactly
// one of Profile, ExamChoice and Results is set.
// @Description Current quiz step with everything needed to render it
type QuizStateResponse struct {
	SessionID    string              `json:"session_id"`
	Step         domain.Step         `json:"step"`
	StepIndex    int                 `json:"step_index"`
	Steps        []StepIndicator     `json:"steps"`
	APIStatus    domain.DataStatus   `json:"api_status"`
	Answers      domain.QuizAnswers  `json:"answers"`
	SubmitStatus domain.SubmitStatus `json:"submit_status"`
	Profile      *ProfileView        `json:"profile,omitempty"`
	ExamChoice   *ExamChoiceView     `json:"exam_choice,omitempty"`
	Results      *ResultsView        `json:"results,omitempty"`
}

type ProfileView struct {
	AgeRange string             `json:"age_range"`
	MinAge   int                `json:"min_age"`
	MaxAge   int                `json:"max_age"`
	Presets  []domain.AgePreset `json:"presets"`
}

type ExamChoiceView struct {
	AgeRange string           `json:"age_range"`
	Options  []ExamOptionView `json:"options"`
}

// ExamOptionView is one card of the exam choice step. Individual has no
// program and no specs.
type ExamOptionView struct {
	Type        domain.ExamType      `json:"type"`
	Title       string               `json:"title"`
	Badge       string               `json:"badge"`
	Description string               `json:"description"`
	Benefits    []string             `json:"benefits"`
	ForWho      string               `json:"for_who"`
	HasDetails  bool                 `json:"has_details"`
	ProgramCode string               `json:"program_code,omitempty"`
	ProgramName string               `json:"program_name,omitempty"`
	Specs       *domain.ProgramSpecs `json:"specs,omitempty"`
}

type ClinicOfferView struct {
	Clinic      domain.ClinicInfo `json:"clinic"`
	Price       int               `json:"price"`
	Recommended bool              `json:"recommended"`
	Selected    bool              `json:"selected"`
}

type RequestTypeOption struct {
	Value domain.RequestType `json:"value"`
	Label string             `json:"label"`
}

type ResultsView struct {
	Individual   bool                     `json:"individual"`
	Comparison   *domain.ComparisonResult `json:"comparison,omitempty"`
	Specs        *domain.ProgramSpecs     `json:"specs,omitempty"`
	Clinics      []ClinicOfferView        `json:"clinics"`
	RequestTypes []RequestTypeOption      `json:"request_types"`
	CycleAdvice  string                   `json:"cycle_advice,omitempty"`
	CanSubmit    bool                     `json:"can_submit"`
}

// CatalogStatusResponse reports where the price data came from.
type CatalogStatusResponse struct {
	Status         domain.DataStatus `json:"status" example:"success"`
	PricedPrograms int               `json:"priced_programs"`
	Programs       int               `json:"programs"`
	LoadedAt       *time.Time        `json:"loaded_at,omitempty"`
}

// ProgramDetailsResponse carries the program description, or the fallback
// message when the description sheet has no such program.
type ProgramDetailsResponse struct {
	Available bool                   `json:"available"`
	Details   *domain.ProgramDetails `json:"details,omitempty"`
	Message   string                 `json:"message,omitempty"`
}

// HealthResponse reports the catalog source and whether the session store answers.
type HealthResponse struct {
	Status       string            `json:"status" example:"ok"`
	Catalog      domain.DataStatus `json:"catalog"`
	SessionStore string            `json:"session_store" example:"ok"`
}
