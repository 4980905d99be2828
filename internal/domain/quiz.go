package domain

import "time"

type Gender string

const (
	GenderUnset  Gender = ""
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

func (g Gender) Valid() bool {
	return g == GenderFemale || g == GenderMale
}

// Label returns the gender word used in lead reports.
func (g Gender) Label() string {
	if g == GenderFemale {
		return "Жінка"
	}
	return "Чоловік"
}

type ExamType string

const (
	ExamUnset      ExamType = ""
	ExamFull       ExamType = "full"
	ExamRegular    ExamType = "regular"
	ExamIndividual ExamType = "individual"
)

func (e ExamType) Valid() bool {
	return e == ExamFull || e == ExamRegular || e == ExamIndividual
}

// Priced reports whether the exam type maps to a program with clinic prices.
func (e ExamType) Priced() bool {
	return e == ExamFull || e == ExamRegular
}

type RequestType string

const (
	RequestUnset      RequestType = ""
	RequestStandard   RequestType = "standard"
	RequestExtended   RequestType = "extended"
	RequestIndividual RequestType = "individual"
	RequestSpecialist RequestType = "specialist"
)

func (r RequestType) Valid() bool {
	switch r {
	case RequestUnset, RequestStandard, RequestExtended, RequestIndividual, RequestSpecialist:
		return true
	}
	return false
}

// SendsToClinic reports whether the lead can go straight to the clinic
// without a manager picking the program first.
func (r RequestType) SendsToClinic() bool {
	return r == RequestStandard || r == RequestExtended
}

type ClinicID string

const (
	ClinicUnset    ClinicID = ""
	ClinicOnClinic ClinicID = "onclinic"
	ClinicSanaVita ClinicID = "sanavita"
)

func (c ClinicID) Valid() bool {
	return c == ClinicUnset || c == ClinicOnClinic || c == ClinicSanaVita
}

// Label returns the clinic name used in lead reports.
func (c ClinicID) Label() string {
	switch c {
	case ClinicOnClinic:
		return "OnClinic Одеса"
	case ClinicSanaVita:
		return "SanaVita Одеса"
	default:
		return "Не обрано"
	}
}

// priceKeySuffix is the clinic part of a price-table key, e.g. FF20_OnClinic.
func (c ClinicID) priceKeySuffix() string {
	if c == ClinicOnClinic {
		return "OnClinic"
	}
	return "SanaVita"
}

// Step is a stage of the quiz flow.
type Step string

const (
	StepProfile    Step = "profile"
	StepExamChoice Step = "exam_choice"
	StepResults    Step = "results"
)

// Index returns the 1-based position of the step in the flow.
func (s Step) Index() int {
	switch s {
	case StepExamChoice:
		return 2
	case StepResults:
		return 3
	default:
		return 1
	}
}

type SubmitStatus string

const (
	SubmitIdle    SubmitStatus = "idle"
	SubmitSuccess SubmitStatus = "success"
	SubmitError   SubmitStatus = "error"
)

const (
	DefaultAge = 30
	MinAge     = 18
	MaxAge     = 80
)

// QuizAnswers holds everything the user entered during one session.
type QuizAnswers struct {
	Gender          Gender      `json:"gender"`
	Age             int         `json:"age"`
	ExamType        ExamType    `json:"exam_type"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	PreferredClinic ClinicID    `json:"preferred_clinic"`
	PreferredDate1  string      `json:"preferred_date1"`
	PreferredDate2  string      `json:"preferred_date2"`
	Comments        string      `json:"comments"`
	RequestType     RequestType `json:"request_type"`
	SpecialistType  string      `json:"specialist_type"`
}

// NewQuizAnswers returns the answers of a fresh session.
func NewQuizAnswers() QuizAnswers {
	return QuizAnswers{Age: DefaultAge}
}

// QuizSession is the state of one user's pass through the quiz.
type QuizSession struct {
	ID           string            `json:"id"`
	Step         Step              `json:"step"`
	Answers      QuizAnswers       `json:"answers"`
	Result       *ComparisonResult `json:"result,omitempty"`
	SubmitStatus SubmitStatus      `json:"submit_status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewQuizSession creates a session positioned on the profile step.
func NewQuizSession(id string) *QuizSession {
	now := time.Now()
	return &QuizSession{
		ID:           id,
		Step:         StepProfile,
		Answers:      NewQuizAnswers(),
		SubmitStatus: SubmitIdle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Reset clears the session back to an empty profile step, keeping its identity.
func (s *QuizSession) Reset() {
	s.Step = StepProfile
	s.Answers = NewQuizAnswers()
	s.Result = nil
	s.SubmitStatus = SubmitIdle
	s.UpdatedAt = time.Now()
}

// SetProfile records step one and advances to the exam choice.
func (s *QuizSession) SetProfile(gender Gender, age int) error {
	if s.Step != StepProfile {
		return NewInvalidStepError("profile", s.Step)
	}
	s.Answers.Gender = gender
	s.Answers.Age = age
	s.Step = StepExamChoice
	s.UpdatedAt = time.Now()
	return nil
}

// ChooseExam records step two. A nil result is only valid for individual
// consultations, which have no clinic prices.
func (s *QuizSession) ChooseExam(examType ExamType, result *ComparisonResult) error {
	if s.Step != StepExamChoice {
		return NewInvalidStepError("exam", s.Step)
	}
	s.Answers.ExamType = examType
	s.Result = result
	s.Step = StepResults
	s.SubmitStatus = SubmitIdle
	s.UpdatedAt = time.Now()
	return nil
}

// Back moves one step towards the profile.
func (s *QuizSession) Back() error {
	switch s.Step {
	case StepResults:
		s.Step = StepExamChoice
		s.Result = nil
		s.SubmitStatus = SubmitIdle
	case StepExamChoice:
		s.Step = StepProfile
	default:
		return NewInvalidStepError("back", s.Step)
	}
	s.UpdatedAt = time.Now()
	return nil
}
