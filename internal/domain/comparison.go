package domain

// ComparisonResult is the price comparison shown on the results step.
type ComparisonResult struct {
	Program     string   `json:"program"`
	OnClinic    int      `json:"onclinic"`
	SanaVita    int      `json:"sanavita"`
	ProgramName string   `json:"program_name"`
	Savings     int      `json:"savings"`
	Recommended ClinicID `json:"recommended,omitempty"`
}

// Compare derives the program for the answers and prices it at both clinics.
// A missing or zero price is an error; the caller must not show a result.
func Compare(answers QuizAnswers, prices *PriceTable) (*ComparisonResult, error) {
	if prices == nil {
		return nil, NewPricesNotLoadedError()
	}

	program := SelectProgram(answers.Gender, answers.Age, answers.ExamType)
	onClinic, _ := prices.Price(answers.Gender, ClinicOnClinic, program)
	sanaVita, _ := prices.Price(answers.Gender, ClinicSanaVita, program)
	if onClinic == 0 || sanaVita == 0 {
		return nil, NewPriceNotFoundError(program).
			WithContext("onclinic", onClinic).
			WithContext("sanavita", sanaVita)
	}

	savings := onClinic - sanaVita
	if savings < 0 {
		savings = -savings
	}

	var recommended ClinicID
	switch {
	case onClinic < sanaVita:
		recommended = ClinicOnClinic
	case sanaVita < onClinic:
		recommended = ClinicSanaVita
	}

	return &ComparisonResult{
		Program:     program,
		OnClinic:    onClinic,
		SanaVita:    sanaVita,
		ProgramName: ProgramName(program),
		Savings:     savings,
		Recommended: recommended,
	}, nil
}

// PriceAt returns the compared price at the given clinic.
func (r *ComparisonResult) PriceAt(clinic ClinicID) int {
	if r == nil {
		return 0
	}
	if clinic == ClinicOnClinic {
		return r.OnClinic
	}
	return r.SanaVita
}
