package service

import (
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"strings"
)

const cycleAdvice = "Для точності гінекологічних досліджень (ПАП-тест та УЗД молочних залоз) рекомендується проходити обстеження в 5-12 день менструального циклу. Якщо не виходить спланувати обстеження в рекомендований період, обов'язково вкажіть це в коментарі."

var stepLabels = []struct {
	step  domain.Step
	label string
}{
	{domain.StepProfile, "Дані"},
	{domain.StepExamChoice, "Програма"},
	{domain.StepResults, "Результат"},
}

var (
	standardRequestTypes = []dto.RequestTypeOption{
		{Value: domain.RequestStandard, Label: "Стандартна програма"},
		{Value: domain.RequestExtended, Label: "Розширити програму"},
	}
	individualRequestTypes = []dto.RequestTypeOption{
		{Value: domain.RequestExtended, Label: "Розширена програма"},
		{Value: domain.RequestIndividual, Label: "Індивідуальна програма"},
		{Value: domain.RequestSpecialist, Label: "Консультація спеціаліста"},
	}
)

// buildQuizView renders the session on its current step.
func buildQuizView(session *domain.QuizSession, catalog *domain.Catalog) *dto.QuizStateResponse {
	view := &dto.QuizStateResponse{
		SessionID:    session.ID,
		Step:         session.Step,
		StepIndex:    session.Step.Index(),
		Steps:        stepIndicators(session.Step),
		APIStatus:    catalog.Status,
		Answers:      session.Answers,
		SubmitStatus: session.SubmitStatus,
	}

	switch session.Step {
	case domain.StepExamChoice:
		view.ExamChoice = examChoiceView(session.Answers)
	case domain.StepResults:
		view.Results = resultsView(session, catalog)
	default:
		view.Profile = &dto.ProfileView{
			AgeRange: domain.AgeRange(session.Answers.Age),
			MinAge:   domain.MinAge,
			MaxAge:   domain.MaxAge,
			Presets:  domain.AgePresets,
		}
	}
	return view
}

func stepIndicators(current domain.Step) []dto.StepIndicator {
	indicators := make([]dto.StepIndicator, 0, len(stepLabels))
	for _, s := range stepLabels {
		indicators = append(indicators, dto.StepIndicator{
			Index:  s.step.Index(),
			Label:  s.label,
			Active: current.Index() >= s.step.Index(),
			Done:   current.Index() > s.step.Index(),
		})
	}
	return indicators
}

func examChoiceView(a domain.QuizAnswers) *dto.ExamChoiceView {
	priced := func(examType domain.ExamType) (string, string, *domain.ProgramSpecs) {
		code := domain.SelectProgram(a.Gender, a.Age, examType)
		return code, domain.ProgramName(code), domain.ProgramSpecsFor(a.Gender, a.Age, examType)
	}

	full := dto.ExamOptionView{
		Type:        domain.ExamFull,
		Title:       "Повне обстеження",
		Badge:       "💎 Обирають 7 з 10",
		Description: "Дізнайтесь про стан здоров'я всіх систем організму. 15-20 досліджень для повної картини вашого здоров'я.",
		Benefits:    []string{"Всі системи організму", "Результати за 3-5 днів", "Консультація терапевта включена"},
		ForWho:      "Для тих, хто цінує здоров'я та хоче знати все",
		HasDetails:  true,
	}
	full.ProgramCode, full.ProgramName, full.Specs = priced(domain.ExamFull)

	regular := dto.ExamOptionView{
		Type:        domain.ExamRegular,
		Title:       "Регулярне обстеження",
		Badge:       "2 етапи",
		Description: "Спочатку базові аналізи, потім персоналізована програма. Для тих, хто проходить чекап щороку.",
		Benefits:    []string{"8-12 ключових досліджень", "Індивідуальний підбір на 2 етапі", "Економія до 30%"},
		ForWho:      "Якщо проходили повний чекап нещодавно",
		HasDetails:  true,
	}
	regular.ProgramCode, regular.ProgramName, regular.Specs = priced(domain.ExamRegular)

	individual := dto.ExamOptionView{
		Type:        domain.ExamIndividual,
		Title:       "Індивідуальна програма",
		Badge:       "З менеджером",
		Description: "Менеджер допоможе підібрати програму під ваші потреби. Безкоштовна консультація.",
		Benefits:    []string{"Персональний підбір", "Врахування всіх побажань"},
		ForWho:      "Якщо є конкретні скарги або не впевнені у виборі",
	}

	return &dto.ExamChoiceView{
		AgeRange: domain.AgeRange(a.Age),
		Options:  []dto.ExamOptionView{full, regular, individual},
	}
}

func resultsView(session *domain.QuizSession, catalog *domain.Catalog) *dto.ResultsView {
	a := session.Answers
	view := &dto.ResultsView{
		Individual: a.ExamType == domain.ExamIndividual,
		Comparison: session.Result,
		CanSubmit:  canSubmit(a, session.SubmitStatus),
	}
	if a.Gender == domain.GenderFemale {
		view.CycleAdvice = cycleAdvice
	}

	if view.Individual {
		view.RequestTypes = individualRequestTypes
		view.Clinics = []dto.ClinicOfferView{}
		return view
	}

	view.RequestTypes = standardRequestTypes
	view.Specs = domain.ProgramSpecsFor(a.Gender, a.Age, a.ExamType)

	clinics := catalog.Clinics
	if clinics == nil {
		clinics = domain.DemoClinicDirectory()
	}
	result := session.Result
	view.Clinics = []dto.ClinicOfferView{
		clinicOffer(clinics.OnClinic, result, a.PreferredClinic),
		clinicOffer(clinics.SanaVita, result, a.PreferredClinic),
	}
	return view
}

func clinicOffer(info domain.ClinicInfo, result *domain.ComparisonResult, preferred domain.ClinicID) dto.ClinicOfferView {
	offer := dto.ClinicOfferView{
		Clinic:   info,
		Price:    result.PriceAt(info.ID),
		Selected: preferred == info.ID,
	}
	if result != nil {
		offer.Recommended = result.Recommended == info.ID
	}
	return offer
}

// canSubmit mirrors the contact form's submit button: name and phone are
// required, and a clinic unless the exam is individual.
func canSubmit(a domain.QuizAnswers, status domain.SubmitStatus) bool {
	if status == domain.SubmitSuccess {
		return false
	}
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Phone) == "" {
		return false
	}
	return a.ExamType == domain.ExamIndividual || a.PreferredClinic != domain.ClinicUnset
}
