package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizSession_Flow(t *testing.T) {
	s := NewQuizSession("01HGZ8VNRYXS8QKNJV5GRWPWDQ")
	assert.Equal(t, StepProfile, s.Step)
	assert.Equal(t, DefaultAge, s.Answers.Age)
	assert.Equal(t, SubmitIdle, s.SubmitStatus)

	require.NoError(t, s.SetProfile(GenderFemale, 42))
	assert.Equal(t, StepExamChoice, s.Step)
	assert.Equal(t, 2, s.Step.Index())

	result := &ComparisonResult{Program: "FF40"}
	require.NoError(t, s.ChooseExam(ExamFull, result))
	assert.Equal(t, StepResults, s.Step)
	assert.Same(t, result, s.Result)

	require.NoError(t, s.Back())
	assert.Equal(t, StepExamChoice, s.Step)
	assert.Nil(t, s.Result)

	require.NoError(t, s.Back())
	assert.Equal(t, StepProfile, s.Step)
	assert.Equal(t, GenderFemale, s.Answers.Gender)
}

func TestQuizSession_InvalidTransitions(t *testing.T) {
	s := NewQuizSession("id")

	var domainErr *DomainError
	err := s.Back()
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidStep, domainErr.Code)

	err = s.ChooseExam(ExamFull, nil)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidStep, domainErr.Code)

	require.NoError(t, s.SetProfile(GenderMale, 30))
	err = s.SetProfile(GenderMale, 31)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 30, s.Answers.Age)
}

func TestQuizSession_Reset(t *testing.T) {
	s := NewQuizSession("id")
	require.NoError(t, s.SetProfile(GenderMale, 60))
	require.NoError(t, s.ChooseExam(ExamIndividual, nil))
	s.Answers.Name = "Іван"
	s.SubmitStatus = SubmitSuccess

	s.Reset()

	assert.Equal(t, "id", s.ID)
	assert.Equal(t, StepProfile, s.Step)
	assert.Equal(t, NewQuizAnswers(), s.Answers)
	assert.Equal(t, SubmitIdle, s.SubmitStatus)
}

func TestNewLead_StandardProgram(t *testing.T) {
	s := NewQuizSession("id")
	s.Answers = QuizAnswers{
		Gender:          GenderFemale,
		Age:             35,
		ExamType:        ExamFull,
		Name:            "Олена",
		Phone:           "+380501234567",
		PreferredClinic: ClinicSanaVita,
		PreferredDate1:  "2026-10-20",
		RequestType:     RequestExtended,
	}
	s.Result = &ComparisonResult{Program: "FF30", OnClinic: 9585, SanaVita: 9250, ProgramName: ProgramName("FF30")}

	at := time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC)
	lead := NewLead(s, at, "roadmap.check-up.in.ua")

	assert.Equal(t, "Повне обстеження для жінок 30-40 років + розширена", lead.ProgramType)
	assert.Equal(t, "Не вказано", lead.Email)
	assert.Equal(t, "Не вказано", lead.PreferredDate2)
	assert.Equal(t, "Немає", lead.Comments)
	assert.True(t, lead.SendToClinic)

	msg := lead.Message()
	assert.True(t, strings.HasPrefix(msg, "🎯 НОВА ЗАЯВКА З ROADMAP"))
	assert.Contains(t, msg, "👤 Олена (Жінка, 35 років)")
	assert.Contains(t, msg, "🏥 Клініка: SanaVita Одеса")
	assert.Contains(t, msg, "💰 Ціни: OnClinic 9585 ₴ | SanaVita 9250 ₴")
	assert.Contains(t, msg, "- Варіант 1: 2026-10-20")
	assert.Contains(t, msg, "✅ ВІДПРАВЛЕНО В КЛІНІКУ")
	assert.Contains(t, msg, "🕐 16.10.2026, 09:05:07 | 🌐 roadmap.check-up.in.ua")
}

func TestNewLead_IndividualConsultation(t *testing.T) {
	s := NewQuizSession("id")
	s.Answers = QuizAnswers{
		Gender:         GenderMale,
		Age:            45,
		ExamType:       ExamIndividual,
		Name:           "Петро",
		Phone:          "0501234567",
		RequestType:    RequestSpecialist,
		SpecialistType: "кардіолог",
	}

	lead := NewLead(s, time.Now(), "src")

	assert.Equal(t, "Консультація спеціаліста: кардіолог", lead.ProgramType)
	assert.Equal(t, "Не обрано", lead.PreferredClinic)
	assert.Equal(t, "Індивідуально", lead.PriceOnClinic)
	assert.Equal(t, "Індивідуально", lead.PriceSanaVita)
	assert.False(t, lead.SendToClinic)
	assert.Contains(t, lead.Message(), "⚠️ ПОТРЕБУЄ ОБРОБКИ МЕНЕДЖЕРА")
}

func TestRequestTypeLabel(t *testing.T) {
	individual := QuizAnswers{ExamType: ExamIndividual}
	assert.Equal(t, "Індивідуальна консультація", RequestTypeLabel(individual, nil))
	individual.RequestType = RequestExtended
	assert.Equal(t, "Розширена програма (індивідуальна)", RequestTypeLabel(individual, nil))
	individual.RequestType = RequestIndividual
	assert.Equal(t, "Індивідуальна програма", RequestTypeLabel(individual, nil))

	standard := QuizAnswers{ExamType: ExamRegular, RequestType: RequestStandard}
	assert.Equal(t, "Стандартна програма", RequestTypeLabel(standard, nil))
	assert.Equal(t, "X", RequestTypeLabel(standard, &ComparisonResult{ProgramName: "X"}))
}
