package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// LeadTimestampLayout matches the uk-UA date-time rendering.
const LeadTimestampLayout = "02.01.2006, 15:04:05"

// Lead is a completed quiz ready to be forwarded to the clinic's chat.
type Lead struct {
	ProgramType     string
	Name            string
	Phone           string
	Email           string
	Gender          string
	Age             int
	PreferredClinic string
	PriceOnClinic   string
	PriceSanaVita   string
	PreferredDate1  string
	PreferredDate2  string
	Comments        string
	RequestType     RequestType
	SpecialistType  string
	Timestamp       string
	Source          string
	SendToClinic    bool
}

// LeadNotifier delivers a lead report to the messaging channel.
type LeadNotifier interface {
	SendLead(ctx context.Context, text string) error
}

// NewLead composes the lead from a session on the results step.
func NewLead(session *QuizSession, submittedAt time.Time, source string) Lead {
	a := session.Answers
	return Lead{
		ProgramType:     RequestTypeLabel(a, session.Result),
		Name:            a.Name,
		Phone:           a.Phone,
		Email:           orDefault(a.Email, "Не вказано"),
		Gender:          a.Gender.Label(),
		Age:             a.Age,
		PreferredClinic: a.PreferredClinic.Label(),
		PriceOnClinic:   priceLabel(session.Result, ClinicOnClinic),
		PriceSanaVita:   priceLabel(session.Result, ClinicSanaVita),
		PreferredDate1:  orDefault(a.PreferredDate1, "Не вказано"),
		PreferredDate2:  orDefault(a.PreferredDate2, "Не вказано"),
		Comments:        orDefault(a.Comments, "Немає"),
		RequestType:     a.RequestType,
		SpecialistType:  a.SpecialistType,
		Timestamp:       submittedAt.Format(LeadTimestampLayout),
		Source:          source,
		SendToClinic:    a.RequestType.SendsToClinic(),
	}
}

// RequestTypeLabel names what the user asked for in the lead report.
func RequestTypeLabel(a QuizAnswers, result *ComparisonResult) string {
	if a.ExamType == ExamIndividual {
		switch a.RequestType {
		case RequestExtended:
			return "Розширена програма (індивідуальна)"
		case RequestIndividual:
			return "Індивідуальна програма"
		case RequestSpecialist:
			return "Консультація спеціаліста: " + a.SpecialistType
		default:
			return "Індивідуальна консультація"
		}
	}

	programName := ""
	if result != nil {
		programName = result.ProgramName
	}
	if a.RequestType == RequestExtended {
		return programName + " + розширена"
	}
	return orDefault(programName, "Стандартна програма")
}

// Message renders the lead as the multi-line chat report.
func (l Lead) Message() string {
	routing := "⚠️ ПОТРЕБУЄ ОБРОБКИ МЕНЕДЖЕРА"
	if l.SendToClinic {
		routing = "✅ ВІДПРАВЛЕНО В КЛІНІКУ"
	}

	return fmt.Sprintf(`🎯 НОВА ЗАЯВКА З ROADMAP

📋 Програма: %s
👤 %s (%s, %d років)
📞 %s
📧 %s

🏥 Клініка: %s
💰 Ціни: OnClinic %s ₴ | SanaVita %s ₴

📅 Бажані дати:
- Варіант 1: %s
- Варіант 2: %s

💬 Коментарі: %s

%s

🕐 %s | 🌐 %s`,
		l.ProgramType,
		l.Name, l.Gender, l.Age,
		l.Phone,
		l.Email,
		l.PreferredClinic,
		l.PriceOnClinic, l.PriceSanaVita,
		l.PreferredDate1,
		l.PreferredDate2,
		l.Comments,
		routing,
		l.Timestamp, l.Source,
	)
}

func priceLabel(result *ComparisonResult, clinic ClinicID) string {
	if price := result.PriceAt(clinic); price > 0 {
		return strconv.Itoa(price)
	}
	return "Індивідуально"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
