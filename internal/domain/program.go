package domain

import (
	"regexp"
	"strings"
)

// ProgramCodeLength is the fixed length of a program code: gender letter,
// exam type letter and a two-digit age bracket.
const ProgramCodeLength = 4

// AgeBracket maps an age to the two-digit bracket used in program codes.
func AgeBracket(age int) string {
	switch {
	case age < 30:
		return "20"
	case age < 40:
		return "30"
	case age < 50:
		return "40"
	default:
		return "50"
	}
}

// SelectProgram derives the program code, e.g. FF30 for a 35 year old woman
// choosing the full exam. Callers guarantee gender and exam type are set;
// anything other than female/full falls to male/regular.
func SelectProgram(gender Gender, age int, examType ExamType) string {
	genderCode := "M"
	if gender == GenderFemale {
		genderCode = "F"
	}
	typeCode := "R"
	if examType == ExamFull {
		typeCode = "F"
	}
	return genderCode + typeCode + AgeBracket(age)
}

// ProgramName turns a program code into its display name.
func ProgramName(code string) string {
	if len(code) != ProgramCodeLength {
		return ""
	}
	gender, examType, bracket := code[0], code[1], code[2:]

	typeName := "Регулярне обстеження"
	if examType == 'F' {
		typeName = "Повне обстеження"
	}
	genderName := "чоловіків"
	if gender == 'F' {
		genderName = "жінок"
	}
	var ageName string
	switch bracket {
	case "20":
		ageName = "до 30 років"
	case "30":
		ageName = "30-40 років"
	case "40":
		ageName = "40-50 років"
	default:
		ageName = "від 50 років"
	}
	return typeName + " для " + genderName + " " + ageName
}

// AgeRange returns the age group label shown next to the age slider.
func AgeRange(age int) string {
	switch {
	case age < 30:
		return "18-30"
	case age < 40:
		return "30-40"
	case age < 50:
		return "40-50"
	default:
		return "50+"
	}
}

// AgePreset is a quick-pick age button on the profile step.
type AgePreset struct {
	Range string `json:"range"`
	Age   int    `json:"age"`
	Label string `json:"label"`
}

var AgePresets = []AgePreset{
	{Range: "18-30", Age: 25, Label: "18-30 років"},
	{Range: "30-40", Age: 35, Label: "30-40 років"},
	{Range: "40-50", Age: 45, Label: "40-50 років"},
	{Range: "50+", Age: 55, Label: "50+ років"},
}

// ProgramDescriptor is one row of the program description sheet.
type ProgramDescriptor struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Subtitle         string `json:"subtitle"`
	ShortDescription string `json:"short_description"`
	KeyDirections    string `json:"key_directions"`
	Composition      string `json:"composition"`
	Preparation      string `json:"preparation"`
}

// FindProgram looks up a descriptor by exact id.
func FindProgram(programs []ProgramDescriptor, id string) (*ProgramDescriptor, bool) {
	for i := range programs {
		if programs[i].ID == id {
			return &programs[i], true
		}
	}
	return nil, false
}

const (
	DefaultKeyDirections = 6
	CompactKeyDirections = 4

	ProgramDetailsFallback = "Дані тимчасово недоступні. Наш менеджер зв'яжеться з вами та детально розповість про цю програму обстеження, відповість на всі питання та допоможе підібрати оптимальний варіант."
)

// ProgramDetails is the display form of a program descriptor.
type ProgramDetails struct {
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	KeyDirections []string `json:"key_directions"`
	Composition   []string `json:"composition"`
	Preparation   string   `json:"preparation,omitempty"`
}

var directionSeparator = regexp.MustCompile(`[;,]`)

// Details builds the display form, keeping at most limit key directions.
func (p ProgramDescriptor) Details(limit int) ProgramDetails {
	if limit <= 0 {
		limit = DefaultKeyDirections
	}

	title := p.Name
	if title == "" {
		title = p.Subtitle
	}
	if title == "" {
		title = "Медична програма"
	}
	description := p.ShortDescription
	if description == "" {
		description = "Комплексна діагностика"
	}

	directions := splitNonEmpty(directionSeparator.Split(p.KeyDirections, -1))
	if len(directions) > limit {
		directions = directions[:limit]
	}

	return ProgramDetails{
		Code:          p.ID,
		Title:         title,
		Description:   description,
		KeyDirections: directions,
		Composition:   splitNonEmpty(strings.Split(p.Composition, ";")),
		Preparation:   p.Preparation,
	}
}

func splitNonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
