package domain

// BodySystem is one examined system and how deeply the program covers it.
type BodySystem struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ProgramSpecs summarises what a program contains for the exam choice step.
type ProgramSpecs struct {
	Systems       []BodySystem `json:"systems"`
	Doctors       string       `json:"doctors"`
	UltrasoundCnt int          `json:"ultrasound_count"`
	AnalysesCount string       `json:"analyses_count"`
	Recommended   string       `json:"recommended"`
}

const (
	levelBasic   = "базове"
	levelComplex = "комплексне"
)

// ProgramSpecsFor returns the contents of the full or regular program for
// the given profile. Individual consultations have no fixed specs.
func ProgramSpecsFor(gender Gender, age int, examType ExamType) *ProgramSpecs {
	female := gender == GenderFemale
	doctors := "терапевт"
	if female {
		doctors = "терапевт, гінеколог"
	}

	switch examType {
	case ExamFull:
		var systems []BodySystem
		if female {
			systems = append(systems, BodySystem{"Репродуктивна система", levelComplex})
		}
		systems = append(systems,
			BodySystem{"Серцево-судинна", levelBasic},
			BodySystem{"Ендокринна (щитоподібна залоза)", levelBasic},
			BodySystem{"Печінка та нирки", levelComplex},
			BodySystem{"Інфекційний скринінг", levelBasic},
		)
		if age >= 40 {
			systems = append(systems, BodySystem{"Базовий онкоскринінг", levelBasic})
		}
		if age >= 50 {
			cardio := 0
			if female {
				cardio = 1
			}
			systems[cardio] = BodySystem{"Серцево-судинна", levelComplex}
		}

		ultrasound, analyses := 2, "12-15"
		switch {
		case age >= 50:
			ultrasound, analyses = pick(female, 7, 5), "20-22"
		case age >= 40:
			ultrasound, analyses = pick(female, 6, 4), "18-20"
		case age >= 30:
			ultrasound, analyses = pick(female, 4, 2), "15-18"
		}

		return &ProgramSpecs{
			Systems:       systems,
			Doctors:       doctors,
			UltrasoundCnt: ultrasound,
			AnalysesCount: analyses,
			Recommended:   "Перше обстеження або раз на 2-3 роки",
		}
	case ExamRegular:
		var systems []BodySystem
		if female {
			systems = append(systems, BodySystem{"Репродуктивна система", levelBasic})
		}
		systems = append(systems, BodySystem{"Загальне здоров'я", levelBasic})

		return &ProgramSpecs{
			Systems:       systems,
			Doctors:       doctors,
			UltrasoundCnt: 0,
			AnalysesCount: "5-7",
			Recommended:   "Щороку для контролю",
		}
	default:
		return nil
	}
}

func pick(female bool, ifFemale, ifMale int) int {
	if female {
		return ifFemale
	}
	return ifMale
}
