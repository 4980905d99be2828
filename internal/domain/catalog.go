package domain

import (
	"context"
	"time"
)

// PriceTable holds the four price maps of the price sheet, keyed by
// "<program code>_<Clinic>", e.g. "FF20_OnClinic".
type PriceTable struct {
	FemaleOnClinic map[string]int `json:"female_onclinic"`
	MaleOnClinic   map[string]int `json:"male_onclinic"`
	FemaleSanaVita map[string]int `json:"female_sanavita"`
	MaleSanaVita   map[string]int `json:"male_sanavita"`
}

// PriceKey builds the table key for a program at a clinic.
func PriceKey(program string, clinic ClinicID) string {
	return program + "_" + clinic.priceKeySuffix()
}

// Price returns the price of a program at a clinic from the gender's map.
// A missing key reports false.
func (t *PriceTable) Price(gender Gender, clinic ClinicID, program string) (int, bool) {
	if t == nil {
		return 0, false
	}
	var table map[string]int
	switch {
	case gender == GenderFemale && clinic == ClinicOnClinic:
		table = t.FemaleOnClinic
	case gender == GenderFemale:
		table = t.FemaleSanaVita
	case clinic == ClinicOnClinic:
		table = t.MaleOnClinic
	default:
		table = t.MaleSanaVita
	}
	price, ok := table[PriceKey(program, clinic)]
	return price, ok
}

// ProgramCount returns the number of priced programs in the female OnClinic map.
func (t *PriceTable) ProgramCount() int {
	if t == nil {
		return 0
	}
	return len(t.FemaleOnClinic)
}

// Branch is one location of a multi-branch clinic.
type Branch struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

// ClinicInfo describes one partner clinic. Multi-branch clinics fill
// Branches, single-site clinics fill Address and Hours.
type ClinicInfo struct {
	ID       ClinicID `json:"id"`
	Name     string   `json:"name"`
	Branches []Branch `json:"branches,omitempty"`
	Address  string   `json:"address,omitempty"`
	Hours    string   `json:"hours,omitempty"`
	Features string   `json:"features"`
	Contact  string   `json:"contact"`
}

type ClinicDirectory struct {
	OnClinic ClinicInfo `json:"onclinic"`
	SanaVita ClinicInfo `json:"sanavita"`
}

// DataStatus tells whether the catalog came from the live sheet.
type DataStatus string

const (
	StatusLoading DataStatus = "loading"
	StatusSuccess DataStatus = "success"
	StatusDemo    DataStatus = "demo"
)

// Catalog is everything loaded from the spreadsheet at startup.
type Catalog struct {
	Prices   *PriceTable
	Clinics  *ClinicDirectory
	Programs []ProgramDescriptor
	Status   DataStatus
	LoadedAt time.Time
}

// SheetSource is the port for the spreadsheet-backed data endpoints.
type SheetSource interface {
	FetchPrices(ctx context.Context) (*PriceTable, error)
	FetchClinics(ctx context.Context) (*ClinicDirectory, error)
	FetchPrograms(ctx context.Context) ([]ProgramDescriptor, error)
}

// DemoPriceTable returns the built-in prices used when the sheet is unreachable.
func DemoPriceTable() *PriceTable {
	return &PriceTable{
		FemaleOnClinic: map[string]int{
			"FF20_OnClinic": 7485, "FR20_OnClinic": 3255, "FF30_OnClinic": 9585, "FR30_OnClinic": 3905,
			"FF40_OnClinic": 11465, "FR40_OnClinic": 5835, "FF50_OnClinic": 12415, "FR50_OnClinic": 8415,
		},
		MaleOnClinic: map[string]int{
			"MF20_OnClinic": 4485, "MR20_OnClinic": 1445, "MF30_OnClinic": 6275, "MR30_OnClinic": 1445,
			"MF40_OnClinic": 8525, "MR40_OnClinic": 3375, "MF50_OnClinic": 9475, "MR50_OnClinic": 5855,
		},
		FemaleSanaVita: map[string]int{
			"FF20_SanaVita": 7660, "FR20_SanaVita": 3410, "FF30_SanaVita": 9250, "FR30_SanaVita": 4010,
			"FF40_SanaVita": 10760, "FR40_SanaVita": 5700, "FF50_SanaVita": 10780, "FR50_SanaVita": 8000,
		},
		MaleSanaVita: map[string]int{
			"MF20_SanaVita": 4930, "MR20_SanaVita": 1650, "MF30_SanaVita": 6240, "MR30_SanaVita": 1650,
			"MF40_SanaVita": 7770, "MR40_SanaVita": 3340, "MF50_SanaVita": 7770, "MR50_SanaVita": 5640,
		},
	}
}

const managerContact = "Через менеджера Check-up.in.ua"

// DemoClinicDirectory returns the built-in clinic descriptions.
func DemoClinicDirectory() *ClinicDirectory {
	return &ClinicDirectory{
		OnClinic: ClinicInfo{
			ID:   ClinicOnClinic,
			Name: "OnClinic Одеса",
			Branches: []Branch{
				{Name: "Центр", Address: "вул. Мала Арнаутська, 56", Hours: "Пн-Пт: 8:30-19:30, Сб: 9:00-17:00, Нд: 9:00-14:00"},
				{Name: "Таїрово", Address: "вул. Королева, 33Б", Hours: "Пн-Пт: 8:00-19:00, Сб: 8:00-17:00, Нд: 8:00-14:00"},
			},
			Features: "Багатопрофільний медичний центр з власною лабораторією. Електронна медкарта та доступ до результатів онлайн. Вигідні пакети послуг. 2 філії",
			Contact:  managerContact,
		},
		SanaVita: ClinicInfo{
			ID:       ClinicSanaVita,
			Name:     "Sana Vita Одеса",
			Address:  "вул. Водопровідна, 2/5",
			Hours:    "Пн-Пт: 9:00-18:00, Сб: 9:00-16:00, Нд: вихідний",
			Features: "Приватна клініка з персональним підходом. Вигідні пакети послуг. Комфортна атмосфера",
			Contact:  managerContact,
		},
	}
}
