package sheets

import (
	"errors"
	"fmt"
	"roadmap-checkup/internal/domain"
	"strconv"
	"strings"
)

const (
	priceRowCount     = 8
	programMinColumns = 17
)

// Program sheet column positions.
const (
	colProgramID          = 0
	colProgramName        = 1
	colProgramSubtitle    = 2
	colProgramDescription = 3
	colKeyDirections      = 5
	colComposition        = 8
	colPreparation        = 11
)

var (
	ErrNotEnoughRows    = errors.New("sheets: not enough rows")
	ErrMissingColumn    = errors.New("sheets: required column missing")
	ErrClinicIncomplete = errors.New("sheets: clinic sheet is missing a clinic")
)

// ParseRow splits one sheet line on commas outside quotes. A quote anywhere
// in a cell toggles quoting and is dropped; inside quotes a doubled quote
// yields one. a,"b,c",d yields [a, b,c, d] and a"b,c"d yields [ab,cd].
func ParseRow(row string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(row); i++ {
		switch c := row[i]; {
		case c == '"' && inQuotes && i+1 < len(row) && row[i+1] == '"':
			current.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	return append(fields, current.String())
}

// readRecords splits the sheet into lines and each line into cells. A broken
// quote only affects its own line.
func readRecords(text string) [][]string {
	lines := splitLines(text)
	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseRow(line))
	}
	return records
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ParsePriceTable reads the price sheet: four header/value row pairs in the
// order female OnClinic, male OnClinic, female SanaVita, male SanaVita.
func ParsePriceTable(text string) (*domain.PriceTable, error) {
	rows := splitLines(text)
	if len(rows) < priceRowCount {
		return nil, fmt.Errorf("%w: price sheet has %d rows, need %d", ErrNotEnoughRows, len(rows), priceRowCount)
	}

	return &domain.PriceTable{
		FemaleOnClinic: parsePricePair(rows[0], rows[1]),
		MaleOnClinic:   parsePricePair(rows[2], rows[3]),
		FemaleSanaVita: parsePricePair(rows[4], rows[5]),
		MaleSanaVita:   parsePricePair(rows[6], rows[7]),
	}, nil
}

func parsePricePair(headerRow, priceRow string) map[string]int {
	headers := splitPlain(headerRow)
	prices := splitPlain(priceRow)

	result := make(map[string]int, len(headers))
	for i, header := range headers {
		if header == "" || i >= len(prices) || prices[i] == "" {
			continue
		}
		result[header] = leadingInt(prices[i])
	}
	return result
}

// splitPlain is the price sheet's cell split: plain commas, quotes dropped.
func splitPlain(row string) []string {
	cells := strings.Split(row, ",")
	for i, cell := range cells {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(cell), `"`, "")
	}
	return cells
}

// leadingInt parses the integer prefix of s, so "7485.00" is 7485. A value
// without leading digits, or one too large for an int, is 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParsePrograms reads the program description sheet. The first row is a
// header; rows with fewer than 17 columns or no id are dropped.
func ParsePrograms(text string) ([]domain.ProgramDescriptor, error) {
	records := readRecords(text)
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: program sheet has %d rows", ErrNotEnoughRows, len(records))
	}

	programs := make([]domain.ProgramDescriptor, 0, len(records)-1)
	for _, values := range records[1:] {
		if len(values) < programMinColumns {
			continue
		}
		program := domain.ProgramDescriptor{
			ID:               strings.TrimSpace(values[colProgramID]),
			Name:             values[colProgramName],
			Subtitle:         values[colProgramSubtitle],
			ShortDescription: values[colProgramDescription],
			KeyDirections:    values[colKeyDirections],
			Composition:      values[colComposition],
			Preparation:      values[colPreparation],
		}
		if program.ID == "" {
			continue
		}
		programs = append(programs, program)
	}
	return programs, nil
}

// ParseClinics reads the clinic sheet. Columns are found by header name:
// clinic_id, name, branch_name, address, hours, features, contact. Each
// onclinic row is a branch; the first sanavita row describes its single site.
// Blank cells take the built-in value.
func ParseClinics(text string) (*domain.ClinicDirectory, error) {
	records := readRecords(text)
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: clinic sheet has %d rows", ErrNotEnoughRows, len(records))
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"clinic_id", "name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	fallback := domain.DemoClinicDirectory()
	dir := &domain.ClinicDirectory{}
	var seenOnClinic, seenSanaVita bool

	for _, row := range records[1:] {
		switch domain.ClinicID(strings.ToLower(cell(row, "clinic_id"))) {
		case domain.ClinicOnClinic:
			if !seenOnClinic {
				dir.OnClinic = domain.ClinicInfo{
					ID:       domain.ClinicOnClinic,
					Name:     orDefault(cell(row, "name"), fallback.OnClinic.Name),
					Features: orDefault(cell(row, "features"), fallback.OnClinic.Features),
					Contact:  orDefault(cell(row, "contact"), fallback.OnClinic.Contact),
				}
				seenOnClinic = true
			}
			if address := cell(row, "address"); address != "" {
				dir.OnClinic.Branches = append(dir.OnClinic.Branches, domain.Branch{
					Name:    cell(row, "branch_name"),
					Address: address,
					Hours:   cell(row, "hours"),
				})
			}
		case domain.ClinicSanaVita:
			if seenSanaVita {
				continue
			}
			dir.SanaVita = domain.ClinicInfo{
				ID:       domain.ClinicSanaVita,
				Name:     orDefault(cell(row, "name"), fallback.SanaVita.Name),
				Address:  orDefault(cell(row, "address"), fallback.SanaVita.Address),
				Hours:    orDefault(cell(row, "hours"), fallback.SanaVita.Hours),
				Features: orDefault(cell(row, "features"), fallback.SanaVita.Features),
				Contact:  orDefault(cell(row, "contact"), fallback.SanaVita.Contact),
			}
			seenSanaVita = true
		}
	}

	if !seenOnClinic || !seenSanaVita {
		return nil, ErrClinicIncomplete
	}
	if len(dir.OnClinic.Branches) == 0 {
		dir.OnClinic.Branches = fallback.OnClinic.Branches
	}
	return dir, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
