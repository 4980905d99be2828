package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	answers := QuizAnswers{Gender: GenderFemale, Age: 25, ExamType: ExamFull}

	result, err := Compare(answers, DemoPriceTable())
	require.NoError(t, err)

	assert.Equal(t, "FF20", result.Program)
	assert.Equal(t, 7485, result.OnClinic)
	assert.Equal(t, 7660, result.SanaVita)
	assert.Equal(t, 175, result.Savings)
	assert.Equal(t, ClinicOnClinic, result.Recommended)
	assert.Equal(t, ProgramName("FF20"), result.ProgramName)
}

func TestCompare_MissingPriceFails(t *testing.T) {
	prices := DemoPriceTable()
	delete(prices.FemaleSanaVita, "FF20_SanaVita")

	var result *ComparisonResult
	var err error
	assert.NotPanics(t, func() {
		result, err = Compare(QuizAnswers{Gender: GenderFemale, Age: 25, ExamType: ExamFull}, prices)
	})

	assert.Nil(t, result)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodePriceNotFound, domainErr.Code)
	assert.Equal(t, "FF20", domainErr.Context["program"])
}

func TestCompare_ZeroPriceFails(t *testing.T) {
	prices := DemoPriceTable()
	prices.MaleOnClinic["MR50_OnClinic"] = 0

	_, err := Compare(QuizAnswers{Gender: GenderMale, Age: 55, ExamType: ExamRegular}, prices)

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodePriceNotFound, domainErr.Code)
}

func TestCompare_NoPrices(t *testing.T) {
	_, err := Compare(QuizAnswers{Gender: GenderMale, Age: 55, ExamType: ExamRegular}, nil)

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodePricesNotLoaded, domainErr.Code)
}

func TestCompare_TieHasNoRecommendation(t *testing.T) {
	prices := DemoPriceTable()
	prices.MaleSanaVita["MR30_SanaVita"] = prices.MaleOnClinic["MR30_OnClinic"]

	result, err := Compare(QuizAnswers{Gender: GenderMale, Age: 35, ExamType: ExamRegular}, prices)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Savings)
	assert.Equal(t, ClinicUnset, result.Recommended)
}

func TestCompare_DemoPricesCoverEveryProfile(t *testing.T) {
	prices := DemoPriceTable()
	for _, g := range []Gender{GenderFemale, GenderMale} {
		for _, e := range []ExamType{ExamFull, ExamRegular} {
			for _, age := range []int{18, 29, 30, 39, 40, 49, 50, 80} {
				result, err := Compare(QuizAnswers{Gender: g, Age: age, ExamType: e}, prices)
				require.NoError(t, err, "%s/%d/%s", g, age, e)
				assert.Positive(t, result.OnClinic)
				assert.Positive(t, result.SanaVita)
			}
		}
	}
}

func TestPriceTable_PriceUsesGenderMap(t *testing.T) {
	prices := DemoPriceTable()

	price, ok := prices.Price(GenderMale, ClinicSanaVita, "MF40")
	assert.True(t, ok)
	assert.Equal(t, 7770, price)

	_, ok = prices.Price(GenderMale, ClinicSanaVita, "FF40")
	assert.False(t, ok)

	var empty *PriceTable
	_, ok = empty.Price(GenderFemale, ClinicOnClinic, "FF20")
	assert.False(t, ok)
}
