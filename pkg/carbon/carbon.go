package carbon

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Factor is kilograms of CO2 per unit of an activity.
type Factor struct {
	Name   string
	Unit   string
	Factor float64
}

var DefaultFactors = []Factor{
	{Name: "electricity", Unit: "kWh", Factor: 0.82},
	{Name: "gas", Unit: "kg LPG", Factor: 2.31},
	{Name: "transport", Unit: "km", Factor: 0.21},
}

var ErrNegativeInput = errors.New("values must not be negative")

type Input struct {
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Transport   float64 `json:"transport"`
}

func (i Input) env() map[string]any {
	return map[string]any{
		"electricity": i.Electricity,
		"gas":         i.Gas,
		"transport":   i.Transport,
	}
}

type Result struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
	Unit      string             `json:"unit"`
}

// Calculator evaluates the weighted sum of DefaultFactors as a compiled expression.
type Calculator struct {
	Expression string

	total *vm.Program
	terms map[string]*vm.Program
}

func NewCalculator(factors []Factor) (*Calculator, error) {
	env := Input{}.env()
	calculator := &Calculator{terms: map[string]*vm.Program{}}

	var terms []string
	for _, factor := range factors {
		term := fmt.Sprintf("%s * %s", factor.Name, strconv.FormatFloat(factor.Factor, 'f', -1, 64))
		terms = append(terms, term)

		program, err := expr.Compile(term, expr.Env(env), expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("compiling %s: %w", factor.Name, err)
		}
		calculator.terms[factor.Name] = program
	}

	calculator.Expression = strings.Join(terms, " + ")

	program, err := expr.Compile(calculator.Expression, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, err
	}
	calculator.total = program

	return calculator, nil
}

func (c *Calculator) Calculate(input Input) (Result, error) {
	if input.Electricity < 0 || input.Gas < 0 || input.Transport < 0 {
		return Result{}, ErrNegativeInput
	}

	env := input.env()
	result := Result{
		Breakdown: map[string]float64{},
		Unit:      "kg CO2",
	}

	for name, program := range c.terms {
		value, err := expr.Run(program, env)
		if err != nil {
			return Result{}, err
		}
		result.Breakdown[name] = round(value.(float64))
	}

	total, err := expr.Run(c.total, env)
	if err != nil {
		return Result{}, err
	}
	result.Total = round(total.(float64))

	return result, nil
}

func round(value float64) float64 {
	return math.Round(value*100) / 100
}
