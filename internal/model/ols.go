package model

import (
	"fmt"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
	"gonum.org/v1/gonum/mat"
)

// OLS is an ordinary least squares learner with an intercept term.
type OLS struct{}

var _ contract.Learner = &OLS{} // Compile-time check

// NewOLS creates an ordinary least squares learner.
func NewOLS() *OLS {
	return &OLS{}
}

// Name identifies the learner.
func (o *OLS) Name() schema.ModelKind {
	return schema.OLSModel
}

// Fit solves the least squares problem via QR decomposition. The design
// matrix gets a leading column of ones for the intercept.
func (o *OLS) Fit(features [][]float64, target []float64) (contract.Model, error) {
	cols, err := checkTrainingShape(features, target)
	if err != nil {
		return nil, err
	}
	n := len(features)
	if n < cols+1 {
		return nil, fmt.Errorf("need at least %d rows to fit %d coefficients, got %d", cols+1, cols+1, n)
	}

	design := mat.NewDense(n, cols+1, nil)
	for i, row := range features {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	y := mat.NewVecDense(n, target)

	var qr mat.QR
	qr.Factorize(design)
	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, y); err != nil {
		// A Condition error flags near-singularity but still carries a
		// usable solution; anything else is fatal.
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("least squares solve: %w", err)
		}
	}

	coef := make([]float64, cols)
	for j := range cols {
		coef[j] = solution.At(j+1, 0)
	}
	return &olsModel{
		intercept: solution.At(0, 0),
		coef:      coef,
	}, nil
}

// olsModel is a trained linear model.
type olsModel struct {
	intercept float64
	coef      []float64
}

// Predict applies the fitted coefficients to each feature row.
func (m *olsModel) Predict(features [][]float64) ([]float64, error) {
	out := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(m.coef) {
			return nil, fmt.Errorf("%w: row %d has %d features, model expects %d", schema.ErrShapeMismatch, i, len(row), len(m.coef))
		}
		v := m.intercept
		for j, x := range row {
			v += m.coef[j] * x
		}
		out[i] = v
	}
	return out, nil
}
