package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Existencias-api/internal/domain"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"SKU":               "sku",
		"CompanyID":         "company_id",
		"ProductTypeID":     "product_type_id",
		"InitialQuantity":   "initial_quantity",
		"LowStockThreshold": "low_stock_threshold",
		"Delta":             "delta",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in), "snakeCase(%q)", in)
	}
}

func TestCollectStructErrors_AcumulaTodosLosCampos(t *testing.T) {
	type sample struct {
		CompanyID string `validate:"required,uuid4"`
		SKU       string `validate:"required"`
		Quantity  int64  `validate:"min=0"`
	}
	verr := &domain.ValidationError{}
	err := collectStructErrors(verr, newValidator().Struct(sample{Quantity: -3}))
	require.NoError(t, err)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, "required", fields["company_id"])
	assert.Equal(t, "required", fields["sku"])
	assert.Equal(t, "min", fields["quantity"])
}
