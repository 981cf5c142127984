package invoice

import (
	"testing"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineItemAmounts(t *testing.T) {
	li := &LineItem{
		Name:      "Danismanlik",
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(100),
		TaxRate:   decimal.NewFromInt(18),
	}

	assert.True(t, li.NetAmount().Equal(decimal.NewFromInt(200)))
	assert.True(t, li.TaxAmount().Equal(decimal.NewFromInt(36)))
}

func TestLineItemAmountsWithDiscount(t *testing.T) {
	li := &LineItem{
		Name:         "Lisans",
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.NewFromInt(100),
		TaxRate:      decimal.NewFromInt(20),
		DiscountRate: decimal.NewFromInt(10),
	}

	assert.True(t, li.NetAmount().Equal(decimal.NewFromInt(90)))
	assert.True(t, li.TaxAmount().Equal(decimal.NewFromInt(18)))
}

func TestLineItemValidate(t *testing.T) {
	valid := &LineItem{
		Name:      "Hizmet",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(50),
		TaxRate:   decimal.NewFromInt(8),
	}
	assert.NoError(t, valid.Validate())

	noName := *valid
	noName.Name = ""
	assert.True(t, ierr.IsValidation(noName.Validate()))

	zeroQty := *valid
	zeroQty.Quantity = decimal.Zero
	assert.True(t, ierr.IsValidation(zeroQty.Validate()))

	negPrice := *valid
	negPrice.UnitPrice = decimal.NewFromInt(-1)
	assert.True(t, ierr.IsValidation(negPrice.Validate()))

	badRate := *valid
	badRate.TaxRate = decimal.NewFromInt(101)
	assert.True(t, ierr.IsValidation(badRate.Validate()))
}

func TestComputeTotals(t *testing.T) {
	inv := &SalesInvoice{
		CustomerID: "cust_1",
		Currency:   "TRY",
		LineItems: []*LineItem{
			{
				Name:      "A",
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(100),
				TaxRate:   decimal.NewFromInt(18),
			},
			{
				Name:      "B",
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(50),
				TaxRate:   decimal.NewFromInt(8),
			},
		},
	}

	inv.ComputeTotals()

	assert.True(t, inv.SubtotalAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(22)))
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(172)))
}

func TestInvoiceValidateTotalsDrift(t *testing.T) {
	inv := &SalesInvoice{
		CustomerID:     "cust_1",
		Currency:       "TRY",
		SubtotalAmount: decimal.NewFromInt(150),
		LineItems: []*LineItem{
			{
				Name:        "A",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(100),
				TaxRate:     decimal.NewFromInt(18),
				TotalAmount: decimal.NewFromInt(100),
			},
			{
				Name:        "B",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(50),
				TaxRate:     decimal.NewFromInt(8),
				TotalAmount: decimal.NewFromInt(50),
			},
		},
	}
	assert.NoError(t, inv.Validate())

	inv.SubtotalAmount = decimal.NewFromInt(100)
	err := inv.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestInvoiceValidateWithoutLines(t *testing.T) {
	// Totals consistency is only enforced when line items are loaded
	inv := &SalesInvoice{
		CustomerID:     "cust_1",
		Currency:       "TRY",
		SubtotalAmount: decimal.NewFromInt(999),
	}
	assert.NoError(t, inv.Validate())

	inv.Currency = ""
	assert.True(t, ierr.IsValidation(inv.Validate()))
}
