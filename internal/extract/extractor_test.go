package extract

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/domain"
)

func TestExtract_InvalidInput(t *testing.T) {
	e := New(Dictionary{})
	_, err := e.Extract("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_GarbageTolerance(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract("asdkjhaskjdh")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, CustomerRecord{}, res.Customer)
	assert.Empty(t, res.Products)
	assert.Equal(t, TaxSummary{}, res.Tax)
}

func TestExtract_Determinism(t *testing.T) {
	e := New(Dictionary{})
	a, err := e.Extract(sampleInvoice)
	require.NoError(t, err)
	b, err := e.Extract(sampleInvoice)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestExtract_FullDocument(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract(sampleInvoice)
	require.NoError(t, err)

	t.Run("customer", func(t *testing.T) {
		assert.Equal(t, "Akash Anil Jagtap", res.Customer.Name)
		assert.Equal(t, "7387644884", res.Customer.Phone)
		assert.Equal(t, "At Post Arjunwad", res.Customer.Address)
	})

	t.Run("products", func(t *testing.T) {
		require.Len(t, res.Products, 2)

		p1 := res.Products[0]
		assert.Equal(t, "P1", p1.ID)
		assert.Equal(t, "Whirlpool", p1.CompanyName)
		assert.Equal(t, "001", p1.SerialNumber)
		assert.Equal(t, "Ref DC 215 Impro Prm 5s Cool Illusi-72590", p1.Name)
		assert.Equal(t, 1, p1.Quantity)
		assert.Equal(t, 17900.00, p1.UnitPrice)
		assert.Equal(t, 15169.49, p1.LineAmount)

		p2 := res.Products[1]
		assert.Equal(t, "P2", p2.ID)
		assert.Equal(t, "Apple", p2.CompanyName)
		assert.Equal(t, "1", p2.SerialNumber)
		assert.Equal(t, "TV", p2.Name)
		assert.Equal(t, 3, p2.Quantity)
		assert.Equal(t, 149999.97, p2.UnitPrice)
		assert.Equal(t, 449999.91, p2.LineAmount)
	})

	t.Run("tax", func(t *testing.T) {
		assert.Equal(t, 42076.00, res.Tax.TaxableValue)
		assert.Equal(t, 9.0, res.Tax.CGSTRate)
		assert.Equal(t, 3786.84, res.Tax.CGSTAmount)
		assert.Equal(t, 0.32, res.Tax.RoundOff)
		assert.Equal(t, 49650.00, res.Tax.TotalAmount)
	})

	t.Run("normalized_text_kept", func(t *testing.T) {
		assert.Contains(t, res.Text, "Whirlpool")
	})
}

func TestExtract_SellerPhoneNeverLeaks(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract(sampleInvoice)
	require.NoError(t, err)
	assert.Equal(t, "7387644884", res.Customer.Phone)
	assert.NotEqual(t, "9876543210", res.Customer.Phone)
	assert.NotEqual(t, "9876543210", res.Customer.AltPhone)
}

func TestExtract_DerivationLaw(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract(sampleInvoice)
	require.NoError(t, err)

	for _, p := range res.Products {
		if p.quantityExplicit {
			assert.Less(t, math.Abs(p.LineAmount-p.UnitPrice*float64(p.Quantity)), 0.01,
				"explicit quantity must reconcile for %s", p.ID)
			continue
		}
		// Inferred quantity follows round(amount/price), floored to 1.
		want := int(math.Round(p.LineAmount / p.UnitPrice))
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, p.Quantity, "inferred quantity for %s", p.ID)
	}
}

func TestExtract_QuantityNeverBelowOne(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract("Item	Qty	Rate	Amount\n1	Samsung	64012	100.00	20.00")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, 1, res.Products[0].Quantity)
}

func TestExtract_AmountDerivedFromPrice(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract("Item	Qty	Rate	Amount\nStabilizer 600VA	1800.00")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	p := res.Products[0]
	assert.Equal(t, 1800.00, p.UnitPrice)
	assert.Equal(t, 1800.00, p.LineAmount)
	assert.Equal(t, 1, p.Quantity)
}

func TestExtract_ProductOrderIsSourceOrder(t *testing.T) {
	e := New(Dictionary{})
	res, err := e.Extract(`Item	Qty	Rate	Amount
1	Sony	Bravia TV	55000.00	55000.00
2	Godrej	Almirah	18500.00	18500.00
3	Voltas	Split AC	32990.00	32990.00`)
	require.NoError(t, err)
	require.Len(t, res.Products, 3)
	assert.Equal(t, []string{"Sony", "Godrej", "Voltas"},
		[]string{res.Products[0].CompanyName, res.Products[1].CompanyName, res.Products[2].CompanyName})
	assert.Equal(t, []string{"P1", "P2", "P3"},
		[]string{res.Products[0].ID, res.Products[1].ID, res.Products[2].ID})
}

func TestExtract_CustomDictionary(t *testing.T) {
	e := New(Dictionary{Companies: []string{"Frigidaire"}})
	res, err := e.Extract("Item	Qty	Rate	Amount\nFrigidaire	Chest Freezer	24000.00	24000.00")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Frigidaire", res.Products[0].CompanyName)
}
