package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		isZero  bool
		wantErr bool
	}{
		{
			name:  "backend layout",
			input: `"2026-03-01T19:05:07"`,
			want:  time.Date(2026, 3, 1, 19, 5, 7, 0, time.Local),
		},
		{
			name:  "fractional seconds",
			input: `"2026-03-01T19:05:07.123"`,
			want:  time.Date(2026, 3, 1, 19, 5, 7, 123000000, time.Local),
		},
		{
			name:  "rfc3339",
			input: `"2026-03-01T18:05:07Z"`,
			want:  time.Date(2026, 3, 1, 18, 5, 7, 0, time.UTC),
		},
		{name: "null", input: `null`, isZero: true},
		{name: "empty", input: `""`, isZero: true},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.isZero {
				assert.True(t, ts.IsZero())
				return
			}
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 3, 1, 19, 5, 7, 999000000, time.Local))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T19:05:07"`, string(out))

	out, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestLineKey(t *testing.T) {
	bufala := Extra{Name: "Bufala", Price: decimal.RequireFromString("1.50")}
	nduja := Extra{Name: " Nduja ", Price: decimal.RequireFromString("0.50")}

	assert.Equal(t, "7", LineKey(7, nil))
	assert.Equal(t, "7+bufala+nduja", LineKey(7, []Extra{bufala, nduja}))
	assert.NotEqual(t, LineKey(7, []Extra{bufala, nduja}), LineKey(7, []Extra{nduja, bufala}))

	// Separators inside a name must not collide with two extras.
	joined := Extra{Name: "Bufala+Nduja"}
	assert.Equal(t, "7+bufala%2Bnduja", LineKey(7, []Extra{joined}))
	assert.NotEqual(t, LineKey(7, []Extra{joined}), LineKey(7, []Extra{bufala, nduja}))
	assert.Equal(t, "7+olio%2Fpeperoncino", LineKey(7, []Extra{{Name: "Olio/Peperoncino"}}))
}

func TestCartItem_MarshalJSONIncludesKey(t *testing.T) {
	item := CartItem{
		Product:        Product{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("6.00"), Available: true},
		Quantity:       2,
		SelectedExtras: []Extra{{Name: "Bufala", Price: decimal.RequireFromString("1.50")}},
	}

	raw, err := json.Marshal(item)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "1+bufala", got["key"])
	assert.Equal(t, "Margherita", got["name"])
	assert.Equal(t, float64(2), got["quantity"])
	assert.Len(t, got["selectedExtras"], 1)

	var back CartItem
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, item.Key(), back.Key())
	assert.Equal(t, 2, back.Quantity)
}

func TestCartItem_Totals(t *testing.T) {
	item := CartItem{
		Product:  Product{ID: 2, Name: "Diavola", Price: decimal.RequireFromString("7.50")},
		Quantity: 3,
		SelectedExtras: []Extra{
			{Name: "Bufala", Price: decimal.RequireFromString("1.50")},
			{Name: "Nduja", Price: decimal.RequireFromString("0.50")},
		},
	}

	assert.True(t, decimal.RequireFromString("9.50").Equal(item.UnitPrice()))
	assert.True(t, decimal.RequireFromString("28.50").Equal(item.LineTotal()))
	assert.Equal(t, []string{"Bufala", "Nduja"}, item.ExtraNames())
	assert.Equal(t, "2+bufala+nduja", item.Key())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       interface{ Validate() error }
		wantErr bool
	}{
		{"product ok", Product{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("6")}, false},
		{"product negative price", Product{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("-1")}, true},
		{"product without id", Product{Name: "Margherita"}, true},
		{"credentials ok", Credentials{Email: "mario@example.com", Password: "x"}, false},
		{"credentials bad email", Credentials{Email: "mario", Password: "x"}, true},
		{"registration without first name", Registration{Email: "mario@example.com", Password: "x"}, true},
		{"google without token", GoogleToken{}, true},
		{"profile ok", ProfileUpdate{FirstName: "Mario"}, false},
		{"product input zero price", ProductInput{Name: "Bianca", CategoryID: 1}, true},
		{"product input without category", ProductInput{Name: "Bianca", Price: decimal.RequireFromString("5")}, true},
		{"user without id", User{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckoutPayload_Validate(t *testing.T) {
	valid := CheckoutPayload{
		User:         UserRef{ID: 5},
		DeliveryTime: "19:30",
		TotalAmount:  decimal.RequireFromString("23.50"),
		OrderDetails: "Cliente: Mario",
		Status:       "INVIATO",
	}
	require.NoError(t, valid.Validate())

	noUser := valid
	noUser.User = UserRef{}
	assert.ErrorIs(t, noUser.Validate(), ErrAuthRequired)

	noSlot := valid
	noSlot.DeliveryTime = " "
	assert.Error(t, noSlot.Validate())

	zero := valid
	zero.TotalAmount = decimal.Zero
	assert.Error(t, zero.Validate())
}

func TestCheckoutPayload_MarshalJSONTotalIsNumber(t *testing.T) {
	payload := CheckoutPayload{
		User:         UserRef{ID: 5},
		DeliveryTime: "19:30",
		TotalAmount:  decimal.RequireFromString("16.5"),
		OrderDetails: "Cliente: Mario",
		Status:       "INVIATO",
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"totalAmount":16.50`)
	assert.Contains(t, string(raw), `"deliveryTime":"19:30"`)
	assert.Equal(t, 1, strings.Count(string(raw), "totalAmount"))
}

func TestDomainError_Is(t *testing.T) {
	wrapped := NewDomainError(ErrCodeEmptyCart, "nothing to order")
	assert.ErrorIs(t, wrapped, ErrEmptyCart)
	assert.NotErrorIs(t, wrapped, ErrAuthRequired)
}
