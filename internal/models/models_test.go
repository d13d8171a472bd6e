package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlow(t *testing.T) {
	dst := int64(7)

	t.Run("income", func(t *testing.T) {
		f, err := NewFlow(TypeIncome, nil)
		require.NoError(t, err)
		assert.Equal(t, Income{}, f)
		assert.Nil(t, DestinationOf(f))
	})

	t.Run("transfer keeps destination", func(t *testing.T) {
		f, err := NewFlow(TypeTransfer, &dst)
		require.NoError(t, err)
		assert.Equal(t, Transfer{DestinationAccountID: 7}, f)
		assert.Equal(t, int64(7), *DestinationOf(f))
	})

	t.Run("transfer without destination", func(t *testing.T) {
		_, err := NewFlow(TypeTransfer, nil)
		assert.ErrorIs(t, err, ErrMissingDestination)
	})

	t.Run("expense with destination", func(t *testing.T) {
		_, err := NewFlow(TypeExpense, &dst)
		assert.ErrorIs(t, err, ErrUnexpectedDestination)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewFlow("refund", nil)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func TestTransactionJSON(t *testing.T) {
	in := []byte(`{"id":3,"owner_id":1,"account_id":10,"type":"transfer","amount":"200",
		"transaction_date":"2025-01-06","destination_account_id":11}`)

	var tx Transaction
	require.NoError(t, json.Unmarshal(in, &tx))
	assert.Equal(t, Transfer{DestinationAccountID: 11}, tx.Flow)
	assert.Equal(t, []int64{10, 11}, tx.AccountIDs())
	assert.True(t, decimal.NewFromInt(200).Equal(tx.Amount))

	out, err := json.Marshal(tx)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "transfer", back["type"])
	assert.Equal(t, float64(11), back["destination_account_id"])
	assert.Equal(t, "2025-01-06", back["transaction_date"])
}

func TestCategoryScope(t *testing.T) {
	owner := int64(5)
	own := Category{ID: 1, Scope: ScopeFromOwner(&owner), Type: CategoryExpense}
	def := Category{ID: 2, Scope: ScopeFromOwner(nil), Type: CategoryIncome}

	assert.True(t, own.OwnedBy(5))
	assert.False(t, own.VisibleTo(6))
	assert.True(t, def.IsDefault())
	assert.True(t, def.VisibleTo(6))
	assert.Nil(t, OwnerOf(def.Scope))
	assert.Equal(t, int64(5), *OwnerOf(own.Scope))

	assert.True(t, CategoryExpense.Accepts(TypeExpense))
	assert.False(t, CategoryExpense.Accepts(TypeIncome))
	assert.False(t, CategoryIncome.Accepts(TypeTransfer))
}

func TestNewReconciliation(t *testing.T) {
	acc := &Account{
		ID:             1,
		OpeningBalance: decimal.NewFromInt(1000),
		Balance:        decimal.NewFromInt(1150),
	}
	flows := AccountFlows{
		Income:      decimal.NewFromInt(500),
		Expense:     decimal.NewFromInt(100),
		TransferOut: decimal.NewFromInt(300),
		TransferIn:  decimal.NewFromInt(50),
	}

	r := NewReconciliation(acc, flows)
	assert.True(t, r.Consistent)
	assert.True(t, decimal.NewFromInt(1150).Equal(r.Derived))

	acc.Balance = decimal.NewFromInt(1200)
	r = NewReconciliation(acc, flows)
	assert.False(t, r.Consistent)
	assert.True(t, decimal.NewFromInt(50).Equal(r.Drift))
}
