package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

func TestSaleCredits(t *testing.T) {
	split := models.Split{PlatformFee: 20, Royalty: 100, SellerProceeds: 880}

	t.Run("distinct parties", func(t *testing.T) {
		credits := saleCredits("treasury", "alice", "bob", split)

		assert.Equal(t, map[string]int64{
			"treasury": 20,
			"alice":    100,
			"bob":      880,
		}, credits)
	})

	t.Run("seller is also the creator", func(t *testing.T) {
		// Royalty and proceeds accumulate under the one account
		credits := saleCredits("treasury", "alice", "alice", split)

		assert.Equal(t, map[string]int64{
			"treasury": 20,
			"alice":    980,
		}, credits)
	})

	t.Run("fee recipient sells their own creation", func(t *testing.T) {
		credits := saleCredits("treasury", "treasury", "treasury", split)

		assert.Equal(t, map[string]int64{"treasury": 1000}, credits)
	})

	t.Run("nothing is lost to the merge", func(t *testing.T) {
		for _, creator := range []string{"alice", "bob", "treasury"} {
			credits := saleCredits("treasury", creator, "bob", split)

			var total int64
			for _, amount := range credits {
				total += amount
			}
			assert.Equal(t, split.Total(), total)
		}
	})
}
