package topup

import (
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/invalidation"
)

// keys is the single source of cache key formats for the topup family.
var keys = cache.NewKeyBuilder("topup")

func listPrefixes() []string {
	return []string{
		keys.OpPrefix("find_all"),
		keys.OpPrefix("find_active"),
		keys.OpPrefix("find_trashed"),
		keys.OpPrefix("monthly_amounts"),
		keys.OpPrefix("yearly_amounts"),
	}
}

func createTarget() *invalidation.Target {
	return &invalidation.Target{
		Family:       keys.Family(),
		ListPrefixes: listPrefixes(),
	}
}

func idTarget(id int) *invalidation.Target {
	return &invalidation.Target{
		Family:     keys.Family(),
		DetailKeys: []string{keys.Detail("find_by_id", id)},
		ListPrefixes: append(listPrefixes(),
			keys.OpPrefix("find_by_card"),
		),
	}
}

func familyTarget() *invalidation.Target {
	return &invalidation.Target{
		Family:       keys.Family(),
		ListPrefixes: []string{keys.FamilyPrefix()},
	}
}
