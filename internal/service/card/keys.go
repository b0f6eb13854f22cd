package card

import (
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/invalidation"
)

// keys is the single source of cache key formats for the card family.
// Reads and invalidation both go through it so a write's purge prefix can
// never drift away from a read's key format.
var keys = cache.NewKeyBuilder("card")

// listPrefixes covers every list and aggregate view of the family. Both
// active and trashed views are always included: trash/restore moves the
// record between them and the rest are cheap to drop.
func listPrefixes() []string {
	return []string{
		keys.OpPrefix("find_all"),
		keys.OpPrefix("find_active"),
		keys.OpPrefix("find_trashed"),
		keys.OpPrefix("dashboard"),
		keys.OpPrefix("monthly_balance"),
		keys.OpPrefix("yearly_balance"),
	}
}

// createTarget purges the list and aggregate views. A create has no prior
// detail key to drop, only a new one to populate.
func createTarget() *invalidation.Target {
	return &invalidation.Target{
		Family:       keys.Family(),
		ListPrefixes: listPrefixes(),
	}
}

// idTarget purges everything a mutation of one card can make stale: its
// exact id detail key, the secondary detail views by prefix (the masked
// card number and owning user are not known from the id alone), and all
// list/aggregate views.
func idTarget(id int) *invalidation.Target {
	return &invalidation.Target{
		Family:     keys.Family(),
		DetailKeys: []string{keys.Detail("find_by_id", id)},
		ListPrefixes: append(listPrefixes(),
			keys.OpPrefix("find_by_user"),
			keys.OpPrefix("find_by_card"),
		),
	}
}

// familyTarget purges the whole card key space, for bulk mutations.
func familyTarget() *invalidation.Target {
	return &invalidation.Target{
		Family:       keys.Family(),
		ListPrefixes: []string{keys.FamilyPrefix()},
	}
}
