// Package constants defines shared identifiers used across layers.
package constants

// Durable local storage keys. Each key is written by exactly one store.
const (
	// StorageKeySession holds the persisted authentication snapshot.
	StorageKeySession = "authdata"

	// StorageKeyCatalog holds the cached product catalog.
	StorageKeyCatalog = "prodList"

	// StorageKeyRememberedUser holds the opt-in remembered credential pair.
	StorageKeyRememberedUser = "usr"
)

// Known catalog categories returned by the products endpoint.
var CatalogCategories = []string{"cameras", "products", "shirts", "smartphones", "watches"}

// PlaceholderProductIDPrefix marks locally generated product identities
// assigned when the server response omits an id.
const PlaceholderProductIDPrefix = "prod_"

// OrderNumberPrefix marks locally generated order confirmation numbers.
const OrderNumberPrefix = "ORD-"
