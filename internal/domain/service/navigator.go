package service

// Route names the views a store can send the user to after an operation.
type Route string

const (
	RouteAuth     Route = "auth"
	RouteProducts Route = "products"
	RouteCart     Route = "cart"
	RouteOrders   Route = "orders"
)

// Navigator abstracts view navigation. Post-success navigation is an
// explicit external effect issued by the stores, never folded into a state
// patch: storage durability and navigation stay independent.
type Navigator interface {
	Navigate(route Route)
}
