package guard

const (
	RoleCashier = "cashier"
	RoleManager = "manager"
)

// The store's screens. Mirrors the terminal front end: the dashboard is open
// to any signed-in employee, the cashier screen needs the cashier role, and
// back-office screens need a manager.
var (
	RouteLogin     = Destination{Name: "login"}
	RouteDashboard = Destination{Name: "dashboard"}
	RouteCashier   = Destination{Name: "cashier", Roles: []string{RoleCashier}}
	RouteProducts  = Destination{Name: "products", Roles: []string{RoleManager}}
	RouteOrders    = Destination{Name: "orders", Roles: []string{RoleManager, RoleCashier}}
	RouteInventory = Destination{Name: "inventory", Roles: []string{RoleManager}}
	RouteCustomers = Destination{Name: "customers", Roles: []string{RoleManager, RoleCashier}}
	RouteReports   = Destination{Name: "reports", Roles: []string{RoleManager}}
	RouteSettings  = Destination{Name: "settings", Roles: []string{RoleManager}}
)

var routes = []Destination{
	RouteLogin,
	RouteDashboard,
	RouteCashier,
	RouteProducts,
	RouteOrders,
	RouteInventory,
	RouteCustomers,
	RouteReports,
	RouteSettings,
}

// Find returns the destination registered under name.
func Find(name string) (Destination, bool) {
	for _, d := range routes {
		if d.Name == name {
			return d, true
		}
	}
	return Destination{}, false
}
