package rbac

import "github.com/retail-kit/backoffice-console/internal/domain"

// Catalog returns the static role to permission mapping: the source of truth
// for what each role is expected to be able to do. Sessions carry the set the
// upstream actually granted; the catalog exists for route declarations,
// admin tooling and tests, not for client-side resolution.
func Catalog() map[domain.Role][]Permission {
	return map[domain.Role][]Permission{
		domain.RoleAdmin: {
			OrdersRead, OrdersUpdate, OrdersRefund,
			ProductsRead, ProductsUpdate,
			MarketingRead, MarketingUpdate,
			FinanceRead,
			PosUpdate,
			StaffRead, StaffManage,
		},
		domain.RoleManager: {
			OrdersRead, OrdersUpdate,
			ProductsRead, ProductsUpdate,
			MarketingRead, MarketingUpdate,
			PosUpdate,
		},
		domain.RoleViewer: {
			OrdersRead,
			ProductsRead,
			MarketingRead,
		},
	}
}

// RoleGrants reports whether the catalog lists key under role.
func RoleGrants(role domain.Role, key Permission) bool {
	for _, p := range Catalog()[role] {
		if p == key {
			return true
		}
	}
	return false
}
