package rbac

import (
	"fmt"
	"strings"
)

// Permission is a capability key in "resource:action" form, e.g. "orders:read".
type Permission string

// Resource returns the resource part of the key.
func (p Permission) Resource() string {
	key := string(p)
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		return key[:idx]
	}
	return key
}

// Action returns the action part of the key.
func (p Permission) Action() string {
	key := string(p)
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		return key[idx+1:]
	}
	return ""
}

// ParsePermission validates the resource:action shape.
func ParsePermission(key string) (Permission, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid permission %q: want resource:action", key)
	}
	return Permission(key), nil
}

// Back-office permission keys. These mirror the capability strings the
// upstream platform grants; the console declares requirements against them
// but never computes role membership from them.
const (
	OrdersRead      Permission = "orders:read"
	OrdersUpdate    Permission = "orders:update"
	OrdersRefund    Permission = "orders:refund"
	ProductsRead    Permission = "products:read"
	ProductsUpdate  Permission = "products:update"
	MarketingRead   Permission = "marketing:read"
	MarketingUpdate Permission = "marketing:update"
	FinanceRead     Permission = "finance:read"
	PosUpdate       Permission = "pos:update"
	StaffRead       Permission = "staff:read"
	StaffManage     Permission = "staff:manage"
)
