package session

import "github.com/retail-kit/backoffice-console/internal/domain"

// sessionsEqual compares sessions field by field. Permission sets compare as
// sets: a refresh that only reorders permissions is not an effective change.
func sessionsEqual(a, b domain.Session) bool {
	if a.IsAuthenticated != b.IsAuthenticated ||
		a.IsLoading != b.IsLoading ||
		a.Error != b.Error {
		return false
	}
	return profilesEqual(a.User, b.User)
}

func profilesEqual(a, b *domain.UserProfile) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Email != b.Email || a.Name != b.Name || a.Role != b.Role {
		return false
	}
	return permissionSetsEqual(a.Permissions, b.Permissions)
}

func permissionSetsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}
