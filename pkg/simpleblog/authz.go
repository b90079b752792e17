package simpleblog

// Authorization predicates. Pure evaluation, no side effects; consumed by
// the post operations (role check) and comment operations (ownership
// check).

// HasRole reports whether the identity holds the named role.
func HasRole(identity Identity, role Role) bool {
	for _, r := range identity.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// OwnsByName reports whether the acting identity owns an entity whose
// stored author snapshot is snapshotName. Ownership is string equality
// between the snapshot and the identity's current display name: a user who
// changes display name loses rights over prior comments, and a user who
// acquires the same display name gains them.
func OwnsByName(snapshotName string, identity Identity) bool {
	return snapshotName == identity.DisplayName
}
