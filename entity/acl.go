package entity

// ACL is the sandbox permission list of a path, split by principal kind.
type ACL struct {
	Users  *Ordered[Perm]
	Groups *Ordered[Perm]
}

func NewACL() *ACL {
	return &ACL{
		Users:  NewOrdered[Perm](),
		Groups: NewOrdered[Perm](),
	}
}
