package inventory

// Observer receives ledger outcomes after the enclosing transaction commits.
type Observer interface {
	Credited(bloodType string, units int)
	Debited(bloodType string, units int)
	Transferred(bloodType string, units int)
	Rejected(operation string, err error)
}

type noopObserver struct{}

func (noopObserver) Credited(string, int) {}

func (noopObserver) Debited(string, int) {}

func (noopObserver) Transferred(string, int) {}

func (noopObserver) Rejected(string, error) {}
