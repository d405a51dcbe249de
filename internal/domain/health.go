package domain

// HealthStatus is the outcome of one doctor check, ordered ok < warn < error.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

func (s HealthStatus) rank() int {
	switch s {
	case HealthOK:
		return 0
	case HealthWarn:
		return 1
	default:
		return 2
	}
}

// HealthCheck is a single diagnostic line.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport is the ordered list of checks run by doctor.
type HealthReport struct {
	Checks []HealthCheck
}

// Worst returns the most severe status in the report; HealthOK when empty.
func (r HealthReport) Worst() HealthStatus {
	worst := HealthOK
	for _, c := range r.Checks {
		if c.Status.rank() > worst.rank() {
			worst = c.Status
		}
	}
	return worst
}

// Failed returns the names of checks with HealthError.
func (r HealthReport) Failed() []string {
	var names []string
	for _, c := range r.Checks {
		if c.Status == HealthError {
			names = append(names, c.Name)
		}
	}
	return names
}
